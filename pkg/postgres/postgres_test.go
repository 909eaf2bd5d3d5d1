package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingMigrations_AllPendingOnFreshSchema(t *testing.T) {
	pending, err := pendingMigrations(map[string]bool{})
	require.NoError(t, err)
	assert.Equal(t, []string{"001_init.sql"}, pending)
}

func TestPendingMigrations_SkipsApplied(t *testing.T) {
	pending, err := pendingMigrations(map[string]bool{"001_init.sql": true})
	require.NoError(t, err)
	assert.Empty(t, pending)
}
