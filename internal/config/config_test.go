package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), configFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const validYAML = `
databaseURL: postgres://localhost:5432/rooms
baseCurrency: VND
currencyRates:
  USD: "25000"
  EUR: "27000.50"
defaultStrategy: vip_first
wearLookbackDays: 60
roomTypeOrder: [standard, deluxe, suite]
peakSeasons:
  - rrule: "FREQ=YEARLY;BYMONTH=6;BYMONTHDAY=1"
    durationDays: 92
`

func TestLoadFromPath_Valid(t *testing.T) {
	cfg, err := LoadFromPath(writeConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "VND", cfg.BaseCurrency)
	assert.Equal(t, 60, cfg.WearLookback())
	assert.Equal(t, "vip_first", string(cfg.Strategy()))

	rates, err := cfg.Rates()
	require.NoError(t, err)
	assert.True(t, rates["USD"].Equal(rates["USD"].Truncate(0)))
	assert.Len(t, rates, 2)
}

func TestLoadFromPath_MissingDatabaseURL(t *testing.T) {
	_, err := LoadFromPath(writeConfig(t, `
baseCurrency: VND
currencyRates:
  USD: "25000"
`))
	assert.Error(t, err)
}

func TestLoadFromPath_BadStrategy(t *testing.T) {
	_, err := LoadFromPath(writeConfig(t, `
databaseURL: postgres://localhost:5432/rooms
baseCurrency: VND
currencyRates:
  USD: "25000"
defaultStrategy: first_come_first_served
`))
	assert.Error(t, err)
}

func TestLoadFromPath_BadRate(t *testing.T) {
	_, err := LoadFromPath(writeConfig(t, `
databaseURL: postgres://localhost:5432/rooms
baseCurrency: VND
currencyRates:
  USD: "twenty five thousand"
`))
	assert.Error(t, err)
}

func TestLoadFromPath_BadRRule(t *testing.T) {
	_, err := LoadFromPath(writeConfig(t, `
databaseURL: postgres://localhost:5432/rooms
baseCurrency: VND
currencyRates:
  USD: "25000"
peakSeasons:
  - rrule: "EVERY SUMMER"
    durationDays: 92
`))
	assert.Error(t, err)
}

func TestPeakSeasonWindows(t *testing.T) {
	cfg, err := LoadFromPath(writeConfig(t, validYAML))
	require.NoError(t, err)

	from := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	windows, err := cfg.PeakSeasonWindows(from, to)
	require.NoError(t, err)

	// the June 1 occurrence is already underway in July
	require.NotEmpty(t, windows)
	assert.True(t, windows[0].Contains(time.Date(2026, time.July, 15, 0, 0, 0, 0, time.UTC)))
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, 90, cfg.WearLookback())
	assert.Equal(t, "optimize_occupancy", string(cfg.Strategy()))
}
