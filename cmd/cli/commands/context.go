package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/huuphu310/rooms-management-sub000/internal/config"
	"github.com/huuphu310/rooms-management-sub000/pkg/postgres"
)

// AppContext holds the application dependencies shared by commands
type AppContext struct {
	Cfg      *config.Config
	Database *postgres.DB
	Logger   *zap.Logger
	Ctx      context.Context
}
