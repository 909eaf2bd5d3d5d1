package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/huuphu310/rooms-management-sub000/cmd/cli/commands"
	"github.com/huuphu310/rooms-management-sub000/internal/config"
	"github.com/huuphu310/rooms-management-sub000/pkg/postgres"
	"github.com/huuphu310/rooms-management-sub000/pkg/utils/logging"
)

var (
	configPath string
	app        *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rooms",
		Short: "Room allocation CLI - manage occupancy grids, triage, and auto-assignment",
		Long:  `A CLI tool for the property's room allocation core: monthly occupancy grids, unassigned-booking triage, auto-assignment runs, room blocks, and allocation rules.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.Logger != nil {
					app.Logger.Sync()
				}
				if app.Database != nil {
					app.Database.Close()
				}
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to allocator_config.yaml (default: search cwd then home)")

	rootCmd.AddCommand(
		commands.GridCmd(appRef),
		commands.TriageCmd(appRef),
		commands.AssignCmd(appRef),
		commands.BlockCmd(appRef),
		commands.RuleCmd(appRef),
		commands.ConvertCmd(appRef),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// appRef lets commands capture the app context that only exists after
// PersistentPreRunE has run.
func appRef() *commands.AppContext {
	return app
}

func initApp() error {
	ctx := context.Background()

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFromPath(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.InitLogger("rooms")
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}

	database, err := postgres.NewDB(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.RunMigrations(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	app = &commands.AppContext{
		Cfg:      cfg,
		Database: database,
		Logger:   logger,
		Ctx:      ctx,
	}
	return nil
}
