package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/group-planner/cmd/cli/commands"
	"github.com/jakechorley/group-planner/internal/config"
	"github.com/jakechorley/group-planner/pkg/postgres"
	"github.com/jakechorley/group-planner/pkg/utils/logging"
)

var (
	env string
	app = &commands.AppContext{}
	pg  *postgres.DB
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "planner",
		Short: "Group planner CLI - find times when everyone is free",
		Long: `A CLI tool for planning group meetings: record members' work shifts and
availability, import shifts from recognized schedule text and rank the slots of a
planning range by how many members are free.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if pg != nil {
				pg.Close()
			}
			if app.Logger != nil {
				_ = app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.DefineGroupCmd(app))
	rootCmd.AddCommand(commands.AddMemberCmd(app))
	rootCmd.AddCommand(commands.AddBlockCmd(app))
	rootCmd.AddCommand(commands.DeleteBlockCmd(app))
	rootCmd.AddCommand(commands.ListBlocksCmd(app))
	rootCmd.AddCommand(commands.AddBlockedWindowCmd(app))
	rootCmd.AddCommand(commands.ViewSlotsCmd(app))
	rootCmd.AddCommand(commands.TopSlotsCmd(app))
	rootCmd.AddCommand(commands.MeetingWindowsCmd(app))
	rootCmd.AddCommand(commands.ParseScheduleCmd(app))
	rootCmd.AddCommand(commands.ImportScheduleCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, recurring templates and database
func initApp() error {
	var err error
	app.Ctx = context.Background()

	app.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully",
		zap.Int("recurring_blocks", len(app.Cfg.RecurringBlocks)))

	app.Templates, err = commands.TemplatesFromConfig(app.Cfg)
	if err != nil {
		return fmt.Errorf("failed to load recurring blocks: %w", err)
	}

	app.Logger.Info("Connecting to database")
	pg, err = postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pg.RunMigrations(app.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.Database = pg
	app.Logger.Debug("Database initialized successfully")

	return nil
}
