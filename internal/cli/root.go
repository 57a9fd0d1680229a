// Package cli provides the command-line interface for the backtester.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"options-backtester/internal/config"
	"options-backtester/internal/store"
)

// Version information
const Version = "0.1.0"

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Store  *store.SQLiteStore
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	dataStore, err := store.NewSQLiteStore(cfg.Storage.Path)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to initialize store, run history will be unavailable")
	} else {
		app.Store = dataStore
		logger.Debug().Str("path", cfg.Storage.Path).Msg("SQLite store initialized")
	}

	rootCmd := &cobra.Command{
		Use:   "backtester",
		Short: "Single-asset options-strategy backtester",
		Long: `Backtester simulates a moving-average crossover options strategy over a
synthetic price path and tracks the resulting cash/asset account day by day.

Use 'backtester run' to execute a backtest and 'backtester history' to list
previously stored runs.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")

	rootCmd.AddCommand(newRunCmd(app))
	rootCmd.AddCommand(newHistoryCmd(app))

	return rootCmd
}
