// cmd/menuplanner/main.go
package main

import (
	"fmt"
	"os"
	"time"

	"menu-planner/internal/config"
	"menu-planner/internal/database"
	"menu-planner/internal/logging"
	"menu-planner/internal/menu"
	"menu-planner/internal/repository"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "menuplanner",
	Short: "Daily lunch and dinner planner",
	Long: `menuplanner keeps per-category dish lists and picks a lunch and a
dinner for each day, avoiding dishes served in the previous two days.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(level, cfg.Logging.Development)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd, todayCmd, refreshCmd, historyCmd, catalogCmd)
}

// openPlanner wires the SQLite store into a planner. The returned close
// function releases the database.
func openPlanner() (*menu.Planner, func() error, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}
	db, err := database.New(cfg.Database.Path)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("Opened database", zap.String("path", cfg.Database.Path), zap.Stringer("timezone", loc))

	kv := repository.NewKeyValueRepository(db)
	planner := menu.NewPlanner(
		repository.NewCatalogRepository(kv, logger),
		repository.NewHistoryRepository(kv, logger),
		menu.WithLocation(loc),
		menu.WithClock(time.Now),
		menu.WithLogger(logger),
	)
	return planner, db.Close, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
