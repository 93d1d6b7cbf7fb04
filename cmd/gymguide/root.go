// ABOUTME: Root Cobra command for the gymguide CLI.
// ABOUTME: Opens and initializes the catalog store via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/harperreed/gymguide/internal/config"
	"github.com/harperreed/gymguide/internal/logging"
	"github.com/harperreed/gymguide/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	dbPath string
	store  *storage.Store
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gymguide",
	Short: "Home workout catalog",
	Long: `Gymguide is a CLI for browsing a fixed catalog of home exercises.

HOW IT WORKS:

  Pick an objective, a weekly training frequency and a muscle group.
  Gymguide lists matching exercises, and for each exercise the sets,
  reps and rest that fit your objective and frequency.

QUICK START:

  $ gymguide objectives                           # Training objectives
  $ gymguide frequencies                          # Weekly frequency levels
  $ gymguide exercises --muscle biceps --objective 1
  $ gymguide show 4 --frequency 2                 # Exercise with parameters
  $ gymguide routine --objective Hipertrofia --frequency "1–3 h/semana"

MAINTENANCE:

  $ gymguide stats        # Row counts and exercises per category
  $ gymguide dedup        # Remove duplicate catalog rows
  $ gymguide reset --yes  # Drop everything and reseed

MCP INTEGRATION:

  Run 'gymguide mcp' to serve the catalog over the Model Context Protocol.

  {
    "mcpServers": {
      "gymguide": { "command": "gymguide", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  The catalog lives in ~/.local/share/gymguide/gymguide.db and is seeded
  on first run. Use --db to point at another file.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip store setup for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}
		return openStore(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeStore()
	},
}

// openStore loads config, builds the logger and opens the store. A failed
// initialization is logged and the command still runs; reads then report
// storage.ErrNotInitialized.
func openStore(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err = logging.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	store, err = cfg.OpenStore(dbPath, logger)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := store.Initialize(cmd.Context()); err != nil {
		logger.Error("catalog unavailable", zap.String("path", store.Path()), zap.Error(err))
	}
	return nil
}

func closeStore() error {
	if logger != nil {
		_ = logger.Sync()
	}
	if store == nil {
		return nil
	}
	err := store.Close()
	store = nil
	return err
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the gymguide version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "gymguide", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: ~/.local/share/gymguide/gymguide.db)")
	rootCmd.AddCommand(versionCmd)
}
