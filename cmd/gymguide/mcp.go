// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio-based MCP server over the training catalog.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/gymguide/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server exposes the read-only catalog over stdin/stdout.

CLIENT CONFIGURATION:

  {
    "mcpServers": {
      "gymguide": {
        "command": "gymguide",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  list_objectives        Training objectives
  list_frequency_levels  Weekly frequency levels
  list_muscles           Muscle groups with lookup keys
  list_exercises         Exercises for a muscle and objective
  get_exercise_detail    Exercise with sets, reps and rest
  get_routine            Every exercise of an objective with parameters

AVAILABLE RESOURCES:

  gymguide://catalog     Objectives, frequencies, muscles and key index
  gymguide://stats       Row counts and exercises per category`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(store, version)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)
		go func() {
			select {
			case <-sigChan:
				cancel()
			case <-ctx.Done():
			}
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
