// ABOUTME: CLI commands for catalog maintenance: stats, dedup, and reset.
// ABOUTME: Reset is destructive and refuses to run without --yes.
package main

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var resetConfirm bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog statistics",
	Long: `Show row counts per table and the number of exercises for each
muscle group and objective.

EXAMPLES:

  gymguide stats`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := store.Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load stats: %w", err)
		}

		out := cmd.OutOrStdout()
		bold := color.New(color.Bold)
		faint := color.New(color.Faint)

		bold.Fprintln(out, "Tables")
		tables := make([]string, 0, len(stats.Tables))
		for name := range stats.Tables {
			tables = append(tables, name)
		}
		sort.Strings(tables)
		for _, name := range tables {
			fmt.Fprintf(out, "  %s %d\n", padRight(name, 22), stats.Tables[name])
		}

		fmt.Fprintln(out)
		bold.Fprintln(out, "Exercises per category")
		for _, c := range stats.Categories {
			fmt.Fprintf(out, "  %s %s %d\n",
				padRight(c.Muscle, 12),
				faint.Sprint(padRight(c.Objective, 28)),
				c.Exercises)
		}
		return nil
	},
}

var dedupCmd = &cobra.Command{
	Use:   "dedup",
	Short: "Remove duplicate catalog rows",
	Long: `Remove duplicate exercises and training parameter rows, keeping the
lowest id of each group. Running it on a clean catalog changes nothing.

EXAMPLES:

  gymguide dedup`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := store.Deduplicate(cmd.Context())
		if err != nil {
			return fmt.Errorf("dedup failed: %w", err)
		}

		if result.Total() == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No duplicates found.")
			return nil
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(),
			"✓ Removed %d duplicate exercises and %d duplicate parameter rows\n",
			result.Exercises, result.TrainingParameters)
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop and reseed the catalog",
	Long: `Drop every catalog table and seed the catalog again.

CAUTION:

  This permanently deletes the database contents. There is no undo.
  Pass --yes to confirm.

EXAMPLES:

  gymguide reset --yes`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetConfirm {
			return errors.New("refusing to reset without --yes")
		}

		report, err := store.ResetAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}

		color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(),
			"✓ Reset catalog: seeded %d rows in %s\n",
			report.Inserted.Total(), report.Duration.Round(time.Millisecond))
		if report.DedupErr != nil {
			color.New(color.FgRed).Fprintf(cmd.ErrOrStderr(), "! dedup pass skipped: %v\n", report.DedupErr)
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetConfirm, "yes", "y", false, "confirm destroying the catalog")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(dedupCmd)
	rootCmd.AddCommand(resetCmd)
}
