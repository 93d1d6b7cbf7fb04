// ABOUTME: CLI commands for the selection lists: objectives, frequencies, muscles.
// ABOUTME: Each prints id-ordered rows from the seeded catalog.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/gymguide/internal/models"
	"github.com/spf13/cobra"
)

var musclesObjective string

var objectivesCmd = &cobra.Command{
	Use:     "objectives",
	Aliases: []string{"obj"},
	Short:   "List training objectives",
	Long: `List the training objectives in catalog order.

The ID column is what --objective expects in the exercises and muscles
commands.

EXAMPLES:

  gymguide objectives`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		objectives, err := store.ListObjectives(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list objectives: %w", err)
		}

		out := cmd.OutOrStdout()
		faint := color.New(color.Faint)
		for _, o := range objectives {
			fmt.Fprintf(out, "%s %s\n", faint.Sprintf("%3d", o.ID), o.Name)
		}
		return nil
	},
}

var frequenciesCmd = &cobra.Command{
	Use:     "frequencies",
	Aliases: []string{"freq"},
	Short:   "List weekly frequency levels",
	Long: `List the weekly training frequency levels in catalog order.

The ID column is what --frequency expects in the show command; the label
is what the routine command expects.

EXAMPLES:

  gymguide frequencies`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		levels, err := store.ListFrequencyLevels(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list frequency levels: %w", err)
		}

		out := cmd.OutOrStdout()
		faint := color.New(color.Faint)
		for _, f := range levels {
			fmt.Fprintf(out, "%s %s\n", faint.Sprintf("%3d", f.ID), f.Level)
		}
		return nil
	},
}

var musclesCmd = &cobra.Command{
	Use:   "muscles",
	Short: "List muscle groups",
	Long: `List muscle groups with the key accepted by --muscle.

Keys are the lowercase muscle name without accents, so "Cuádriceps"
becomes "cuadriceps".

EXAMPLES:

  gymguide muscles                  # All muscle groups
  gymguide muscles --objective 2    # Only groups trained for objective 2`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			muscles []models.Muscle
			err     error
		)
		if musclesObjective != "" {
			objectiveID, perr := parseID("objective", musclesObjective)
			if perr != nil {
				return perr
			}
			muscles, err = store.ListMusclesByObjective(cmd.Context(), objectiveID)
		} else {
			muscles, err = store.ListMuscles(cmd.Context())
		}
		if err != nil {
			return fmt.Errorf("failed to list muscles: %w", err)
		}

		if len(muscles) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No muscles found.")
			return nil
		}

		out := cmd.OutOrStdout()
		faint := color.New(color.Faint)
		for _, m := range muscles {
			fmt.Fprintf(out, "%s %s %s\n",
				faint.Sprintf("%3d", m.ID),
				padRight(m.Key(), 12),
				m.Name)
		}
		return nil
	},
}

func init() {
	musclesCmd.Flags().StringVar(&musclesObjective, "objective", "", "only muscles with exercises for this objective id")

	rootCmd.AddCommand(objectivesCmd)
	rootCmd.AddCommand(frequenciesCmd)
	rootCmd.AddCommand(musclesCmd)
}
