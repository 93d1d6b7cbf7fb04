// ABOUTME: CLI commands for exercises: the filtered list, the detail view, and a full routine.
// ABOUTME: Muscles are given by key or id; objectives and frequencies by id or display name.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	exercisesMuscle    string
	exercisesObjective string
	showFrequency      string
	routineObjective   string
	routineFrequency   string
)

var exercisesCmd = &cobra.Command{
	Use:     "exercises",
	Aliases: []string{"ex"},
	Short:   "List exercises for a muscle and objective",
	Long: `List exercises for one muscle group and one training objective,
sorted by name.

OUTPUT FORMAT:

  Each entry shows: ID  NAME
                        DESCRIPTION

  Use the ID with 'gymguide show'.

EXAMPLES:

  gymguide exercises --muscle biceps --objective 1
  gymguide exercises --muscle cuadriceps --objective 3
  gymguide ex -m 3 -o 2`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		objectiveID, err := parseID("objective", exercisesObjective)
		if err != nil {
			return err
		}

		muscle, ok, err := store.ResolveMuscle(ctx, exercisesMuscle)
		if err != nil {
			return fmt.Errorf("failed to resolve muscle: %w", err)
		}
		if !ok {
			return fmt.Errorf("unknown muscle: %s (see 'gymguide muscles')", exercisesMuscle)
		}

		exercises, err := store.ListExercisesByMuscleAndObjective(ctx, muscle.ID, objectiveID)
		if err != nil {
			return fmt.Errorf("failed to list exercises: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(exercises) == 0 {
			fmt.Fprintln(out, "No exercises found.")
			return nil
		}

		faint := color.New(color.Faint)
		bold := color.New(color.Bold)
		for _, e := range exercises {
			fmt.Fprintf(out, "%s %s\n", faint.Sprintf("%3d", e.ID), bold.Sprint(e.Name))
			fmt.Fprintf(out, "    %s\n", faint.Sprint(truncate(e.Description, 100)))
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <exercise-id>",
	Short: "Show an exercise with its training parameters",
	Long: `Show one exercise with the sets, reps and rest that apply to its
objective at the given weekly frequency level.

EXAMPLES:

  gymguide show 8 --frequency 2
  gymguide show 8 -f 3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exerciseID, err := parseID("exercise", args[0])
		if err != nil {
			return err
		}
		frequencyID, err := parseID("frequency", showFrequency)
		if err != nil {
			return err
		}

		detail, ok, err := store.GetExerciseDetail(cmd.Context(), exerciseID, frequencyID)
		if err != nil {
			return fmt.Errorf("failed to get exercise: %w", err)
		}
		if !ok {
			return fmt.Errorf("no training parameters for exercise %d at frequency %d", exerciseID, frequencyID)
		}

		out := cmd.OutOrStdout()
		faint := color.New(color.Faint)
		color.New(color.Bold).Fprintln(out, detail.Name)
		fmt.Fprintf(out, "%s\n\n", detail.Description)
		fmt.Fprintf(out, "%s %s\n", faint.Sprint(padRight("Objective", 11)), detail.ObjectiveName)
		fmt.Fprintf(out, "%s %s\n", faint.Sprint(padRight("Frequency", 11)), detail.FrequencyLevel)
		fmt.Fprintf(out, "%s %s\n", faint.Sprint(padRight("Sets", 11)), detail.Sets)
		fmt.Fprintf(out, "%s %s\n", faint.Sprint(padRight("Reps", 11)), detail.Reps)
		fmt.Fprintf(out, "%s %s s\n", faint.Sprint(padRight("Rest", 11)), detail.RestSeconds)
		return nil
	},
}

var routineCmd = &cobra.Command{
	Use:   "routine",
	Short: "Print every exercise of an objective with its parameters",
	Long: `Print a full routine: every exercise for an objective, with the sets,
reps and rest for a weekly frequency level. Names must match the catalog
(see 'gymguide objectives' and 'gymguide frequencies').

EXAMPLES:

  gymguide routine --objective Hipertrofia --frequency "1–3 h/semana"
  gymguide routine -o "Reducción de Grasa" -f "No hace ejercicio"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := store.ListRoutine(cmd.Context(), routineObjective, routineFrequency)
		if err != nil {
			return fmt.Errorf("failed to build routine: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "No exercises found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, e := range entries {
			fmt.Fprintf(out, "%s %s %s\n",
				faint.Sprintf("%3d", e.ExerciseID),
				padRight(e.Name, 42),
				faint.Sprintf("%s x %s, rest %ss", e.Sets, e.Reps, e.RestSeconds))
		}
		return nil
	},
}

func init() {
	exercisesCmd.Flags().StringVarP(&exercisesMuscle, "muscle", "m", "", "muscle key or id (required)")
	exercisesCmd.Flags().StringVarP(&exercisesObjective, "objective", "o", "", "objective id (required)")
	_ = exercisesCmd.MarkFlagRequired("muscle")
	_ = exercisesCmd.MarkFlagRequired("objective")

	showCmd.Flags().StringVarP(&showFrequency, "frequency", "f", "", "frequency level id (required)")
	_ = showCmd.MarkFlagRequired("frequency")

	routineCmd.Flags().StringVarP(&routineObjective, "objective", "o", "", "objective name (required)")
	routineCmd.Flags().StringVarP(&routineFrequency, "frequency", "f", "", "frequency level label (required)")
	_ = routineCmd.MarkFlagRequired("objective")
	_ = routineCmd.MarkFlagRequired("frequency")

	rootCmd.AddCommand(exercisesCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(routineCmd)
}
