// ABOUTME: Repository interface for the training catalog.
// ABOUTME: Defines the contract the CLI and MCP layers consume.
package storage

import (
	"context"

	"github.com/harperreed/gymguide/internal/models"
)

// Repository defines the storage interface for the training catalog.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Lifecycle and maintenance
	Initialize(ctx context.Context) (*InitReport, error)
	Deduplicate(ctx context.Context) (DedupResult, error)
	ResetAll(ctx context.Context) (*InitReport, error)
	Close() error

	// Reference data
	ListObjectives(ctx context.Context) ([]models.Objective, error)
	ListFrequencyLevels(ctx context.Context) ([]models.FrequencyLevel, error)
	ListMuscles(ctx context.Context) ([]models.Muscle, error)
	ListMusclesByObjective(ctx context.Context, objectiveID int64) ([]models.Muscle, error)
	MuscleIndex(ctx context.Context) (map[string]int64, error)
	ResolveMuscle(ctx context.Context, keyOrID string) (models.Muscle, bool, error)

	// Exercises
	ListExercises(ctx context.Context) ([]models.Exercise, error)
	GetExercise(ctx context.Context, id int64) (models.Exercise, bool, error)
	ListExercisesByMuscleAndObjective(ctx context.Context, muscleID, objectiveID int64) ([]models.ExerciseSummary, error)
	GetExerciseDetail(ctx context.Context, exerciseID, frequencyID int64) (models.ExerciseDetail, bool, error)
	ListRoutine(ctx context.Context, objectiveName, frequencyLevel string) ([]models.RoutineEntry, error)
	ListTrainingParameters(ctx context.Context) ([]models.TrainingParameters, error)

	// Aggregates and export
	Catalog(ctx context.Context) (*Catalog, error)
	Stats(ctx context.Context) (*Stats, error)
	ExportJSON(ctx context.Context) ([]byte, error)
	ExportYAML(ctx context.Context) ([]byte, error)
	ExportMarkdown(ctx context.Context, objective string) (string, error)
}

// Compile-time check that Store implements Repository.
var _ Repository = (*Store)(nil)
