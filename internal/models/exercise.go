// ABOUTME: Exercise and TrainingParameters models plus the flattened query results.
// ABOUTME: Parameters are keyed by (objective, frequency), never by exercise.
package models

// Exercise is a single movement belonging to exactly one muscle and one objective.
type Exercise struct {
	ID          int64  `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	MuscleID    int64  `json:"muscle_id" yaml:"muscle_id"`
	ObjectiveID int64  `json:"objective_id" yaml:"objective_id"`
}

// Summary reduces the exercise to the fields shown in list views.
func (e Exercise) Summary() ExerciseSummary {
	return ExerciseSummary{ID: e.ID, Name: e.Name, Description: e.Description}
}

// ExerciseSummary is the list-view projection of an Exercise.
type ExerciseSummary struct {
	ID          int64  `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// TrainingParameters holds the sets/reps/rest prescription for an
// (objective, frequency) pair. Values are ranges kept as text, e.g. "10–12".
type TrainingParameters struct {
	ID          int64  `json:"id" yaml:"id"`
	ObjectiveID int64  `json:"objective_id" yaml:"objective_id"`
	FrequencyID int64  `json:"frequency_id" yaml:"frequency_id"`
	Sets        string `json:"sets" yaml:"sets"`
	Reps        string `json:"reps" yaml:"reps"`
	RestSeconds string `json:"rest_seconds" yaml:"rest_seconds"`
}

// ExerciseDetail is an exercise joined with the parameters for one frequency level.
type ExerciseDetail struct {
	Name           string `json:"name" yaml:"name"`
	Description    string `json:"description" yaml:"description"`
	Sets           string `json:"sets" yaml:"sets"`
	Reps           string `json:"reps" yaml:"reps"`
	RestSeconds    string `json:"rest_seconds" yaml:"rest_seconds"`
	FrequencyLevel string `json:"frequency_level" yaml:"frequency_level"`
	ObjectiveName  string `json:"objective_name" yaml:"objective_name"`
}

// RoutineEntry is one line of a routine: an exercise with its prescription.
type RoutineEntry struct {
	ExerciseID  int64  `json:"exercise_id" yaml:"exercise_id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Sets        string `json:"sets" yaml:"sets"`
	Reps        string `json:"reps" yaml:"reps"`
	RestSeconds string `json:"rest_seconds" yaml:"rest_seconds"`
}
