// ABOUTME: Read queries over the training catalog used by the CLI and MCP layers.
// ABOUTME: Exercises join training parameters at query time through their shared objective.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/harperreed/gymguide/internal/models"
	"go.uber.org/zap"
)

// rlock takes the shared lock for a read and fails if the store is not READY.
func (s *Store) rlock() (func(), error) {
	s.mu.RLock()
	if !s.ready {
		s.mu.RUnlock()
		return nil, ErrNotInitialized
	}
	return s.mu.RUnlock, nil
}

// ListObjectives returns all objectives ordered by id.
func (s *Store) ListObjectives(ctx context.Context) ([]models.Objective, error) {
	unlock, err := s.rlock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	return s.listObjectives(ctx)
}

func (s *Store) listObjectives(ctx context.Context) ([]models.Objective, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM objectives ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list objectives: %w", err)
	}
	defer rows.Close()

	objectives := []models.Objective{}
	for rows.Next() {
		var o models.Objective
		if err := rows.Scan(&o.ID, &o.Name); err != nil {
			return nil, fmt.Errorf("scan objective: %w", err)
		}
		objectives = append(objectives, o)
	}
	return objectives, rows.Err()
}

// ListFrequencyLevels returns all frequency levels ordered by id.
func (s *Store) ListFrequencyLevels(ctx context.Context) ([]models.FrequencyLevel, error) {
	unlock, err := s.rlock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	return s.listFrequencyLevels(ctx)
}

func (s *Store) listFrequencyLevels(ctx context.Context) ([]models.FrequencyLevel, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, level FROM frequency_levels ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list frequency levels: %w", err)
	}
	defer rows.Close()

	levels := []models.FrequencyLevel{}
	for rows.Next() {
		var f models.FrequencyLevel
		if err := rows.Scan(&f.ID, &f.Level); err != nil {
			return nil, fmt.Errorf("scan frequency level: %w", err)
		}
		levels = append(levels, f)
	}
	return levels, rows.Err()
}

// ListMuscles returns all muscles ordered by id.
func (s *Store) ListMuscles(ctx context.Context) ([]models.Muscle, error) {
	unlock, err := s.rlock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	return s.listMuscles(ctx)
}

func (s *Store) listMuscles(ctx context.Context) ([]models.Muscle, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM muscles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list muscles: %w", err)
	}
	defer rows.Close()

	return scanMuscles(rows)
}

// ListMusclesByObjective returns the muscles that have at least one exercise
// for the objective.
func (s *Store) ListMusclesByObjective(ctx context.Context, objectiveID int64) ([]models.Muscle, error) {
	unlock, err := s.rlock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT m.id, m.name
		FROM exercises e
		JOIN muscles m ON m.id = e.muscle_id
		WHERE e.objective_id = ?
		ORDER BY m.id
	`, objectiveID)
	if err != nil {
		return nil, fmt.Errorf("list muscles by objective: %w", err)
	}
	defer rows.Close()

	return scanMuscles(rows)
}

// MuscleIndex maps each muscle key (see models.MuscleKey) to its id. The
// body-map selector resolves taps through this instead of a hardcoded table.
func (s *Store) MuscleIndex(ctx context.Context) (map[string]int64, error) {
	muscles, err := s.ListMuscles(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int64, len(muscles))
	for _, m := range muscles {
		key := m.Key()
		if prev, ok := index[key]; ok {
			return nil, fmt.Errorf("muscle key %q shared by ids %d and %d", key, prev, m.ID)
		}
		index[key] = m.ID
	}
	return index, nil
}

// ResolveMuscle finds a muscle by numeric id, key or display name.
func (s *Store) ResolveMuscle(ctx context.Context, keyOrID string) (models.Muscle, bool, error) {
	muscles, err := s.ListMuscles(ctx)
	if err != nil {
		return models.Muscle{}, false, err
	}

	keyOrID = strings.TrimSpace(keyOrID)
	if id, err := strconv.ParseInt(keyOrID, 10, 64); err == nil {
		for _, m := range muscles {
			if m.ID == id {
				return m, true, nil
			}
		}
		return models.Muscle{}, false, nil
	}

	key := models.MuscleKey(keyOrID)
	for _, m := range muscles {
		if m.Key() == key {
			return m, true, nil
		}
	}
	return models.Muscle{}, false, nil
}

// ListExercises returns every exercise ordered by id.
func (s *Store) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	unlock, err := s.rlock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	return s.listExercises(ctx)
}

func (s *Store) listExercises(ctx context.Context) ([]models.Exercise, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, muscle_id, objective_id
		FROM exercises
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	exercises := []models.Exercise{}
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.MuscleID, &e.ObjectiveID); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

// GetExercise retrieves an exercise by id. The bool is false when it does not exist.
func (s *Store) GetExercise(ctx context.Context, id int64) (models.Exercise, bool, error) {
	unlock, err := s.rlock()
	if err != nil {
		return models.Exercise{}, false, err
	}
	defer unlock()

	var e models.Exercise
	err = s.db.QueryRowContext(ctx, `
		SELECT id, name, description, muscle_id, objective_id
		FROM exercises
		WHERE id = ?
	`, id).Scan(&e.ID, &e.Name, &e.Description, &e.MuscleID, &e.ObjectiveID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Exercise{}, false, nil
	}
	if err != nil {
		return models.Exercise{}, false, fmt.Errorf("get exercise: %w", err)
	}
	return e, true, nil
}

// ListExercisesByMuscleAndObjective returns the exercises for a muscle and
// objective ordered by name. A combination with no exercises yields an empty
// slice. Rows are additionally filtered to unique ids.
func (s *Store) ListExercisesByMuscleAndObjective(ctx context.Context, muscleID, objectiveID int64) ([]models.ExerciseSummary, error) {
	unlock, err := s.rlock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description
		FROM exercises
		WHERE muscle_id = ? AND objective_id = ?
		ORDER BY name, id
	`, muscleID, objectiveID)
	if err != nil {
		return nil, fmt.Errorf("list exercises by muscle: %w", err)
	}
	defer rows.Close()

	var all []models.ExerciseSummary
	for rows.Next() {
		var e models.ExerciseSummary
		if err := rows.Scan(&e.ID, &e.Name, &e.Description); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		all = append(all, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list exercises by muscle: %w", err)
	}

	unique := uniqueByID(all)
	if len(unique) != len(all) {
		s.logger.Warn("duplicate exercise ids in result",
			zap.Int64("muscle_id", muscleID),
			zap.Int64("objective_id", objectiveID),
			zap.Int("total", len(all)),
			zap.Int("unique", len(unique)))
	}
	return unique, nil
}

// uniqueByID keeps the first occurrence of every id, preserving order.
func uniqueByID(in []models.ExerciseSummary) []models.ExerciseSummary {
	out := make([]models.ExerciseSummary, 0, len(in))
	seen := make(map[int64]struct{}, len(in))
	for _, e := range in {
		if _, ok := seen[e.ID]; ok {
			continue
		}
		seen[e.ID] = struct{}{}
		out = append(out, e)
	}
	return out
}

// GetExerciseDetail joins an exercise with the training parameters of its
// objective at the given frequency level. The bool is false when the exercise
// does not exist or no parameters are defined for that combination.
func (s *Store) GetExerciseDetail(ctx context.Context, exerciseID, frequencyID int64) (models.ExerciseDetail, bool, error) {
	unlock, err := s.rlock()
	if err != nil {
		return models.ExerciseDetail{}, false, err
	}
	defer unlock()

	// Uniqueness makes at most one row match; the ORDER BY only pins the
	// choice if that ever stops holding.
	var d models.ExerciseDetail
	err = s.db.QueryRowContext(ctx, `
		SELECT e.name, e.description, p.sets, p.reps, p.rest_seconds, f.level, o.name
		FROM exercises e
		JOIN training_parameters p ON p.objective_id = e.objective_id
		JOIN frequency_levels f ON f.id = p.frequency_id
		JOIN objectives o ON o.id = e.objective_id
		WHERE e.id = ? AND p.frequency_id = ?
		ORDER BY p.id
		LIMIT 1
	`, exerciseID, frequencyID).Scan(
		&d.Name, &d.Description, &d.Sets, &d.Reps, &d.RestSeconds, &d.FrequencyLevel, &d.ObjectiveName)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ExerciseDetail{}, false, nil
	}
	if err != nil {
		return models.ExerciseDetail{}, false, fmt.Errorf("get exercise detail: %w", err)
	}
	return d, true, nil
}

// ListRoutine returns every exercise of an objective with the parameters for
// a frequency level, both given by display name. Results are grouped by
// muscle and sorted by exercise name.
func (s *Store) ListRoutine(ctx context.Context, objectiveName, frequencyLevel string) ([]models.RoutineEntry, error) {
	unlock, err := s.rlock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT e.id, e.name, e.description, p.sets, p.reps, p.rest_seconds
		FROM exercises e
		JOIN training_parameters p ON p.objective_id = e.objective_id
		JOIN frequency_levels f ON f.id = p.frequency_id
		JOIN objectives o ON o.id = e.objective_id
		WHERE f.level = ? AND o.name = ?
		ORDER BY e.muscle_id, e.name, e.id
	`, frequencyLevel, objectiveName)
	if err != nil {
		return nil, fmt.Errorf("list routine: %w", err)
	}
	defer rows.Close()

	entries := []models.RoutineEntry{}
	for rows.Next() {
		var r models.RoutineEntry
		if err := rows.Scan(&r.ExerciseID, &r.Name, &r.Description, &r.Sets, &r.Reps, &r.RestSeconds); err != nil {
			return nil, fmt.Errorf("scan routine entry: %w", err)
		}
		entries = append(entries, r)
	}
	return entries, rows.Err()
}

// ListTrainingParameters returns every parameter row ordered by id.
func (s *Store) ListTrainingParameters(ctx context.Context) ([]models.TrainingParameters, error) {
	unlock, err := s.rlock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	return s.listTrainingParameters(ctx)
}

func (s *Store) listTrainingParameters(ctx context.Context) ([]models.TrainingParameters, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, objective_id, frequency_id, sets, reps, rest_seconds
		FROM training_parameters
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list training parameters: %w", err)
	}
	defer rows.Close()

	params := []models.TrainingParameters{}
	for rows.Next() {
		var p models.TrainingParameters
		if err := rows.Scan(&p.ID, &p.ObjectiveID, &p.FrequencyID, &p.Sets, &p.Reps, &p.RestSeconds); err != nil {
			return nil, fmt.Errorf("scan training parameters: %w", err)
		}
		params = append(params, p)
	}
	return params, rows.Err()
}

func scanMuscles(rows *sql.Rows) ([]models.Muscle, error) {
	muscles := []models.Muscle{}
	for rows.Next() {
		var m models.Muscle
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("scan muscle: %w", err)
		}
		muscles = append(muscles, m)
	}
	return muscles, rows.Err()
}
