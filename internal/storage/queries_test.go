// ABOUTME: Tests for catalog read queries.
// ABOUTME: Verifies joins, ordering, empty results, and the derived muscle index.
package storage

import (
	"context"
	"testing"

	"github.com/harperreed/gymguide/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListObjectivesAndFrequencyLevels(t *testing.T) {
	s := setupReadyStore(t)
	ctx := context.Background()

	objectives, err := s.ListObjectives(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Objective{
		{ID: 1, Name: "Hipertrofia"},
		{ID: 2, Name: "Resistencia Cardiovascular"},
		{ID: 3, Name: "Reducción de Grasa"},
	}, objectives)

	levels, err := s.ListFrequencyLevels(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.FrequencyLevel{
		{ID: 1, Level: "No hace ejercicio"},
		{ID: 2, Level: "1–3 h/semana"},
		{ID: 3, Level: "4–7 h/semana"},
	}, levels)

	// Stable across repeated calls.
	again, err := s.ListObjectives(ctx)
	require.NoError(t, err)
	assert.Equal(t, objectives, again)
}

func TestGetExerciseDetail(t *testing.T) {
	s := setupReadyStore(t)
	ctx := context.Background()

	var exerciseID int64
	err := s.db.QueryRow(`SELECT id FROM exercises WHERE name = 'Sentadilla búlgara'`).Scan(&exerciseID)
	require.NoError(t, err)
	freq := frequencyID(t, s, "1–3 h/semana")

	detail, ok, err := s.GetExerciseDetail(ctx, exerciseID, freq)
	require.NoError(t, err)
	require.True(t, ok, "expected exercise detail to be found")

	assert.Equal(t, models.ExerciseDetail{
		Name:           "Sentadilla búlgara",
		Description:    "Apoya un pie atrás sobre una silla, mantén el torso erguido y baja en sentadilla con la pierna delantera.",
		Sets:           "3",
		Reps:           "10–12",
		RestSeconds:    "60",
		FrequencyLevel: "1–3 h/semana",
		ObjectiveName:  "Hipertrofia",
	}, detail)
}

func TestGetExerciseDetailParametersFollowObjective(t *testing.T) {
	s := setupReadyStore(t)
	ctx := context.Background()

	tests := []struct {
		exercise string
		level    string
		sets     string
		reps     string
		rest     string
	}{
		{"Crunch con carga", "No hace ejercicio", "1–2", "8–10", "90"},
		{"Mountain climbers", "4–7 h/semana", "3–4", "40–50", "30"},
		{"Flutter kicks", "1–3 h/semana", "2–3", "15–20", "60"},
	}

	for _, tt := range tests {
		t.Run(tt.exercise, func(t *testing.T) {
			var id int64
			require.NoError(t, s.db.QueryRow(`SELECT id FROM exercises WHERE name = ?`, tt.exercise).Scan(&id))

			d, ok, err := s.GetExerciseDetail(ctx, id, frequencyID(t, s, tt.level))
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.sets, d.Sets)
			assert.Equal(t, tt.reps, d.Reps)
			assert.Equal(t, tt.rest, d.RestSeconds)
		})
	}
}

func TestGetExerciseDetailNotFound(t *testing.T) {
	s := setupReadyStore(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		exerciseID int64
		frequency  int64
	}{
		{"unknown exercise", 9999, 1},
		{"unknown frequency", 1, 9999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok, err := s.GetExerciseDetail(ctx, tt.exerciseID, tt.frequency)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestGetExerciseDetailWithoutParameters(t *testing.T) {
	s := setupReadyStore(t)

	// A frequency level nobody defined parameters for.
	res, err := s.db.Exec(`INSERT INTO frequency_levels (level) VALUES ('Más de 7 h/semana')`)
	require.NoError(t, err)
	freq, err := res.LastInsertId()
	require.NoError(t, err)

	_, ok, err := s.GetExerciseDetail(context.Background(), 1, freq)
	require.NoError(t, err)
	assert.False(t, ok, "expected not found without parameters")
}

func TestListExercisesByMuscleAndObjectiveScenario(t *testing.T) {
	s := setupReadyStore(t)

	got, err := s.ListExercisesByMuscleAndObjective(context.Background(),
		muscleID(t, s, "Cuádriceps"), objectiveID(t, s, "Reducción de Grasa"))
	require.NoError(t, err)

	var names []string
	for _, e := range got {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"Jump squats", "Step-ups en escalón", "Walking lunges dinámicos"}, names)
}

func TestListExercisesByMuscleAndObjectiveEmpty(t *testing.T) {
	s := setupReadyStore(t)
	ctx := context.Background()

	res, err := s.db.Exec(`INSERT INTO muscles (name) VALUES ('Pectoral')`)
	require.NoError(t, err)
	pectoral, err := res.LastInsertId()
	require.NoError(t, err)

	tests := []struct {
		name      string
		muscle    int64
		objective int64
	}{
		{"muscle without exercises", pectoral, 1},
		{"unknown objective", 1, 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ListExercisesByMuscleAndObjective(ctx, tt.muscle, tt.objective)
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestJumpSquatsUnderTwoObjectives(t *testing.T) {
	s := setupReadyStore(t)
	ctx := context.Background()
	quads := muscleID(t, s, "Cuádriceps")

	for _, objective := range []string{"Resistencia Cardiovascular", "Reducción de Grasa"} {
		got, err := s.ListExercisesByMuscleAndObjective(ctx, quads, objectiveID(t, s, objective))
		require.NoError(t, err, objective)

		found := 0
		for _, e := range got {
			if e.Name == "Jump squats" {
				found++
			}
		}
		assert.Equal(t, 1, found, objective)
	}

	var rows int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM exercises WHERE name = 'Jump squats'`).Scan(&rows))
	assert.Equal(t, 2, rows)
}

func TestUniqueByID(t *testing.T) {
	in := []models.ExerciseSummary{
		{ID: 2, Name: "A"},
		{ID: 1, Name: "B"},
		{ID: 2, Name: "A"},
		{ID: 3, Name: "C"},
	}
	want := []models.ExerciseSummary{{ID: 2, Name: "A"}, {ID: 1, Name: "B"}, {ID: 3, Name: "C"}}
	assert.Equal(t, want, uniqueByID(in))
}

func TestMuscleIndex(t *testing.T) {
	s := setupReadyStore(t)

	index, err := s.MuscleIndex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{
		"biceps":     muscleID(t, s, "Bíceps"),
		"abdomen":    muscleID(t, s, "Abdomen"),
		"cuadriceps": muscleID(t, s, "Cuádriceps"),
	}, index)
}

func TestMuscleIndexRejectsCollidingKeys(t *testing.T) {
	s := setupReadyStore(t)

	_, err := s.db.Exec(`INSERT INTO muscles (name) VALUES ('Biceps')`)
	require.NoError(t, err)

	_, err = s.MuscleIndex(context.Background())
	assert.Error(t, err, "muscles sharing a key should be rejected")
}

func TestResolveMuscle(t *testing.T) {
	s := setupReadyStore(t)
	ctx := context.Background()
	quads := muscleID(t, s, "Cuádriceps")

	tests := []struct {
		input  string
		wantOK bool
	}{
		{"cuadriceps", true},
		{"Cuádriceps", true},
		{"CUADRICEPS", true},
		{"3", true},
		{"pectoral", false},
		{"42", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m, ok, err := s.ResolveMuscle(ctx, tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, quads, m.ID)
			}
		})
	}
}

func TestListMusclesByObjective(t *testing.T) {
	s := setupReadyStore(t)
	ctx := context.Background()

	muscles, err := s.ListMusclesByObjective(ctx, objectiveID(t, s, "Hipertrofia"))
	require.NoError(t, err)
	assert.Len(t, muscles, 3)

	none, err := s.ListMusclesByObjective(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListRoutine(t *testing.T) {
	s := setupReadyStore(t)
	ctx := context.Background()

	entries, err := s.ListRoutine(ctx, "Hipertrofia", "4–7 h/semana")
	require.NoError(t, err)
	require.Len(t, entries, 9)
	for _, e := range entries {
		assert.Equal(t, "4", e.Sets, e.Name)
		assert.Equal(t, "12–15", e.Reps, e.Name)
		assert.Equal(t, "45", e.RestSeconds, e.Name)
	}

	empty, err := s.ListRoutine(ctx, "Yoga", "4–7 h/semana")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGetExercise(t *testing.T) {
	s := setupReadyStore(t)
	ctx := context.Background()

	e, ok, err := s.GetExercise(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Curl con banda elástica", e.Name)

	_, ok, err = s.GetExercise(ctx, 9999)
	require.NoError(t, err)
	assert.False(t, ok)

	all, err := s.ListExercises(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 27)
}
