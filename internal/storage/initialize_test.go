// ABOUTME: Tests for Initialize and ResetAll.
// ABOUTME: Covers idempotence, rollback, legacy repair, concurrency and reset round-trips.
package storage

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/sync/errgroup"
)

var seededCounts = map[string]int{
	"muscles":             3,
	"objectives":          3,
	"frequency_levels":    3,
	"exercises":           27,
	"training_parameters": 9,
}

func TestInitializeSeedsCatalog(t *testing.T) {
	s := setupTestStore(t)

	report, err := s.Initialize(context.Background())
	require.NoError(t, err)

	assert.True(t, s.Ready())
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, SeedCounts{
		Muscles:            3,
		Objectives:         3,
		FrequencyLevels:    3,
		Exercises:          27,
		TrainingParameters: 9,
	}, report.Inserted)
	assert.Zero(t, report.Dedup.Total())
	assert.NoError(t, report.DedupErr)
	assert.Equal(t, seededCounts, tableCounts(t, s))
}

func TestInitializeIsIdempotent(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		report, err := s.Initialize(ctx)
		require.NoError(t, err, "run %d", i)
		if i > 0 {
			assert.Zero(t, report.Inserted.Total(), "run %d inserted rows", i)
		}
		assert.Equal(t, seededCounts, tableCounts(t, s), "run %d", i)
	}
}

func TestInitializeSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	first, err := Open(dbPath)
	require.NoError(t, err)
	_, err = first.Initialize(ctx)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(dbPath)
	require.NoError(t, err)
	defer second.Close()

	report, err := second.Initialize(ctx)
	require.NoError(t, err)
	assert.Zero(t, report.Inserted.Total())
	assert.Equal(t, seededCounts, tableCounts(t, second))
}

func TestInitializeRollsBackOnSeedFailure(t *testing.T) {
	orig := seedExercises
	seedExercises = append(append([]seedExercise(nil), orig...),
		seedExercise{"Press de banca", "Empuja la barra.", "Pectoral", "Hipertrofia"})
	t.Cleanup(func() { seedExercises = orig })

	s := setupTestStore(t)
	_, err := s.Initialize(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInitialization), "error = %v", err)
	assert.False(t, s.Ready())

	// Nothing from the failed run is visible, not even the tables.
	var tables int
	err = s.db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'").Scan(&tables)
	require.NoError(t, err)
	assert.Zero(t, tables)
}

func TestInitializeWithCancelledContext(t *testing.T) {
	s := setupTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Initialize(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInitialization)
	assert.False(t, s.Ready())

	// A later call with a live context still succeeds.
	_, err = s.Initialize(context.Background())
	require.NoError(t, err)
	assert.True(t, s.Ready())
}

func TestInitializeDedupFailureIsNotFatal(t *testing.T) {
	s := setupReadyStore(t)

	orig := dedupStatements
	dedupStatements = []dedupStatement{{table: "exercises", query: "DELETE FROM missing_table"}}
	t.Cleanup(func() { dedupStatements = orig })

	report, err := s.Initialize(context.Background())
	require.NoError(t, err)
	require.Error(t, report.DedupErr)
	assert.ErrorIs(t, report.DedupErr, ErrMaintenance)
	assert.True(t, s.Ready())
	assert.Equal(t, seededCounts, tableCounts(t, s))
}

func TestInitializeRepairsLegacyDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "legacy.db")
	ctx := context.Background()

	legacy, err := Open(dbPath)
	require.NoError(t, err)
	_, err = legacy.Initialize(ctx)
	require.NoError(t, err)

	// Simulate a database written before the identity indexes existed.
	_, err = legacy.db.Exec(`
		DROP INDEX ux_exercises_identity;
		DROP INDEX ux_training_parameters_identity;
		INSERT INTO exercises (name, description, muscle_id, objective_id)
			SELECT name, description, muscle_id, objective_id FROM exercises WHERE id = 1;
		INSERT INTO training_parameters (objective_id, frequency_id, sets, reps, rest_seconds)
			SELECT objective_id, frequency_id, sets, reps, rest_seconds FROM training_parameters WHERE id = 1;
	`)
	require.NoError(t, err)
	require.NoError(t, legacy.Close())

	s, err := Open(dbPath)
	require.NoError(t, err)
	defer s.Close()

	report, err := s.Initialize(ctx)
	require.NoError(t, err)
	assert.Equal(t, DedupResult{Exercises: 1, TrainingParameters: 1}, report.Repaired)
	assert.Equal(t, seededCounts, tableCounts(t, s))

	for _, idx := range identityIndexes {
		exists, err := indexExists(ctx, s.db, idx.name)
		require.NoError(t, err)
		assert.True(t, exists, "index %s", idx.name)
	}
}

func TestConcurrentInitialize(t *testing.T) {
	defer goleak.VerifyNone(t)

	s, err := Open(filepath.Join(t.TempDir(), "concurrent.db"))
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			_, err := s.Initialize(ctx)
			return err
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, seededCounts, tableCounts(t, s))
}

func TestInitializeOutlivesCancelledCaller(t *testing.T) {
	s := setupTestStore(t)

	// Hold the store lock so the shared run cannot start yet.
	s.mu.Lock()

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := s.Initialize(ctxA)
		errA <- err
	}()

	time.Sleep(50 * time.Millisecond)
	errB := make(chan error, 1)
	go func() {
		_, err := s.Initialize(context.Background())
		errB <- err
	}()
	time.Sleep(50 * time.Millisecond)

	cancelA()
	select {
	case err := <-errA:
		assert.ErrorIs(t, err, context.Canceled)
		assert.ErrorIs(t, err, ErrInitialization)
	case <-time.After(5 * time.Second):
		s.mu.Unlock()
		t.Fatal("cancelled caller kept waiting")
	}

	s.mu.Unlock()
	select {
	case err := <-errB:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("second caller never returned")
	}
	assert.True(t, s.Ready())
	assert.Equal(t, seededCounts, tableCounts(t, s))
}

func TestInitializeLogsDedupFailure(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	s, err := OpenMemory(WithLogger(zap.New(core)))
	require.NoError(t, err)
	defer s.Close()

	orig := dedupStatements
	dedupStatements = []dedupStatement{{table: "exercises", query: "DELETE FROM missing_table"}}
	t.Cleanup(func() { dedupStatements = orig })

	report, err := s.Initialize(context.Background())
	require.NoError(t, err)
	require.Error(t, report.DedupErr)

	warned := logs.FilterMessage("post-seed deduplication failed")
	require.Equal(t, 1, warned.Len())
	entry := warned.All()[0]
	assert.Equal(t, zap.WarnLevel, entry.Level)
	assert.Contains(t, entry.ContextMap(), "run_id")
	assert.Contains(t, entry.ContextMap()["error"], "missing_table")
}

func TestConcurrentReadsAfterInitialize(t *testing.T) {
	s := setupReadyStore(t)
	ctx := context.Background()

	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			objectives, err := s.ListObjectives(ctx)
			if err != nil {
				return err
			}
			if len(objectives) != 3 {
				return errors.New("unexpected objective count")
			}
			_, _, err = s.GetExerciseDetail(ctx, 1, 1)
			return err
		})
	}
	require.NoError(t, g.Wait())
}

func TestResetAll(t *testing.T) {
	s := setupReadyStore(t)
	ctx := context.Background()

	_, err := s.db.Exec("INSERT INTO objectives (name) VALUES ('Movilidad')")
	require.NoError(t, err)
	require.Equal(t, 4, countRows(t, s, "objectives"))

	report, err := s.ResetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 27, report.Inserted.Exercises)
	assert.True(t, s.Ready())

	objectives, err := s.ListObjectives(ctx)
	require.NoError(t, err)

	var names []string
	for _, o := range objectives {
		names = append(names, o.Name)
	}
	sort.Strings(names)
	assert.Equal(t, []string{"Hipertrofia", "Reducción de Grasa", "Resistencia Cardiovascular"}, names)
	assert.Equal(t, seededCounts, tableCounts(t, s))
}
