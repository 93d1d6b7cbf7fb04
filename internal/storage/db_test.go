// ABOUTME: Tests for store connection lifecycle.
// ABOUTME: Verifies directory creation, XDG paths, and the uninitialized state.
package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "nested", "test.db")

	s, err := Open(dbPath)
	require.NoError(t, err)
	defer s.Close()

	assert.DirExists(t, filepath.Dir(dbPath))
	assert.Equal(t, dbPath, s.Path())
}

func TestOpenDoesNotCreateSchema(t *testing.T) {
	s := setupTestStore(t)

	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'muscles'").Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count, "expected no tables before Initialize")
	assert.False(t, s.Ready())
}

func TestDefaultDBPath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmpDir)

	assert.Equal(t, filepath.Join(tmpDir, "gymguide", "gymguide.db"), DefaultDBPath())
}

func TestReadsBeforeInitialize(t *testing.T) {
	s, err := OpenMemory()
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()

	_, err = s.ListObjectives(ctx)
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = s.ListFrequencyLevels(ctx)
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = s.ListExercisesByMuscleAndObjective(ctx, 1, 1)
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, _, err = s.GetExerciseDetail(ctx, 1, 1)
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = s.Deduplicate(ctx)
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestOptions(t *testing.T) {
	s, err := OpenMemory(WithInitTimeout(5*time.Second), WithLogger(nil))
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, 5*time.Second, s.initTimeout)
	assert.NotNil(t, s.logger, "nil logger option should keep the default")

	s2, err := OpenMemory(WithInitTimeout(-1))
	require.NoError(t, err)
	defer s2.Close()
	assert.Equal(t, DefaultInitTimeout, s2.initTimeout)
}
