// ABOUTME: Shared test helpers for storage tests.
// ABOUTME: Provides isolated file-backed and in-memory stores plus lookup helpers.
package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// setupTestStore opens an uninitialized store in a temp directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// setupReadyStore opens an in-memory store and initializes it.
func setupReadyStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	_, err = s.Initialize(context.Background())
	require.NoError(t, err)
	return s
}

func countRows(t *testing.T, s *Store, table string) int {
	t.Helper()
	var n int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n), "count %s", table)
	return n
}

func tableCounts(t *testing.T, s *Store) map[string]int {
	t.Helper()
	counts := make(map[string]int, len(tablesDropOrder))
	for _, table := range tablesDropOrder {
		counts[table] = countRows(t, s, table)
	}
	return counts
}

func idByName(t *testing.T, s *Store, query, name string) int64 {
	t.Helper()
	var id int64
	require.NoError(t, s.db.QueryRow(query, name).Scan(&id), "lookup %q", name)
	return id
}

func objectiveID(t *testing.T, s *Store, name string) int64 {
	return idByName(t, s, "SELECT id FROM objectives WHERE name = ?", name)
}

func muscleID(t *testing.T, s *Store, name string) int64 {
	return idByName(t, s, "SELECT id FROM muscles WHERE name = ?", name)
}

func frequencyID(t *testing.T, s *Store, level string) int64 {
	return idByName(t, s, "SELECT id FROM frequency_levels WHERE level = ?", level)
}
