// ABOUTME: SQLite schema definition for muscles, objectives, frequency levels, exercises and parameters.
// ABOUTME: Identity indexes are created separately so older databases can be repaired first.
package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// Tables in foreign-key drop order: dependents before the tables they reference.
var tablesDropOrder = []string{
	"training_parameters",
	"exercises",
	"frequency_levels",
	"objectives",
	"muscles",
}

const schema = `
	CREATE TABLE IF NOT EXISTS muscles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS objectives (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS frequency_levels (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		level TEXT NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS exercises (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		muscle_id INTEGER NOT NULL,
		objective_id INTEGER NOT NULL,
		FOREIGN KEY (muscle_id) REFERENCES muscles(id),
		FOREIGN KEY (objective_id) REFERENCES objectives(id)
	);

	CREATE TABLE IF NOT EXISTS training_parameters (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		objective_id INTEGER NOT NULL,
		frequency_id INTEGER NOT NULL,
		sets TEXT NOT NULL,
		reps TEXT NOT NULL,
		rest_seconds TEXT NOT NULL,
		FOREIGN KEY (objective_id) REFERENCES objectives(id),
		FOREIGN KEY (frequency_id) REFERENCES frequency_levels(id)
	);

	CREATE INDEX IF NOT EXISTS idx_exercises_muscle_objective ON exercises(muscle_id, objective_id);
	CREATE INDEX IF NOT EXISTS idx_training_parameters_frequency ON training_parameters(frequency_id);
	`

// identityIndex is a unique index backing insert-if-absent seeding.
type identityIndex struct {
	name string
	ddl  string
}

var identityIndexes = []identityIndex{
	{
		name: "ux_exercises_identity",
		ddl: `CREATE UNIQUE INDEX IF NOT EXISTS ux_exercises_identity
			ON exercises(name, description, muscle_id, objective_id)`,
	},
	{
		name: "ux_training_parameters_identity",
		ddl: `CREATE UNIQUE INDEX IF NOT EXISTS ux_training_parameters_identity
			ON training_parameters(objective_id, frequency_id, sets, reps, rest_seconds)`,
	},
}

// createSchema creates the five tables if they are absent.
func createSchema(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

// ensureIdentityIndexes creates the unique identity indexes. Databases written
// before the indexes existed may hold duplicates, which would make index
// creation fail, so those are removed first. The returned result is zero when
// no repair was needed.
func ensureIdentityIndexes(ctx context.Context, tx *sql.Tx) (DedupResult, error) {
	var repaired DedupResult

	missing := false
	for _, idx := range identityIndexes {
		exists, err := indexExists(ctx, tx, idx.name)
		if err != nil {
			return repaired, err
		}
		if !exists {
			missing = true
		}
	}

	if missing {
		var err error
		repaired, err = deduplicate(ctx, tx)
		if err != nil {
			return repaired, fmt.Errorf("repair duplicates: %w", err)
		}
	}

	for _, idx := range identityIndexes {
		if _, err := tx.ExecContext(ctx, idx.ddl); err != nil {
			return repaired, fmt.Errorf("create index %s: %w", idx.name, err)
		}
	}
	return repaired, nil
}

func indexExists(ctx context.Context, q queryer, name string) (bool, error) {
	var count int
	err := q.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name = ?", name).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check index %s: %w", name, err)
	}
	return count > 0, nil
}

// dropSchema removes every table, dependents first.
func dropSchema(ctx context.Context, tx *sql.Tx) error {
	for _, table := range tablesDropOrder {
		if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return nil
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
