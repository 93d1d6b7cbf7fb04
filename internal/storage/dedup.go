// ABOUTME: Deduplication pass for exercises and training parameters.
// ABOUTME: Keeps the lowest id of every full-attribute duplicate group.
package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// DedupResult counts rows deleted by a deduplication pass.
type DedupResult struct {
	Exercises          int `json:"exercises"`
	TrainingParameters int `json:"training_parameters"`
}

// Total returns the number of deleted rows across both tables.
func (r DedupResult) Total() int {
	return r.Exercises + r.TrainingParameters
}

type dedupStatement struct {
	table string
	query string
}

// Reference tables are left alone: their unique name columns reject
// duplicates at insert time.
var dedupStatements = []dedupStatement{
	{
		table: "exercises",
		query: `
			DELETE FROM exercises
			WHERE id NOT IN (
				SELECT MIN(id)
				FROM exercises
				GROUP BY name, description, muscle_id, objective_id
			)`,
	},
	{
		table: "training_parameters",
		query: `
			DELETE FROM training_parameters
			WHERE id NOT IN (
				SELECT MIN(id)
				FROM training_parameters
				GROUP BY objective_id, frequency_id, sets, reps, rest_seconds
			)`,
	},
}

// Deduplicate removes full-attribute duplicate exercises and training
// parameters, keeping the row with the lowest id. Running it twice in a row
// deletes nothing the second time.
func (s *Store) Deduplicate(ctx context.Context) (DedupResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return DedupResult{}, ErrNotInitialized
	}

	result, err := s.deduplicateTx(ctx)
	if err != nil {
		s.logger.Warn("deduplication failed", zap.Error(err))
		return DedupResult{}, fmt.Errorf("%w: %w", ErrMaintenance, err)
	}

	if result.Total() > 0 {
		s.logger.Info("removed duplicate rows",
			zap.Int("exercises", result.Exercises),
			zap.Int("training_parameters", result.TrainingParameters))
	}
	return result, nil
}

// deduplicateTx runs both statements in one transaction so a failure in the
// second leaves the first undone.
func (s *Store) deduplicateTx(ctx context.Context) (DedupResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DedupResult{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := deduplicate(ctx, tx)
	if err != nil {
		return DedupResult{}, err
	}
	if err := tx.Commit(); err != nil {
		return DedupResult{}, fmt.Errorf("commit: %w", err)
	}
	return result, nil
}

func deduplicate(ctx context.Context, ex execer) (DedupResult, error) {
	var result DedupResult

	for _, stmt := range dedupStatements {
		res, err := ex.ExecContext(ctx, stmt.query)
		if err != nil {
			return result, fmt.Errorf("deduplicate %s: %w", stmt.table, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return result, fmt.Errorf("deduplicate %s: %w", stmt.table, err)
		}

		switch stmt.table {
		case "exercises":
			result.Exercises += int(affected)
		case "training_parameters":
			result.TrainingParameters += int(affected)
		}
	}

	return result, nil
}
