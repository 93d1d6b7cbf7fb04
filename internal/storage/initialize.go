// ABOUTME: Store initialization and reset: schema creation, seeding and the post-seed dedup pass.
// ABOUTME: Everything runs in one bounded transaction; concurrent callers share a single run.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InitReport describes one initialization run.
type InitReport struct {
	RunID    string        `json:"run_id"`
	Inserted SeedCounts    `json:"inserted"`
	Repaired DedupResult   `json:"repaired"`
	Dedup    DedupResult   `json:"dedup"`
	DedupErr error         `json:"-"`
	Duration time.Duration `json:"duration"`
}

// Initialize creates the schema if absent, seeds the fixed catalog with
// insert-if-absent semantics and runs the deduplication pass. It is safe to
// call on every start: after the first successful run it inserts nothing.
//
// Concurrent calls collapse into one run whose result every caller receives.
// The shared run ignores caller cancellation and is bounded by the store's
// init timeout; each caller stops waiting when its own context ends. Schema
// or seed failures roll the whole transaction back and wrap ErrInitialization.
// A failing dedup pass is rolled back on its own, logged, and reported in
// InitReport.DedupErr.
func (s *Store) Initialize(ctx context.Context) (*InitReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInitialization, err)
	}

	ch := s.initGroup.DoChan("initialize", func() (interface{}, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.initializeLocked(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*InitReport), nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", ErrInitialization, ctx.Err())
	}
}

// Ready reports whether Initialize has completed on this store.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// initializeLocked runs an initialization. Caller holds s.mu.
func (s *Store) initializeLocked(ctx context.Context) (*InitReport, error) {
	ctx, cancel := context.WithTimeout(ctx, s.initTimeout)
	defer cancel()

	start := time.Now()
	report := &InitReport{RunID: uuid.NewString()}
	log := s.logger.With(zap.String("run_id", report.RunID))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("initialization failed", zap.Error(err))
		return nil, fmt.Errorf("%w: begin transaction: %w", ErrInitialization, err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.populate(ctx, tx, report, log); err != nil {
		log.Error("initialization failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrInitialization, err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("initialization failed", zap.Error(err))
		return nil, fmt.Errorf("%w: commit: %w", ErrInitialization, err)
	}

	s.ready = true
	report.Duration = time.Since(start)

	log.Info("store initialized",
		zap.Int("inserted", report.Inserted.Total()),
		zap.Int("repaired", report.Repaired.Total()),
		zap.Int("deduplicated", report.Dedup.Total()),
		zap.Duration("duration", report.Duration))
	return report, nil
}

func (s *Store) populate(ctx context.Context, tx *sql.Tx, report *InitReport, log *zap.Logger) error {
	if err := createSchema(ctx, tx); err != nil {
		return err
	}

	repaired, err := ensureIdentityIndexes(ctx, tx)
	if err != nil {
		return err
	}
	report.Repaired = repaired
	if repaired.Total() > 0 {
		log.Warn("repaired duplicate rows before creating identity indexes",
			zap.Int("exercises", repaired.Exercises),
			zap.Int("training_parameters", repaired.TrainingParameters))
	}

	if report.Inserted, err = seed(ctx, tx); err != nil {
		return err
	}

	report.Dedup, report.DedupErr = dedupInSavepoint(ctx, tx)
	if report.DedupErr != nil {
		// Seeding stands; only the dedup pass is discarded.
		log.Warn("post-seed deduplication failed", zap.Error(report.DedupErr))
	}
	return nil
}

// dedupInSavepoint runs the dedup pass inside a savepoint so a failure undoes
// only the pass, leaving the enclosing transaction usable.
func dedupInSavepoint(ctx context.Context, tx *sql.Tx) (DedupResult, error) {
	if _, err := tx.ExecContext(ctx, "SAVEPOINT dedup"); err != nil {
		return DedupResult{}, fmt.Errorf("%w: savepoint: %w", ErrMaintenance, err)
	}

	result, err := deduplicate(ctx, tx)
	if err != nil {
		if _, rbErr := tx.ExecContext(ctx, "ROLLBACK TO dedup"); rbErr != nil {
			return DedupResult{}, fmt.Errorf("%w: %w (rollback: %v)", ErrMaintenance, err, rbErr)
		}
		_, _ = tx.ExecContext(ctx, "RELEASE dedup")
		return DedupResult{}, fmt.Errorf("%w: %w", ErrMaintenance, err)
	}

	if _, err := tx.ExecContext(ctx, "RELEASE dedup"); err != nil {
		return result, fmt.Errorf("%w: release savepoint: %w", ErrMaintenance, err)
	}
	return result, nil
}

// ResetAll drops every table and initializes the store again. All data is
// destroyed; this is meant for recovery and development only.
func (s *Store) ResetAll(ctx context.Context) (*InitReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Warn("dropping all tables", zap.String("path", s.dbPath))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("reset: begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := dropSchema(ctx, tx); err != nil {
		return nil, fmt.Errorf("reset: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("reset: commit: %w", err)
	}

	s.ready = false
	return s.initializeLocked(ctx)
}
