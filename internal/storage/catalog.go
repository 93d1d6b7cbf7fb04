// ABOUTME: Aggregate reads: the selection catalog and table statistics.
// ABOUTME: Catalog lists are fetched concurrently under the shared read lock.
package storage

import (
	"context"
	"fmt"

	"github.com/harperreed/gymguide/internal/models"
	"golang.org/x/sync/errgroup"
)

// Catalog is everything a selection screen needs up front.
type Catalog struct {
	Objectives      []models.Objective      `json:"objectives" yaml:"objectives"`
	FrequencyLevels []models.FrequencyLevel `json:"frequency_levels" yaml:"frequency_levels"`
	Muscles         []models.Muscle         `json:"muscles" yaml:"muscles"`
	MuscleIndex     map[string]int64        `json:"muscle_index" yaml:"muscle_index"`
}

// Catalog loads objectives, frequency levels and muscles.
func (s *Store) Catalog(ctx context.Context) (*Catalog, error) {
	var c Catalog
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		c.Objectives, err = s.ListObjectives(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		c.FrequencyLevels, err = s.ListFrequencyLevels(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		c.MuscleIndex, err = s.MuscleIndex(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		c.Muscles, err = s.ListMuscles(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &c, nil
}

// CategoryCount is the number of exercises for one (muscle, objective) pair.
type CategoryCount struct {
	Muscle    string `json:"muscle" yaml:"muscle"`
	Objective string `json:"objective" yaml:"objective"`
	Exercises int    `json:"exercises" yaml:"exercises"`
}

// Stats summarizes table sizes and the exercise distribution.
type Stats struct {
	Tables     map[string]int  `json:"tables" yaml:"tables"`
	Categories []CategoryCount `json:"categories" yaml:"categories"`
}

// Stats counts rows per table and exercises per category.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	unlock, err := s.rlock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	stats := &Stats{Tables: make(map[string]int, len(tablesDropOrder))}
	for _, table := range tablesDropOrder {
		var n int
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		stats.Tables[table] = n
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT m.name, o.name, COUNT(e.id)
		FROM exercises e
		JOIN muscles m ON m.id = e.muscle_id
		JOIN objectives o ON o.id = e.objective_id
		GROUP BY m.name, o.name
		ORDER BY m.name, o.name
	`)
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c CategoryCount
		if err := rows.Scan(&c.Muscle, &c.Objective, &c.Exercises); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		stats.Categories = append(stats.Categories, c)
	}
	return stats, rows.Err()
}
