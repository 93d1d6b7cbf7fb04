// ABOUTME: SQLite connection and lifecycle management for the training catalog store.
// ABOUTME: Uses modernc.org/sqlite (pure Go, no CGO required) over a single connection.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	_ "modernc.org/sqlite"
)

// DefaultInitTimeout bounds the initialization transaction.
const DefaultInitTimeout = 30 * time.Second

// Store is the local training catalog backed by SQLite.
//
// A Store starts UNINITIALIZED; Initialize moves it to READY. Reads take a
// shared lock, while Initialize, ResetAll and Deduplicate take it exclusively.
type Store struct {
	db     *sql.DB
	dbPath string

	logger      *zap.Logger
	initTimeout time.Duration

	mu        sync.RWMutex
	ready     bool
	initGroup singleflight.Group
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for initialization and maintenance reports.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithInitTimeout overrides DefaultInitTimeout. Non-positive values are ignored.
func WithInitTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.initTimeout = d
		}
	}
}

// Open opens or creates a SQLite database at the given path.
// The schema is not touched until Initialize is called.
func Open(dbPath string, opts ...Option) (*Store, error) {
	// Ensure parent directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s, err := newStore(db, dbPath, opts)
	if err != nil {
		return nil, err
	}

	// Set file permissions
	if err := os.Chmod(dbPath, 0600); err != nil && !os.IsNotExist(err) {
		_ = s.Close()
		return nil, fmt.Errorf("set database permissions: %w", err)
	}

	return s, nil
}

// OpenMemory opens a disposable in-memory store.
func OpenMemory(opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return newStore(db, ":memory:", opts)
}

func newStore(db *sql.DB, dbPath string, opts []Option) (*Store, error) {
	// One logical connection: an in-memory database lives and dies with its
	// connection, and the store serializes writers itself.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &Store{
		db:          db,
		dbPath:      dbPath,
		logger:      zap.NewNop(),
		initTimeout: DefaultInitTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.configurePragmas(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure pragmas: %w", err)
	}

	return s, nil
}

// DataDir returns the default data directory following XDG spec.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "gymguide")
}

// DefaultDBPath returns the default database path following XDG spec.
func DefaultDBPath() string {
	return filepath.Join(DataDir(), "gymguide.db")
}

// Path returns the database path the store was opened with.
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// configurePragmas sets up SQLite for a single-writer local store.
func (s *Store) configurePragmas() error {
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := s.db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}
	return nil
}
