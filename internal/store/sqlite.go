package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	gserrors "git.home.luguber.info/inful/gitsemver/internal/errors"
)

// defaultLimit caps list queries when the caller passes no limit.
const defaultLimit = 50

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore creates a new SQLite-backed analysis store. Use
// ":memory:" for an in-memory database, or a file path for persistent
// storage.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, gserrors.StoreError("open database", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, gserrors.StoreError("initialize schema", err)
	}

	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS analyses (
		id TEXT PRIMARY KEY,
		repository TEXT NOT NULL,
		branch TEXT NOT NULL,
		commit_hash TEXT NOT NULL,
		version TEXT NOT NULL,
		saw_major INTEGER NOT NULL,
		saw_minor INTEGER NOT NULL,
		saw_patch INTEGER NOT NULL,
		prerelease INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_analyses_repository ON analyses(repository);
	CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save persists one analysis record. A zero CreatedAt is filled with the
// current time.
func (s *SQLiteStore) Save(ctx context.Context, a *Analysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO analyses
			(id, repository, branch, commit_hash, version, saw_major, saw_minor, saw_patch, prerelease, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Repository, a.Branch, a.Commit, a.Version,
		a.SawMajor, a.SawMinor, a.SawPatch, a.Prerelease,
		a.DurationMS, a.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}

	return nil
}

// GetByID retrieves a single analysis, ErrNotFound when absent.
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (*Analysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, repository, branch, commit_hash, version, saw_major, saw_minor, saw_patch, prerelease, duration_ms, created_at
		 FROM analyses WHERE id = ?`, id)

	a, err := scanAnalysis(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("analysis %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query analysis: %w", err)
	}
	return a, nil
}

// Recent retrieves the newest analyses across all repositories.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]*Analysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, repository, branch, commit_hash, version, saw_major, saw_minor, saw_patch, prerelease, duration_ms, created_at
		 FROM analyses ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}
	defer rows.Close()

	return scanAnalyses(rows)
}

// ByRepository retrieves the newest analyses for one repository.
func (s *SQLiteStore) ByRepository(ctx context.Context, repository string, limit int) ([]*Analysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, repository, branch, commit_hash, version, saw_major, saw_minor, saw_patch, prerelease, duration_ms, created_at
		 FROM analyses WHERE repository = ? ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		repository, limit)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}
	defer rows.Close()

	return scanAnalyses(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (*Analysis, error) {
	var a Analysis
	var createdUnix int64

	err := row.Scan(&a.ID, &a.Repository, &a.Branch, &a.Commit, &a.Version,
		&a.SawMajor, &a.SawMinor, &a.SawPatch, &a.Prerelease,
		&a.DurationMS, &createdUnix)
	if err != nil {
		return nil, err
	}

	a.CreatedAt = time.Unix(createdUnix, 0)
	return &a, nil
}

func scanAnalyses(rows *sql.Rows) ([]*Analysis, error) {
	var analyses []*Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		analyses = append(analyses, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return analyses, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
