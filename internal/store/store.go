// Package store persists analysis results for the daemon and the HTTP
// API. Each completed analysis becomes one immutable record.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no analysis matches the requested ID.
var ErrNotFound = errors.New("analysis not found")

// Analysis is one persisted analysis result.
type Analysis struct {
	ID         string    `json:"id"`
	Repository string    `json:"repository"`
	Branch     string    `json:"branch"`
	Commit     string    `json:"commit"`
	Version    string    `json:"version"`
	SawMajor   bool      `json:"saw_major"`
	SawMinor   bool      `json:"saw_minor"`
	SawPatch   bool      `json:"saw_patch"`
	Prerelease bool      `json:"prerelease"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// Store defines the interface for persisting and retrieving analyses.
type Store interface {
	// Save persists one analysis record.
	Save(ctx context.Context, a *Analysis) error

	// GetByID retrieves a single analysis, ErrNotFound when absent.
	GetByID(ctx context.Context, id string) (*Analysis, error)

	// Recent retrieves the newest analyses across all repositories.
	Recent(ctx context.Context, limit int) ([]*Analysis, error)

	// ByRepository retrieves the newest analyses for one repository.
	ByRepository(ctx context.Context, repository string, limit int) ([]*Analysis, error)

	// Close closes the store and releases resources.
	Close() error
}
