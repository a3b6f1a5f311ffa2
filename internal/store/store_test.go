package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoreSaveAndGetByID(t *testing.T) {
	s := newTestStore(t)
	ctx := t.Context()

	in := &Analysis{
		ID:         "a1",
		Repository: "myproject",
		Branch:     "develop",
		Commit:     "0123456789abcdef0123456789abcdef01234567",
		Version:    "1.3.0-pre.3",
		SawMinor:   true,
		SawPatch:   true,
		Prerelease: true,
		DurationMS: 42,
		CreatedAt:  time.Unix(1700000000, 0),
	}

	if err := s.Save(ctx, in); err != nil {
		t.Fatalf("failed to save analysis: %v", err)
	}

	got, err := s.GetByID(ctx, "a1")
	if err != nil {
		t.Fatalf("failed to get analysis: %v", err)
	}

	if got.Repository != in.Repository {
		t.Errorf("expected repository %s, got %s", in.Repository, got.Repository)
	}
	if got.Version != in.Version {
		t.Errorf("expected version %s, got %s", in.Version, got.Version)
	}
	if got.SawMajor || !got.SawMinor || !got.SawPatch {
		t.Errorf("bump flags did not round-trip: %+v", got)
	}
	if !got.Prerelease {
		t.Errorf("expected prerelease flag to round-trip")
	}
	if !got.CreatedAt.Equal(in.CreatedAt) {
		t.Errorf("expected created_at %v, got %v", in.CreatedAt, got.CreatedAt)
	}
}

func TestStoreGetByID_Missing_ErrNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetByID(t.Context(), "missing")
	if err == nil {
		t.Fatalf("expected error for missing analysis")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestStoreRecent_OrderAndLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := t.Context()

	base := time.Unix(1700000000, 0)
	for i, id := range []string{"a1", "a2", "a3"} {
		err := s.Save(ctx, &Analysis{
			ID:         id,
			Repository: "myproject",
			Version:    "0.0.1",
			CreatedAt:  base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("failed to save analysis %s: %v", id, err)
		}
	}

	recent, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("failed to get recent analyses: %v", err)
	}

	if len(recent) != 2 {
		t.Fatalf("expected 2 analyses, got %d", len(recent))
	}
	if recent[0].ID != "a3" || recent[1].ID != "a2" {
		t.Errorf("expected newest first (a3, a2), got (%s, %s)", recent[0].ID, recent[1].ID)
	}
}

func TestStoreRecent_ZeroLimit_UsesDefault(t *testing.T) {
	s := newTestStore(t)
	ctx := t.Context()

	if err := s.Save(ctx, &Analysis{ID: "a1", Repository: "r", Version: "0.0.1"}); err != nil {
		t.Fatalf("failed to save analysis: %v", err)
	}

	recent, err := s.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("failed to get recent analyses: %v", err)
	}
	if len(recent) != 1 {
		t.Errorf("expected 1 analysis, got %d", len(recent))
	}
}

func TestStoreByRepository_Filters(t *testing.T) {
	s := newTestStore(t)
	ctx := t.Context()

	_ = s.Save(ctx, &Analysis{ID: "a1", Repository: "alpha", Version: "0.0.1"})
	_ = s.Save(ctx, &Analysis{ID: "a2", Repository: "beta", Version: "0.1.0"})
	_ = s.Save(ctx, &Analysis{ID: "a3", Repository: "alpha", Version: "0.0.2"})

	alpha, err := s.ByRepository(ctx, "alpha", 10)
	if err != nil {
		t.Fatalf("failed to query by repository: %v", err)
	}
	if len(alpha) != 2 {
		t.Fatalf("expected 2 analyses for alpha, got %d", len(alpha))
	}
	for _, a := range alpha {
		if a.Repository != "alpha" {
			t.Errorf("expected repository alpha, got %s", a.Repository)
		}
	}

	beta, err := s.ByRepository(ctx, "beta", 10)
	if err != nil {
		t.Fatalf("failed to query by repository: %v", err)
	}
	if len(beta) != 1 {
		t.Errorf("expected 1 analysis for beta, got %d", len(beta))
	}
}

func TestStoreFileBacked_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analyses.db")
	ctx := t.Context()

	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if err := s.Save(ctx, &Analysis{ID: "a1", Repository: "r", Version: "1.0.0"}); err != nil {
		t.Fatalf("failed to save analysis: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("failed to close store: %v", err)
	}

	reopened, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	got, err := reopened.GetByID(ctx, "a1")
	if err != nil {
		t.Fatalf("failed to get analysis after reopen: %v", err)
	}
	if got.Version != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %s", got.Version)
	}
}
