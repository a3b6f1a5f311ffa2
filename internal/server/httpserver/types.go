package httpserver

import (
	"context"
	"net/http"
	"time"

	"git.home.luguber.info/inful/gitsemver/internal/store"
)

// Runtime is the minimal interface required by shared HTTP handlers.
// It intentionally matches the interfaces in internal/server/handlers.
type Runtime interface {
	AnalyzeRepository(ctx context.Context, path, commitHash, tag, startVersion string) (*store.Analysis, error)
	RecentAnalyses(ctx context.Context, limit int) ([]*store.Analysis, error)
	AnalysesByRepository(ctx context.Context, repository string, limit int) ([]*store.Analysis, error)
	AnalysisByID(ctx context.Context, id string) (*store.Analysis, error)

	GetStatus() string
	GetStartTime() time.Time
	AnalysesTotal() int
	LastAnalysisDurationMS() int64
	RepositoriesTotal() int
}

// Options configures additional server wiring that is runtime-specific.
type Options struct {
	// Optional: Prometheus registry handler served at /metrics.
	MetricsHandler http.Handler
}
