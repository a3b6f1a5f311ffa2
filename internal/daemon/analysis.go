package daemon

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/gitsemver/internal/analyze"
	gserrors "git.home.luguber.info/inful/gitsemver/internal/errors"
	"git.home.luguber.info/inful/gitsemver/internal/git"
	"git.home.luguber.info/inful/gitsemver/internal/logfields"
	"git.home.luguber.info/inful/gitsemver/internal/server/httpserver"
	"git.home.luguber.info/inful/gitsemver/internal/store"
)

// AnalyzeRequest describes one analysis run. Repository is a display name
// and defaults to Path. Commit overrides Tag as the walk start; StartVersion
// overrides the tag name as the previous-version hint.
type AnalyzeRequest struct {
	Repository   string
	Path         string
	Commit       string
	Tag          string
	StartVersion string
}

// Analyze opens the repository, runs the version inference, persists the
// result, and publishes it when notification is enabled. Persistence and
// publish failures are logged but do not fail the analysis.
func (d *Daemon) Analyze(ctx context.Context, req AnalyzeRequest) (*store.Analysis, error) {
	name := req.Repository
	if name == "" {
		name = req.Path
	}

	repo, err := git.Open(req.Path)
	if err != nil {
		return nil, gserrors.GitOpenError(req.Path, err)
	}

	point, err := d.resolvePoint(repo, req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := d.analyzer.Run(repo, point)
	if err != nil {
		var gse *gserrors.GitSemverError
		if errors.As(err, &gse) {
			return nil, err
		}
		return nil, gserrors.AnalysisFailed(name, err)
	}
	duration := time.Since(start)

	record := &store.Analysis{
		ID:         uuid.NewString(),
		Repository: name,
		Branch:     res.Branch,
		Commit:     res.Commit,
		Version:    res.Version.String(),
		SawMajor:   res.Flags.Major,
		SawMinor:   res.Flags.Minor,
		SawPatch:   res.Flags.Patch,
		Prerelease: res.Prerelease,
		DurationMS: duration.Milliseconds(),
		CreatedAt:  time.Now().UTC(),
	}

	if d.store != nil {
		if err := d.store.Save(ctx, record); err != nil {
			slog.Warn("Failed to persist analysis",
				logfields.Repository(name), logfields.Error(err))
		}
	}

	if d.publisher != nil {
		if err := d.publisher.PublishAnalysis(ctx, record); err != nil {
			slog.Warn("Failed to publish analysis",
				logfields.Repository(name), logfields.Error(err))
		}
	}

	atomic.AddInt64(&d.analysesTotal, 1)
	atomic.StoreInt64(&d.lastDurationMS, record.DurationMS)
	d.recorder.SetLastAnalysisTimestamp(time.Now())

	slog.Info("Analysis completed",
		logfields.Repository(name),
		logfields.Version(record.Version),
		slog.String("branch", record.Branch),
		slog.Duration("duration", duration))

	return record, nil
}

// resolvePoint derives the walk starting point from the request. An explicit
// commit takes precedence over the tag's commit; an explicit start version
// takes precedence over the tag name as the previous-version hint.
func (d *Daemon) resolvePoint(repo *git.Repository, req AnalyzeRequest) (analyze.Point, error) {
	var point analyze.Point

	if req.Tag != "" {
		tagPoint, err := analyze.TagPoint(repo, req.Tag)
		if err != nil {
			return analyze.Point{}, gserrors.GitRefError(req.Tag, err)
		}
		point = tagPoint
	}

	if req.Commit != "" {
		commit, err := repo.ResolveCommit(req.Commit)
		if err != nil {
			return analyze.Point{}, gserrors.GitRefError(req.Commit, err)
		}
		point.Since = commit
	}

	if req.StartVersion != "" {
		point.Hint = req.StartVersion
	}

	return point, nil
}

// AnalyzeAll runs one analysis pass over every configured repository.
// Failures are logged per repository; the pass always visits all of them.
func (d *Daemon) AnalyzeAll(ctx context.Context) {
	d.mu.RLock()
	repos := d.config.Repositories
	d.mu.RUnlock()

	for _, repo := range repos {
		select {
		case <-ctx.Done():
			return
		default:
		}

		_, err := d.Analyze(ctx, AnalyzeRequest{
			Repository:   repo.Name,
			Path:         repo.Path,
			Tag:          repo.Tag,
			StartVersion: repo.StartVersion,
		})
		if err != nil {
			slog.Error("Repository analysis failed",
				logfields.Repository(repo.Name), logfields.Error(err))
		}
	}
}

// runtimeAdapter exposes the daemon to the HTTP server behind the narrow
// httpserver.Runtime interface.
type runtimeAdapter struct {
	d *Daemon
}

var _ httpserver.Runtime = (*runtimeAdapter)(nil)

func (a *runtimeAdapter) AnalyzeRepository(ctx context.Context, path, commitHash, tag, startVersion string) (*store.Analysis, error) {
	return a.d.Analyze(ctx, AnalyzeRequest{
		Path:         path,
		Commit:       commitHash,
		Tag:          tag,
		StartVersion: startVersion,
	})
}

func (a *runtimeAdapter) RecentAnalyses(ctx context.Context, limit int) ([]*store.Analysis, error) {
	if a.d.store == nil {
		return nil, gserrors.DaemonError("analysis store is not available")
	}
	return a.d.store.Recent(ctx, limit)
}

func (a *runtimeAdapter) AnalysesByRepository(ctx context.Context, repository string, limit int) ([]*store.Analysis, error) {
	if a.d.store == nil {
		return nil, gserrors.DaemonError("analysis store is not available")
	}
	return a.d.store.ByRepository(ctx, repository, limit)
}

func (a *runtimeAdapter) AnalysisByID(ctx context.Context, id string) (*store.Analysis, error) {
	if a.d.store == nil {
		return nil, gserrors.DaemonError("analysis store is not available")
	}
	return a.d.store.GetByID(ctx, id)
}

func (a *runtimeAdapter) GetStatus() string {
	return string(a.d.GetStatus())
}

func (a *runtimeAdapter) GetStartTime() time.Time {
	return a.d.GetStartTime()
}

func (a *runtimeAdapter) AnalysesTotal() int {
	return a.d.AnalysesTotal()
}

func (a *runtimeAdapter) LastAnalysisDurationMS() int64 {
	return a.d.LastAnalysisDurationMS()
}

func (a *runtimeAdapter) RepositoriesTotal() int {
	return a.d.RepositoriesTotal()
}
