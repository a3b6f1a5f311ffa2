package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	gserrors "git.home.luguber.info/inful/gitsemver/internal/errors"
	"git.home.luguber.info/inful/gitsemver/internal/server/responses"
	"git.home.luguber.info/inful/gitsemver/internal/store"
)

// AnalysisHandlers contains analysis-related HTTP handlers.
type AnalysisHandlers struct {
	daemon       AnalysisRuntime
	errorAdapter *gserrors.HTTPErrorAdapter
}

// AnalysisRuntime defines the daemon methods needed by analysis handlers.
type AnalysisRuntime interface {
	AnalyzeRepository(ctx context.Context, path, commitHash, tag, startVersion string) (*store.Analysis, error)
	RecentAnalyses(ctx context.Context, limit int) ([]*store.Analysis, error)
	AnalysesByRepository(ctx context.Context, repository string, limit int) ([]*store.Analysis, error)
	AnalysisByID(ctx context.Context, id string) (*store.Analysis, error)
}

// NewAnalysisHandlers creates a new analysis handlers instance.
func NewAnalysisHandlers(daemon AnalysisRuntime) *AnalysisHandlers {
	return &AnalysisHandlers{
		daemon:       daemon,
		errorAdapter: gserrors.NewHTTPErrorAdapter(slog.Default()),
	}
}

// analyzeRequest is the JSON payload accepted by HandleAnalyze. Commit and tag
// both position the walk start; an explicit commit wins. The start version
// overrides a tag-derived previous-version hint.
type analyzeRequest struct {
	Path         string `json:"path"`
	Commit       string `json:"commit,omitempty"`
	Tag          string `json:"tag,omitempty"`
	StartVersion string `json:"start_version,omitempty"`
}

// HandleAnalyze handles the analysis trigger endpoint.
func (h *AnalysisHandlers) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		err := gserrors.ValidationError("invalid HTTP method").
			WithContext("method", r.Method).
			WithContext("allowed_method", "POST").
			Build()
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	if h.daemon == nil {
		err := gserrors.DaemonError("daemon not available").
			WithContext("service", "analysis").
			Build()
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		derr := gserrors.Wrap(err, gserrors.CategoryValidation, gserrors.SeverityWarning, "invalid analyze request body").
			Build()
		h.errorAdapter.WriteErrorResponse(w, r, derr)
		return
	}
	if strings.TrimSpace(req.Path) == "" {
		err := gserrors.ValidationError("repository path is required").
			WithContext("field", "path").
			Build()
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	analysis, err := h.daemon.AnalyzeRepository(r.Context(), req.Path, req.Commit, req.Tag, req.StartVersion)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, analysisResponse(analysis)); err != nil {
		internalErr := gserrors.WrapError(err, gserrors.CategoryInternal, "failed to encode analysis response").
			Build()
		h.errorAdapter.WriteErrorResponse(w, r, internalErr)
	}
}

// HandleAnalyses handles the stored-analyses listing endpoint.
func (h *AnalysisHandlers) HandleAnalyses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		err := gserrors.ValidationError("invalid HTTP method").
			WithContext("method", r.Method).
			WithContext("allowed_method", "GET").
			Build()
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			derr := gserrors.ValidationError("limit must be a non-negative integer").
				WithContext("limit", raw).
				Build()
			h.errorAdapter.WriteErrorResponse(w, r, derr)
			return
		}
		limit = n
	}

	var (
		analyses []*store.Analysis
		err      error
	)
	if repository := r.URL.Query().Get("repository"); repository != "" {
		analyses, err = h.daemon.AnalysesByRepository(r.Context(), repository, limit)
	} else {
		analyses, err = h.daemon.RecentAnalyses(r.Context(), limit)
	}
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	list := &responses.AnalysesListResponse{
		Status:    "ok",
		Count:     len(analyses),
		Analyses:  make([]responses.AnalysisResponse, 0, len(analyses)),
		Timestamp: time.Now().UTC(),
	}
	for _, a := range analyses {
		list.Analyses = append(list.Analyses, *analysisResponse(a))
	}

	if err := writeJSONPretty(w, r, http.StatusOK, list); err != nil {
		internalErr := gserrors.WrapError(err, gserrors.CategoryInternal, "failed to encode analyses list").
			Build()
		h.errorAdapter.WriteErrorResponse(w, r, internalErr)
	}
}

// HandleAnalysisByID handles the single-analysis endpoint. The analysis ID is
// taken from the path below /api/v1/analyses/; an empty ID falls back to the
// listing handler so the trailing-slash form behaves like the collection.
func (h *AnalysisHandlers) HandleAnalysisByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/analyses/")
	if id == "" {
		h.HandleAnalyses(w, r)
		return
	}

	if r.Method != http.MethodGet {
		err := gserrors.ValidationError("invalid HTTP method").
			WithContext("method", r.Method).
			WithContext("allowed_method", "GET").
			Build()
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	if strings.Contains(id, "/") {
		err := gserrors.ValidationError("invalid analysis id").
			WithContext("id", id).
			Build()
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	analysis, err := h.daemon.AnalysisByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			err = gserrors.AnalysisNotFound(id)
		}
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	if err := writeJSONPretty(w, r, http.StatusOK, analysisResponse(analysis)); err != nil {
		internalErr := gserrors.WrapError(err, gserrors.CategoryInternal, "failed to encode analysis").
			Build()
		h.errorAdapter.WriteErrorResponse(w, r, internalErr)
	}
}

// analysisResponse converts a stored analysis into its API representation.
func analysisResponse(a *store.Analysis) *responses.AnalysisResponse {
	return &responses.AnalysisResponse{
		ID:         a.ID,
		Repository: a.Repository,
		Branch:     a.Branch,
		Commit:     a.Commit,
		Version:    a.Version,
		SawMajor:   a.SawMajor,
		SawMinor:   a.SawMinor,
		SawPatch:   a.SawPatch,
		Prerelease: a.Prerelease,
		DurationMS: a.DurationMS,
		CreatedAt:  a.CreatedAt,
	}
}
