package handlers

import (
	"log/slog"
	"net/http"
	"time"

	gserrors "git.home.luguber.info/inful/gitsemver/internal/errors"
	"git.home.luguber.info/inful/gitsemver/internal/server/responses"
	"git.home.luguber.info/inful/gitsemver/internal/version"
)

// MonitoringHandlers contains monitoring-related HTTP handlers.
type MonitoringHandlers struct {
	daemon       MonitoringRuntime
	errorAdapter *gserrors.HTTPErrorAdapter
}

// MonitoringRuntime defines the daemon methods needed by monitoring handlers.
type MonitoringRuntime interface {
	GetStatus() string
	GetStartTime() time.Time
	AnalysesTotal() int
	LastAnalysisDurationMS() int64
	RepositoriesTotal() int
}

// NewMonitoringHandlers creates a new monitoring handlers instance.
func NewMonitoringHandlers(daemon MonitoringRuntime) *MonitoringHandlers {
	return &MonitoringHandlers{
		daemon:       daemon,
		errorAdapter: gserrors.NewHTTPErrorAdapter(slog.Default()),
	}
}

// HandleHealthCheck handles the health check endpoint.
func (h *MonitoringHandlers) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		err := gserrors.ValidationError("invalid HTTP method").
			WithContext("method", r.Method).
			WithContext("allowed_method", "GET").
			Build()
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	health := &responses.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   version.Version,
	}
	if h.daemon != nil {
		health.Uptime = time.Since(h.daemon.GetStartTime()).Seconds()
		health.DaemonStatus = h.daemon.GetStatus()
	}

	if err := writeJSONPretty(w, r, http.StatusOK, health); err != nil {
		internalErr := gserrors.WrapError(err, gserrors.CategoryInternal, "failed to write health response").
			Build()
		h.errorAdapter.WriteErrorResponse(w, r, internalErr)
	}
}

// HandleStatus handles the daemon status endpoint.
func (h *MonitoringHandlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		err := gserrors.ValidationError("invalid HTTP method").
			WithContext("method", r.Method).
			WithContext("allowed_method", "GET").
			Build()
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	if h.daemon == nil {
		err := gserrors.DaemonError("daemon not available").
			WithContext("service", "status").
			Build()
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	status := &responses.StatusResponse{
		Status:                 h.daemon.GetStatus(),
		Uptime:                 time.Since(h.daemon.GetStartTime()).Seconds(),
		StartTime:              h.daemon.GetStartTime(),
		AnalysesTotal:          h.daemon.AnalysesTotal(),
		LastAnalysisDurationMS: h.daemon.LastAnalysisDurationMS(),
		RepositoriesTotal:      h.daemon.RepositoriesTotal(),
	}

	if err := writeJSONPretty(w, r, http.StatusOK, status); err != nil {
		internalErr := gserrors.WrapError(err, gserrors.CategoryInternal, "failed to encode daemon status").
			Build()
		h.errorAdapter.WriteErrorResponse(w, r, internalErr)
	}
}
