// Package httpserver wires the gitsemver HTTP API: analysis operations,
// monitoring endpoints, and the optional Prometheus metrics handler.
package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"git.home.luguber.info/inful/gitsemver/internal/config"
	gserrors "git.home.luguber.info/inful/gitsemver/internal/errors"
	"git.home.luguber.info/inful/gitsemver/internal/server/handlers"
	smw "git.home.luguber.info/inful/gitsemver/internal/server/middleware"
)

// Server manages the gitsemver HTTP API endpoint.
type Server struct {
	apiServer    *http.Server
	listener     net.Listener
	cfg          *config.Config
	opts         Options
	errorAdapter *gserrors.HTTPErrorAdapter

	// Handler modules
	analysisHandlers   *handlers.AnalysisHandlers
	monitoringHandlers *handlers.MonitoringHandlers

	// middleware chain
	mchain func(http.Handler) http.Handler
}

// New constructs a new HTTP server wiring instance.
func New(cfg *config.Config, runtime Runtime, opts Options) *Server {
	s := &Server{
		cfg:          cfg,
		opts:         opts,
		errorAdapter: gserrors.NewHTTPErrorAdapter(slog.Default()),
	}

	// Initialize handler modules
	s.analysisHandlers = handlers.NewAnalysisHandlers(runtime)
	s.monitoringHandlers = handlers.NewMonitoringHandlers(runtime)

	// Initialize middleware chain
	s.mchain = smw.Chain(slog.Default(), s.errorAdapter)

	return s
}

// Start binds the API port and begins serving. Binding happens up front so an
// occupied port surfaces as an error here instead of a log line from the
// serve goroutine.
func (s *Server) Start(ctx context.Context) error {
	if s.cfg == nil {
		return fmt.Errorf("server configuration required")
	}

	addr := net.JoinHostPort(s.cfg.Server.Host, strconv.Itoa(s.cfg.Server.Port))
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("api port %d: %w", s.cfg.Server.Port, err)
	}
	s.listener = ln

	s.apiServer = &http.Server{
		Handler:           s.mchain(s.buildAPIMux()),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	s.startServerWithListener("api", s.apiServer, ln)

	slog.Info("HTTP server started", slog.String("addr", ln.Addr().String()))
	return nil
}

// Addr returns the bound listen address, empty before Start. With port 0 in
// the configuration this is the only way to learn the effective port.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	if s.apiServer == nil {
		return nil
	}
	if err := s.apiServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("api server shutdown: %w", err)
	}
	slog.Info("HTTP server stopped")
	return nil
}

func (s *Server) buildAPIMux() *http.ServeMux {
	mux := http.NewServeMux()

	// Analysis endpoints
	mux.HandleFunc("/api/v1/analyze", s.analysisHandlers.HandleAnalyze)
	mux.HandleFunc("/api/v1/analyses", s.analysisHandlers.HandleAnalyses)
	mux.HandleFunc("/api/v1/analyses/", s.analysisHandlers.HandleAnalysisByID)

	// Monitoring endpoints
	mux.HandleFunc("/api/v1/status", s.monitoringHandlers.HandleStatus)
	mux.HandleFunc("/health", s.monitoringHandlers.HandleHealthCheck)
	mux.HandleFunc("/healthz", s.monitoringHandlers.HandleHealthCheck) // Kubernetes-style alias

	if s.opts.MetricsHandler != nil {
		mux.Handle("/metrics", s.opts.MetricsHandler)
	}

	return mux
}

// startServerWithListener launches an http.Server on a pre-bound listener.
// It standardizes goroutine startup and error logging.
func (s *Server) startServerWithListener(kind string, srv *http.Server, ln net.Listener) {
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			slog.Error(fmt.Sprintf("%s server error", kind), "error", err)
		}
	}()
}
