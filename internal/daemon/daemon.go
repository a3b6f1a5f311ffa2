// Package daemon runs gitsemver as a long-lived service: it analyzes the
// configured repositories on a schedule, persists results, publishes them
// over NATS, and serves the HTTP API.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/gitsemver/internal/analyze"
	"git.home.luguber.info/inful/gitsemver/internal/config"
	gserrors "git.home.luguber.info/inful/gitsemver/internal/errors"
	"git.home.luguber.info/inful/gitsemver/internal/metrics"
	"git.home.luguber.info/inful/gitsemver/internal/notify"
	"git.home.luguber.info/inful/gitsemver/internal/server/httpserver"
	"git.home.luguber.info/inful/gitsemver/internal/store"
	"git.home.luguber.info/inful/gitsemver/internal/version"
)

// Status represents the current state of the daemon
type Status string

const (
	StatusStopped  Status = "stopped"
	StatusStarting Status = "starting"
	StatusRunning  Status = "running"
	StatusStopping Status = "stopping"
	StatusError    Status = "error"
)

// Daemon represents the gitsemver daemon service
type Daemon struct {
	config         *config.Config
	configFilePath string
	status         atomic.Value // Status
	startTime      time.Time
	stopChan       chan struct{}
	mu             sync.RWMutex

	// Core components
	analyzer      *analyze.Analyzer
	store         store.Store
	publisher     *notify.Publisher
	recorder      metrics.Recorder
	registry      *prometheus.Registry
	httpServer    *httpserver.Server
	scheduler     *Scheduler
	configWatcher *ConfigWatcher

	// Runtime counters
	analysesTotal  int64
	lastDurationMS int64
}

// New creates a new daemon instance without config file watching.
func New(cfg *config.Config) (*Daemon, error) {
	return NewWithConfigFile(cfg, "")
}

// NewWithConfigFile creates a new daemon instance. When configFilePath is
// non-empty the file is watched and the repository list reloaded on change.
func NewWithConfigFile(cfg *config.Config, configFilePath string) (*Daemon, error) {
	if cfg == nil {
		return nil, gserrors.ConfigRequired("config")
	}

	d := &Daemon{
		config:         cfg,
		configFilePath: configFilePath,
		stopChan:       make(chan struct{}),
	}
	d.status.Store(StatusStopped)

	// Metrics are recorded unconditionally; the Prometheus registry and the
	// /metrics route exist only when enabled.
	d.recorder = metrics.Recorder(metrics.NoopRecorder{})
	if cfg.Metrics.Enabled {
		d.registry = prometheus.NewRegistry()
		d.recorder = metrics.NewPrometheusRecorder(d.registry)
	}

	d.analyzer = analyze.New(slog.Default(), d.recorder)

	st, err := store.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	d.store = st

	if cfg.Notify.Enabled {
		pub, err := notify.NewPublisher(&cfg.Notify)
		if err != nil {
			_ = st.Close()
			return nil, err
		}
		d.publisher = pub
	}

	opts := httpserver.Options{}
	if cfg.Metrics.Enabled {
		opts.MetricsHandler = metrics.HTTPHandler(d.registry)
	}
	d.httpServer = httpserver.New(cfg, &runtimeAdapter{d: d}, opts)

	if len(cfg.Repositories) > 0 {
		sched, err := NewScheduler()
		if err != nil {
			d.closeResources()
			return nil, err
		}
		d.scheduler = sched
	}

	if configFilePath != "" {
		cw, err := NewConfigWatcher(configFilePath, d)
		if err != nil {
			d.closeResources()
			return nil, err
		}
		d.configWatcher = cw
	}

	d.recorder.SetRepositoriesConfigured(len(cfg.Repositories))

	return d, nil
}

// Start starts the daemon and all its components, then blocks in the main
// loop until the context is canceled or Stop is called.
func (d *Daemon) Start(ctx context.Context) error {
	d.mu.Lock()
	if d.GetStatus() != StatusStopped {
		d.mu.Unlock()
		return fmt.Errorf("daemon is not in stopped state: %s", d.GetStatus())
	}

	d.status.Store(StatusStarting)
	d.startTime = time.Now()

	slog.Info("Starting gitsemver daemon", slog.String("version", version.Version))

	if err := d.httpServer.Start(ctx); err != nil {
		d.status.Store(StatusError)
		d.mu.Unlock()
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	if d.scheduler != nil {
		interval := d.refreshInterval()
		if _, err := d.scheduler.ScheduleEvery("analyze-all", interval, func() {
			d.AnalyzeAll(context.Background())
		}); err != nil {
			d.status.Store(StatusError)
			d.mu.Unlock()
			return fmt.Errorf("failed to schedule periodic analysis: %w", err)
		}
		d.scheduler.Start(ctx)
		slog.Info("Periodic analysis scheduled", slog.Duration("interval", interval))
	}

	if d.configWatcher != nil {
		if err := d.configWatcher.Start(ctx); err != nil {
			slog.Error("Failed to start config watcher", "error", err)
		} else {
			slog.Info("Config watcher started")
		}
	}

	d.status.Store(StatusRunning)

	slog.Info("gitsemver daemon started",
		slog.Int("repositories", len(d.config.Repositories)),
		slog.String("http_addr", d.httpServer.Addr()),
		slog.Bool("notify", d.publisher != nil),
		slog.Bool("metrics", d.registry != nil))

	// Release lock before entering the long-running loop so read operations
	// (status endpoint, reloads) are not blocked.
	d.mu.Unlock()

	d.mainLoop(ctx)

	// Stop owns the status transition when it initiated the shutdown; mark
	// stopping here only when the context ended the loop.
	d.status.CompareAndSwap(StatusRunning, StatusStopping)
	slog.Info("Main loop exited, daemon stopping")

	return nil
}

// Stop gracefully shuts down the daemon
func (d *Daemon) Stop(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	currentStatus := d.GetStatus()
	if currentStatus == StatusStopped {
		// Never started: release the store and publisher opened at construction.
		d.closeResources()
		return nil
	}

	d.status.Store(StatusStopping)
	slog.Info("Stopping gitsemver daemon")

	// Signal stop to all components (only if not already closed)
	select {
	case <-d.stopChan:
	default:
		close(d.stopChan)
	}

	// Stop components in reverse start order
	if d.configWatcher != nil {
		if err := d.configWatcher.Stop(ctx); err != nil {
			slog.Error("Failed to stop config watcher", "error", err)
		}
	}

	if d.scheduler != nil {
		if err := d.scheduler.Stop(ctx); err != nil {
			slog.Error("Failed to stop scheduler", "error", err)
		}
	}

	if d.httpServer != nil {
		if err := d.httpServer.Stop(ctx); err != nil {
			slog.Error("Failed to stop HTTP server", "error", err)
		}
	}

	d.closeResources()

	d.status.Store(StatusStopped)

	uptime := time.Since(d.startTime)
	slog.Info("gitsemver daemon stopped", slog.Duration("uptime", uptime))

	return nil
}

// closeResources closes the publisher and store connections.
func (d *Daemon) closeResources() {
	if d.publisher != nil {
		if err := d.publisher.Close(); err != nil {
			slog.Error("Failed to close publisher", "error", err)
		}
		d.publisher = nil
	}
	if d.store != nil {
		if err := d.store.Close(); err != nil {
			slog.Error("Failed to close analysis store", "error", err)
		}
		d.store = nil
	}
}

// mainLoop blocks until the daemon is stopped. Shortly after startup it runs
// one analysis pass over the configured repositories so a fresh daemon serves
// data before the first scheduled tick.
func (d *Daemon) mainLoop(ctx context.Context) {
	initialTimer := time.NewTimer(3 * time.Second)
	defer initialTimer.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Context canceled, stopping main loop")
			return
		case <-d.stopChan:
			slog.Info("Stop signal received, stopping main loop")
			return
		case <-initialTimer.C:
			if len(d.GetConfig().Repositories) > 0 {
				slog.Info("Running initial analysis of configured repositories")
				go d.AnalyzeAll(ctx)
			}
		}
	}
}

// GetStatus returns the current daemon status
func (d *Daemon) GetStatus() Status {
	status, ok := d.status.Load().(Status)
	if !ok {
		return StatusError
	}
	return status
}

// GetStartTime returns the daemon start time
func (d *Daemon) GetStartTime() time.Time {
	return d.startTime
}

// GetConfig returns the current daemon configuration
func (d *Daemon) GetConfig() *config.Config {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.config
}

// AnalysesTotal returns the number of analyses completed since start.
func (d *Daemon) AnalysesTotal() int {
	return int(atomic.LoadInt64(&d.analysesTotal))
}

// LastAnalysisDurationMS returns the duration of the most recent analysis.
func (d *Daemon) LastAnalysisDurationMS() int64 {
	return atomic.LoadInt64(&d.lastDurationMS)
}

// RepositoriesTotal returns the number of configured repositories.
func (d *Daemon) RepositoriesTotal() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.config.Repositories)
}

// ReloadConfig applies a changed configuration. Only the repository list
// takes effect at runtime; server, store, notify, and metrics settings
// require a restart and changes to them are logged.
func (d *Daemon) ReloadConfig(ctx context.Context, newConfig *config.Config) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	slog.Info("Reloading daemon configuration")

	old := d.config
	d.config = newConfig

	if newConfig.Server != old.Server {
		slog.Warn("Server configuration changed; restart required to apply")
	}
	if newConfig.Store != old.Store {
		slog.Warn("Store configuration changed; restart required to apply")
	}
	if newConfig.Notify != old.Notify {
		slog.Warn("Notify configuration changed; restart required to apply")
	}
	if newConfig.Metrics != old.Metrics {
		slog.Warn("Metrics configuration changed; restart required to apply")
	}

	d.recorder.SetRepositoriesConfigured(len(newConfig.Repositories))

	slog.Info("Configuration reloaded",
		slog.Int("repositories", len(newConfig.Repositories)))
	return nil
}

// refreshInterval parses the configured refresh interval; validation has
// already ensured it is a positive duration.
func (d *Daemon) refreshInterval() time.Duration {
	interval, err := time.ParseDuration(d.config.RefreshInterval)
	if err != nil || interval <= 0 {
		return 5 * time.Minute
	}
	return interval
}
