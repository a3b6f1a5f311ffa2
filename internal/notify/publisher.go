// Package notify publishes completed analyses to NATS JetStream so other
// systems (release pipelines, dashboards) can react to version changes.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"git.home.luguber.info/inful/gitsemver/internal/config"
	"git.home.luguber.info/inful/gitsemver/internal/logfields"
	"git.home.luguber.info/inful/gitsemver/internal/store"
)

// streamName is the JetStream stream holding published analyses.
const streamName = "GITSEMVER"

// Publisher manages the NATS connection and publishes analysis events.
type Publisher struct {
	conn    *nats.Conn
	js      jetstream.JetStream
	subject string
}

// NewPublisher connects to NATS and ensures the analyses stream exists.
func NewPublisher(cfg *config.NotifyConfig) (*Publisher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("notify config is required")
	}

	if !cfg.Enabled {
		return nil, fmt.Errorf("notifications are disabled")
	}

	conn, err := nats.Connect(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	publisher := &Publisher{
		conn:    conn,
		js:      js,
		subject: cfg.Subject,
	}

	if err := publisher.initStream(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize stream: %w", err)
	}

	slog.Info("NATS publisher initialized",
		logfields.URL(cfg.URL),
		logfields.Subject(cfg.Subject))

	return publisher, nil
}

// initStream creates or updates the analyses stream.
func (p *Publisher) initStream() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := p.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:        streamName,
		Description: "Version analyses published by gitsemver",
		Subjects:    []string{p.subject},
	})
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}

	return nil
}

// PublishAnalysis publishes one analysis as JSON. The publish is capped
// at five seconds on top of any caller deadline.
func (p *Publisher) PublishAnalysis(ctx context.Context, a *store.Analysis) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	if _, err := p.js.Publish(ctx, p.subject, data); err != nil {
		return fmt.Errorf("failed to publish analysis: %w", err)
	}

	slog.Debug("Published analysis",
		logfields.AnalysisID(a.ID),
		logfields.Repository(a.Repository),
		logfields.Version(a.Version))

	return nil
}

// Close closes the NATS connection.
func (p *Publisher) Close() error {
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}
