package changefeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

const defaultSubjectPrefix = "qms"

// NATSConfig holds NATS publisher configuration.
type NATSConfig struct {
	URL           string
	SubjectPrefix string
	ConnectWait   time.Duration
}

// NATSPublisher publishes changes as JSON messages on "<prefix>.<resource>.<action>".
type NATSPublisher struct {
	conn   *nats.Conn
	prefix string
	closed chan struct{}
}

// NewNATSPublisher connects to NATS and returns a publisher.
func NewNATSPublisher(cfg NATSConfig) (*NATSPublisher, error) {
	if cfg.URL == "" {
		return nil, errors.New("changefeed: nats url is required")
	}
	if cfg.SubjectPrefix == "" {
		cfg.SubjectPrefix = defaultSubjectPrefix
	}
	if cfg.ConnectWait <= 0 {
		cfg.ConnectWait = 5 * time.Second
	}

	closed := make(chan struct{})

	conn, err := nats.Connect(cfg.URL,
		nats.Name("quality-garden"),
		nats.ClosedHandler(func(*nats.Conn) { close(closed) }),
		nats.Timeout(cfg.ConnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				slog.Warn("changefeed disconnected from nats", "error", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			slog.Info("changefeed reconnected to nats", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}

	slog.Info("changefeed connected to nats", "url", conn.ConnectedUrl(), "subject_prefix", cfg.SubjectPrefix)

	return &NATSPublisher{conn: conn, prefix: cfg.SubjectPrefix, closed: closed}, nil
}

// Subject returns the subject a change is published on.
func Subject(prefix string, change Change) string {
	return fmt.Sprintf("%s.%s.%s", prefix, change.Resource, change.Action)
}

// Publish implements Publisher.
func (p *NATSPublisher) Publish(_ context.Context, change Change) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("marshal change: %w", err)
	}

	subject := Subject(p.prefix, change)
	if err := p.conn.Publish(subject, payload); err != nil {
		recordPublished(change.Resource, "error")
		return fmt.Errorf("publish %s: %w", subject, err)
	}

	recordPublished(change.Resource, "ok")
	return nil
}

// IsConnected reports whether the underlying connection is usable.
func (p *NATSPublisher) IsConnected() bool {
	return p.conn.IsConnected()
}

// Close drains the connection, delivering messages already published, and
// waits until it is closed or ctx is done. On ctx expiry the connection is
// closed immediately and pending messages may be lost.
func (p *NATSPublisher) Close(ctx context.Context) {
	if err := p.conn.Drain(); err != nil {
		slog.Warn("drain nats connection", "error", err)
		p.conn.Close()
	}

	select {
	case <-p.closed:
	case <-ctx.Done():
		slog.Warn("nats drain did not finish before shutdown deadline", "error", ctx.Err())
		p.conn.Close()
	}
}
