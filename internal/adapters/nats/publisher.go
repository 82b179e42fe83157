package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/aldasoro/waymark/internal/core/domain"
	"github.com/aldasoro/waymark/internal/pkg/metrics"
)

// Measurement events are published per route under this subject space.
const measurementSubjectPrefix = "waymark.measurements."

// Publisher implements ports.EventPublisher using NATS JetStream.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS, enables JetStream and ensures the
// measurement stream exists.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	cfg := nats.StreamConfig{
		Name:      "WAYMARK_MEASUREMENTS",
		Subjects:  []string{measurementSubjectPrefix + ">"},
		Retention: nats.LimitsPolicy,
		MaxAge:    24 * time.Hour,
		Storage:   nats.FileStorage,
	}
	if _, err := js.AddStream(&cfg); err != nil {
		// Stream may already exist -- try update
		if _, err := js.UpdateStream(&cfg); err != nil {
			return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
		}
	}

	return &Publisher{conn: conn, js: js}, nil
}

// PublishMeasurement emits a route measurement as JSON.
func (p *Publisher) PublishMeasurement(ctx context.Context, m *domain.Measurement) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	if _, err := p.js.Publish(measurementSubjectPrefix+m.Slug, data); err != nil {
		return err
	}
	metrics.MeasurementsPublished.Inc()
	return nil
}

// Close drains the connection.
func (p *Publisher) Close() {
	p.conn.Close()
}

// RawConn opens a plain NATS connection, used by the WebSocket relay.
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
