// internal/adapter/events/publisher.go

package events

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"trendpulse/internal/config"
	"trendpulse/internal/domain/trend"
)

// Bus is the publishing side of a NATS connection
type Bus interface {
	Publish(subject string, data []byte) error
}

// RefreshedEvent is published whenever a new snapshot is cached
type RefreshedEvent struct {
	LastUpdated time.Time      `json:"lastUpdated"`
	Counts      map[string]int `json:"counts"`
	Total       int            `json:"total"`
}

// Publisher announces refreshed snapshots on a NATS subject
type Publisher struct {
	bus     Bus
	subject string
}

// NewPublisher creates a new refresh publisher
func NewPublisher(bus Bus, subject string) *Publisher {
	return &Publisher{
		bus:     bus,
		subject: subject,
	}
}

// Name identifies the publisher in logs
func (p *Publisher) Name() string {
	return "nats"
}

// Archive publishes a refreshed event for the snapshot
func (p *Publisher) Archive(_ context.Context, d trend.Dataset) error {
	event := RefreshedEvent{
		LastUpdated: d.LastUpdated,
		Counts:      make(map[string]int, len(d.Generations)),
	}
	for gen, items := range d.Generations {
		event.Counts[gen] = len(items)
		event.Total += len(items)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("error marshaling refreshed event: %w", err)
	}

	if err := p.bus.Publish(p.subject, data); err != nil {
		return fmt.Errorf("error publishing to %s: %w", p.subject, err)
	}
	return nil
}

// Connect opens a NATS connection with reconnect logging
func Connect(cfg config.NATSConfig, logger zerolog.Logger) (*nats.Conn, error) {
	options := []nats.Option{
		nats.Name("trendpulse"),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.ConnectTimeout),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warn().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info().Msg("NATS connection closed")
		}),
	}

	nc, err := nats.Connect(cfg.URL, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to NATS: %w", err)
	}

	return nc, nil
}
