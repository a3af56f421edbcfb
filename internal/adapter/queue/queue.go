// Package queue provides the event transports behind ports.EventPublisher.
package queue

import (
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/lyuongruouvang/shop-assistant/internal/ports"
	"github.com/lyuongruouvang/shop-assistant/pkg/config"
)

const (
	BackendNone     = "none"
	BackendNATS     = "nats"
	BackendRabbitMQ = "rabbitmq"
)

// New connects the configured backend. "none" or an empty backend returns a publisher
// that drops every event.
func New(cfg config.EventsConfig, log *zap.Logger) (ports.EventPublisher, error) {
	switch cfg.Backend {
	case "", BackendNone:
		return NopPublisher{}, nil
	case BackendNATS:
		q, err := NewNATSQueue(cfg.URL, log)
		if err != nil {
			return nil, err
		}
		return q, nil
	case BackendRabbitMQ:
		q, err := NewRabbitMQQueue(cfg.URL, log)
		if err != nil {
			return nil, err
		}
		return q, nil
	default:
		return nil, fmt.Errorf("queue: unknown backend %q", cfg.Backend)
	}
}

// NopPublisher discards events.
type NopPublisher struct{}

func (NopPublisher) Publish(subject string, data []byte) error { return nil }

func (NopPublisher) Close() error { return nil }

// redactURL masks the password in a broker URL so it can be logged.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "invalid-url"
	}
	return u.Redacted()
}
