// Package events publishes best-effort domain events.
package events

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/lyuongruouvang/shop-assistant/internal/observability/telemetry"
	"github.com/lyuongruouvang/shop-assistant/internal/ports"
)

// Emitter marshals events to JSON and publishes them under a subject prefix.
// Failures are logged and counted, never returned. A nil Emitter drops everything.
type Emitter struct {
	pub    ports.EventPublisher
	prefix string
	log    *zap.Logger
}

func NewEmitter(pub ports.EventPublisher, prefix string, log *zap.Logger) *Emitter {
	return &Emitter{pub: pub, prefix: prefix, log: log}
}

// Subject returns the full subject for an event name.
func (e *Emitter) Subject(name string) string {
	if e.prefix == "" {
		return name
	}
	return e.prefix + "." + name
}

func (e *Emitter) Emit(name string, event interface{}) {
	if e == nil || e.pub == nil {
		return
	}
	subject := e.Subject(name)

	data, err := json.Marshal(event)
	if err != nil {
		e.log.Warn("Failed to marshal event", zap.String("subject", subject), zap.Error(err))
		telemetry.EventsPublishedTotal.WithLabelValues(subject, "error").Inc()
		return
	}

	err = e.pub.Publish(subject, data)
	telemetry.EventsPublishedTotal.WithLabelValues(subject, telemetry.Status(err)).Inc()
	if err != nil {
		e.log.Warn("Failed to publish event", zap.String("subject", subject), zap.Error(err))
	}
}
