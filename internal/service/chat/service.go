// Package chat answers customer messages, grounding the model in catalog data when it can.
package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lyuongruouvang/shop-assistant/internal/domain"
	"github.com/lyuongruouvang/shop-assistant/internal/observability/telemetry"
	"github.com/lyuongruouvang/shop-assistant/internal/ports"
	"github.com/lyuongruouvang/shop-assistant/internal/service/events"
	"github.com/lyuongruouvang/shop-assistant/internal/service/prompt"
	"github.com/lyuongruouvang/shop-assistant/pkg/requestid"
)

// MessageRequired is returned to clients that send no message.
const MessageRequired = "Message is required."

type Service struct {
	catalog    ports.CatalogClient
	completion ports.CompletionClient
	persona    string
	events     *events.Emitter
	log        *zap.Logger
}

func NewService(catalog ports.CatalogClient, completion ports.CompletionClient, persona string, emitter *events.Emitter, log *zap.Logger) *Service {
	return &Service{
		catalog:    catalog,
		completion: completion,
		persona:    persona,
		events:     emitter,
		log:        log,
	}
}

// Reply looks the message up in the catalog, composes the system prompt and asks the model.
// Catalog problems only change the prompt; completion problems fail the call.
func (s *Service) Reply(ctx context.Context, message string) (*domain.ChatReply, error) {
	if strings.TrimSpace(message) == "" {
		return nil, domain.NewValidationError("message", MessageRequired)
	}
	start := time.Now()

	result := s.lookup(ctx, message)
	systemPrompt := prompt.Compose(s.persona, result.Matches)

	reply, err := s.completion.Complete(ctx, systemPrompt, message)
	if err != nil {
		return nil, fmt.Errorf("chat: complete: %w", err)
	}

	s.log.Debug("Chat reply generated",
		zap.String("request_id", requestid.FromContext(ctx)),
		zap.String("catalog_status", string(result.Status)),
		zap.Int("matches", len(result.Matches)),
	)

	s.events.Emit(domain.EventChatCompleted, domain.ChatCompletedEvent{
		ID:            uuid.New().String(),
		RequestID:     requestid.FromContext(ctx),
		CatalogStatus: result.Status,
		MatchCount:    len(result.Matches),
		LatencyMS:     time.Since(start).Milliseconds(),
		OccurredAt:    time.Now().UTC(),
	})

	return &domain.ChatReply{Reply: reply}, nil
}

// lookup never fails: a catalog error is logged and yields a failed result without matches.
func (s *Service) lookup(ctx context.Context, query string) domain.CatalogResult {
	matches, err := s.catalog.Search(ctx, query)
	result := domain.NewCatalogResult(matches, err)
	telemetry.CatalogLookupsTotal.WithLabelValues(string(result.Status)).Inc()

	if result.Status == domain.CatalogStatusFailed {
		s.log.Warn("Catalog lookup failed, answering without products",
			zap.String("request_id", requestid.FromContext(ctx)),
			zap.Error(err),
		)
	}
	return result
}
