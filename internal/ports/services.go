package ports

import (
	"context"

	"github.com/lyuongruouvang/shop-assistant/internal/domain"
)

// CatalogClient searches the shop's product catalog.
type CatalogClient interface {
	Search(ctx context.Context, query string) ([]domain.ProductMatch, error)
}

// CompletionClient asks the language model for a reply to a single user turn.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// SpeechClient turns text into encoded audio.
type SpeechClient interface {
	Synthesize(ctx context.Context, text string) (*domain.AudioPayload, error)
}

// ChatService runs the enrichment pipeline for one chat message.
type ChatService interface {
	Reply(ctx context.Context, message string) (*domain.ChatReply, error)
}

// VoiceService synthesizes speech for one piece of text.
type VoiceService interface {
	Speak(ctx context.Context, text string) (*domain.AudioPayload, error)
}

// EventPublisher emits fire-and-forget domain events.
type EventPublisher interface {
	Publish(subject string, data []byte) error
	Close() error
}
