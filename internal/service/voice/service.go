// Package voice turns assistant replies into speech.
package voice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lyuongruouvang/shop-assistant/internal/domain"
	"github.com/lyuongruouvang/shop-assistant/internal/ports"
	"github.com/lyuongruouvang/shop-assistant/internal/service/events"
	"github.com/lyuongruouvang/shop-assistant/pkg/requestid"
)

// TextRequired is returned to clients that send no text.
const TextRequired = "Text is required."

type Service struct {
	speech ports.SpeechClient
	events *events.Emitter
	log    *zap.Logger
}

func NewService(speech ports.SpeechClient, emitter *events.Emitter, log *zap.Logger) *Service {
	return &Service{
		speech: speech,
		events: emitter,
		log:    log,
	}
}

// Speak synthesizes text. The audio is passed through as the speech API returned it.
func (s *Service) Speak(ctx context.Context, text string) (*domain.AudioPayload, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.NewValidationError("text", TextRequired)
	}
	start := time.Now()

	audio, err := s.speech.Synthesize(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("voice: synthesize: %w", err)
	}

	s.log.Debug("Speech synthesized",
		zap.String("request_id", requestid.FromContext(ctx)),
		zap.Int("bytes", len(audio.Data)),
	)

	s.events.Emit(domain.EventVoiceSynthesized, domain.VoiceSynthesizedEvent{
		ID:         uuid.New().String(),
		RequestID:  requestid.FromContext(ctx),
		Bytes:      len(audio.Data),
		LatencyMS:  time.Since(start).Milliseconds(),
		OccurredAt: time.Now().UTC(),
	})

	return audio, nil
}
