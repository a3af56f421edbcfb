package openai

import (
	"context"
	"fmt"
	"io"
	"time"

	sdk "github.com/openai/openai-go/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/lyuongruouvang/shop-assistant/internal/domain"
	"github.com/lyuongruouvang/shop-assistant/internal/observability/telemetry"
)

// SpeechClient converts text to audio with the speech API.
type SpeechClient struct {
	client sdk.Client
	model  string
	voice  string
	format string
	log    *zap.Logger
}

func NewSpeechClient(client sdk.Client, model, voice, format string, log *zap.Logger) *SpeechClient {
	return &SpeechClient{
		client: client,
		model:  model,
		voice:  voice,
		format: format,
		log:    log,
	}
}

// Synthesize returns the encoded audio exactly as the API produced it.
func (c *SpeechClient) Synthesize(ctx context.Context, text string) (*domain.AudioPayload, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "openai.Synthesize")
	defer span.End()
	span.SetAttributes(
		attribute.String("openai.model", c.model),
		attribute.String("openai.voice", c.voice),
		attribute.Int("speech.input_chars", len([]rune(text))),
	)

	start := time.Now()
	audio, err := c.synthesize(ctx, text)
	telemetry.UpstreamLatency.WithLabelValues("speech", telemetry.Status(err)).Observe(time.Since(start).Seconds())

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "speech synthesis failed")
		c.log.Error("Speech synthesis failed", append(errorFields(err), zap.String("model", c.model))...)
		return nil, err
	}

	span.SetAttributes(attribute.Int("speech.bytes", len(audio)))
	return &domain.AudioPayload{Data: audio, ContentType: domain.AudioContentTypeMPEG}, nil
}

func (c *SpeechClient) synthesize(ctx context.Context, text string) ([]byte, error) {
	resp, err := c.client.Audio.Speech.New(ctx, sdk.AudioSpeechNewParams{
		Input:          text,
		Model:          sdk.SpeechModel(c.model),
		Voice:          sdk.AudioSpeechNewParamsVoice(c.voice),
		ResponseFormat: sdk.AudioSpeechNewParamsResponseFormat(c.format),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: speech: %w", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read speech body: %w", domain.ErrUpstream, err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("%w: speech returned no audio", domain.ErrUpstream)
	}

	return audio, nil
}
