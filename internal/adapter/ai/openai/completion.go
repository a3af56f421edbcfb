package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	sdk "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/shared"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/lyuongruouvang/shop-assistant/internal/domain"
	"github.com/lyuongruouvang/shop-assistant/internal/observability/telemetry"
)

// CompletionClient sends a single system + user turn to the chat completions API.
type CompletionClient struct {
	client sdk.Client
	model  string
	log    *zap.Logger
}

func NewCompletionClient(client sdk.Client, model string, log *zap.Logger) *CompletionClient {
	return &CompletionClient{
		client: client,
		model:  model,
		log:    log,
	}
}

// Complete returns the content of the first choice.
func (c *CompletionClient) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "openai.Complete")
	defer span.End()
	span.SetAttributes(attribute.String("openai.model", c.model))

	start := time.Now()
	reply, err := c.complete(ctx, systemPrompt, userMessage)
	telemetry.UpstreamLatency.WithLabelValues("completion", telemetry.Status(err)).Observe(time.Since(start).Seconds())

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "chat completion failed")
		c.log.Error("Chat completion failed", append(errorFields(err), zap.String("model", c.model))...)
		return "", err
	}
	return reply, nil
}

func (c *CompletionClient) complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, sdk.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []sdk.ChatCompletionMessageParamUnion{
			sdk.SystemMessage(systemPrompt),
			sdk.UserMessage(userMessage),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: chat completion: %w", domain.ErrUpstream, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: chat completion returned no choices", domain.ErrUpstream)
	}

	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%w: chat completion returned empty content", domain.ErrUpstream)
	}

	return content, nil
}
