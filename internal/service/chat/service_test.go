package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/lyuongruouvang/shop-assistant/internal/domain"
	"github.com/lyuongruouvang/shop-assistant/internal/mocks"
	"github.com/lyuongruouvang/shop-assistant/internal/service/events"
	"github.com/lyuongruouvang/shop-assistant/pkg/requestid"
)

const testPersona = "Bạn là trợ lý ảo."

func newTestService(catalog *mocks.MockCatalogClient, completion *mocks.MockCompletionClient, pub *mocks.MockEventPublisher) *Service {
	return NewService(catalog, completion, testPersona, events.NewEmitter(pub, "assistant", zap.NewNop()), zap.NewNop())
}

func TestReply_WithMatches(t *testing.T) {
	var gotPrompt, gotMessage, gotQuery string

	catalog := &mocks.MockCatalogClient{
		SearchFunc: func(ctx context.Context, query string) ([]domain.ProductMatch, error) {
			gotQuery = query
			return []domain.ProductMatch{{Name: "Ly A", Price: 100000}}, nil
		},
	}
	completion := &mocks.MockCompletionClient{
		CompleteFunc: func(ctx context.Context, systemPrompt, userMessage string) (string, error) {
			gotPrompt, gotMessage = systemPrompt, userMessage
			return "Dạ, Ly A giá 100000đ ạ.", nil
		},
	}
	pub := mocks.NewMockEventPublisher()
	svc := newTestService(catalog, completion, pub)

	ctx := requestid.WithContext(context.Background(), "req-1")
	reply, err := svc.Reply(ctx, "ly rượu vang")
	if err != nil {
		t.Fatalf("Reply failed: %v", err)
	}

	if reply.Reply != "Dạ, Ly A giá 100000đ ạ." {
		t.Errorf("unexpected reply %q", reply.Reply)
	}
	if gotQuery != "ly rượu vang" || gotMessage != "ly rượu vang" {
		t.Errorf("message should be used as query and user turn, got %q / %q", gotQuery, gotMessage)
	}
	if !strings.HasPrefix(gotPrompt, testPersona) {
		t.Errorf("system prompt should start with the persona: %q", gotPrompt)
	}
	if !strings.Contains(gotPrompt, "- Ly A (Giá: 100000đ)") {
		t.Errorf("system prompt should list the match: %q", gotPrompt)
	}

	msgs := pub.GetPublishedMessages("assistant.chat.completed")
	if len(msgs) != 1 {
		t.Fatalf("expected one chat event, got %d", len(msgs))
	}
	var event domain.ChatCompletedEvent
	if err := json.Unmarshal(msgs[0], &event); err != nil {
		t.Fatalf("event is not JSON: %v", err)
	}
	if event.CatalogStatus != domain.CatalogStatusFound || event.MatchCount != 1 || event.RequestID != "req-1" {
		t.Errorf("unexpected event %+v", event)
	}
	if strings.Contains(string(msgs[0]), "rượu") {
		t.Error("event must not carry message text")
	}
}

func TestReply_CatalogOutcomesDegradeToNoMatchPrompt(t *testing.T) {
	tests := []struct {
		name       string
		search     func(ctx context.Context, query string) ([]domain.ProductMatch, error)
		wantStatus domain.CatalogStatus
	}{
		{
			name: "empty",
			search: func(ctx context.Context, query string) ([]domain.ProductMatch, error) {
				return []domain.ProductMatch{}, nil
			},
			wantStatus: domain.CatalogStatusEmpty,
		},
		{
			name: "failed",
			search: func(ctx context.Context, query string) ([]domain.ProductMatch, error) {
				return nil, fmt.Errorf("%w: status 401", domain.ErrCatalog)
			},
			wantStatus: domain.CatalogStatusFailed,
		},
		{
			name: "timeout",
			search: func(ctx context.Context, query string) ([]domain.ProductMatch, error) {
				return nil, fmt.Errorf("%w: %w", domain.ErrCatalog, context.DeadlineExceeded)
			},
			wantStatus: domain.CatalogStatusFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPrompt string
			completion := &mocks.MockCompletionClient{
				CompleteFunc: func(ctx context.Context, systemPrompt, userMessage string) (string, error) {
					gotPrompt = systemPrompt
					return "Dạ, em chưa tìm thấy ạ.", nil
				},
			}
			pub := mocks.NewMockEventPublisher()
			svc := newTestService(&mocks.MockCatalogClient{SearchFunc: tt.search}, completion, pub)

			reply, err := svc.Reply(context.Background(), "xyz")
			if err != nil {
				t.Fatalf("catalog problems must not fail the reply: %v", err)
			}
			if reply.Reply == "" {
				t.Error("expected a reply")
			}
			if strings.Contains(gotPrompt, "Thông tin sản phẩm") {
				t.Errorf("expected no-match prompt, got %q", gotPrompt)
			}
			if !strings.Contains(gotPrompt, "Không tìm thấy sản phẩm nào") {
				t.Errorf("expected no-match instructions, got %q", gotPrompt)
			}

			var event domain.ChatCompletedEvent
			msgs := pub.GetPublishedMessages("assistant.chat.completed")
			if len(msgs) != 1 {
				t.Fatalf("expected one chat event, got %d", len(msgs))
			}
			json.Unmarshal(msgs[0], &event)
			if event.CatalogStatus != tt.wantStatus || event.MatchCount != 0 {
				t.Errorf("unexpected event %+v", event)
			}
		})
	}
}

func TestReply_EmptyMessage(t *testing.T) {
	searched := false
	catalog := &mocks.MockCatalogClient{
		SearchFunc: func(ctx context.Context, query string) ([]domain.ProductMatch, error) {
			searched = true
			return nil, nil
		},
	}
	svc := newTestService(catalog, &mocks.MockCompletionClient{}, mocks.NewMockEventPublisher())

	for _, msg := range []string{"", "   "} {
		_, err := svc.Reply(context.Background(), msg)

		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError for %q, got %v", msg, err)
		}
		if verr.Message != MessageRequired {
			t.Errorf("unexpected message %q", verr.Message)
		}
	}
	if searched {
		t.Error("catalog must not be called for an empty message")
	}
}

func TestReply_CompletionFailure(t *testing.T) {
	completion := &mocks.MockCompletionClient{
		CompleteFunc: func(ctx context.Context, systemPrompt, userMessage string) (string, error) {
			return "", fmt.Errorf("%w: status 500", domain.ErrUpstream)
		},
	}
	pub := mocks.NewMockEventPublisher()
	svc := newTestService(&mocks.MockCatalogClient{}, completion, pub)

	reply, err := svc.Reply(context.Background(), "ly")
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if reply != nil {
		t.Errorf("expected nil reply, got %+v", reply)
	}
	if len(pub.GetPublishedMessages("assistant.chat.completed")) != 0 {
		t.Error("no event should be published on failure")
	}
}

func TestReply_PublishFailureIsIgnored(t *testing.T) {
	pub := mocks.NewMockEventPublisher()
	pub.PublishFunc = func(subject string, data []byte) error {
		return errors.New("nats: connection closed")
	}
	completion := &mocks.MockCompletionClient{
		CompleteFunc: func(ctx context.Context, systemPrompt, userMessage string) (string, error) {
			return "ok", nil
		},
	}
	svc := newTestService(&mocks.MockCatalogClient{}, completion, pub)

	if _, err := svc.Reply(context.Background(), "ly"); err != nil {
		t.Fatalf("publish failure must not fail the reply: %v", err)
	}
}
