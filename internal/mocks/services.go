package mocks

import (
	"context"

	"github.com/lyuongruouvang/shop-assistant/internal/domain"
)

// MockCatalogClient is a mock implementation of ports.CatalogClient
type MockCatalogClient struct {
	SearchFunc func(ctx context.Context, query string) ([]domain.ProductMatch, error)
}

func (m *MockCatalogClient) Search(ctx context.Context, query string) ([]domain.ProductMatch, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query)
	}
	return []domain.ProductMatch{}, nil
}

// MockCompletionClient is a mock implementation of ports.CompletionClient
type MockCompletionClient struct {
	CompleteFunc func(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

func (m *MockCompletionClient) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, systemPrompt, userMessage)
	}
	return "", nil
}

// MockSpeechClient is a mock implementation of ports.SpeechClient
type MockSpeechClient struct {
	SynthesizeFunc func(ctx context.Context, text string) (*domain.AudioPayload, error)
}

func (m *MockSpeechClient) Synthesize(ctx context.Context, text string) (*domain.AudioPayload, error) {
	if m.SynthesizeFunc != nil {
		return m.SynthesizeFunc(ctx, text)
	}
	return &domain.AudioPayload{ContentType: domain.AudioContentTypeMPEG}, nil
}

// MockChatService is a mock implementation of ports.ChatService
type MockChatService struct {
	ReplyFunc func(ctx context.Context, message string) (*domain.ChatReply, error)
}

func (m *MockChatService) Reply(ctx context.Context, message string) (*domain.ChatReply, error) {
	if m.ReplyFunc != nil {
		return m.ReplyFunc(ctx, message)
	}
	return &domain.ChatReply{}, nil
}

// MockVoiceService is a mock implementation of ports.VoiceService
type MockVoiceService struct {
	SpeakFunc func(ctx context.Context, text string) (*domain.AudioPayload, error)
}

func (m *MockVoiceService) Speak(ctx context.Context, text string) (*domain.AudioPayload, error) {
	if m.SpeakFunc != nil {
		return m.SpeakFunc(ctx, text)
	}
	return &domain.AudioPayload{ContentType: domain.AudioContentTypeMPEG}, nil
}
