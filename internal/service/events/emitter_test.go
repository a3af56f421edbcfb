package events

import (
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/lyuongruouvang/shop-assistant/internal/domain"
	"github.com/lyuongruouvang/shop-assistant/internal/mocks"
)

func TestEmit_PublishesUnderPrefix(t *testing.T) {
	pub := mocks.NewMockEventPublisher()
	e := NewEmitter(pub, "assistant", zap.NewNop())

	e.Emit(domain.EventVoiceSynthesized, domain.VoiceSynthesizedEvent{ID: "evt-1", Bytes: 42})

	msgs := pub.GetPublishedMessages("assistant.voice.synthesized")
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	var got domain.VoiceSynthesizedEvent
	if err := json.Unmarshal(msgs[0], &got); err != nil {
		t.Fatalf("event is not JSON: %v", err)
	}
	if got.ID != "evt-1" || got.Bytes != 42 {
		t.Errorf("unexpected event %+v", got)
	}
}

func TestEmit_SwallowsFailures(t *testing.T) {
	pub := mocks.NewMockEventPublisher()
	pub.PublishFunc = func(subject string, data []byte) error {
		return errors.New("broker down")
	}
	e := NewEmitter(pub, "", zap.NewNop())

	e.Emit(domain.EventChatCompleted, map[string]int{"n": 1})
	e.Emit(domain.EventChatCompleted, func() {})
}

func TestEmit_NilEmitter(t *testing.T) {
	var e *Emitter
	e.Emit(domain.EventChatCompleted, struct{}{})

	if got := NewEmitter(nil, "x", zap.NewNop()).Subject("a.b"); got != "x.a.b" {
		t.Errorf("unexpected subject %q", got)
	}
}
