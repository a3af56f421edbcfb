package domain

import "time"

// Event names, published under the configured subject prefix.
const (
	EventChatCompleted    = "chat.completed"
	EventVoiceSynthesized = "voice.synthesized"
)

// ChatCompletedEvent is emitted after a chat reply was returned. It never carries message text.
type ChatCompletedEvent struct {
	ID            string        `json:"id"`
	RequestID     string        `json:"request_id,omitempty"`
	CatalogStatus CatalogStatus `json:"catalog_status"`
	MatchCount    int           `json:"match_count"`
	LatencyMS     int64         `json:"latency_ms"`
	OccurredAt    time.Time     `json:"occurred_at"`
}

// VoiceSynthesizedEvent is emitted after audio was returned.
type VoiceSynthesizedEvent struct {
	ID         string    `json:"id"`
	RequestID  string    `json:"request_id,omitempty"`
	Bytes      int       `json:"bytes"`
	LatencyMS  int64     `json:"latency_ms"`
	OccurredAt time.Time `json:"occurred_at"`
}
