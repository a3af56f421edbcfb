package domain

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatReply is the body returned by POST /api/chat on success.
type ChatReply struct {
	Reply string `json:"reply"`
}

// VoiceRequest is the body of POST /api/voice.
type VoiceRequest struct {
	Text string `json:"text"`
}

// AudioContentTypeMPEG is the MIME type of every synthesized payload.
const AudioContentTypeMPEG = "audio/mpeg"

// AudioPayload is an encoded audio clip returned by the speech API, untouched.
type AudioPayload struct {
	Data        []byte
	ContentType string
}

// PromptContext holds the pieces the system prompt is assembled from.
// It is built per request and never mutated afterwards.
type PromptContext struct {
	BaseInstructions string
	ProductSummaries []string
}
