package channel

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Event names exchanged on the chat websocket.
const (
	EventUserMessage = "user-message"
	EventAIResponse  = "ai-response"
)

// Envelope is the JSON frame exchanged on the chat websocket. Data is kept
// raw on the inbound path because the remote service is free to send a plain
// string or a structured value.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// NewEnvelope wraps data into a wire frame for the named event.
func NewEnvelope(event string, data any) (Envelope, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal %s payload: %w", event, err)
	}
	return Envelope{Event: event, Data: raw}, nil
}

// canonicalText normalizes an inbound payload of unknown shape into the
// single string type used by the conversation store: a plain string is taken
// as-is, a structured value contributes its response field, and anything
// else degrades to its JSON text rather than being rejected.
func canonicalText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var wrapped struct {
		Response *string `json:"response"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Response != nil {
		return *wrapped.Response
	}

	return string(bytes.TrimSpace(raw))
}
