package channel

import (
	"encoding/json"
	"testing"
)

func TestCanonicalTextPlainString(t *testing.T) {
	got := canonicalText(json.RawMessage(`"hello there"`))
	if got != "hello there" {
		t.Fatalf("expected plain string, got %q", got)
	}
}

func TestCanonicalTextResponseObject(t *testing.T) {
	got := canonicalText(json.RawMessage(`{"response":"Hi **there**"}`))
	if got != "Hi **there**" {
		t.Fatalf("expected unwrapped response, got %q", got)
	}
}

func TestCanonicalTextObjectWithoutResponse(t *testing.T) {
	got := canonicalText(json.RawMessage(`{"status":"thinking"}`))
	if got != `{"status":"thinking"}` {
		t.Fatalf("expected JSON text passthrough, got %q", got)
	}
}

func TestCanonicalTextScalar(t *testing.T) {
	got := canonicalText(json.RawMessage(`42`))
	if got != "42" {
		t.Fatalf("expected scalar coerced to text, got %q", got)
	}
}

func TestNewEnvelopeUserMessage(t *testing.T) {
	env, err := NewEnvelope(EventUserMessage, "Hello")
	if err != nil {
		t.Fatalf("NewEnvelope err: %v", err)
	}
	if env.Event != EventUserMessage {
		t.Fatalf("unexpected event: %s", env.Event)
	}

	var text string
	if err := json.Unmarshal(env.Data, &text); err != nil {
		t.Fatalf("data did not round-trip: %v", err)
	}
	if text != "Hello" {
		t.Fatalf("expected literal text, got %q", text)
	}
}
