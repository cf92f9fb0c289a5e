package chatws_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/amimitra/mitra/internal/channel"
	"github.com/amimitra/mitra/internal/handler/chatws"
	"github.com/amimitra/mitra/internal/service/ai"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	r := chi.NewRouter()
	chatws.New(ai.Fallback{}).RegisterRoutes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dialTestServer(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial err: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestUserMessageGetsAIResponse(t *testing.T) {
	srv := newTestServer(t)
	conn := dialTestServer(t, srv)

	out, err := channel.NewEnvelope(channel.EventUserMessage, "Hello")
	if err != nil {
		t.Fatalf("NewEnvelope err: %v", err)
	}
	if err := conn.WriteJSON(out); err != nil {
		t.Fatalf("WriteJSON err: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var env channel.Envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("ReadJSON err: %v", err)
	}
	if env.Event != channel.EventAIResponse {
		t.Fatalf("expected ai-response, got %s", env.Event)
	}

	var payload struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("payload decode err: %v", err)
	}
	if !strings.Contains(payload.Response, "Hello") {
		t.Fatalf("expected reply to echo the input, got %q", payload.Response)
	}
}

func TestBlankUserMessageIsIgnored(t *testing.T) {
	srv := newTestServer(t)
	conn := dialTestServer(t, srv)

	blank, err := channel.NewEnvelope(channel.EventUserMessage, "   ")
	if err != nil {
		t.Fatalf("NewEnvelope err: %v", err)
	}
	if err := conn.WriteJSON(blank); err != nil {
		t.Fatalf("WriteJSON err: %v", err)
	}

	// A follow-up real message must get the first (and only) reply.
	real, err := channel.NewEnvelope(channel.EventUserMessage, "still here")
	if err != nil {
		t.Fatalf("NewEnvelope err: %v", err)
	}
	if err := conn.WriteJSON(real); err != nil {
		t.Fatalf("WriteJSON err: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var env channel.Envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("ReadJSON err: %v", err)
	}

	var payload struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("payload decode err: %v", err)
	}
	if !strings.Contains(payload.Response, "still here") {
		t.Fatalf("expected reply to the non-blank message, got %q", payload.Response)
	}
}

func TestUnknownEventIsIgnored(t *testing.T) {
	srv := newTestServer(t)
	conn := dialTestServer(t, srv)

	unknown, err := channel.NewEnvelope("presence", "online")
	if err != nil {
		t.Fatalf("NewEnvelope err: %v", err)
	}
	if err := conn.WriteJSON(unknown); err != nil {
		t.Fatalf("WriteJSON err: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))

	var env channel.Envelope
	if err := conn.ReadJSON(&env); err == nil {
		t.Fatalf("expected no reply to unknown event, got %+v", env)
	}
}
