package chatws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/amimitra/mitra/internal/channel"
	"github.com/amimitra/mitra/internal/model/chat"
	"github.com/amimitra/mitra/internal/service/ai"
)

// Handler upgrades chat websocket connections and answers user-message
// events with ai-response events. Each connection carries one ephemeral
// conversation; nothing survives the socket.
type Handler struct {
	responder ai.Responder
	upgrader  websocket.Upgrader
}

// New creates the websocket handler.
func New(responder ai.Responder) *Handler {
	return &Handler{
		responder: responder,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the websocket endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws", h.handleWebSocket)
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sessionID := uuid.NewString()
	log.Printf("[ws] new connection session=%s", sessionID)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	// Gorilla allows a single concurrent writer; the ping loop and the
	// responder share this mutex.
	var writeMu sync.Mutex
	go h.pingLoop(ctx, conn, &writeMu, sessionID)

	var history []chat.Message
	for {
		var env channel.Envelope
		if err := conn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				log.Printf("[ws] read error session=%s: %v", sessionID, err)
			}
			return
		}

		conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		if env.Event != channel.EventUserMessage {
			continue
		}

		var text string
		if err := json.Unmarshal(env.Data, &text); err != nil {
			log.Printf("[ws] malformed user-message session=%s: %v", sessionID, err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}

		// history carries earlier turns only; the new text rides in as
		// the query so the prompt never repeats it.
		reply, err := h.responder.Reply(ctx, history, text)
		if err != nil {
			log.Printf("[ws] responder failed session=%s: %v", sessionID, err)
			reply = "Sorry, I could not come up with a reply. Please try again."
		}
		history = append(history,
			chat.Message{Sender: chat.SenderUser, Text: text},
			chat.Message{Sender: chat.SenderBot, Text: reply},
		)

		out, err := channel.NewEnvelope(channel.EventAIResponse, map[string]string{"response": reply})
		if err != nil {
			log.Printf("[ws] encode reply session=%s: %v", sessionID, err)
			continue
		}

		writeMu.Lock()
		conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		err = conn.WriteJSON(out)
		writeMu.Unlock()
		if err != nil {
			log.Printf("[ws] write failed session=%s: %v", sessionID, err)
			return
		}
	}
}

func (h *Handler) pingLoop(ctx context.Context, conn *websocket.Conn, writeMu *sync.Mutex, sessionID string) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			writeMu.Lock()
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			err := conn.WriteMessage(websocket.PingMessage, nil)
			writeMu.Unlock()
			if err != nil {
				log.Printf("[ws] ping failed session=%s: %v", sessionID, err)
				return
			}
		}
	}
}
