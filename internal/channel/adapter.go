package channel

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event is a normalized inbound notification from the remote service. Text
// is the canonical string payload, ready for the conversation store.
type Event struct {
	Name string
	Text string
}

// Options tune the websocket connection.
type Options struct {
	HandshakeTimeout time.Duration
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	PingInterval     time.Duration
	MaxRetries       int
}

// DefaultOptions returns the connection settings used by the client binary.
func DefaultOptions() Options {
	return Options{
		HandshakeTimeout: 10 * time.Second,
		ReadTimeout:      60 * time.Second,
		WriteTimeout:     10 * time.Second,
		PingInterval:     30 * time.Second,
		MaxRetries:       3,
	}
}

// Adapter owns exactly one persistent websocket connection to the remote
// chat service. Outbound sends are fire-and-forget; inbound frames are
// decoded, normalized and fanned into the Events stream. There is no
// reconnect: when the connection dies the event stream closes and the
// session is over.
type Adapter struct {
	conn *websocket.Conn
	opts Options

	writeMu   sync.Mutex
	events    chan Event
	done      chan struct{}
	closeOnce sync.Once
}

// Dial establishes the channel, retrying the handshake a few times before
// giving up. The returned adapter is connected and already listening.
func Dial(ctx context.Context, url string, opts Options) (*Adapter, error) {
	var lastErr error
	for i := 0; i < opts.MaxRetries; i++ {
		conn, err := dial(ctx, url, opts)
		if err == nil {
			a := &Adapter{
				conn:   conn,
				opts:   opts,
				events: make(chan Event, 16),
				done:   make(chan struct{}),
			}
			go a.readLoop()
			go a.pingLoop()
			return a, nil
		}

		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		retryDelay := time.Duration(i+1) * time.Second
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay):
		}
	}

	return nil, fmt.Errorf("failed to connect after %d retries, last error: %w", opts.MaxRetries, lastErr)
}

func dial(ctx context.Context, url string, opts Options) (*websocket.Conn, error) {
	dialer := &websocket.Dialer{HandshakeTimeout: opts.HandshakeTimeout}

	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("websocket dial failed: %w", err)
	}

	conn.SetReadDeadline(time.Now().Add(opts.ReadTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(opts.ReadTimeout))
		return nil
	})

	return conn, nil
}

// Send forwards the literal typed text as a user-message event. Delivery is
// best effort: a write failure is logged and the message is dropped, never
// surfaced to the conversation state.
func (a *Adapter) Send(text string) {
	env, err := NewEnvelope(EventUserMessage, text)
	if err != nil {
		log.Printf("[channel] encode failed, message dropped: %v", err)
		return
	}

	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	a.conn.SetWriteDeadline(time.Now().Add(a.opts.WriteTimeout))
	if err := a.conn.WriteJSON(env); err != nil {
		log.Printf("[channel] send failed, message dropped: %v", err)
	}
}

// Events exposes the inbound stream. The channel closes when the connection
// is lost or the adapter is closed; events arriving with no listener ready
// beyond the buffer are dropped.
func (a *Adapter) Events() <-chan Event {
	return a.events
}

// Close tears the connection down and ends both loops.
func (a *Adapter) Close() {
	a.closeOnce.Do(func() {
		close(a.done)
		a.conn.Close()
	})
}

func (a *Adapter) readLoop() {
	defer close(a.events)

	for {
		var env Envelope
		if err := a.conn.ReadJSON(&env); err != nil {
			select {
			case <-a.done:
			default:
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("[channel] read error: %v", err)
				}
			}
			return
		}

		a.conn.SetReadDeadline(time.Now().Add(a.opts.ReadTimeout))

		if env.Event != EventAIResponse {
			continue
		}

		select {
		case a.events <- Event{Name: env.Event, Text: canonicalText(env.Data)}:
		default:
			log.Printf("[channel] no listener, dropping %s event", env.Event)
		}
	}
}

func (a *Adapter) pingLoop() {
	ticker := time.NewTicker(a.opts.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-a.done:
			return
		case <-ticker.C:
			a.writeMu.Lock()
			a.conn.SetWriteDeadline(time.Now().Add(a.opts.WriteTimeout))
			err := a.conn.WriteMessage(websocket.PingMessage, nil)
			a.writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}
