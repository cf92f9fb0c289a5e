package session

import (
	"context"
	"log"

	"github.com/amimitra/mitra/internal/channel"
	"github.com/amimitra/mitra/internal/conversation"
	"github.com/amimitra/mitra/internal/model/chat"
)

// Channel is the controller's view of the transport: a fire-and-forget
// outbound send plus the inbound event stream.
type Channel interface {
	Send(text string)
	Events() <-chan channel.Event
}

// Controller is stateless glue between the channel and the conversation
// store. It is constructed and owned explicitly; there is no ambient
// singleton connection.
type Controller struct {
	store *conversation.Store
	ch    Channel

	// OnBotMessage, when set, is invoked after each bot append. The
	// presentation layer uses it to refresh the transcript.
	OnBotMessage func(chat.Message)
}

// NewController binds a conversation store to a channel.
func NewController(store *conversation.Store, ch Channel) *Controller {
	return &Controller{store: store, ch: ch}
}

// Submit validates the input, appends the user message and forwards the text
// to the remote service, in that order: the transcript shows the user's own
// message immediately regardless of network latency. Blank input is silently
// ignored.
func (c *Controller) Submit(text string) {
	if _, err := c.store.AppendUserMessage(text); err != nil {
		return
	}

	if c.ch == nil {
		// Known gap: sends before the channel exists are dropped.
		log.Printf("[session] channel not ready, message dropped")
		return
	}

	c.ch.Send(text)
}

// Run consumes inbound events until the stream closes or ctx is canceled.
// Each ai-response appends a bot message and clears the typing flag. The
// controller owns the subscription for its whole lifetime.
func (c *Controller) Run(ctx context.Context) {
	if c.ch == nil {
		<-ctx.Done()
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-c.ch.Events():
			if !ok {
				return
			}
			if ev.Name != channel.EventAIResponse {
				continue
			}
			msg := c.store.AppendBotMessage(ev.Text)
			if c.OnBotMessage != nil {
				c.OnBotMessage(msg)
			}
		}
	}
}

// Snapshot exposes the conversation state for rendering.
func (c *Controller) Snapshot() chat.Conversation {
	return c.store.Snapshot()
}
