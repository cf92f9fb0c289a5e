package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/amimitra/mitra/internal/model/chat"
)

// Fallback answers deterministically so the client stays usable when no
// model credentials are configured.
type Fallback struct{}

// Reply echoes the user's words with a short formatted notice.
func (Fallback) Reply(_ context.Context, _ []chat.Message, userMessage string) (string, error) {
	reply := fmt.Sprintf(
		"You said: **%s**\nI am running without a language model, so for now I can only:\n* echo your words back\n* show how replies are formatted",
		strings.TrimSpace(userMessage),
	)
	return reply, nil
}
