// Package render turns conversation state into styled terminal output. It is
// presentation glue over the core: display blocks are produced fresh on every
// call and never stored.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/amimitra/mitra/internal/format"
	"github.com/amimitra/mitra/internal/model/chat"
)

var (
	userStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	botStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	timestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	emphasisStyle = lipgloss.NewStyle().Bold(true)

	typingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))
)

// Message renders one transcript entry: sender header, formatted body,
// timestamp.
func Message(msg chat.Message) string {
	var b strings.Builder

	if msg.Sender == chat.SenderUser {
		b.WriteString(userStyle.Render("You"))
	} else {
		b.WriteString(botStyle.Render("Bot"))
	}
	b.WriteString("\n")

	for _, block := range format.Format(msg.Text) {
		if block.Kind == format.BulletItem {
			b.WriteString("  • ")
		}
		for _, span := range block.Spans {
			if span.Emphasis {
				b.WriteString(emphasisStyle.Render(span.Text))
			} else {
				b.WriteString(span.Text)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(timestampStyle.Render(msg.Timestamp))
	return b.String()
}

// TypingIndicator is shown while a response is outstanding.
func TypingIndicator() string {
	return typingStyle.Render("Bot is typing...")
}

// Banner is the empty-transcript welcome.
func Banner() string {
	return bannerStyle.Render("Welcome to Ami Mitra!") +
		"\nStart a conversation and I'll be happy to help.\n"
}
