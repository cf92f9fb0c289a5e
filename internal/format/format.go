package format

import (
	"regexp"
	"strings"
)

// BlockKind distinguishes the two display block shapes.
type BlockKind string

const (
	Paragraph  BlockKind = "paragraph"
	BulletItem BlockKind = "bullet"
)

// Span is a run of text inside a block, optionally emphasized.
type Span struct {
	Text     string
	Emphasis bool
}

// Block is one render-only unit of a formatted message. Blocks are derived
// fresh from a message's text on every render and never stored.
type Block struct {
	Kind  BlockKind
	Spans []Span
}

// emphasisPattern matches a complete **...** pair, shortest match first.
// A lone or unclosed ** never matches and falls through as plain text.
var emphasisPattern = regexp.MustCompile(`\*\*.*?\*\*`)

// Format converts a raw text payload into display blocks. Lines that are
// blank after trimming are dropped; a line whose trimmed form starts with a
// single * marker becomes a bullet item, everything else a paragraph.
// Format is pure and never fails: malformed markers render literally.
func Format(raw string) []Block {
	var blocks []Block
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, "*") && !strings.HasPrefix(trimmed, "**") {
			text := strings.TrimSpace(strings.TrimPrefix(trimmed, "*"))
			blocks = append(blocks, Block{Kind: BulletItem, Spans: spans(text)})
			continue
		}

		blocks = append(blocks, Block{Kind: Paragraph, Spans: spans(line)})
	}
	return blocks
}

// spans splits text on **...** pairs, turning each match into an emphasis
// span with the delimiters stripped. Empty segments are filtered out.
func spans(text string) []Span {
	var out []Span
	last := 0
	for _, loc := range emphasisPattern.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			out = append(out, Span{Text: text[last:loc[0]]})
		}
		if inner := text[loc[0]+2 : loc[1]-2]; inner != "" {
			out = append(out, Span{Text: inner, Emphasis: true})
		}
		last = loc[1]
	}
	if last < len(text) {
		out = append(out, Span{Text: text[last:]})
	}
	return out
}
