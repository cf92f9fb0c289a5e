package chat

// Sender identifies which side of the conversation produced a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one immutable transcript entry. Text holds the canonical string
// payload; inbound values of other shapes are normalized before a Message is
// ever constructed.
type Message struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Sender    Sender `json:"sender"`
	Timestamp string `json:"timestamp"`
}
