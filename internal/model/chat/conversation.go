package chat

// Conversation is a point-in-time view of one session's state: the ordered
// transcript plus whether a response is still outstanding.
type Conversation struct {
	Log    []Message `json:"log"`
	Typing bool      `json:"typing"`
}
