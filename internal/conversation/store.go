package conversation

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/amimitra/mitra/internal/model/chat"
)

var ErrEmptyMessage = errors.New("message text is empty")

// clockFormat is the 12-hour wall-clock stamp shown next to each message.
const clockFormat = "03:04 PM"

// Store owns the state of a single conversation: the append-only transcript
// and the typing flag. All mutations are serialized behind the mutex, so the
// log always reflects call order and no append is dropped or reordered.
type Store struct {
	mu     sync.RWMutex
	nextID int64
	log    []chat.Message
	typing bool
}

// NewStore bootstraps an empty conversation for the lifetime of one session.
func NewStore() *Store {
	return &Store{}
}

// AppendUserMessage records a message typed by the user and marks a response
// as outstanding. Input that is blank after trimming is rejected with
// ErrEmptyMessage and leaves the conversation untouched.
func (s *Store) AppendUserMessage(text string) (chat.Message, error) {
	if strings.TrimSpace(text) == "" {
		return chat.Message{}, ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msg := s.append(text, chat.SenderUser)
	s.typing = true
	return msg, nil
}

// AppendBotMessage records a reply from the remote service and clears the
// typing flag. The text must already be in canonical string form.
func (s *Store) AppendBotMessage(text string) chat.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := s.append(text, chat.SenderBot)
	s.typing = false
	return msg
}

func (s *Store) append(text string, sender chat.Sender) chat.Message {
	s.nextID++
	msg := chat.Message{
		ID:        s.nextID,
		Text:      text,
		Sender:    sender,
		Timestamp: time.Now().Format(clockFormat),
	}
	s.log = append(s.log, msg)
	return msg
}

// Snapshot returns a read-only copy of the conversation for rendering.
func (s *Store) Snapshot() chat.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	log := make([]chat.Message, len(s.log))
	copy(log, s.log)
	return chat.Conversation{Log: log, Typing: s.typing}
}
