package session

import (
	"sync"
	"time"
)

// Message is one line of a session's chat transcript.
type Message struct {
	Role string    `json:"role"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// Transcript is the append-only notification sink of a session.
type Transcript struct {
	mu       sync.Mutex
	messages []Message
	now      func() time.Time
}

func newTranscript() *Transcript {
	return &Transcript{now: time.Now}
}

// AddMessage appends a message. It implements wireframe.Notifier.
func (t *Transcript) AddMessage(role, text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = append(t.messages, Message{Role: role, Text: text, At: t.now()})
}

// Messages returns a copy of the transcript.
func (t *Transcript) Messages() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.messages)
}
