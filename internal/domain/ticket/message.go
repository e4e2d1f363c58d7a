package ticket

import (
	"fmt"
	"strings"
	"time"
)

// Message is one chat entry on a ticket.
type Message struct {
	author    string
	createdAt time.Time
	text      string
}

// NewMessage trims text and rejects it when nothing is left.
func NewMessage(author, text string, createdAt time.Time) (*Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("message text is required")
	}

	return &Message{
		author:    author,
		createdAt: createdAt.Truncate(time.Minute),
		text:      text,
	}, nil
}

// ReconstructMessage rebuilds a stored message without validation.
func ReconstructMessage(author, text string, createdAt time.Time) *Message {
	return &Message{
		author:    author,
		createdAt: createdAt,
		text:      text,
	}
}

func (m *Message) Author() string {
	return m.author
}

func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}

func (m *Message) Text() string {
	return m.text
}
