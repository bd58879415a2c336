package domain

import "time"

// InboundMessage is the raw message shape delivered by the transport
// collaborator. SentAt is optional; messages without it are still processed
// but excluded from peak-time calculation.
type InboundMessage struct {
	Username string     `json:"username"`
	Text     string     `json:"message"`
	SentAt   *time.Time `json:"timestamp,omitempty"`
}

// Valid reports whether the message carries the required fields. Malformed
// messages are dropped from the batch, never failed on.
func (m InboundMessage) Valid() bool {
	return m.Username != "" && m.Text != ""
}

// Message is a processed chat message as held in the session log. Immutable
// once created; ID is the assignment-order index within the session and is
// never reused.
type Message struct {
	ID         int        `json:"id"`
	Username   string     `json:"username"`
	Text       string     `json:"message"`
	ReceivedAt time.Time  `json:"timestamp"`
	SentAt     *time.Time `json:"sent_at,omitempty"`
	HasEmoji   bool       `json:"has_emoji"`
	Tags       []string   `json:"tags"`
	Emojis     []string   `json:"-"`
	Moods      []Mood     `json:"-"`
}
