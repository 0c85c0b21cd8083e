package chat

import "time"

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// ClockLayout renders timestamps as en-US 12-hour clock with two-digit fields.
const ClockLayout = "03:04 PM"

// Message is a single transcript turn. It is never mutated after creation.
type Message struct {
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage stamps a message with the supplied instant.
func NewMessage(text string, sender Sender, at time.Time) Message {
	return Message{Text: text, Sender: sender, Timestamp: at}
}

// Clock returns the bubble time label, e.g. "03:07 PM".
func (m Message) Clock() string {
	return FormatClock(m.Timestamp)
}

// FormatClock formats t in the local zone using ClockLayout.
func FormatClock(t time.Time) string {
	return t.Local().Format(ClockLayout)
}
