package chat

import "time"

// Session is one conversation thread with its own transcript.
type Session struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewSession returns an empty session created at the given instant.
func NewSession(id, title string, createdAt time.Time) *Session {
	return &Session{
		ID:        id,
		Title:     title,
		Messages:  make([]Message, 0, 16),
		CreatedAt: createdAt,
	}
}

// Append adds msg to the end of the transcript.
func (s *Session) Append(msg Message) {
	s.Messages = append(s.Messages, msg)
}

// Clone returns a copy whose transcript can be read without holding locks.
func (s *Session) Clone() Session {
	copied := *s
	copied.Messages = make([]Message, len(s.Messages))
	copy(copied.Messages, s.Messages)
	return copied
}
