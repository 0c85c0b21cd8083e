package chat

import (
	"errors"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/zhouzirui/querydesk/backend/internal/model/chat"
)

// DefaultCapacity is the number of sessions kept in history.
const DefaultCapacity = 10

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExists   = errors.New("session already exists")
)

// Store keeps sessions in insertion order and evicts the oldest entry once it
// grows past its capacity. Store is not safe for concurrent use; the
// Controller owning it serializes access.
type Store struct {
	capacity int
	sessions *orderedmap.OrderedMap[string, *chat.Session]
}

// NewStore returns an empty store. A non-positive capacity selects
// DefaultCapacity.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		capacity: capacity,
		sessions: orderedmap.New[string, *chat.Session](),
	}
}

// Capacity reports the eviction threshold.
func (s *Store) Capacity() int {
	return s.capacity
}

// Insert adds session as the most recent entry and returns the sessions
// evicted to stay within capacity, oldest first.
func (s *Store) Insert(session *chat.Session) ([]*chat.Session, error) {
	if _, ok := s.sessions.Get(session.ID); ok {
		return nil, ErrSessionExists
	}
	s.sessions.Set(session.ID, session)

	var evicted []*chat.Session
	for s.sessions.Len() > s.capacity {
		oldest := s.sessions.Oldest()
		s.sessions.Delete(oldest.Key)
		evicted = append(evicted, oldest.Value)
	}
	return evicted, nil
}

// Get looks up a session by id.
func (s *Store) Get(id string) (*chat.Session, bool) {
	return s.sessions.Get(id)
}

// Delete removes a session and reports whether it existed.
func (s *Store) Delete(id string) bool {
	_, ok := s.sessions.Delete(id)
	return ok
}

// Rename overwrites the title of an existing session in place.
func (s *Store) Rename(id, title string) error {
	session, ok := s.sessions.Get(id)
	if !ok {
		return ErrSessionNotFound
	}
	session.Title = title
	return nil
}

// Len reports how many sessions are stored.
func (s *Store) Len() int {
	return s.sessions.Len()
}

// Recent returns snapshots of all sessions, most recently added first.
func (s *Store) Recent() []chat.Session {
	out := make([]chat.Session, 0, s.sessions.Len())
	for pair := s.sessions.Newest(); pair != nil; pair = pair.Prev() {
		out = append(out, pair.Value.Clone())
	}
	return out
}
