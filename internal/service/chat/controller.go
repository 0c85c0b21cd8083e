package chat

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/zhouzirui/querydesk/backend/internal/analysis/responder"
	"github.com/zhouzirui/querydesk/backend/internal/model/chat"
)

// State is the page-level application state.
type State struct {
	ActiveSessionID  string `json:"activeSessionId,omitempty"`
	AwaitingResponse bool   `json:"awaitingResponse"`
}

// Homepage reports whether no session is active.
func (s State) Homepage() bool {
	return s.ActiveSessionID == ""
}

// Option customizes a Controller.
type Option func(*Controller)

// WithCapacity caps the session history.
func WithCapacity(capacity int) Option {
	return func(c *Controller) { c.store = NewStore(capacity) }
}

// WithScheduler replaces the timer used for simulated replies. Schedule must
// not invoke fn synchronously.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.scheduler = s }
}

// WithDelay sets the source of simulated thinking time.
func WithDelay(delay func() time.Duration) Option {
	return func(c *Controller) { c.delay = delay }
}

// WithClock overrides time.Now for message and session timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithIDGenerator overrides session id allocation.
func WithIDGenerator(newID func() string) Option {
	return func(c *Controller) { c.newID = newID }
}

// WithResponder overrides the reply generator.
func WithResponder(respond func(string) string) Option {
	return func(c *Controller) { c.respond = respond }
}

// WithLogger attaches a logger for diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

type pendingReply struct {
	sessionID string
	userText  string
	handle    Handle
}

// Controller owns one page's sessions and drives the view. All mutations and
// view calls are serialized behind mu, so a reply firing on a timer goroutine
// never interleaves with user commands.
type Controller struct {
	mu      sync.Mutex
	view    View
	store   *Store
	state   State
	counter int
	pending *pendingReply
	closed  bool

	scheduler Scheduler
	delay     func() time.Duration
	now       func() time.Time
	newID     func() string
	respond   func(string) string
	logger    zerolog.Logger
}

// NewController returns a controller in the homepage state. It renders
// nothing until the first command.
func NewController(view View, opts ...Option) *Controller {
	if view == nil {
		view = NopView{}
	}
	c := &Controller{
		view:      view,
		store:     NewStore(DefaultCapacity),
		counter:   1,
		scheduler: TimerScheduler{},
		delay:     UniformDelay(DefaultMinDelay, DefaultMaxDelay),
		now:       time.Now,
		newID:     newSessionID,
		respond:   responder.Generate,
		logger:    log.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return "chat_" + uuid.NewString()
	}
	return "chat_" + id.String()
}

// StartNewChat returns to the homepage without deleting any session.
func (c *Controller) StartNewChat() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.state.ActiveSessionID = ""
	c.showHomepage()
}

// SwitchSession makes id the active session and replays its transcript with
// the original timestamps. Unknown ids fall back to the homepage.
func (c *Controller) SwitchSession(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}

	session, ok := c.store.Get(id)
	if !ok {
		c.logger.Debug().Str("session", id).Msg("switch to unknown session, showing homepage")
		c.state.ActiveSessionID = ""
		c.showHomepage()
		return false
	}

	c.state.ActiveSessionID = id
	c.view.ClearTranscript()
	for _, msg := range session.Messages {
		c.view.RenderMessage(msg)
	}
	if c.pending != nil && c.pending.sessionID == id {
		c.view.ShowTypingIndicator()
	}
	return true
}

// RenameSession overwrites the title of id. Blank titles and unknown ids are
// ignored.
func (c *Controller) RenameSession(id, newTitle string) bool {
	title := strings.TrimSpace(newTitle)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}

	if title == "" {
		c.logger.Debug().Str("session", id).Msg("rename ignored: blank title")
		return false
	}
	if err := c.store.Rename(id, title); err != nil {
		c.logger.Debug().Err(err).Str("session", id).Msg("rename ignored")
		return false
	}

	c.view.RenameHistoryEntry(title, id)
	return true
}

// BeginRename asks the view to prompt for a new title of id.
func (c *Controller) BeginRename(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}

	session, ok := c.store.Get(id)
	if !ok {
		c.logger.Debug().Str("session", id).Msg("rename prompt ignored: unknown session")
		return false
	}
	c.view.PromptRename(id, session.Title)
	return true
}

// DeleteSession removes id. Deleting the active session returns to the
// homepage; unknown ids are ignored.
func (c *Controller) DeleteSession(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}

	if !c.store.Delete(id) {
		c.logger.Debug().Str("session", id).Msg("delete ignored: unknown session")
		return false
	}
	c.forget(id)
	return true
}

// Close cancels any pending reply. Later calls on the controller are ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.closed = true
	c.cancelPending()
}

// State returns a snapshot of the application state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Sessions returns snapshots of all sessions, most recent first.
func (c *Controller) Sessions() []chat.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Recent()
}

// Session returns a snapshot of one session.
func (c *Controller) Session(id string) (chat.Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	session, ok := c.store.Get(id)
	if !ok {
		return chat.Session{}, false
	}
	return session.Clone(), true
}

// createSessionFromHomepage allocates and activates a fresh session. Callers
// hold mu and have checked that no session is active.
func (c *Controller) createSessionFromHomepage() (string, error) {
	session := chat.NewSession(c.newID(), fmt.Sprintf("Query Session %d", c.counter), c.now())
	evicted, err := c.store.Insert(session)
	if err != nil {
		return "", fmt.Errorf("create session %s: %w", session.ID, err)
	}
	c.counter++

	c.state.ActiveSessionID = session.ID
	c.view.ClearTranscript()
	c.view.RenderHistoryEntry(session.Title, session.ID)

	for _, old := range evicted {
		c.logger.Info().Str("session", old.ID).Str("title", old.Title).Msg("evicted oldest session")
		c.forget(old.ID)
	}

	c.logger.Debug().Str("session", session.ID).Str("title", session.Title).Msg("session created")
	return session.ID, nil
}

// forget tears down view and pending state of a session already removed from
// the store.
func (c *Controller) forget(id string) {
	c.view.RemoveHistoryEntry(id)

	if c.pending != nil && c.pending.sessionID == id {
		c.logger.Debug().Str("session", id).Msg("dropping pending reply of removed session")
		if id == c.state.ActiveSessionID {
			c.view.HideTypingIndicator()
		}
		c.cancelPending()
	}

	if id == c.state.ActiveSessionID {
		c.state.ActiveSessionID = ""
		c.showHomepage()
	}
}

func (c *Controller) cancelPending() {
	if c.pending == nil {
		return
	}
	c.pending.handle.Stop()
	c.pending = nil
	c.state.AwaitingResponse = false
}

func (c *Controller) showHomepage() {
	c.view.ClearTranscript()
	c.view.RenderWelcome()
}
