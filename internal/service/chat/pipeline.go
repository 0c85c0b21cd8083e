package chat

import (
	"strings"

	"github.com/zhouzirui/querydesk/backend/internal/model/chat"
)

// SubmitUserMessage appends text to the active session, creating one when on
// the homepage, and schedules the assistant reply. Blank text and submissions
// while a reply is pending are rejected without side effects.
func (c *Controller) SubmitUserMessage(text string) bool {
	trimmed := strings.TrimSpace(text)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}

	if trimmed == "" {
		c.logger.Debug().Msg("submit ignored: blank message")
		return false
	}
	if c.state.AwaitingResponse {
		c.logger.Debug().Msg("submit ignored: awaiting response")
		return false
	}

	if c.state.Homepage() {
		if _, err := c.createSessionFromHomepage(); err != nil {
			c.logger.Warn().Err(err).Msg("submit aborted")
			return false
		}
	}

	session, ok := c.store.Get(c.state.ActiveSessionID)
	if !ok {
		c.logger.Warn().Str("session", c.state.ActiveSessionID).Msg("active session missing from store")
		c.state.ActiveSessionID = ""
		c.showHomepage()
		return false
	}

	msg := chat.NewMessage(trimmed, chat.SenderUser, c.now())
	session.Append(msg)
	c.view.RenderMessage(msg)

	c.state.AwaitingResponse = true
	c.view.ShowTypingIndicator()

	delay := c.delay()
	reply := &pendingReply{sessionID: session.ID, userText: trimmed}
	c.pending = reply
	reply.handle = c.scheduler.Schedule(delay, func() { c.deliver(reply) })

	c.logger.Debug().Str("session", session.ID).Dur("delay", delay).Msg("reply scheduled")
	return true
}

// deliver appends the reply to the session it was requested from, rendering
// it only when that session is still on screen.
func (c *Controller) deliver(reply *pendingReply) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending != reply {
		c.logger.Debug().Str("session", reply.sessionID).Msg("stale reply discarded")
		return
	}
	c.pending = nil
	c.state.AwaitingResponse = false

	session, ok := c.store.Get(reply.sessionID)
	if !ok {
		c.logger.Debug().Str("session", reply.sessionID).Msg("reply dropped: session gone")
		return
	}

	msg := chat.NewMessage(c.respond(reply.userText), chat.SenderAssistant, c.now())
	session.Append(msg)

	if c.state.ActiveSessionID == reply.sessionID {
		c.view.HideTypingIndicator()
		c.view.RenderMessage(msg)
	}
}
