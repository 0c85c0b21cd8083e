package chat_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/querydesk/backend/internal/analysis/responder"
	model "github.com/zhouzirui/querydesk/backend/internal/model/chat"
	chat "github.com/zhouzirui/querydesk/backend/internal/service/chat"
)

func senders(messages []model.Message) []model.Sender {
	out := make([]model.Sender, 0, len(messages))
	for _, msg := range messages {
		out = append(out, msg.Sender)
	}
	return out
}

func TestSubmitFromHomepageCreatesSession(t *testing.T) {
	h := newHarness()

	require.True(t, h.ctrl.SubmitUserMessage("  hello  "))

	state := h.ctrl.State()
	assert.Equal(t, "chat_1", state.ActiveSessionID)
	assert.True(t, state.AwaitingResponse)

	session, ok := h.ctrl.Session("chat_1")
	require.True(t, ok)
	assert.Equal(t, "Query Session 1", session.Title)
	require.Len(t, session.Messages, 1)
	assert.Equal(t, "hello", session.Messages[0].Text)

	require.Len(t, h.sched.Tasks(), 1)
	assert.Equal(t, 1500*time.Millisecond, h.sched.Tasks()[0].delay)

	require.Equal(t, 1, h.sched.FireAll())

	assert.False(t, h.ctrl.State().AwaitingResponse)
	session, _ = h.ctrl.Session("chat_1")
	if diff := cmp.Diff([]model.Sender{model.SenderUser, model.SenderAssistant}, senders(session.Messages)); diff != "" {
		t.Fatalf("unexpected transcript (-want +got):\n%s", diff)
	}
	assert.Equal(t, responder.HelloResponse, session.Messages[1].Text)

	want := []string{
		"clear",
		"history add chat_1 Query Session 1",
		"message user: hello",
		"typing on",
		"typing off",
		"message assistant: " + responder.HelloResponse,
	}
	if diff := cmp.Diff(want, h.view.Events()); diff != "" {
		t.Fatalf("unexpected render commands (-want +got):\n%s", diff)
	}
}

func TestSubmitRejectsBlankText(t *testing.T) {
	h := newHarness()

	assert.False(t, h.ctrl.SubmitUserMessage(""))
	assert.False(t, h.ctrl.SubmitUserMessage(" \n\t "))

	assert.True(t, h.ctrl.State().Homepage())
	assert.Empty(t, h.ctrl.Sessions())
	assert.Empty(t, h.view.Events())
}

func TestSubmitRejectedWhileAwaitingResponse(t *testing.T) {
	h := newHarness()

	require.True(t, h.ctrl.SubmitUserMessage("first"))
	assert.False(t, h.ctrl.SubmitUserMessage("second"))

	session, _ := h.ctrl.Session("chat_1")
	assert.Len(t, session.Messages, 1)
	assert.Len(t, h.sched.Tasks(), 1)

	h.sched.FireAll()
	require.True(t, h.ctrl.SubmitUserMessage("second"))
	session, _ = h.ctrl.Session("chat_1")
	assert.Len(t, session.Messages, 3)
}

func TestEachSubmitYieldsUserThenAssistant(t *testing.T) {
	h := newHarness()

	for _, text := range []string{"SQL query", "xyz", "what can you do", "optimize cost"} {
		require.True(t, h.ctrl.SubmitUserMessage(text))
		require.Equal(t, 1, h.sched.FireAll())
	}

	session, _ := h.ctrl.Session("chat_1")
	require.Len(t, session.Messages, 8)
	for i := 0; i < len(session.Messages); i += 2 {
		assert.Equal(t, model.SenderUser, session.Messages[i].Sender)
		assert.Equal(t, model.SenderAssistant, session.Messages[i+1].Sender)
		assert.Equal(t, responder.Generate(session.Messages[i].Text), session.Messages[i+1].Text)
	}
}

func TestSessionTitlesFollowCounter(t *testing.T) {
	h := newHarness()

	for i := 0; i < 3; i++ {
		h.ctrl.StartNewChat()
		require.True(t, h.ctrl.SubmitUserMessage("hi"))
		h.sched.FireAll()
	}

	sessions := h.ctrl.Sessions()
	require.Len(t, sessions, 3)
	assert.Equal(t, "Query Session 3", sessions[0].Title)
	assert.Equal(t, "Query Session 2", sessions[1].Title)
	assert.Equal(t, "Query Session 1", sessions[2].Title)
}

func TestElevenSessionsEvictOldest(t *testing.T) {
	h := newHarness()

	for i := 0; i < 11; i++ {
		h.ctrl.StartNewChat()
		require.True(t, h.ctrl.SubmitUserMessage(fmt.Sprintf("message %d", i)))
		h.sched.FireAll()
	}

	sessions := h.ctrl.Sessions()
	require.Len(t, sessions, 10)
	assert.Equal(t, "chat_11", sessions[0].ID)
	assert.Equal(t, "chat_2", sessions[9].ID)

	_, ok := h.ctrl.Session("chat_1")
	assert.False(t, ok)
	assert.Contains(t, h.view.Events(), "history remove chat_1")
	assert.Equal(t, "chat_11", h.ctrl.State().ActiveSessionID)
}

func TestRenameBlankKeepsTitle(t *testing.T) {
	h := newHarness()
	require.True(t, h.ctrl.SubmitUserMessage("hello"))
	h.view.Reset()

	assert.False(t, h.ctrl.RenameSession("chat_1", ""))
	assert.False(t, h.ctrl.RenameSession("chat_1", "   "))

	session, _ := h.ctrl.Session("chat_1")
	assert.Equal(t, "Query Session 1", session.Title)
	assert.Empty(t, h.view.Events())
}

func TestRenameOverwritesTitleInPlace(t *testing.T) {
	h := newHarness()
	require.True(t, h.ctrl.SubmitUserMessage("hello"))
	h.sched.FireAll()
	h.ctrl.StartNewChat()
	require.True(t, h.ctrl.SubmitUserMessage("hi"))
	h.sched.FireAll()

	require.True(t, h.ctrl.RenameSession("chat_1", "  Revenue deep dive "))
	assert.False(t, h.ctrl.RenameSession("missing", "whatever"))

	sessions := h.ctrl.Sessions()
	require.Len(t, sessions, 2)
	assert.Equal(t, "chat_2", sessions[0].ID)
	assert.Equal(t, "Revenue deep dive", sessions[1].Title)
	assert.Len(t, sessions[1].Messages, 2)
	assert.Contains(t, h.view.Events(), "history rename chat_1 Revenue deep dive")
}

func TestBeginRenamePromptsWithCurrentTitle(t *testing.T) {
	h := newHarness()
	require.True(t, h.ctrl.SubmitUserMessage("hello"))

	assert.True(t, h.ctrl.BeginRename("chat_1"))
	assert.False(t, h.ctrl.BeginRename("missing"))
	assert.Contains(t, h.view.Events(), "prompt rename chat_1 Query Session 1")
}

func TestDeleteActiveSessionReturnsHome(t *testing.T) {
	h := newHarness()
	require.True(t, h.ctrl.SubmitUserMessage("hello"))
	h.sched.FireAll()
	h.view.Reset()

	require.True(t, h.ctrl.DeleteSession("chat_1"))

	assert.True(t, h.ctrl.State().Homepage())
	assert.Empty(t, h.ctrl.Sessions())
	assert.Equal(t, []string{"history remove chat_1", "clear", "welcome"}, h.view.Events())
}

func TestDeleteInactiveSessionKeepsActive(t *testing.T) {
	h := newHarness()
	require.True(t, h.ctrl.SubmitUserMessage("hello"))
	h.sched.FireAll()
	h.ctrl.StartNewChat()
	require.True(t, h.ctrl.SubmitUserMessage("hi"))
	h.sched.FireAll()

	require.True(t, h.ctrl.DeleteSession("chat_1"))
	assert.Equal(t, "chat_2", h.ctrl.State().ActiveSessionID)
	assert.Len(t, h.ctrl.Sessions(), 1)
}

func TestDeleteUnknownSessionIsNoop(t *testing.T) {
	h := newHarness()
	require.True(t, h.ctrl.SubmitUserMessage("hello"))
	h.view.Reset()

	assert.False(t, h.ctrl.DeleteSession("missing"))
	assert.Equal(t, "chat_1", h.ctrl.State().ActiveSessionID)
	assert.Empty(t, h.view.Events())
}

func TestSwitchReplaysOriginalTimestamps(t *testing.T) {
	clock := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	h := newHarness(chat.WithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}))

	require.True(t, h.ctrl.SubmitUserMessage("hello"))
	h.sched.FireAll()
	original, _ := h.ctrl.Session("chat_1")

	h.ctrl.StartNewChat()
	require.True(t, h.ctrl.SubmitUserMessage("hi"))
	h.sched.FireAll()
	h.view.Reset()

	require.True(t, h.ctrl.SwitchSession("chat_1"))
	assert.Equal(t, "chat_1", h.ctrl.State().ActiveSessionID)

	replayed, _ := h.ctrl.Session("chat_1")
	if diff := cmp.Diff(original.Messages, replayed.Messages); diff != "" {
		t.Fatalf("transcript changed on switch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{
		"clear",
		"message user: hello",
		"message assistant: " + responder.HelloResponse,
	}, h.view.Events())
}

func TestSwitchUnknownFallsBackToHomepage(t *testing.T) {
	h := newHarness()
	require.True(t, h.ctrl.SubmitUserMessage("hello"))
	h.sched.FireAll()
	h.view.Reset()

	assert.False(t, h.ctrl.SwitchSession("missing"))
	assert.True(t, h.ctrl.State().Homepage())
	assert.Equal(t, []string{"clear", "welcome"}, h.view.Events())
	assert.Len(t, h.ctrl.Sessions(), 1)
}

func TestStartNewChatIsIdempotent(t *testing.T) {
	h := newHarness()
	require.True(t, h.ctrl.SubmitUserMessage("hello"))
	h.sched.FireAll()

	h.ctrl.StartNewChat()
	first := h.ctrl.State()
	h.ctrl.StartNewChat()

	assert.Equal(t, first, h.ctrl.State())
	assert.True(t, first.Homepage())
	assert.Len(t, h.ctrl.Sessions(), 1)
}

func TestReplyLandsInOriginatingSessionAfterSwitch(t *testing.T) {
	h := newHarness()
	require.True(t, h.ctrl.SubmitUserMessage("hello"))
	h.sched.FireAll()
	h.ctrl.StartNewChat()
	require.True(t, h.ctrl.SubmitUserMessage("help"))

	require.True(t, h.ctrl.SwitchSession("chat_1"))
	h.view.Reset()
	require.Equal(t, 1, h.sched.FireAll())

	background, _ := h.ctrl.Session("chat_2")
	require.Len(t, background.Messages, 2)
	assert.Equal(t, responder.HelpResponse, background.Messages[1].Text)

	visible, _ := h.ctrl.Session("chat_1")
	assert.Len(t, visible.Messages, 2)

	assert.Empty(t, h.view.Events(), "reply for a background session must not render")
	assert.False(t, h.ctrl.State().AwaitingResponse)
}

func TestSwitchBackToPendingSessionShowsTyping(t *testing.T) {
	h := newHarness()
	require.True(t, h.ctrl.SubmitUserMessage("hello"))
	h.ctrl.StartNewChat()
	h.view.Reset()

	require.True(t, h.ctrl.SwitchSession("chat_1"))
	assert.Equal(t, []string{"clear", "message user: hello", "typing on"}, h.view.Events())
}

func TestReplyAfterStartNewChatStaysInSession(t *testing.T) {
	h := newHarness()
	require.True(t, h.ctrl.SubmitUserMessage("hello"))
	h.ctrl.StartNewChat()

	h.sched.FireAll()

	assert.True(t, h.ctrl.State().Homepage())
	session, _ := h.ctrl.Session("chat_1")
	assert.Len(t, session.Messages, 2)
}

func TestDeletingPendingSessionDropsReply(t *testing.T) {
	h := newHarness()
	require.True(t, h.ctrl.SubmitUserMessage("hello"))

	require.True(t, h.ctrl.DeleteSession("chat_1"))
	assert.False(t, h.ctrl.State().AwaitingResponse)
	assert.True(t, h.sched.Tasks()[0].stopped)
	assert.Zero(t, h.sched.FireAll())

	require.True(t, h.ctrl.SubmitUserMessage("hi again"))
	assert.Equal(t, "chat_2", h.ctrl.State().ActiveSessionID)
}

func TestEvictionRemovesHistoryEntryWithSmallCapacity(t *testing.T) {
	h := newHarness(chat.WithCapacity(2))

	for i := 0; i < 3; i++ {
		h.ctrl.StartNewChat()
		require.True(t, h.ctrl.SubmitUserMessage("hello"))
		h.sched.FireAll()
	}

	sessions := h.ctrl.Sessions()
	require.Len(t, sessions, 2)
	assert.Equal(t, []string{"chat_3", "chat_2"}, []string{sessions[0].ID, sessions[1].ID})
	assert.Contains(t, h.view.Events(), "history remove chat_1")
}

func TestCloseCancelsPendingReply(t *testing.T) {
	h := newHarness()
	require.True(t, h.ctrl.SubmitUserMessage("hello"))

	h.ctrl.Close()

	assert.Zero(t, h.sched.FireAll())
	assert.False(t, h.ctrl.SubmitUserMessage("after close"))
	session, _ := h.ctrl.Session("chat_1")
	assert.Len(t, session.Messages, 1)
}

func TestTimerSchedulerDeliversReply(t *testing.T) {
	view := &recordingView{}
	ctrl := chat.NewController(view, chat.WithDelay(func() time.Duration { return 5 * time.Millisecond }))
	defer ctrl.Close()

	require.True(t, ctrl.SubmitUserMessage("xyz"))
	require.Eventually(t, func() bool {
		return !ctrl.State().AwaitingResponse
	}, time.Second, 5*time.Millisecond)

	sessions := ctrl.Sessions()
	require.Len(t, sessions, 1)
	require.Len(t, sessions[0].Messages, 2)
	assert.Equal(t, responder.DefaultResponse, sessions[0].Messages[1].Text)
	assert.Contains(t, sessions[0].ID, "chat_")
}

func TestUniformDelayBounds(t *testing.T) {
	next := chat.UniformDelay(chat.DefaultMinDelay, chat.DefaultMaxDelay)
	for i := 0; i < 1000; i++ {
		d := next()
		require.GreaterOrEqual(t, d, chat.DefaultMinDelay)
		require.Less(t, d, chat.DefaultMaxDelay)
	}

	fixed := chat.UniformDelay(time.Second, time.Second)
	assert.Equal(t, time.Second, fixed())
}
