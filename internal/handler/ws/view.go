package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/zhouzirui/querydesk/backend/internal/model/assistant"
	"github.com/zhouzirui/querydesk/backend/internal/model/chat"
)

// 出站消息类型
const (
	FrameConnected     = "connected"
	FrameMessage       = "message"
	FrameWelcome       = "welcome"
	FrameClear         = "clear"
	FrameHistoryAdd    = "history_add"
	FrameHistoryRename = "history_rename"
	FrameHistoryRemove = "history_remove"
	FrameTyping        = "typing"
	FrameRenamePrompt  = "rename_prompt"
	FrameError         = "error"
)

// OutgoingMessage 服务端下发的渲染指令
type OutgoingMessage struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// MessageFrame 单条消息气泡
type MessageFrame struct {
	Text      string      `json:"text"`
	Sender    chat.Sender `json:"sender"`
	Timestamp time.Time   `json:"timestamp"`
	Clock     string      `json:"clock"`
}

// socketView renders controller commands as JSON frames. Writes are
// serialized because replies arrive on timer goroutines.
type socketView struct {
	mu      sync.Mutex
	conn    *websocket.Conn
	profile assistant.Profile
	logger  zerolog.Logger
}

func newSocketView(conn *websocket.Conn, profile assistant.Profile, logger zerolog.Logger) *socketView {
	return &socketView{conn: conn, profile: profile, logger: logger}
}

func (v *socketView) RenderMessage(msg chat.Message) {
	v.send(FrameMessage, "", MessageFrame{
		Text:      msg.Text,
		Sender:    msg.Sender,
		Timestamp: msg.Timestamp,
		Clock:     msg.Clock(),
	})
}

func (v *socketView) RenderWelcome() {
	v.send(FrameWelcome, "", map[string]string{
		"heading": v.profile.Heading,
		"prompt":  v.profile.Prompt,
	})
}

func (v *socketView) ClearTranscript() {
	v.send(FrameClear, "", nil)
}

func (v *socketView) RenderHistoryEntry(title, sessionID string) {
	v.send(FrameHistoryAdd, sessionID, map[string]string{
		"title": title,
		"label": "Just now",
	})
}

func (v *socketView) RenameHistoryEntry(title, sessionID string) {
	v.send(FrameHistoryRename, sessionID, map[string]string{"title": title})
}

func (v *socketView) RemoveHistoryEntry(sessionID string) {
	v.send(FrameHistoryRemove, sessionID, nil)
}

func (v *socketView) ShowTypingIndicator() {
	v.send(FrameTyping, "", map[string]bool{"active": true})
}

func (v *socketView) HideTypingIndicator() {
	v.send(FrameTyping, "", map[string]bool{"active": false})
}

func (v *socketView) PromptRename(sessionID, currentTitle string) {
	v.send(FrameRenamePrompt, sessionID, map[string]string{"title": currentTitle})
}

func (v *socketView) sendConnected(pageID string) {
	v.send(FrameConnected, "", map[string]any{
		"pageId":    pageID,
		"assistant": v.profile,
	})
}

func (v *socketView) sendError(message string) {
	v.send(FrameError, "", map[string]string{"message": message})
}

func (v *socketView) send(kind, sessionID string, data interface{}) {
	msg := OutgoingMessage{
		Type:      kind,
		SessionID: sessionID,
		Data:      data,
		Timestamp: time.Now().Unix(),
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	_ = v.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := writeJSON(v.conn, msg); err != nil {
		v.logger.Debug().Err(err).Str("frame", kind).Msg("[websocket] write failed")
	}
}

func (v *socketView) ping() error {
	return v.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// writeJSON keeps <, > and & unescaped so SQL snippets reach the page verbatim.
func writeJSON(conn *websocket.Conn, v interface{}) error {
	w, err := conn.NextWriter(websocket.TextMessage)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return w.Close()
}
