package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/zhouzirui/querydesk/backend/internal/middleware"
	"github.com/zhouzirui/querydesk/backend/internal/model/assistant"
	chatservice "github.com/zhouzirui/querydesk/backend/internal/service/chat"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	writeWait  = 10 * time.Second
)

// 入站消息类型
const (
	TypeSend        = "send"
	TypeNewChat     = "new_chat"
	TypeSwitch      = "switch"
	TypeBeginRename = "begin_rename"
	TypeRename      = "rename"
	TypeDelete      = "delete"
)

var errMissingData = errors.New("missing data")

var _ chatservice.View = (*socketView)(nil)

// Handler 为每个WebSocket连接维护一个独立的聊天页面
type Handler struct {
	profile  assistant.Profile
	options  []chatservice.Option
	upgrader websocket.Upgrader
}

// New 创建WebSocket处理器。options 会应用到每个连接的 Controller。
func New(profile assistant.Profile, allowedOrigins []string, options ...chatservice.Option) *Handler {
	return &Handler{
		profile: profile.Clone(),
		options: options,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || middleware.OriginAllowed(allowedOrigins, origin)
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册WebSocket路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws", h.handleWebSocket)
}

type inboundMessage struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId"`
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

// SendPayload 发送消息的数据
type SendPayload struct {
	Text string `json:"text"`
}

// RenamePayload 重命名的数据
type RenamePayload struct {
	Title string `json:"title"`
}

// handleWebSocket 处理WebSocket连接
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("[websocket] upgrade failed")
		return
	}
	defer conn.Close()

	pageID := uuid.NewString()
	logger := log.With().Str("page", pageID).Logger()
	view := newSocketView(conn, h.profile, logger)

	ctrl := chatservice.NewController(view, append(append([]chatservice.Option(nil), h.options...), chatservice.WithLogger(logger))...)
	defer ctrl.Close()

	logger.Info().Str("remote", r.RemoteAddr).Msg("[websocket] page connected")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	go h.pingLoop(ctx, view)

	view.sendConnected(pageID)
	ctrl.StartNewChat()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn().Err(err).Msg("[websocket] read error")
			}
			logger.Info().Msg("[websocket] page disconnected")
			return
		}

		conn.SetReadDeadline(time.Now().Add(pongWait))

		var msg inboundMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			view.sendError("invalid message")
			continue
		}
		h.handleMessage(ctrl, view, &msg)
	}
}

func (h *Handler) handleMessage(ctrl *chatservice.Controller, view *socketView, msg *inboundMessage) {
	switch msg.Type {
	case TypeSend:
		var payload SendPayload
		if err := decodeData(msg.Data, &payload); err != nil {
			view.sendError("invalid send payload")
			return
		}
		ctrl.SubmitUserMessage(payload.Text)
	case TypeNewChat:
		ctrl.StartNewChat()
	case TypeSwitch:
		ctrl.SwitchSession(msg.SessionID)
	case TypeBeginRename:
		ctrl.BeginRename(msg.SessionID)
	case TypeRename:
		var payload RenamePayload
		if err := decodeData(msg.Data, &payload); err != nil {
			view.sendError("invalid rename payload")
			return
		}
		ctrl.RenameSession(msg.SessionID, payload.Title)
	case TypeDelete:
		ctrl.DeleteSession(msg.SessionID)
	default:
		view.sendError("unsupported message type: " + msg.Type)
	}
}

func decodeData(raw json.RawMessage, out any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return errMissingData
	}
	return json.Unmarshal(raw, out)
}

// pingLoop 定期发送ping消息
func (h *Handler) pingLoop(ctx context.Context, view *socketView) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := view.ping(); err != nil {
				return
			}
		}
	}
}
