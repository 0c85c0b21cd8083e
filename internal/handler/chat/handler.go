package chat

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/zhouzirui/querydesk/backend/internal/analysis/responder"
	"github.com/zhouzirui/querydesk/backend/pkg/utils"
)

// Handler 无状态回复预览的HTTP处理器
type Handler struct {
	respond func(string) string
}

// New 创建聊天处理器
func New() *Handler {
	return &Handler{respond: responder.Generate}
}

// RegisterRoutes 注册聊天相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/respond", h.handleRespond)
}

type respondRequest struct {
	Message string `json:"message"`
}

type respondResponse struct {
	Topic    responder.Topic `json:"topic"`
	Response string          `json:"response"`
}

// handleRespond 根据消息内容返回预设回复，不创建会话
func (h *Handler) handleRespond(w http.ResponseWriter, r *http.Request) {
	var payload respondRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message := strings.TrimSpace(payload.Message)
	if message == "" {
		utils.RespondError(w, http.StatusBadRequest, "message is required")
		return
	}

	topic := responder.TopicDefault
	if rule, ok := responder.Match(message); ok {
		topic = rule.Topic
	}

	log.Debug().Str("topic", string(topic)).Msg("respond preview")
	utils.RespondJSON(w, http.StatusOK, respondResponse{
		Topic:    topic,
		Response: h.respond(message),
	})
}
