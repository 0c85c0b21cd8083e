package assistant

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/querydesk/backend/internal/analysis/responder"
	"github.com/zhouzirui/querydesk/backend/internal/model/assistant"
	"github.com/zhouzirui/querydesk/backend/pkg/utils"
)

// Handler 助手资料与话题目录的HTTP处理器
type Handler struct {
	profile assistant.Profile
}

// New 创建助手处理器
func New(profile assistant.Profile) *Handler {
	return &Handler{profile: profile.Clone()}
}

// RegisterRoutes 注册助手相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/assistant", h.handleProfile)
	r.Get("/topics", h.handleTopics)
}

// handleProfile 返回助手资料
func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.profile.Clone())
}

// handleTopics 按匹配顺序列出关键词规则
func (h *Handler) handleTopics(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, responder.Rules())
}
