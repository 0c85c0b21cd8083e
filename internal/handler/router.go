package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zhouzirui/querydesk/backend/internal/handler/assistant"
	"github.com/zhouzirui/querydesk/backend/internal/handler/chat"
	"github.com/zhouzirui/querydesk/backend/internal/handler/ws"
	middlewarePkg "github.com/zhouzirui/querydesk/backend/internal/middleware"
	assistantModel "github.com/zhouzirui/querydesk/backend/internal/model/assistant"
	chatService "github.com/zhouzirui/querydesk/backend/internal/service/chat"
	"github.com/zhouzirui/querydesk/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services. chatOpts configure the
// controller created for every websocket page.
func NewRouter(profile assistantModel.Profile, allowedOrigins []string, chatOpts ...chatService.Option) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(allowedOrigins))

	assistantHandler := assistant.New(profile)
	chatHandler := chat.New()
	wsHandler := ws.New(profile, allowedOrigins, chatOpts...)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		assistantHandler.RegisterRoutes(api)
		chatHandler.RegisterRoutes(api)
		wsHandler.RegisterRoutes(api)
	})

	return r
}
