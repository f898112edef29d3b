package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	chathandler "github.com/tecnologiawebnetsystem/casa-decoracao-chat/internal/handler/chat"
	ruleshandler "github.com/tecnologiawebnetsystem/casa-decoracao-chat/internal/handler/rules"
	"github.com/tecnologiawebnetsystem/casa-decoracao-chat/internal/handler/stream"
	"github.com/tecnologiawebnetsystem/casa-decoracao-chat/internal/handler/ws"
	rulesmodel "github.com/tecnologiawebnetsystem/casa-decoracao-chat/internal/model/rules"
	chatservice "github.com/tecnologiawebnetsystem/casa-decoracao-chat/internal/service/chat"
	"github.com/tecnologiawebnetsystem/casa-decoracao-chat/internal/service/reply"
	"github.com/tecnologiawebnetsystem/casa-decoracao-chat/pkg/logger"
	"github.com/tecnologiawebnetsystem/casa-decoracao-chat/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(engine *reply.Engine, table rulesmodel.Store, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler)

	chatHandler := chathandler.New(engine)
	rulesHandler := ruleshandler.New(table)
	streamHandler := stream.New(engine)
	wsHandler := ws.New(engine)

	r.Route("/api", func(api chi.Router) {
		chatHandler.RegisterRoutes(api)
		rulesHandler.RegisterRoutes(api)
		wsHandler.RegisterRoutes(api)

		api.Get("/sessions/{sessionID}/stream", func(w http.ResponseWriter, r *http.Request) {
			sessionID := chi.URLParam(r, "sessionID")
			userMessage := r.URL.Query().Get("message")

			err := streamHandler.HandleStreamRequest(r.Context(), w, sessionID, userMessage)
			switch {
			case err == nil:
			case errors.Is(err, chatservice.ErrSessionNotFound):
				utils.RespondError(w, http.StatusNotFound, "session not found")
			default:
				logger.Log.Errorf("stream request failed for session %s: %v", sessionID, err)
			}
		})
	})

	return r
}
