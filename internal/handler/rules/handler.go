package rules

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	rulesmodel "github.com/tecnologiawebnetsystem/casa-decoracao-chat/internal/model/rules"
	"github.com/tecnologiawebnetsystem/casa-decoracao-chat/pkg/utils"
)

// Handler serves the static rule table for inspection.
type Handler struct {
	store rulesmodel.Store
}

// New creates the rules handler.
func New(store rulesmodel.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts the rule routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/rules", h.handleListRules)
}

func (h *Handler) handleListRules(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.List())
}
