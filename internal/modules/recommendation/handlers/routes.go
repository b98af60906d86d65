package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all recommendation routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/recommendation", h.HandleRecommend)
	r.Post("/risk/score", h.HandleScore)

	r.Get("/universe", h.HandleGetUniverse)
	r.Get("/frontier", h.HandleGetFrontier)
	r.Get("/sensitivity", h.HandleGetSensitivity)
}
