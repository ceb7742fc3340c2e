package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mlm272/maggiemayer-portfolio/internal/media"
	"github.com/mlm272/maggiemayer-portfolio/internal/services"
)

// MediaHandler serves animation data and asset URL helpers
type MediaHandler struct {
	animationService *services.AnimationService
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(as *services.AnimationService) *MediaHandler {
	return &MediaHandler{animationService: as}
}

// Animation handles GET /api/animations/{id}. A failed load is still a
// 200 with error set, so the card can show its fallback.
func (h *MediaHandler) Animation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	respondJSON(w, http.StatusOK, h.animationService.Load(r.Context(), id))
}

type fallbackStep struct {
	Strategy string `json:"strategy"`
	Src      string `json:"src"`
}

type fallbackResponse struct {
	Path     string         `json:"path"`
	Resolved string         `json:"resolved"`
	Chain    []fallbackStep `json:"chain"`
}

// Fallbacks handles GET /api/media/fallbacks?path=
func (h *MediaHandler) Fallbacks(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		respondError(w, http.StatusBadRequest, "path is required")
		return
	}

	resp := fallbackResponse{Path: path, Resolved: media.Resolve(path)}
	var attempted media.StrategySet
	for {
		src, s, ok := media.NextFallback(attempted, path)
		if !ok {
			break
		}
		resp.Chain = append(resp.Chain, fallbackStep{Strategy: s.String(), Src: src})
		attempted = attempted.With(s)
	}
	respondJSON(w, http.StatusOK, resp)
}
