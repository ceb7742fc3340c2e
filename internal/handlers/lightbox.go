package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mlm272/maggiemayer-portfolio/internal/lightbox"
	"github.com/mlm272/maggiemayer-portfolio/internal/metrics"
	"github.com/mlm272/maggiemayer-portfolio/internal/render"
	"github.com/mlm272/maggiemayer-portfolio/internal/services"
	"github.com/mlm272/maggiemayer-portfolio/internal/session"
)

// LightboxHandler applies lightbox actions to the visitor's mounted project
type LightboxHandler struct {
	projectService *services.ProjectService
	views          *session.Store
	renderer       *render.Renderer
	metrics        *metrics.Metrics
	logger         *zap.Logger
}

// NewLightboxHandler creates a new LightboxHandler
func NewLightboxHandler(ps *services.ProjectService, views *session.Store, rd *render.Renderer, m *metrics.Metrics, logger *zap.Logger) *LightboxHandler {
	return &LightboxHandler{
		projectService: ps,
		views:          views,
		renderer:       rd,
		metrics:        m,
		logger:         logger,
	}
}

// Action handles POST /work/{slug}/lightbox/{action}
//
// Actions: open (form value index), next, prev, close, key (form value
// key). The response is the lightbox fragment, or the state as JSON when
// the client accepts it.
func (h *LightboxHandler) Action(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	action := chi.URLParam(r, "action")

	project, err := h.projectService.FindBySlug(slug)
	if err != nil {
		respondError(w, http.StatusNotFound, "Project not found")
		return
	}

	var apply func(*lightbox.Session) error
	switch action {
	case "open":
		index, err := strconv.Atoi(r.FormValue("index"))
		if err != nil {
			respondError(w, http.StatusBadRequest, "index must be an integer")
			return
		}
		apply = func(s *lightbox.Session) error { return s.Open(index) }
	case "next":
		apply = func(s *lightbox.Session) error { s.Next(); return nil }
	case "prev":
		apply = func(s *lightbox.Session) error { s.Previous(); return nil }
	case "close":
		apply = func(s *lightbox.Session) error { s.Close(); return nil }
	case "key":
		key := r.FormValue("key")
		apply = func(s *lightbox.Session) error { s.HandleKey(key); return nil }
	default:
		respondError(w, http.StatusNotFound, "Unknown lightbox action")
		return
	}

	view := h.views.Get(w, r)
	var before lightbox.State
	state, err := view.Lightbox(project, func(s *lightbox.Session) error {
		before = s.State()
		return apply(s)
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, lightbox.ErrIndexOutOfRange) {
			status = http.StatusBadRequest
		}
		respondError(w, status, err.Error())
		return
	}
	if state != before {
		h.metrics.LightboxTransitions.WithLabelValues(action).Inc()
	}

	if wantsJSON(r) {
		respondJSON(w, http.StatusOK, state)
		return
	}
	respondHTML(w, r, h.renderer, h.logger, http.StatusOK, "lightbox", render.NewLightboxView(project, state))
}
