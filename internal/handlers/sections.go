package handlers

import (
	"math"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/mlm272/maggiemayer-portfolio/internal/metrics"
	"github.com/mlm272/maggiemayer-portfolio/internal/render"
	"github.com/mlm272/maggiemayer-portfolio/internal/sections"
	"github.com/mlm272/maggiemayer-portfolio/internal/session"
)

// SectionHandler updates the active navigation section
type SectionHandler struct {
	views    *session.Store
	renderer *render.Renderer
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewSectionHandler creates a new SectionHandler
func NewSectionHandler(views *session.Store, rd *render.Renderer, m *metrics.Metrics, logger *zap.Logger) *SectionHandler {
	return &SectionHandler{views: views, renderer: rd, metrics: m, logger: logger}
}

type sectionResponse struct {
	Active  sections.Section `json:"active"`
	Changed bool             `json:"changed"`
}

// Observe handles POST /sections/observe with form values section and ratio
func (h *SectionHandler) Observe(w http.ResponseWriter, r *http.Request) {
	section, err := sections.Parse(r.FormValue("section"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	ratio, err := strconv.ParseFloat(r.FormValue("ratio"), 64)
	if err != nil || math.IsNaN(ratio) || ratio < 0 || ratio > 1 {
		respondError(w, http.StatusBadRequest, "ratio must be between 0 and 1")
		return
	}

	h.update(w, r, func(t *sections.Tracker) { t.Observe(section, ratio) })
}

// Select handles POST /sections/select, used by navigation clicks
func (h *SectionHandler) Select(w http.ResponseWriter, r *http.Request) {
	section, err := sections.Parse(r.FormValue("section"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.update(w, r, func(t *sections.Tracker) { t.Set(section) })
}

func (h *SectionHandler) update(w http.ResponseWriter, r *http.Request, fn func(*sections.Tracker)) {
	view := h.views.Get(w, r)

	var before sections.Section
	active := view.Sections(func(t *sections.Tracker) {
		before = t.Active()
		fn(t)
	})
	changed := active != before
	if changed {
		h.metrics.SectionChanges.WithLabelValues(string(active)).Inc()
	}

	if wantsJSON(r) {
		respondJSON(w, http.StatusOK, sectionResponse{Active: active, Changed: changed})
		return
	}
	respondHTML(w, r, h.renderer, h.logger, http.StatusOK, "nav", view.Nav())
}
