package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mlm272/maggiemayer-portfolio/internal/models"
	"github.com/mlm272/maggiemayer-portfolio/internal/services"
)

// ProjectHandler handles project-related endpoints
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(ps *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: ps}
}

// ListProjects handles GET /api/projects?category=&featured=
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if featured, _ := strconv.ParseBool(r.URL.Query().Get("featured")); featured {
		if category == "" {
			category = string(models.CategoryAll)
		}
		projects, err := h.projectService.Showcase(category)
		if errors.Is(err, models.ErrUnknownCategory) {
			respondError(w, http.StatusBadRequest, "Unknown category")
			return
		}
		respondJSON(w, http.StatusOK, projects)
		return
	}
	if category == "" {
		respondJSON(w, http.StatusOK, h.projectService.GetAll())
		return
	}

	projects, err := h.projectService.FilterByCategory(category)
	if errors.Is(err, models.ErrUnknownCategory) {
		respondError(w, http.StatusBadRequest, "Unknown category")
		return
	}
	respondJSON(w, http.StatusOK, projects)
}

// GetProject handles GET /api/projects/{slug}. A numeric key is also
// accepted as a project id.
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	project, err := h.projectService.FindBySlug(slug)
	if id, convErr := strconv.Atoi(slug); err != nil && convErr == nil {
		project, err = h.projectService.GetByID(id)
	}
	if err != nil {
		respondError(w, http.StatusNotFound, "Project not found")
		return
	}

	respondJSON(w, http.StatusOK, project)
}
