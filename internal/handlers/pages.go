package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mlm272/maggiemayer-portfolio/internal/lightbox"
	"github.com/mlm272/maggiemayer-portfolio/internal/models"
	"github.com/mlm272/maggiemayer-portfolio/internal/render"
	"github.com/mlm272/maggiemayer-portfolio/internal/sections"
	"github.com/mlm272/maggiemayer-portfolio/internal/services"
	"github.com/mlm272/maggiemayer-portfolio/internal/session"
)

const siteDescription = "Creative and detail-oriented Front-End Developer & Digital Designer with 6+ years of experience crafting intuitive, user-centered digital experiences. Specializing in UX/UI design, web development, and educational product design."

// relatedLimit caps the related projects shown under a detail page
const relatedLimit = 3

// PageHandler serves the home, detail and not-found pages
type PageHandler struct {
	projectService   *services.ProjectService
	animationService *services.AnimationService
	views            *session.Store
	renderer         *render.Renderer
	logger           *zap.Logger
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(ps *services.ProjectService, as *services.AnimationService, views *session.Store, rd *render.Renderer, logger *zap.Logger) *PageHandler {
	return &PageHandler{
		projectService:   ps,
		animationService: as,
		views:            views,
		renderer:         rd,
		logger:           logger,
	}
}

// Home handles GET /
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	view := h.views.Get(w, r)
	page := render.HomePage{
		Page:   h.page(render.SiteTitle, view.Nav()),
		Work:   h.workGrid(r),
		Skills: render.Skills,
	}
	respondHTML(w, r, h.renderer, h.logger, http.StatusOK, "home", page)
}

// WorkGrid handles GET /work, the fragment behind the filter tabs
func (h *PageHandler) WorkGrid(w http.ResponseWriter, r *http.Request) {
	respondHTML(w, r, h.renderer, h.logger, http.StatusOK, "work_grid", h.workGrid(r))
}

// workGrid filters by the category query parameter. An unknown category
// shows everything rather than an empty gallery.
func (h *PageHandler) workGrid(r *http.Request) render.WorkGrid {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = string(models.CategoryAll)
	}

	projects, err := h.projectService.Showcase(category)
	if err != nil {
		h.logger.Debug("ignoring category filter", zap.String("category", category), zap.Error(err))
		category = string(models.CategoryAll)
		projects, _ = h.projectService.Showcase(category)
	}

	active := models.Category(category)
	return render.WorkGrid{
		Tabs:     h.projectService.Categories(active),
		Active:   active,
		Projects: projects,
	}
}

// Detail handles GET /work/{slug}
func (h *PageHandler) Detail(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	view := h.views.Get(w, r)

	project, err := h.projectService.FindBySlug(slug)
	if err != nil {
		page := render.NotFoundPage{
			Page:    h.page("Project Not Found | Maggie Mayer", view.Nav()),
			Heading: "Project Not Found",
			Message: "This project doesn't exist or may have been moved.",
			Slug:    slug,
		}
		respondHTML(w, r, h.renderer, h.logger, http.StatusNotFound, "notfound", page)
		return
	}

	// Entering a detail view always starts with the lightbox closed
	state := view.MountProject(project)

	animations := make([]services.AnimationResult, len(project.LottieAnimations))
	for i, id := range project.LottieAnimations {
		animations[i] = h.animationService.Placeholder(id)
	}

	page := render.DetailPage{
		Page:       h.page(project.Title+" | Maggie Mayer", view.Nav()),
		Project:    project,
		Hero:       render.HeroImage(project),
		Gallery:    lightbox.Gallery(project),
		Animations: animations,
		Related:    h.projectService.Related(project, relatedLimit),
		Lightbox:   render.NewLightboxView(project, state),
	}
	respondHTML(w, r, h.renderer, h.logger, http.StatusOK, "detail", page)
}

// NotFound handles unmatched routes
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	page := render.NotFoundPage{
		Page:    h.page("Page Not Found | Maggie Mayer", sections.NewTracker().Nav()),
		Heading: "404 - Page Not Found",
		Message: "The page you're looking for doesn't exist.",
	}
	respondHTML(w, r, h.renderer, h.logger, http.StatusNotFound, "notfound", page)
}

func (h *PageHandler) page(title string, nav []sections.NavItem) render.Page {
	return render.Page{
		Title:       title,
		Description: siteDescription,
		Nav:         nav,
		Year:        time.Now().Year(),
	}
}
