package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mlm272/maggiemayer-portfolio/internal/config"
	"github.com/mlm272/maggiemayer-portfolio/internal/metrics"
	"github.com/mlm272/maggiemayer-portfolio/internal/middleware"
	"github.com/mlm272/maggiemayer-portfolio/internal/render"
	"github.com/mlm272/maggiemayer-portfolio/internal/services"
	"github.com/mlm272/maggiemayer-portfolio/internal/session"
)

// assetDirs are the static root subdirectories stored media paths point into
var assetDirs = []string{"/images/*", "/pdfs/*", "/brand/*"}

// SetupRoutes configures all routes and returns the router
func SetupRoutes(cfg *config.Config, logger *zap.Logger, messages services.MessageStore) (http.Handler, error) {
	m := metrics.New()

	renderer, err := render.New(cfg.Server.BasePath)
	if err != nil {
		return nil, err
	}
	if cfg.Projects == nil {
		return nil, errors.New("no project table loaded")
	}

	// Initialize services
	projectService := services.NewProjectService(cfg.Projects)
	animationService := services.NewAnimationService(cfg.Static.Root, logger, m)

	var notifier services.Notifier
	if n := services.NewSMTPNotifier(cfg.SMTP); n != nil {
		notifier = n
	}
	contactService := services.NewContactService(messages, notifier, logger, m)
	views := session.NewStore(cfg.Session.Size, cfg.Session.TTL, cfg.Server.SecureCookies)

	// Initialize handlers
	pageHandler := NewPageHandler(projectService, animationService, views, renderer, logger)
	lightboxHandler := NewLightboxHandler(projectService, views, renderer, m, logger)
	sectionHandler := NewSectionHandler(views, renderer, m, logger)
	contactHandler := NewContactHandler(contactService, renderer, logger)
	projectHandler := NewProjectHandler(projectService)
	mediaHandler := NewMediaHandler(animationService)

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics(m))

	r.NotFound(pageHandler.NotFound)

	// Pages and fragments
	r.Get("/", pageHandler.Home)
	r.Get("/work", pageHandler.WorkGrid)
	r.Get("/work/{slug}", pageHandler.Detail)
	r.Post("/work/{slug}/lightbox/{action}", lightboxHandler.Action)
	r.Post("/sections/observe", sectionHandler.Observe)
	r.Post("/sections/select", sectionHandler.Select)
	contactLimit := middleware.RateLimit(cfg.Contact.RatePerMinute, cfg.Contact.Burst, cfg.Server.TrustProxy, logger, http.HandlerFunc(contactHandler.Limited))
	r.With(contactLimit).Post("/contact", contactHandler.Submit)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			respondError(w, http.StatusNotFound, "Not found")
		})

		// Project endpoints
		r.Get("/projects", projectHandler.ListProjects)
		r.Get("/projects/{slug}", projectHandler.GetProject)

		// Media endpoints
		r.Get("/animations/{id}", mediaHandler.Animation)
		r.Get("/media/fallbacks", mediaHandler.Fallbacks)

		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]any{
				"status":   "ok",
				"projects": len(projectService.GetAll()),
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	// Static files
	r.Handle("/assets/*", http.StripPrefix("/assets", http.FileServer(http.FS(render.Assets()))))
	fileServer := http.FileServer(http.Dir(cfg.Static.Root))
	for _, pattern := range assetDirs {
		r.Handle(pattern, fileServer)
	}

	if cfg.Server.BasePath != "" {
		return http.StripPrefix(cfg.Server.BasePath, r), nil
	}
	return r, nil
}

// wantsJSON reports whether the client asked for JSON instead of a fragment
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondHTML renders a page or fragment, falling back to a bare 500
func respondHTML(w http.ResponseWriter, r *http.Request, rd *render.Renderer, logger *zap.Logger, status int, name string, data any) {
	if err := rd.Write(w, status, name, data); err != nil {
		logger.Error("render failed",
			zap.String("template", name),
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
