package handlers

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/mlm272/maggiemayer-portfolio/internal/middleware"
	"github.com/mlm272/maggiemayer-portfolio/internal/models"
	"github.com/mlm272/maggiemayer-portfolio/internal/render"
	"github.com/mlm272/maggiemayer-portfolio/internal/services"
)

// maxContactBody bounds the form body
const maxContactBody = 64 << 10

// ContactHandler accepts contact form submissions
type ContactHandler struct {
	contactService *services.ContactService
	renderer       *render.Renderer
	logger         *zap.Logger
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(cs *services.ContactService, rd *render.Renderer, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{contactService: cs, renderer: rd, logger: logger}
}

type contactResponse struct {
	OK      bool   `json:"ok"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message"`
}

// Submit handles POST /contact
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxContactBody)
	if err := r.ParseForm(); err != nil {
		h.respond(w, r, http.StatusBadRequest, contactResponse{Message: "Could not read the form."})
		return
	}

	form := models.ContactForm{
		Name:    r.PostForm.Get("name"),
		Email:   r.PostForm.Get("email"),
		Message: r.PostForm.Get("message"),
	}

	msg, err := h.contactService.Submit(r.Context(), form)
	switch {
	case errors.Is(err, services.ErrInvalidContact):
		detail := strings.TrimPrefix(err.Error(), services.ErrInvalidContact.Error()+": ")
		h.respond(w, r, http.StatusUnprocessableEntity, contactResponse{Message: "Please check the form: " + detail + "."})
	case err != nil:
		h.logger.Error("contact submission failed",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err),
		)
		h.respond(w, r, http.StatusInternalServerError, contactResponse{
			Message: "Sorry, your message could not be sent. Please email maggielouisemayer@gmail.com directly.",
		})
	default:
		h.respond(w, r, http.StatusOK, contactResponse{OK: true, ID: msg.ID, Message: "Message Sent! ✓"})
	}
}

// Limited answers a throttled submission
func (h *ContactHandler) Limited(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, http.StatusTooManyRequests, contactResponse{
		Message: "Too many messages. Please wait a minute and try again.",
	})
}

func (h *ContactHandler) respond(w http.ResponseWriter, r *http.Request, status int, resp contactResponse) {
	if wantsJSON(r) {
		respondJSON(w, status, resp)
		return
	}
	respondHTML(w, r, h.renderer, h.logger, status, "contact_result", render.ContactResult{OK: resp.OK, Message: resp.Message})
}
