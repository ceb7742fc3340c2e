package services

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mlm272/maggiemayer-portfolio/internal/config"
	"github.com/mlm272/maggiemayer-portfolio/internal/metrics"
	"github.com/mlm272/maggiemayer-portfolio/internal/models"
)

// ErrInvalidContact is returned when a submission fails validation
var ErrInvalidContact = errors.New("invalid contact submission")

const (
	maxNameLen    = 200
	maxEmailLen   = 254
	maxMessageLen = 5000
)

// MessageStore persists contact messages
type MessageStore interface {
	SaveMessage(ctx context.Context, m *models.ContactMessage) error
}

// Notifier forwards a stored message, e.g. by email
type Notifier interface {
	Notify(ctx context.Context, m *models.ContactMessage) error
}

// ContactService validates and records contact form submissions
type ContactService struct {
	store    MessageStore
	notifier Notifier
	logger   *zap.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewContactService creates a new ContactService. notifier may be nil.
func NewContactService(store MessageStore, notifier Notifier, logger *zap.Logger, m *metrics.Metrics) *ContactService {
	return &ContactService{
		store:    store,
		notifier: notifier,
		logger:   logger,
		metrics:  m,
		now:      time.Now,
	}
}

// Submit validates the form, stores it and sends a notification if one
// is configured. A failed notification is logged but does not fail the
// submission since the message is already stored.
func (s *ContactService) Submit(ctx context.Context, form models.ContactForm) (*models.ContactMessage, error) {
	msg, err := s.validate(form)
	if err != nil {
		s.metrics.ContactSubmissions.WithLabelValues("invalid").Inc()
		return nil, err
	}

	if err := s.store.SaveMessage(ctx, msg); err != nil {
		s.metrics.ContactSubmissions.WithLabelValues("error").Inc()
		return nil, err
	}
	s.metrics.ContactSubmissions.WithLabelValues("ok").Inc()
	s.logger.Info("contact message stored", zap.String("id", msg.ID))

	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, msg); err != nil {
			s.logger.Warn("contact notification failed", zap.String("id", msg.ID), zap.Error(err))
		}
	}
	return msg, nil
}

func (s *ContactService) validate(form models.ContactForm) (*models.ContactMessage, error) {
	name := strings.TrimSpace(form.Name)
	email := strings.TrimSpace(form.Email)
	message := strings.TrimSpace(form.Message)

	var problems []string
	switch {
	case name == "":
		problems = append(problems, "name is required")
	case utf8.RuneCountInString(name) > maxNameLen:
		problems = append(problems, "name is too long")
	case strings.ContainsAny(name, "\r\n"):
		problems = append(problems, "name is not valid")
	}
	switch {
	case email == "":
		problems = append(problems, "email is required")
	case len(email) > maxEmailLen || !validEmail(email):
		problems = append(problems, "email is not valid")
	}
	switch {
	case message == "":
		problems = append(problems, "message is required")
	case utf8.RuneCountInString(message) > maxMessageLen:
		problems = append(problems, "message is too long")
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidContact, strings.Join(problems, "; "))
	}

	return &models.ContactMessage{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Message:   message,
		CreatedAt: s.now(),
	}, nil
}

func validEmail(email string) bool {
	local, domain, ok := strings.Cut(email, "@")
	return ok && local != "" && strings.Contains(domain, ".") &&
		!strings.ContainsAny(email, " \r\n") && !strings.Contains(domain, "@")
}

// SMTPNotifier emails contact messages to the site owner
type SMTPNotifier struct {
	cfg  config.SMTPConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPNotifier returns nil when SMTP is not configured
func NewSMTPNotifier(cfg config.SMTPConfig) *SMTPNotifier {
	if !cfg.Enabled() {
		return nil
	}
	return &SMTPNotifier{cfg: cfg, send: smtp.SendMail}
}

// Notify sends one message
func (n *SMTPNotifier) Notify(ctx context.Context, m *models.ContactMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", n.cfg.User, n.cfg.Pass, n.cfg.Host)
	addr := n.cfg.Host + ":" + n.cfg.Port
	if err := n.send(addr, auth, n.cfg.User, []string{n.cfg.To}, n.compose(m)); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}

func (n *SMTPNotifier) compose(m *models.ContactMessage) []byte {
	var b strings.Builder
	b.WriteString("To: " + n.cfg.To + "\r\n")
	b.WriteString("From: " + n.cfg.User + "\r\n")
	b.WriteString("Reply-To: " + m.Email + "\r\n")
	b.WriteString("Subject: Portfolio Contact: " + m.Name + "\r\n")
	b.WriteString("\r\n")
	b.WriteString("New contact form submission from your portfolio:\r\n\r\n")
	b.WriteString("Name: " + m.Name + "\r\n")
	b.WriteString("Email: " + m.Email + "\r\n")
	b.WriteString("Message:\r\n" + m.Message + "\r\n")
	return []byte(b.String())
}
