// Package lightbox implements the overlay image viewer for a project's
// gallery: a flat, ordered image sequence that can be opened at any
// index, stepped through circularly and closed.
package lightbox

import (
	"errors"
	"fmt"

	"github.com/mlm272/maggiemayer-portfolio/internal/media"
)

// ErrIndexOutOfRange is returned when opening at an index outside the sequence
var ErrIndexOutOfRange = errors.New("image index out of range")

// Keys handled by HandleKey
const (
	KeyEscape     = "Escape"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
)

// Session is the lightbox state for one mounted detail view.
// It is not safe for concurrent use; the owning view serializes access.
type Session struct {
	images []string
	index  int
	path   string
	open   bool
}

// State is a snapshot of the session for rendering
type State struct {
	Open         bool   `json:"open"`
	Index        int    `json:"index"`
	Path         string `json:"path,omitempty"`
	Total        int    `json:"total"`
	ShowControls bool   `json:"show_controls"`
}

// New returns a closed session over images
func New(images []string) *Session {
	return &Session{images: images}
}

// Open shows the image at flat index i
func (s *Session) Open(i int) error {
	if i < 0 || i >= len(s.images) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(s.images))
	}
	s.show(i)
	return nil
}

// Next advances to the following image, wrapping at the end
func (s *Session) Next() {
	if !s.open {
		return
	}
	s.show((s.index + 1) % len(s.images))
}

// Previous steps back one image, wrapping at the start
func (s *Session) Previous() {
	if !s.open {
		return
	}
	n := len(s.images)
	s.show((s.index - 1 + n) % n)
}

// Close hides the lightbox
func (s *Session) Close() {
	s.open = false
	s.path = ""
}

// HandleKey applies a keyboard event. It reports whether the key caused
// a transition.
func (s *Session) HandleKey(key string) bool {
	if !s.open {
		return false
	}
	switch key {
	case KeyEscape:
		s.Close()
	case KeyArrowRight:
		s.Next()
	case KeyArrowLeft:
		s.Previous()
	default:
		return false
	}
	return true
}

// IsOpen reports whether an image is displayed
func (s *Session) IsOpen() bool {
	return s.open
}

// Index returns the current flat index. It is only meaningful while open.
func (s *Session) Index() int {
	return s.index
}

// CurrentPath returns the resolved source of the shown image and false
// when closed.
func (s *Session) CurrentPath() (string, bool) {
	return s.path, s.open
}

// Len returns the number of images in the sequence
func (s *Session) Len() int {
	return len(s.images)
}

// ShowControls reports whether previous/next controls are rendered
func (s *Session) ShowControls() bool {
	return len(s.images) > 1
}

// State returns a snapshot for templates and JSON responses
func (s *Session) State() State {
	st := State{
		Open:         s.open,
		Total:        len(s.images),
		ShowControls: s.ShowControls(),
	}
	if s.open {
		st.Index = s.index
		st.Path = s.path
	}
	return st
}

// show is the single entry into the open state; the stored path is
// never used as a source without resolving it first.
func (s *Session) show(i int) {
	s.index = i
	s.path = media.Resolve(s.images[i])
	s.open = true
}
