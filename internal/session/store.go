// Package session keeps per-visitor view state: the active section of
// the home page and the lightbox of the mounted detail page.
package session

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/mlm272/maggiemayer-portfolio/internal/lightbox"
	"github.com/mlm272/maggiemayer-portfolio/internal/models"
	"github.com/mlm272/maggiemayer-portfolio/internal/sections"
)

// CookieName is the visitor cookie carrying the view id
const CookieName = "portfolio_view"

// View is one visitor's UI state. All access goes through its methods,
// which serialize on the view's mutex.
type View struct {
	ID string

	mu       sync.Mutex
	tracker  *sections.Tracker
	slug     string
	lightbox *lightbox.Session
}

func newView(id string) *View {
	return &View{ID: id, tracker: sections.NewTracker()}
}

// MountProject starts a fresh, closed lightbox for p. Mounting another
// project (navigating away) discards the previous lightbox.
func (v *View) MountProject(p *models.Project) lightbox.State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mountLocked(p).State()
}

func (v *View) mountLocked(p *models.Project) *lightbox.Session {
	v.slug = p.Slug
	v.lightbox = lightbox.New(p.AllImages())
	return v.lightbox
}

// Lightbox runs fn against the lightbox of p. If p is not the mounted
// project (for example the view expired) it is mounted first.
func (v *View) Lightbox(p *models.Project, fn func(*lightbox.Session) error) (lightbox.State, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	lb := v.lightbox
	if lb == nil || v.slug != p.Slug {
		lb = v.mountLocked(p)
	}
	err := fn(lb)
	return lb.State(), err
}

// Sections runs fn against the section tracker and returns the active
// section afterwards.
func (v *View) Sections(fn func(*sections.Tracker)) sections.Section {
	v.mu.Lock()
	defer v.mu.Unlock()
	if fn != nil {
		fn(v.tracker)
	}
	return v.tracker.Active()
}

// Nav returns the navigation links for the current active section
func (v *View) Nav() []sections.NavItem {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.tracker.Nav()
}

// Store holds views in an expiring LRU keyed by the visitor cookie
type Store struct {
	views  *expirable.LRU[string, *View]
	ttl    time.Duration
	secure bool
	mu     sync.Mutex
}

// NewStore creates a store keeping at most size views for ttl each
func NewStore(size int, ttl time.Duration, secure bool) *Store {
	if size <= 0 {
		size = 1024
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Store{
		views:  expirable.NewLRU[string, *View](size, nil, ttl),
		ttl:    ttl,
		secure: secure,
	}
}

// Get returns the visitor's view, creating it and setting the cookie
// when the request has none or it has expired.
func (s *Store) Get(w http.ResponseWriter, r *http.Request) *View {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, err := r.Cookie(CookieName); err == nil {
		if v, ok := s.views.Get(c.Value); ok {
			return v
		}
	}

	v := newView(uuid.NewString())
	s.views.Add(v.ID, v)
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    v.ID,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return v
}

// Len returns the number of live views
func (s *Store) Len() int {
	return s.views.Len()
}
