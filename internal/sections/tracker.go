// Package sections tracks which top-level section of the home page is
// active so the navigation bar can highlight it.
package sections

import (
	"errors"
	"fmt"
)

// ErrUnknownSection is returned for section names outside the page
var ErrUnknownSection = errors.New("unknown section")

// Section identifies a top-level page section
type Section string

const (
	Home    Section = "home"
	Work    Section = "work"
	About   Section = "about"
	Contact Section = "contact"
)

// All lists the sections in page order
var All = []Section{Home, Work, About, Contact}

var labels = map[Section]string{
	Home:    "Home",
	Work:    "Work",
	About:   "About",
	Contact: "Contact",
}

// Parse validates a section name
func Parse(s string) (Section, error) {
	sec := Section(s)
	if _, ok := labels[sec]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSection, s)
	}
	return sec, nil
}

// Label returns the navigation label
func (s Section) Label() string {
	return labels[s]
}

// Threshold is the visible fraction at which the section claims the
// active flag. The hero is taller, so it needs half of itself in view.
func (s Section) Threshold() float64 {
	if s == Home {
		return 0.5
	}
	return 0.3
}

// Tracker owns the active-section flag. Every section reports its own
// visibility independently and whichever crossed its threshold last
// wins; there is no ordering between sections.
//
// Tracker is not safe for concurrent use.
type Tracker struct {
	active Section
}

// NewTracker starts with the hero active
func NewTracker() *Tracker {
	return &Tracker{active: Home}
}

// Active returns the highlighted section
func (t *Tracker) Active() Section {
	return t.active
}

// Observe records a visibility ratio for s. It reports whether s became
// the active section.
func (t *Tracker) Observe(s Section, ratio float64) bool {
	if ratio < s.Threshold() {
		return false
	}
	t.Set(s)
	return true
}

// Set is the only way the flag changes; navigation clicks use it
// directly.
func (t *Tracker) Set(s Section) {
	t.active = s
}

// NavItem is one link in the navigation bar
type NavItem struct {
	Section Section
	Label   string
	Active  bool
}

// Nav returns the navigation links with the active one marked
func (t *Tracker) Nav() []NavItem {
	items := make([]NavItem, len(All))
	for i, s := range All {
		items[i] = NavItem{Section: s, Label: s.Label(), Active: s == t.active}
	}
	return items
}
