package models

import (
	"errors"
	"fmt"
)

// ErrUnknownCategory is returned for category tags outside the fixed set
var ErrUnknownCategory = errors.New("unknown category")

// Category is a project's category tag
type Category string

const (
	CategoryWeb       Category = "web"
	CategoryMobile    Category = "mobile"
	CategoryAnimation Category = "animation"
	CategoryGraphic   Category = "graphic"
	CategoryBrand     Category = "brand"

	// CategoryAll is the filter value that selects every project
	CategoryAll Category = "all"
)

// Categories lists the filter tabs in display order, "all" first
var Categories = []Category{
	CategoryAll,
	CategoryWeb,
	CategoryMobile,
	CategoryAnimation,
	CategoryGraphic,
	CategoryBrand,
}

var categoryLabels = map[Category]string{
	CategoryAll:       "All",
	CategoryWeb:       "Web & UX",
	CategoryMobile:    "Mobile",
	CategoryAnimation: "Animations",
	CategoryGraphic:   "Design",
	CategoryBrand:     "Brand",
}

var categoryGlyphs = map[Category]string{
	CategoryWeb:       "🌐",
	CategoryMobile:    "📱",
	CategoryAnimation: "🎬",
	CategoryGraphic:   "🎨",
	CategoryBrand:     "✨",
}

// ParseCategory validates a filter or project tag. "all" is accepted.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if c == CategoryAll || c.Valid() {
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Valid reports whether c is a concrete project category
func (c Category) Valid() bool {
	_, ok := categoryGlyphs[c]
	return ok
}

// Label returns the display label
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Glyph returns the placeholder shown when a project has no media
func (c Category) Glyph() string {
	if g, ok := categoryGlyphs[c]; ok {
		return g
	}
	return "📁"
}
