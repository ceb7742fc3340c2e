package lightbox

import (
	"strings"

	"github.com/mlm272/maggiemayer-portfolio/internal/media"
	"github.com/mlm272/maggiemayer-portfolio/internal/models"
)

// Thumb is one gallery image with its position in the flat sequence
type Thumb struct {
	Index     int
	Path      string
	Src       string
	Fallbacks []string
	Mockup    bool
}

// ThumbGroup is a labeled run of thumbnails
type ThumbGroup struct {
	Label  string
	Thumbs []Thumb
}

var mockupMarkers = []string{"idea", "V2", "IRALogix", "LandingIdea"}

// Gallery lays out a project's images for rendering. Each thumbnail
// carries the flat index the lightbox opens at when it is selected.
// Groups without images are left out.
func Gallery(p *models.Project) []ThumbGroup {
	groups := p.ImageGroups()
	out := make([]ThumbGroup, 0, len(groups))

	offset := 0
	for _, g := range groups {
		if len(g.Images) == 0 {
			continue
		}
		tg := ThumbGroup{Label: g.Category, Thumbs: make([]Thumb, 0, len(g.Images))}
		for j, path := range g.Images {
			chain := media.FallbackChain(path)
			tg.Thumbs = append(tg.Thumbs, Thumb{
				Index:     offset + j,
				Path:      path,
				Src:       chain[0],
				Fallbacks: chain,
				Mockup:    isMockup(p.Slug, path),
			})
		}
		offset += len(g.Images)
		out = append(out, tg)
	}
	return out
}

func isMockup(slug, path string) bool {
	if slug == "troutwood-website" {
		return true
	}
	for _, m := range mockupMarkers {
		if strings.Contains(path, m) {
			return true
		}
	}
	return false
}
