// Package render turns view models into HTML pages and fragments.
package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/mlm272/maggiemayer-portfolio/internal/lightbox"
	"github.com/mlm272/maggiemayer-portfolio/internal/media"
	"github.com/mlm272/maggiemayer-portfolio/internal/models"
	"github.com/mlm272/maggiemayer-portfolio/internal/sections"
	"github.com/mlm272/maggiemayer-portfolio/internal/services"
)

//go:embed templates/*.html assets/*.js assets/*.css
var embedded embed.FS

// SiteTitle is the default document title
const SiteTitle = "Maggie Mayer | Front-End Developer & Digital Designer"

// Renderer executes the embedded templates
type Renderer struct {
	tmpl *template.Template
	base string
}

// New parses the templates. base is the path prefix the site is
// mounted under and is prepended to every local link and asset.
func New(base string) (*Renderer, error) {
	r := &Renderer{base: strings.TrimSuffix(base, "/")}

	tmpl, err := template.New("site").Funcs(template.FuncMap{
		"url":       r.url,
		"asset":     r.asset,
		"fallbacks": r.fallbacks,
		"markdown":  Markdown,
		"embed":     media.Embed,
		"inc":       func(i int) int { return i + 1 },
	}).ParseFS(embedded, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	r.tmpl = tmpl
	return r, nil
}

// Assets returns the embedded stylesheet and script files
func Assets() fs.FS {
	sub, err := fs.Sub(embedded, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}

// Render executes the named template into a buffer
func (r *Renderer) Render(name string, data any) ([]byte, error) {
	var b bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", name, err)
	}
	return b.Bytes(), nil
}

// Write renders the named template and writes it with status. Nothing is
// written if rendering fails.
func (r *Renderer) Write(w http.ResponseWriter, status int, name string, data any) error {
	body, err := r.Render(name, data)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
	return nil
}

// url prefixes a site-relative link with the base path
func (r *Renderer) url(p string) string {
	return r.base + p
}

// asset resolves a stored media path into a loadable URL. External URLs
// are returned unchanged.
func (r *Renderer) asset(p string) string {
	if !strings.HasPrefix(p, "/") {
		return p
	}
	return r.base + media.Resolve(p)
}

// fallbacks encodes the retry chain for a stored path as a JSON array
// for the data-fallbacks attribute.
func (r *Renderer) fallbacks(p string) (string, error) {
	if !strings.HasPrefix(p, "/") {
		return "[]", nil
	}
	chain := media.FallbackChain(p)
	for i := range chain {
		chain[i] = r.base + chain[i]
	}
	b, err := json.Marshal(chain)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Page carries what the shared header and footer need
type Page struct {
	Title       string
	Description string
	Nav         []sections.NavItem
	Year        int
}

// Skill is one column of the skills grid
type Skill struct {
	Category string
	Items    []string
}

// Skills are shown in the about section
var Skills = []Skill{
	{Category: "Design & UX", Items: []string{"Figma", "User Research", "Prototyping", "Wireframing", "Accessibility", "Interaction Design", "Social Media Design", "Newsletter Design"}},
	{Category: "Development", Items: []string{"HTML5", "CSS3", "JavaScript (ES6+)", "React", "Responsive Design", "Git"}},
	{Category: "Animation & Video", Items: []string{"Adobe After Effects", "Adobe Animate", "Lottie", "GSAP", "Video Production", "Motion Graphics"}},
	{Category: "AI & Creative Tools", Items: []string{"ChatGPT", "Cursor", "Canva", "Adobe Creative Suite", "Video Editing"}},
}

// WorkGrid is the filterable project gallery
type WorkGrid struct {
	Tabs     []services.CategoryTab
	Active   models.Category
	Projects []models.Project
}

// HomePage is the single-page landing view
type HomePage struct {
	Page
	Work   WorkGrid
	Skills []Skill
}

// LightboxView is the lightbox overlay for one project
type LightboxView struct {
	Slug string
	lightbox.State
	// Original is the stored path of the shown image, used for retries
	Original string
}

// NewLightboxView pairs a lightbox state with the project it belongs to
func NewLightboxView(p *models.Project, st lightbox.State) LightboxView {
	v := LightboxView{Slug: p.Slug, State: st}
	if st.Open {
		if images := p.AllImages(); st.Index < len(images) {
			v.Original = images[st.Index]
		}
	}
	return v
}

// DetailPage is a project detail view. Hero is empty when the project
// has no gallery images, and the category glyph is shown instead.
type DetailPage struct {
	Page
	Project    *models.Project
	Hero       string
	Gallery    []lightbox.ThumbGroup
	Animations []services.AnimationResult
	Related    []models.Project
	Lightbox   LightboxView
}

// HeroImage returns the image shown above a project's details: the cover
// image when set, else the first gallery image. It is empty when the
// project has no gallery images, since the hero opens the lightbox at 0.
func HeroImage(p *models.Project) string {
	if !p.HasMedia() {
		return ""
	}
	if p.Image != "" {
		return p.Image
	}
	return p.AllImages()[0]
}

// NotFoundPage is shown for unknown projects and routes
type NotFoundPage struct {
	Page
	Heading string
	Message string
	Slug    string
}

// ContactResult is the fragment swapped in after a form submission
type ContactResult struct {
	OK      bool
	Message string
}
