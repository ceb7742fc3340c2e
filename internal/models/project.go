package models

import (
	"encoding/json"
	"fmt"
)

// Project represents a portfolio project
type Project struct {
	ID                   int               `json:"id"`
	Slug                 string            `json:"slug"`
	Title                string            `json:"title"`
	Category             Category          `json:"category"`
	Description          string            `json:"description"`
	LongDescription      string            `json:"long_description,omitempty"`
	Image                string            `json:"image,omitempty"`
	Tags                 []string          `json:"tags,omitempty"`
	Year                 string            `json:"year,omitempty"`
	Role                 string            `json:"role,omitempty"`
	Tools                []string          `json:"tools,omitempty"`
	Highlights           []string          `json:"highlights,omitempty"`
	Videos               []Video           `json:"videos,omitempty"`
	Links                []Link            `json:"links,omitempty"`
	Images               []string          `json:"images,omitempty"`
	CategorizedImages    []ImageGroup      `json:"categorized_images,omitempty"`
	PDFs                 []PDF             `json:"pdfs,omitempty"`
	LottieAnimations     []string          `json:"lottie_animations,omitempty"`
	BrandContext         string            `json:"brand_context,omitempty"`
	Problem              string            `json:"problem,omitempty"`
	WhatIDid             []string          `json:"what_i_did,omitempty"`
	Result               string            `json:"result,omitempty"`
	Context              string            `json:"context,omitempty"`
	Outcome              string            `json:"outcome,omitempty"`
	Featured             bool              `json:"featured"`
	WhatIOwned           []string          `json:"what_i_owned,omitempty"`
	ProblemsAndSolutions []ProblemSolution `json:"problems_and_solutions,omitempty"`
	Takeaways            []string          `json:"takeaways,omitempty"`
}

// UnmarshalJSON decodes a project. A missing "featured" key means the
// project is featured; only an explicit false hides it from the grid.
func (p *Project) UnmarshalJSON(data []byte) error {
	type plain Project
	decoded := plain{Featured: true}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*p = Project(decoded)
	return nil
}

// ImageGroup is a labeled section of a project's gallery
type ImageGroup struct {
	Category string   `json:"category"`
	Images   []string `json:"images"`
}

// Link is an external link shown on the detail page
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// PDF is a downloadable document attached to a project
type PDF struct {
	Label     string `json:"label"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// ProblemSolution is one case-study entry
type ProblemSolution struct {
	Problem  string `json:"problem"`
	Solution string `json:"solution"`
	Outcome  string `json:"outcome"`
}

// Video is a video reference. In the data file it may be a bare URL
// string or an object with a description.
type Video struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// UnmarshalJSON accepts either "url" or {"url": ..., "description": ...}
func (v *Video) UnmarshalJSON(data []byte) error {
	var url string
	if err := json.Unmarshal(data, &url); err == nil {
		*v = Video{URL: url}
		return nil
	}

	type plain Video
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("video must be a string or an object: %w", err)
	}
	*v = Video(p)
	return nil
}

// AllImages returns the flattened image sequence used for lightbox
// indexing. Categorized images take precedence over the flat list.
func (p *Project) AllImages() []string {
	if len(p.CategorizedImages) > 0 {
		var all []string
		for _, group := range p.CategorizedImages {
			all = append(all, group.Images...)
		}
		return all
	}
	return p.Images
}

// ImageGroups returns the gallery in display order. A flat image list is
// returned as a single unlabeled group.
func (p *Project) ImageGroups() []ImageGroup {
	if len(p.CategorizedImages) > 0 {
		return p.CategorizedImages
	}
	if len(p.Images) > 0 {
		return []ImageGroup{{Images: p.Images}}
	}
	return nil
}

// HasMedia reports whether the project has any gallery images
func (p *Project) HasMedia() bool {
	return len(p.AllImages()) > 0
}

// ProjectList wraps the array of projects
type ProjectList struct {
	Projects []Project `json:"projects"`
}

// Validate checks slug and id uniqueness and category membership
func (l *ProjectList) Validate() error {
	slugs := make(map[string]bool, len(l.Projects))
	ids := make(map[int]bool, len(l.Projects))
	for _, p := range l.Projects {
		if p.Slug == "" {
			return fmt.Errorf("project %d has an empty slug", p.ID)
		}
		if slugs[p.Slug] {
			return fmt.Errorf("duplicate project slug: %s", p.Slug)
		}
		if ids[p.ID] {
			return fmt.Errorf("duplicate project id: %d", p.ID)
		}
		if !p.Category.Valid() {
			return fmt.Errorf("project %s: %w: %q", p.Slug, ErrUnknownCategory, p.Category)
		}
		slugs[p.Slug] = true
		ids[p.ID] = true
	}
	return nil
}
