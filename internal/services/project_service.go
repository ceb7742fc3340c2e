package services

import (
	"errors"
	"fmt"

	"github.com/mlm272/maggiemayer-portfolio/internal/models"
)

// ErrProjectNotFound is returned when no project has the requested slug or id
var ErrProjectNotFound = errors.New("project not found")

// ProjectService handles project-related operations
type ProjectService struct {
	projects *models.ProjectList
	bySlug   map[string]int
}

// NewProjectService creates a new ProjectService
func NewProjectService(projects *models.ProjectList) *ProjectService {
	bySlug := make(map[string]int, len(projects.Projects))
	for i, p := range projects.Projects {
		bySlug[p.Slug] = i
	}
	return &ProjectService{projects: projects, bySlug: bySlug}
}

// GetAll returns all projects in table order
func (s *ProjectService) GetAll() []models.Project {
	return s.projects.Projects
}

// FindBySlug returns the project with the given slug
func (s *ProjectService) FindBySlug(slug string) (*models.Project, error) {
	i, ok := s.bySlug[slug]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, slug)
	}
	return &s.projects.Projects[i], nil
}

// GetByID returns a specific project by numeric id
func (s *ProjectService) GetByID(id int) (*models.Project, error) {
	for i := range s.projects.Projects {
		if s.projects.Projects[i].ID == id {
			return &s.projects.Projects[i], nil
		}
	}
	return nil, fmt.Errorf("%w: id %d", ErrProjectNotFound, id)
}

// FilterByCategory returns the projects tagged with category in table
// order. "all" returns the full table unfiltered.
func (s *ProjectService) FilterByCategory(category string) ([]models.Project, error) {
	c, err := models.ParseCategory(category)
	if err != nil {
		return nil, err
	}
	if c == models.CategoryAll {
		return s.projects.Projects, nil
	}

	out := []models.Project{}
	for _, p := range s.projects.Projects {
		if p.Category == c {
			out = append(out, p)
		}
	}
	return out, nil
}

// CategoryTab is one filter tab in the work gallery
type CategoryTab struct {
	Category models.Category
	Label    string
	Count    int
	Active   bool
}

// Categories returns the filter tabs with project counts
func (s *ProjectService) Categories(active models.Category) []CategoryTab {
	counts := make(map[models.Category]int)
	for _, p := range s.projects.Projects {
		counts[p.Category]++
	}
	counts[models.CategoryAll] = len(s.projects.Projects)

	tabs := make([]CategoryTab, len(models.Categories))
	for i, c := range models.Categories {
		tabs[i] = CategoryTab{
			Category: c,
			Label:    c.Label(),
			Count:    counts[c],
			Active:   c == active,
		}
	}
	return tabs
}

// Related returns up to n other projects in p's category, in table order
func (s *ProjectService) Related(p *models.Project, n int) []models.Project {
	var out []models.Project
	for _, other := range s.projects.Projects {
		if len(out) == n {
			break
		}
		if other.ID != p.ID && other.Category == p.Category {
			out = append(out, other)
		}
	}
	return out
}

// Showcase returns the featured projects in category for the work grid
func (s *ProjectService) Showcase(category string) ([]models.Project, error) {
	all, err := s.FilterByCategory(category)
	if err != nil {
		return nil, err
	}
	out := []models.Project{}
	for _, p := range all {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out, nil
}
