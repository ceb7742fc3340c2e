package services

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/mlm272/maggiemayer-portfolio/internal/media"
	"github.com/mlm272/maggiemayer-portfolio/internal/models"
)

// AssetRef is one local media path referenced by a project
type AssetRef struct {
	Slug  string `json:"slug"`
	Kind  string `json:"kind"`
	Path  string `json:"path"`
	URL   string `json:"url"`
	Found bool   `json:"found"`
}

// ProjectAssets lists the local media paths a project references, in
// page order. External URLs are skipped.
func ProjectAssets(p *models.Project) []AssetRef {
	var refs []AssetRef
	add := func(kind, p0 string) {
		if !strings.HasPrefix(p0, "/") {
			return
		}
		refs = append(refs, AssetRef{Slug: p.Slug, Kind: kind, Path: p0, URL: media.Resolve(p0)})
	}

	add("image", p.Image)
	for _, img := range p.AllImages() {
		add("gallery", img)
	}
	for _, v := range p.Videos {
		if media.ClassifyVideo(v.URL) == media.VideoLocal {
			add("video", v.URL)
		}
	}
	for _, pdf := range p.PDFs {
		add("pdf", pdf.URL)
		add("thumbnail", pdf.Thumbnail)
	}
	for _, id := range p.LottieAnimations {
		add("animation", LookupAnimation(id).Path)
	}
	return refs
}

// CheckAssets resolves every project's media against staticRoot and
// reports which files exist.
func CheckAssets(staticRoot string, projects []models.Project) ([]AssetRef, error) {
	var refs []AssetRef
	for i := range projects {
		for _, ref := range ProjectAssets(&projects[i]) {
			rel := strings.TrimPrefix(path.Clean(ref.Path), "/")
			_, err := os.Stat(filepath.Join(staticRoot, filepath.FromSlash(rel)))
			switch {
			case err == nil:
				ref.Found = true
			case !errors.Is(err, fs.ErrNotExist):
				return nil, err
			}
			refs = append(refs, ref)
		}
	}
	return refs, nil
}
