// Package render is the read-only presentation layer: it turns a
// resolved content document into the portfolio HTML page.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"time"

	"github.com/nijanthan/portfolio-cms/internal/content"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// StaticFS returns the embedded static assets, rooted so that
// "site.css" resolves directly.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Themes. The active theme is explicit per-request state carried in a
// cookie, never a process-wide global.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

const thumbnailWidth = 800

// Renderer renders the portfolio page.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded page template.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// latestView is one published-work card with its resolved thumbnail.
type latestView struct {
	content.LatestItem
	ThumbnailURL string
	IsVideo      bool
}

// projectView is one project card with its optimized thumbnail.
type projectView struct {
	content.Project
	ThumbnailURL string
}

// page is the full template context.
type page struct {
	Doc   *content.Document
	Theme string
	Year  int

	FeaturedLatest   []latestView
	OverflowLatest   []latestView
	FeaturedProjects []projectView
	OverflowProjects []projectView
	FeaturedClients  []content.Client
	OverflowClients  []content.Client

	HasResume bool
}

func latestViews(items []content.LatestItem) []latestView {
	out := make([]latestView, 0, len(items))
	for _, it := range items {
		out = append(out, latestView{
			LatestItem:   it,
			ThumbnailURL: Thumbnail(it, thumbnailWidth),
			IsVideo:      it.Kind == content.KindVideo,
		})
	}
	return out
}

func projectViews(projects []content.Project) []projectView {
	out := make([]projectView, 0, len(projects))
	for _, p := range projects {
		out = append(out, projectView{
			Project:      p,
			ThumbnailURL: OptimizeImage(p.Thumbnail, thumbnailWidth),
		})
	}
	return out
}

// Page renders the portfolio for doc with the given theme. doc must
// have its defaults resolved; the template reads Now, Hero, and UI
// unconditionally.
func (r *Renderer) Page(w io.Writer, doc *content.Document, theme string) error {
	if theme != ThemeDark {
		theme = ThemeLight
	}

	data := page{
		Doc:              doc,
		Theme:            theme,
		Year:             time.Now().Year(),
		FeaturedLatest:   latestViews(content.FeaturedLatest(doc.Latest)),
		OverflowLatest:   latestViews(content.OverflowLatest(doc.Latest)),
		FeaturedProjects: projectViews(content.FeaturedProjects(doc.Projects)),
		OverflowProjects: projectViews(content.OverflowProjects(doc.Projects)),
		FeaturedClients:  content.FeaturedClients(doc.Clients),
		OverflowClients:  content.OverflowClients(doc.Clients),
		HasResume:        doc.Links.Resume != "" && doc.Links.Resume != "#",
	}

	if err := r.tmpl.ExecuteTemplate(w, "portfolio.tmpl", data); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}
