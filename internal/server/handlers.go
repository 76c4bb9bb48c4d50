package server

import (
	"log"
	"net/http"

	"github.com/nijanthan/portfolio-cms/internal/content"
	"github.com/nijanthan/portfolio-cms/internal/render"
)

const themeCookie = "theme"

// requestTheme resolves the theme for this request from the cookie,
// defaulting to light.
func requestTheme(r *http.Request) string {
	if c, err := r.Cookie(themeCookie); err == nil && c.Value == render.ThemeDark {
		return render.ThemeDark
	}
	return render.ThemeLight
}

// handlePage renders the portfolio page from the current working copy.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	doc := s.store.Document()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.Page(w, doc, requestTheme(r)); err != nil {
		log.Printf("Error rendering page: %v", err)
	}
}

// handleThemeToggle flips the theme cookie and sends the visitor back
// to the page.
func (s *Server) handleThemeToggle(w http.ResponseWriter, r *http.Request) {
	next := render.ThemeDark
	if requestTheme(r) == render.ThemeDark {
		next = render.ThemeLight
	}

	http.SetCookie(w, &http.Cookie{
		Name:     themeCookie,
		Value:    next,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleContent returns the full document as JSON.
func (s *Server) handleContent(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.store.Document())
}

// handleSection returns one content section as JSON.
func (s *Server) handleSection(w http.ResponseWriter, r *http.Request) {
	section := r.PathValue("section")
	doc := s.store.Document()

	data, ok := sectionValue(doc, section)
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "Unknown section: "+section)
		return
	}
	s.jsonResponse(w, http.StatusOK, data)
}

// sectionValue maps a URL section name onto the document.
func sectionValue(doc *content.Document, section string) (any, bool) {
	switch section {
	case "profile":
		return doc.Profile, true
	case "socials":
		return doc.Socials, true
	case "links":
		return doc.Links, true
	case "experience":
		return doc.Experience, true
	case "projects":
		return doc.Projects, true
	case "latest":
		return doc.Latest, true
	case "clients":
		return doc.Clients, true
	case "education":
		return doc.Education, true
	case "certs":
		return doc.Certs, true
	case "skills":
		return doc.Skills, true
	case "community":
		return doc.Community, true
	case "now":
		return doc.Now, true
	case "hero":
		return doc.Hero, true
	case "ui":
		return doc.UI, true
	default:
		return nil, false
	}
}
