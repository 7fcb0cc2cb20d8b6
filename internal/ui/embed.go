// Package ui contains the embedded waitlist pages and their static assets.
package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed static/*
var assets embed.FS

// Page names accepted by Render.
const (
	PageLanding  = "landing.html"
	PageWaitlist = "waitlist.html"
)

// PageData is the view model shared by every page.
type PageData struct {
	SiteName string
	// APIBase is the absolute base URL the form posts to. Empty means
	// same-origin /api/waitlist.
	APIBase string
}

// Templates renders the embedded pages.
type Templates struct {
	set *template.Template
}

// Load parses the embedded templates.
func Load() (*Templates, error) {
	set, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Templates{set: set}, nil
}

// Render executes page with data.
func (t *Templates) Render(w io.Writer, page string, data PageData) error {
	return t.set.ExecuteTemplate(w, page, data)
}

// FS returns a http.FileSystem for the embedded static assets.
func FS() http.FileSystem {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		return http.FS(assets)
	}
	return http.FS(sub)
}
