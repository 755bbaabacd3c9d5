// Package web renders dashboard pages and serves them over HTTP.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"legtracker/internal/ports"
	"legtracker/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer executes the embedded html/template pages.
type Renderer struct {
	tmpl *template.Template
}

var _ ports.Renderer = (*Renderer)(nil)

// NewRenderer parses the page templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("pages").
		Funcs(template.FuncMap{"anchor": view.Anchor}).
		ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// RenderSponsors writes the sponsor columns page.
func (r *Renderer) RenderSponsors(w io.Writer, page view.SponsorPage) error {
	return r.execute(w, "sponsors", page)
}

// RenderRepresentatives writes the representative cards page.
func (r *Renderer) RenderRepresentatives(w io.Writer, page view.RepresentativePage) error {
	return r.execute(w, "representatives", page)
}

// RenderIndex writes the landing page.
func (r *Renderer) RenderIndex(w io.Writer, page view.IndexPage) error {
	return r.execute(w, "index", page)
}

func (r *Renderer) execute(w io.Writer, name string, data any) error {
	if err := r.tmpl.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}
