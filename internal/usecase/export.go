package usecase

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"legtracker/internal/ports"
)

// Exported page file names.
const (
	IndexFile           = "index.html"
	SponsorsFile        = "sponsors.html"
	RepresentativesFile = "representatives.html"
)

// ExportPages renders a build into dir and returns the written paths.
func ExportPages(build *Build, renderer ports.Renderer, dir string) ([]string, error) {
	if build == nil || renderer == nil {
		return nil, fmt.Errorf("export pages: build and renderer are required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	pages := []struct {
		name   string
		render func(*bytes.Buffer) error
	}{
		{IndexFile, func(buf *bytes.Buffer) error { return renderer.RenderIndex(buf, build.Index) }},
		{SponsorsFile, func(buf *bytes.Buffer) error { return renderer.RenderSponsors(buf, build.Sponsors) }},
		{RepresentativesFile, func(buf *bytes.Buffer) error { return renderer.RenderRepresentatives(buf, build.Representatives) }},
	}

	written := make([]string, 0, len(pages))
	for _, page := range pages {
		var buf bytes.Buffer
		if err := page.render(&buf); err != nil {
			return written, fmt.Errorf("render %s: %w", page.name, err)
		}
		path := filepath.Join(dir, page.name)
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", page.name, err)
		}
		written = append(written, path)
	}
	return written, nil
}
