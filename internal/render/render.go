// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render wraps HTML fragments in a page template and writes the
// resulting pages to disk.
package render

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/htmlize/pkg/types"
)

const (
	// TitlePlaceholder is replaced with the page title.
	TitlePlaceholder = "{{title}}"
	// ContentPlaceholder is replaced with the converted HTML fragment.
	ContentPlaceholder = "{{content}}"
)

//go:embed templates/page.html
var defaultTemplate string

// Renderer substitutes a title and an HTML fragment into a page template.
type Renderer struct {
	template string
}

// New loads the page template at templatePath, or the built-in template
// when templatePath is empty. An unreadable template returns an error
// wrapping types.ErrIO; a template lacking either placeholder is rejected.
func New(templatePath string) (*Renderer, error) {
	if templatePath == "" {
		return &Renderer{template: defaultTemplate}, nil
	}

	data, err := os.ReadFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("%w: reading template %s: %w", types.ErrIO, templatePath, err)
	}
	return FromString(string(data))
}

// FromString builds a Renderer from template text.
func FromString(tmpl string) (*Renderer, error) {
	for _, p := range []string{TitlePlaceholder, ContentPlaceholder} {
		if !strings.Contains(tmpl, p) {
			return nil, fmt.Errorf("template is missing the %s placeholder", p)
		}
	}
	return &Renderer{template: tmpl}, nil
}

// Render returns the page for title and fragment. Only the first occurrence
// of each placeholder is replaced. Placeholders are located in the template
// itself, so placeholder text inside title or fragment is never expanded.
func (r *Renderer) Render(title, fragment string) string {
	ti := strings.Index(r.template, TitlePlaceholder)
	ci := strings.Index(r.template, ContentPlaceholder)

	var b strings.Builder
	b.Grow(len(r.template) + len(title) + len(fragment))
	if ti < ci {
		b.WriteString(r.template[:ti])
		b.WriteString(title)
		b.WriteString(r.template[ti+len(TitlePlaceholder) : ci])
		b.WriteString(fragment)
		b.WriteString(r.template[ci+len(ContentPlaceholder):])
	} else {
		b.WriteString(r.template[:ci])
		b.WriteString(fragment)
		b.WriteString(r.template[ci+len(ContentPlaceholder) : ti])
		b.WriteString(title)
		b.WriteString(r.template[ti+len(TitlePlaceholder):])
	}
	return b.String()
}

// WritePage renders fragment with outName as the page title and writes the
// page to outDir/outName, creating outDir when needed. It returns the
// written path.
func (r *Renderer) WritePage(fragment, outDir, outName string) (string, error) {
	return r.WriteTitledPage(outName, fragment, outDir, outName)
}

// WriteTitledPage is WritePage with an explicit title.
func (r *Renderer) WriteTitledPage(title, fragment, outDir, outName string) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: creating output directory %s: %w", types.ErrIO, outDir, err)
	}
	path := filepath.Join(outDir, outName)
	if err := os.WriteFile(path, []byte(r.Render(title, fragment)), 0o644); err != nil {
		return "", fmt.Errorf("%w: writing page %s: %w", types.ErrIO, path, err)
	}
	return path, nil
}
