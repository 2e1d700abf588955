// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs Markdown sources through a Converter and writes the
// results as HTML pages, one page per source file.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/htmlize/internal/document"
	"github.com/pdiddy/htmlize/internal/markdown"
	"github.com/pdiddy/htmlize/internal/render"
	"github.com/pdiddy/htmlize/pkg/types"
)

const pageExt = ".html"

// sourceExts lists the file extensions ConvertDir picks up.
var sourceExts = map[string]bool{
	".md":       true,
	".markdown": true,
}

// Converter transforms Markdown text into an HTML fragment.
type Converter interface {
	Convert(markdown string) string
}

// MarkdownConverter is the line-oriented converter from package markdown.
type MarkdownConverter struct{}

// Convert implements Converter.
func (MarkdownConverter) Convert(src string) string {
	return markdown.Convert(src)
}

// Tracker remembers conversion outcomes so unchanged sources can be
// skipped. A source is unchanged only while its page still exists at the
// same output path. history.Store implements it.
type Tracker interface {
	Unchanged(ctx context.Context, src string, modTime time.Time, outPath string) (bool, error)
	Record(ctx context.Context, conv types.Conversion, body string) error
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any file failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

func (r *BatchResult) add(status types.ConversionStatus) {
	switch status {
	case types.ConversionDone:
		r.Converted++
	case types.ConversionNone:
		r.Skipped++
	case types.ConversionFailed:
		r.Failed++
	}
}

// Pipeline converts source files into pages under OutputDir.
type Pipeline struct {
	Converter Converter
	Renderer  *render.Renderer

	// Tracker is optional; nil disables skipping and recording.
	Tracker Tracker

	OutputDir string

	// Force converts sources the Tracker reports as unchanged.
	Force bool

	// Now stamps recorded conversions. Nil uses time.Now.
	Now func() time.Time

	// written maps each output path of the running batch to its source.
	written map[string]string
}

// NewPipeline builds a Pipeline from the conversion settings.
func NewPipeline(c Converter, r *render.Renderer, t Tracker, cfg types.ConversionConfig) *Pipeline {
	return &Pipeline{
		Converter: c,
		Renderer:  r,
		Tracker:   t,
		OutputDir: cfg.OutputDir,
		Force:     cfg.Force,
	}
}

// ConvertFile converts a single Markdown file to OutputDir/<base>.html and
// returns the status of the conversion. The page title is the front matter
// title, or the output file name when there is none. Progress is written
// to w.
func (p *Pipeline) ConvertFile(ctx context.Context, srcPath string, w io.Writer) types.ConversionStatus {
	dir, name := filepath.Split(srcPath)
	base := strings.TrimSuffix(name, filepath.Ext(name))
	outName := base + pageExt
	outPath := filepath.Join(p.OutputDir, outName)

	conv := types.Conversion{SourcePath: absPath(srcPath)}

	doc, err := document.Read(dir, name)
	if err != nil {
		return p.fail(ctx, w, conv, "", base, err)
	}
	conv.SourcePath = doc.Path
	conv.SourceModTime = doc.ModTime

	if p.written != nil {
		if prev, ok := p.written[outPath]; ok && prev != doc.Path {
			return p.fail(ctx, w, conv, doc.Body, base, fmt.Errorf("output %s already written from %s", outPath, prev))
		}
		p.written[outPath] = doc.Path
	}

	if !p.Force && p.Tracker != nil {
		unchanged, err := p.Tracker.Unchanged(ctx, doc.Path, doc.ModTime, outPath)
		if err != nil {
			fmt.Fprintf(w, "warning: history lookup for %s failed: %v\n", base, err)
		} else if unchanged {
			fmt.Fprintf(w, "skipped: %s (unchanged)\n", base)
			return types.ConversionNone
		}
	}

	fragment := p.Converter.Convert(doc.Body)

	conv.Title = doc.Title
	if conv.Title == "" {
		conv.Title = outName
	}

	outPath, err = p.Renderer.WriteTitledPage(conv.Title, fragment, p.OutputDir, outName)
	if err != nil {
		return p.fail(ctx, w, conv, doc.Body, base, err)
	}

	conv.OutputPath = outPath
	conv.Status = types.ConversionDone
	conv.HTMLBytes = len(fragment)
	p.record(ctx, w, conv, doc.Body)

	fmt.Fprintf(w, "converted: %s -> %s\n", base, outPath)
	return types.ConversionDone
}

// ConvertBatch converts each path in order, printing per-file status to w
// and returning a summary. Sources that map to an output page already
// written in the same batch fail instead of overwriting it. A cancelled
// context stops the batch between files and is returned as the error.
func (p *Pipeline) ConvertBatch(ctx context.Context, paths []string, w io.Writer) (BatchResult, error) {
	p.written = make(map[string]string)
	defer func() { p.written = nil }()

	var result BatchResult
	for _, path := range paths {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}
		result.add(p.ConvertFile(ctx, path, w))
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result, nil
}

// ConvertDir converts every Markdown file directly inside dir, in name
// order. Subdirectories are not descended into.
func (p *Pipeline) ConvertDir(ctx context.Context, dir string, w io.Writer) (BatchResult, error) {
	paths, err := SourceFiles(dir)
	if err != nil {
		return BatchResult{}, err
	}
	return p.ConvertBatch(ctx, paths, w)
}

// SourceFiles lists the Markdown files directly inside dir, sorted by name.
func SourceFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: reading source directory %s: %w", types.ErrIO, dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !sourceExts[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}

func (p *Pipeline) fail(ctx context.Context, w io.Writer, conv types.Conversion, body, base string, err error) types.ConversionStatus {
	fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
	conv.Status = types.ConversionFailed
	conv.Error = err.Error()
	p.record(ctx, w, conv, body)
	return types.ConversionFailed
}

func (p *Pipeline) record(ctx context.Context, w io.Writer, conv types.Conversion, body string) {
	if p.Tracker == nil {
		return
	}
	conv.ConvertedAt = p.now()
	if err := p.Tracker.Record(ctx, conv, body); err != nil {
		fmt.Fprintf(w, "warning: %v\n", err)
	}
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
