// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the htmlize pipeline:
// source documents, conversion records, and stage configuration.
package types

import "time"

// ConversionStatus indicates the outcome of converting one source document.
type ConversionStatus string

const (
	ConversionNone   ConversionStatus = "none"
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)

// Document is a Markdown source file loaded into memory.
type Document struct {
	// Name is the file name of the source (e.g. "guide.md").
	Name string `json:"name" yaml:"name"`

	// Path is the resolved filesystem path the document was read from.
	Path string `json:"path" yaml:"path"`

	// Title comes from the front matter "title" key; empty when absent.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Meta holds every front matter key, including title.
	Meta map[string]any `json:"meta,omitempty" yaml:"meta,omitempty"`

	// Body is the Markdown text with any front matter removed.
	Body string `json:"-" yaml:"-"`

	// ModTime is the source file modification time.
	ModTime time.Time `json:"mod_time" yaml:"mod_time"`
}

// Conversion records one conversion attempt of a source document.
type Conversion struct {
	// SourcePath is the Markdown file that was converted.
	SourcePath string `json:"source_path" yaml:"source_path"`

	// OutputPath is the HTML page written, empty when conversion failed
	// before writing.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// Title is the page title used for the rendered output.
	Title string `json:"title" yaml:"title"`

	// Status is the conversion outcome.
	Status ConversionStatus `json:"status" yaml:"status"`

	// SourceModTime is the source modification time at conversion.
	SourceModTime time.Time `json:"source_mod_time" yaml:"source_mod_time"`

	// ConvertedAt is when the conversion ran.
	ConvertedAt time.Time `json:"converted_at" yaml:"converted_at"`

	// HTMLBytes is the size of the generated fragment.
	HTMLBytes int `json:"html_bytes" yaml:"html_bytes"`

	// Error describes the failure when Status is ConversionFailed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}
