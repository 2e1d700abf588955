// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConversionConfig holds settings for the convert stage.
type ConversionConfig struct {
	// SourceDir is the directory scanned for Markdown files when no explicit
	// files are given (default "docs").
	SourceDir string `json:"source_dir" yaml:"source_dir"`

	// OutputDir receives the generated HTML pages (default "site").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// TemplatePath is an HTML page template containing the {{title}} and
	// {{content}} placeholders. Empty selects the built-in template.
	TemplatePath string `json:"template_path,omitempty" yaml:"template_path,omitempty"`

	// Force converts every file even when the history reports it unchanged.
	Force bool `json:"force" yaml:"force"`
}

// HistoryConfig holds settings for the conversion history store.
type HistoryConfig struct {
	// Dir contains the history database and exports (default ".htmlize").
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// Config groups all stage configurations.
type Config struct {
	Conversion ConversionConfig `json:"conversion" yaml:"conversion"`
	History    HistoryConfig    `json:"history" yaml:"history"`
}
