// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package document loads Markdown source files and separates optional YAML
// front matter from the body.
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/htmlize/pkg/types"
)

const frontMatterDelim = "---"

// Read loads dir/name. The path is resolved to an absolute path first.
// A missing or unreadable file returns an error wrapping types.ErrIO;
// malformed front matter returns a parse error.
func Read(dir, name string) (types.Document, error) {
	path, err := filepath.Abs(filepath.Join(dir, name))
	if err != nil {
		return types.Document{}, fmt.Errorf("%w: resolving %s: %w", types.ErrIO, name, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return types.Document{}, fmt.Errorf("%w: reading document %s: %w", types.ErrIO, path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Document{}, fmt.Errorf("%w: reading document %s: %w", types.ErrIO, path, err)
	}

	meta, body, err := SplitFrontMatter(string(data))
	if err != nil {
		return types.Document{}, fmt.Errorf("parsing front matter in %s: %w", path, err)
	}

	doc := types.Document{
		Name:    name,
		Path:    path,
		Meta:    meta,
		Body:    body,
		ModTime: info.ModTime(),
	}
	if title, ok := meta["title"].(string); ok {
		doc.Title = strings.TrimSpace(title)
	}
	return doc, nil
}

// SplitFrontMatter separates a leading YAML block delimited by "---" lines
// from the Markdown body. Text without an opening delimiter, or whose block
// is never closed, is returned unchanged with nil metadata.
func SplitFrontMatter(text string) (map[string]any, string, error) {
	first, rest, ok := strings.Cut(text, "\n")
	if !ok || strings.TrimRight(first, "\r") != frontMatterDelim {
		return nil, text, nil
	}

	var block []string
	for {
		line, tail, more := strings.Cut(rest, "\n")
		if strings.TrimRight(line, "\r") == frontMatterDelim {
			var meta map[string]any
			if err := yaml.Unmarshal([]byte(strings.Join(block, "\n")), &meta); err != nil {
				return nil, text, err
			}
			return meta, tail, nil
		}
		if !more {
			return nil, text, nil
		}
		block = append(block, line)
		rest = tail
	}
}
