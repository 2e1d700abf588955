//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Site converts every Markdown file in docs/ into an HTML page in site/.
func Site() error {
	mg.Deps(Build, Init)
	if err := sh.RunV(binPath(), "convert", "--dir", "docs", "--out", "site"); err != nil {
		return fmt.Errorf("converting docs: %w", err)
	}
	return nil
}

// Rebuild converts every document again, ignoring the conversion history.
func Rebuild() error {
	mg.Deps(Build, Init)
	return sh.RunV(binPath(), "convert", "--dir", "docs", "--out", "site", "--force")
}

// Export writes the conversion history to .htmlize/export.yaml.
func Export() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "history", "export", "--format", "yaml")
}
