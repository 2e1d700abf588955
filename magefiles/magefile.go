//go:build mage

// Package main contains Mage build targets for htmlize developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories the converter expects.
var projectDirs = []string{
	"docs",
	"site",
	".htmlize",
}

const (
	binDir  = "bin"
	binName = "htmlize"
	cmdPkg  = "./cmd/htmlize"

	// sqliteEnv selects the SQLite driver: "cgo" builds mattn/go-sqlite3,
	// anything else the pure Go modernc.org/sqlite.
	sqliteEnv = "HTMLIZE_SQLITE"
)

// Default is the target run by a bare `mage`.
var Default = Build

// Init creates the project directory structure for the converter.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

// Build compiles the CLI binary into bin/, stamping the version from
// $VERSION when set.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := binPath()
	args := []string{"build", "-tags", buildTags(), "-o", out}
	if v := os.Getenv("VERSION"); v != "" {
		args = append(args, "-ldflags", "-X main.version="+v)
	}
	args = append(args, cmdPkg)
	if err := sh.RunV("go", args...); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests for every package.
func Test() error {
	return sh.RunV("go", "test", "-tags", buildTags(), "./...")
}

// Vet runs go vet over the module.
func Vet() error {
	return sh.RunV("go", "vet", "-tags", buildTags(), "./...")
}

// Check runs vet and the tests.
func Check() {
	mg.SerialDeps(Vet, Test)
}

// Clean removes the built binary and generated pages.
func Clean() error {
	for _, path := range []string{binDir, "site"} {
		if err := sh.Rm(path); err != nil {
			return fmt.Errorf("removing %s: %w", path, err)
		}
	}
	return nil
}

// buildTags returns the tags every go invocation needs. sqlite_fts5 is
// required by mattn/go-sqlite3 for the history search index and is a no-op
// for the pure Go driver.
func buildTags() string {
	if os.Getenv(sqliteEnv) == "cgo" {
		return "cgo_sqlite sqlite_fts5"
	}
	return "sqlite_fts5"
}

func binPath() string {
	return filepath.Join(binDir, binName)
}
