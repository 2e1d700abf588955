// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists conversion outcomes in SQLite. It answers
// whether a source changed since its last successful conversion and
// supports full-text search over converted documents.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/htmlize/pkg/types"
)

const (
	dbFile            = "history.db"
	defaultMaxResults = 20

	// timeLayout has a fixed width so stored timestamps sort lexically.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// Store manages the conversion history database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
}

// NewStore opens or creates the history database at cfg.Dir/history.db and
// creates the schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open(driverName, dataSource(dbPath))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{
		db:         db,
		dir:        cfg.Dir,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			source_path TEXT NOT NULL UNIQUE,
			output_path TEXT,
			title TEXT,
			status TEXT NOT NULL,
			source_mod_time TEXT,
			converted_at TEXT,
			html_bytes INTEGER,
			error TEXT,
			body TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_status ON conversions(status)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='conversions_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE conversions_fts USING fts5(title, body, content=conversions, content_rowid=rowid)`,
			`CREATE TRIGGER conversions_ai AFTER INSERT ON conversions BEGIN
				INSERT INTO conversions_fts(rowid, title, body) VALUES (new.rowid, new.title, new.body);
			END`,
			`CREATE TRIGGER conversions_ad AFTER DELETE ON conversions BEGIN
				INSERT INTO conversions_fts(conversions_fts, rowid, title, body) VALUES('delete', old.rowid, old.title, old.body);
			END`,
			`CREATE TRIGGER conversions_au AFTER UPDATE ON conversions BEGIN
				INSERT INTO conversions_fts(conversions_fts, rowid, title, body) VALUES('delete', old.rowid, old.title, old.body);
				INSERT INTO conversions_fts(rowid, title, body) VALUES (new.rowid, new.title, new.body);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				if strings.Contains(err.Error(), "no such module: fts5") {
					return fmt.Errorf("creating FTS infrastructure: SQLite lacks FTS5 (build with -tags \"cgo_sqlite sqlite_fts5\" or without cgo_sqlite): %w", err)
				}
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Record upserts the outcome of converting conv.SourcePath. body is the
// Markdown source text indexed for full-text search.
func (s *Store) Record(ctx context.Context, conv types.Conversion, body string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions (source_path, output_path, title, status, source_mod_time, converted_at, html_bytes, error, body)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(source_path) DO UPDATE SET
			output_path=excluded.output_path, title=excluded.title, status=excluded.status,
			source_mod_time=excluded.source_mod_time, converted_at=excluded.converted_at,
			html_bytes=excluded.html_bytes, error=excluded.error, body=excluded.body`,
		conv.SourcePath, conv.OutputPath, conv.Title, string(conv.Status),
		formatTime(conv.SourceModTime), formatTime(conv.ConvertedAt),
		conv.HTMLBytes, conv.Error, body,
	)
	if err != nil {
		return fmt.Errorf("recording conversion of %s: %w", conv.SourcePath, err)
	}
	return nil
}

// Unchanged reports whether src was last converted successfully from a
// file with the same modification time into outPath, and that page still
// exists.
func (s *Store) Unchanged(ctx context.Context, src string, modTime time.Time, outPath string) (bool, error) {
	var (
		storedModTime, status string
		storedOut             sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT source_mod_time, status, output_path FROM conversions WHERE source_path = ?`, src,
	).Scan(&storedModTime, &status, &storedOut)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("looking up %s: %w", src, err)
	}
	if status != string(types.ConversionDone) || storedModTime != formatTime(modTime) {
		return false, nil
	}
	if storedOut.String != outPath {
		return false, nil
	}
	if _, err := os.Stat(outPath); err != nil {
		return false, nil
	}
	return true, nil
}

// Get returns the recorded conversion for src.
func (s *Store) Get(ctx context.Context, src string) (types.Conversion, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+conversionColumns+` FROM conversions c WHERE c.source_path = ?`, src)
	conv, err := scanConversion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Conversion{}, fmt.Errorf("conversion of %s not found", src)
	}
	if err != nil {
		return types.Conversion{}, fmt.Errorf("looking up %s: %w", src, err)
	}
	return conv, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(s sql.NullString) time.Time {
	if !s.Valid || s.String == "" {
		return time.Time{}
	}
	t, err := time.Parse(timeLayout, s.String)
	if err != nil {
		return time.Time{}
	}
	return t
}
