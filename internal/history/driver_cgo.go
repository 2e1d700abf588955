// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build cgo_sqlite

// CGO SQLite via mattn/go-sqlite3. FTS5 is only present when built with
// the sqlite_fts5 tag as well:
//
//	go build -tags "cgo_sqlite sqlite_fts5"
package history

import (
	_ "github.com/mattn/go-sqlite3"
)

const driverName = "sqlite3"

func dataSource(path string) string {
	return path + "?_journal_mode=WAL&_foreign_keys=on"
}
