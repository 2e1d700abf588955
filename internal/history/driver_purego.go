// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build !cgo_sqlite

package history

import (
	_ "modernc.org/sqlite"
)

// Pure Go SQLite. FTS5 is always compiled in.
const driverName = "sqlite"

func dataSource(path string) string {
	return path + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
}
