package migrations

import "embed"

// FS contains embedded SQLite migrations for millionaire storage.
//
//go:embed *.sql
var FS embed.FS
