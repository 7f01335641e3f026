// Package migrations embeds the schema migration files for the
// transcript store.
package migrations

import "embed"

// FS holds the SQL migration files, embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
