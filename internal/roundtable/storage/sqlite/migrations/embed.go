// Package migrations embeds the SQL migration files for the roundtable store.
package migrations

import "embed"

// FS exposes the embedded migration files.
//
//go:embed *.sql
var FS embed.FS
