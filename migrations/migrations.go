// Package migrations embeds the schema so the binary can migrate its own database file.
package migrations

import "embed"

const SQLiteDir = "sqlite"

//go:embed sqlite/*.sql
var FS embed.FS
