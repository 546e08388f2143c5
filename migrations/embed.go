// Package migrations embeds the versioned schema files for cmd/migrate.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
