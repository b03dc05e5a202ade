// Package migrations embeds the schema DDL applied to every per-user database.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
