// Package migrations embeds the Postgres schema, one numbered file per version.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
