// Package migrations embeds the versioned MySQL schema applied by db:migrate.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
