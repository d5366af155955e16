package migrations

import "embed"

// FS holds the score schema migrations.
//
//go:embed *.sql
var FS embed.FS
