// Package migrations embeds the SQL migrations of the local orphan ledger.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
