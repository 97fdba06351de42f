// Package migrations embeds the SQL migrations for the local session
// database. They are applied with goose at startup.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
