// Package migrations embeds the goose migrations for the local asset catalog.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
