// Package migrations embeds the SQL migration files for the geocode cache
// schema so they can be applied through the goose programmatic API in both
// tests and server bootstrap.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
// Pass this to goose.NewProvider instead of relying on a filesystem path
// at runtime.
//
//go:embed *.sql
var FS embed.FS
