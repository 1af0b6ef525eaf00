// Package migrations embeds the goose SQL migrations for the clubs store so
// the migrate command and integration tests run the same files.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
