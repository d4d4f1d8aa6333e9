// Package migrations embeds the PostgreSQL schema for the order backend.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
