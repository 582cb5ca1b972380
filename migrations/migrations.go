// Package migrations embeds the PostgreSQL schema applied by siteadmin.
package migrations

import "embed"

// FS holds the numbered up/down scripts in golang-migrate naming.
//
//go:embed *.sql
var FS embed.FS
