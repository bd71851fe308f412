// Package appfs embeds the files shipped with the binaries.
package appfs

import "embed"

//go:embed migrations
var FS embed.FS

// MigrationsDir returns the directory of the migrations written for a database dialect.
func MigrationsDir(dialect string) string {
	return "migrations/" + dialect
}
