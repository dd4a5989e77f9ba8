// Package migrations carries the SQL schema applied by cmd/migrate and by
// the server when postgres.auto_migrate is set.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed postgres/*.sql
var files embed.FS

// Postgres returns the postgres migrations rooted at their directory
func Postgres() fs.FS {
	sub, err := fs.Sub(files, "postgres")
	if err != nil {
		panic(err)
	}
	return sub
}
