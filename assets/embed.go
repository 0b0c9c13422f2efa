package assets

import (
	"embed"
	"io/fs"
)

//go:embed puzzle.yaml sql/*.sql templates/*.html static/*.css
var FS embed.FS

// Puzzle returns the bundled puzzle definition.
func Puzzle() ([]byte, error) {
	return FS.ReadFile("puzzle.yaml")
}

// Migrations returns the SQL migration directory.
func Migrations() fs.FS {
	sub, _ := fs.Sub(FS, "sql")
	return sub
}

// Static returns the stylesheet directory served under /static.
func Static() fs.FS {
	sub, _ := fs.Sub(FS, "static")
	return sub
}
