package web

import (
	"embed"
	"io/fs"
)

// staticFS holds the dashboard shell served by the edge server.
//
//go:embed all:dist
var staticFS embed.FS

// FS returns the dashboard files rooted at the build output directory.
func FS() (fs.FS, error) {
	return fs.Sub(staticFS, "dist")
}
