package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var files embed.FS

// Static returns the browser client rooted at its index page.
func Static() fs.FS {
	static, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}

	return static
}
