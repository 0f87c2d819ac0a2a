// Package web embeds the booking and lookup pages served by the API.
package web

import (
	"embed"
	"io/fs"
)

//go:embed index.html mis-citas.html static
var files embed.FS

// Page returns the bytes of a top level HTML page.
func Page(name string) ([]byte, error) {
	return files.ReadFile(name)
}

// Static returns the static asset tree rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
