// Package web embeds the dashboard templates.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates
var content embed.FS

// Templates returns the template tree rooted at the templates directory.
func Templates() fs.FS {
	sub, err := fs.Sub(content, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}
