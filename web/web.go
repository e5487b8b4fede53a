// Package web embeds the server-rendered template set.
package web

import (
	"embed"
	"io/fs"
)

//go:embed all:templates
var templates embed.FS

// TemplatesFS returns the template tree rooted at templates/.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}
