// Package web embeds the HTML templates and static assets.
package web

import (
	"embed"
	"io/fs"
)

//go:embed template/*.html
var Templates embed.FS

//go:embed static
var staticFiles embed.FS

// Static returns the asset tree rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic("failed to open embedded static filesystem: " + err.Error())
	}
	return sub
}
