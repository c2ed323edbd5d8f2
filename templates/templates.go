// Package templates embeds the three screen templates so the router and
// tests can load them from any working directory. html/template
// auto-escaping is the render-boundary sanitization for all free-text
// fields.
package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Load parses the embedded screen templates.
func Load() *template.Template {
	return template.Must(template.ParseFS(files, "*.html"))
}
