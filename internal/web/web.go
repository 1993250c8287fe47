// Package web embeds the HTML served to the display browser.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

// LoadTemplates parses the embedded display templates.
func LoadTemplates() (*template.Template, error) {
	return template.New("").ParseFS(files, "templates/*.html")
}
