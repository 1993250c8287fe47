package main

import (
	"html/template"

	"github.com/Nixie-Tech-LLC/minbar/internal/web"
)

// LoadTemplates parses the embedded display page.
func LoadTemplates() *template.Template {
	tmpl, err := web.LoadTemplates()
	if err != nil {
		panic(err)
	}
	return tmpl
}
