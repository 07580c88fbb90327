// Package web embeds the HTML views so the binary is self-contained and
// handler tests render the real templates.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded view set. Panics on a malformed
// template, which is a build defect, not a runtime condition.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
}
