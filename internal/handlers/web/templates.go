package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(
	template.New("chargen").
		Funcs(template.FuncMap{"renderTime": renderTime}).
		ParseFS(templatesFS, "templates/*.html"),
)
