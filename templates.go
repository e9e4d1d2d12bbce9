// templates.go
package main

import (
	"embed"
	"fmt"
	"html/template"

	"oelmerger/internal/oel"
	"oelmerger/internal/report"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"add": func(a, b int) int { return a + b },
	"statusClass": func(s string) string {
		if s == string(oel.Free) {
			return "free"
		}
		return "used"
	},
	"isStatus": func(col int) bool { return col >= report.FreqColumns },
	"formatNumber": func(f float64) string {
		return fmt.Sprintf("%.2f", f)
	},
}

func parsePage(name string) *template.Template {
	return template.Must(template.New(name).Funcs(templateFuncs).ParseFS(templateFS, "templates/layout.html", "templates/"+name))
}

var indexTemplate = parsePage("index.html")
var summaryTemplate = parsePage("summary.html")
var resultTemplate = parsePage("results.html")
