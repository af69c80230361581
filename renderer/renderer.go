// Package renderer turns reports into markdown for terminal display.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/folioscout/folioscout"
)

//go:embed templates/*.md
var templates embed.FS

// RenderSummary renders the summary report to a markdown string.
func RenderSummary(r *folioscout.SummaryReport) string {
	partials := map[string]string{
		"summary_holdings": "templates/summary_holdings.md",
	}
	return renderTemplate("summary", "templates/summary.md", partials, r)
}

// RenderHistory renders the history report to a markdown string.
func RenderHistory(r *folioscout.HistoryReport) string {
	return renderTemplate("history", "templates/history.md", nil, r)
}

// renderTemplate is a generic utility to render a main template that depends
// on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
