// Package view holds the embedded HTML templates of the dashboard.
package view

import (
	"embed"
	"html/template"

	"stock_dashboard/internal/feature/quotes/presenter"
)

// DashboardTemplate is the template name passed to gin's c.HTML.
const DashboardTemplate = "dashboard.tmpl"

// PlotlyCDN is the Plotly.js bundle the page loads.
const PlotlyCDN = "https://cdn.plot.ly/plotly-2.35.2.min.js"

//go:embed templates/*.tmpl
var files embed.FS

// Page is the data handed to DashboardTemplate.
type Page struct {
	presenter.View
	// FigureJSON is the marshalled presenter.Figure, inserted verbatim into a script block.
	FigureJSON template.JS
	PlotlyURL  string
}

var funcs = template.FuncMap{
	"noticeClass": func(level string) string {
		switch level {
		case presenter.LevelError, presenter.LevelWarning, presenter.LevelInfo:
			return "notice-" + level
		}
		return "notice-info"
	},
}

// Templates parses the embedded templates. It panics on a malformed template, which is a build defect.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(files, "templates/*.tmpl"))
}
