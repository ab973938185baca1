// Package web renders the HTML pages served by the dashboard. Templates are
// compiled once at startup from in-memory sources and cached.
package web

import (
	"fmt"
	"html/template"
	"io"

	"github.com/openclimb/cragcast/pkg/logger"
)

// IndexData is the context for the dashboard page
type IndexData struct {
	Title       string
	PlotURL     template.URL // data: URI carrying the inline PNG
	GeneratedAt string
}

// ErrorData is the context for the error page
type ErrorData struct {
	Title   string
	Message string
}

// Renderer holds the compiled page templates
type Renderer struct {
	templates map[string]*template.Template
	logger    *logger.Logger
}

// NewRenderer compiles all page templates
func NewRenderer(log *logger.Logger) (*Renderer, error) {
	sources := map[string]string{
		"index":  indexTemplate,
		"error":  errorTemplate,
		"nodata": noDataTemplate,
	}

	templates := make(map[string]*template.Template, len(sources))
	for name, src := range sources {
		tmpl, err := template.New(name).Parse(src)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		templates[name] = tmpl
	}

	return &Renderer{
		templates: templates,
		logger:    log.Named("web-renderer"),
	}, nil
}

// Index renders the dashboard page with the inline chart
func (r *Renderer) Index(w io.Writer, data IndexData) error {
	return r.render(w, "index", data)
}

// Error renders the error page
func (r *Renderer) Error(w io.Writer, data ErrorData) error {
	return r.render(w, "error", data)
}

// NoData renders the page shown when no location produced any forecast data
func (r *Renderer) NoData(w io.Writer) error {
	return r.render(w, "nodata", nil)
}

func (r *Renderer) render(w io.Writer, name string, data interface{}) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("unknown template: %s", name)
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to execute %s template: %w", name, err)
	}
	return nil
}
