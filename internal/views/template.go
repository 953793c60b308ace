package views

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"

	"github.com/rahul4469/phisher-ai/context"
	"go.uber.org/zap"
)

// TemplateFS holds layouts/, partials/ and pages/. It must be set before
// ParseFS is called.
var TemplateFS fs.FS

// Template wraps a parsed template with helper methods for rendering.
type Template struct {
	tmpl *template.Template
}

// TemplateData is the standard data structure passed to all templates.
type TemplateData struct {
	// CSRF hidden input for forms
	CSRFField template.HTML

	// Page-specific data
	Data interface{}

	// Page metadata
	Title       string
	Description string
	Icon        string
}

// DefaultFuncMap returns the template functions available in all templates.
func DefaultFuncMap() template.FuncMap {
	return template.FuncMap{
		"scoreClass":     scoreClass,
		"wordCountClass": wordCountClass,

		"default": defaultValue,
	}
}

// ParseFS parses the base layout, every partial, and the requested pages.
//
// Usage:
//
//	tmpl, err := views.ParseFS("pages/home.gohtml")
func ParseFS(patterns ...string) (*Template, error) {
	if TemplateFS == nil {
		return nil, fmt.Errorf("views: TemplateFS is not set")
	}

	tmpl := template.New("").Funcs(DefaultFuncMap())

	baseContent, err := fs.ReadFile(TemplateFS, "layouts/base.gohtml")
	if err != nil {
		return nil, fmt.Errorf("failed to read base template: %w", err)
	}
	tmpl, err = tmpl.Parse(string(baseContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse base template: %w", err)
	}

	// Partials define their own names with {{define "name"}}
	partialMatches, err := fs.Glob(TemplateFS, "partials/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("failed to glob partials: %w", err)
	}
	for _, match := range partialMatches {
		content, err := fs.ReadFile(TemplateFS, match)
		if err != nil {
			return nil, fmt.Errorf("failed to read partial %s: %w", match, err)
		}
		tmpl, err = tmpl.Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("failed to parse partial %s: %w", match, err)
		}
	}

	// Pages define the "content" block rendered by "base"
	for _, pattern := range patterns {
		content, err := fs.ReadFile(TemplateFS, pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", pattern, err)
		}
		tmpl, err = tmpl.Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", pattern, err)
		}
	}

	return &Template{tmpl: tmpl}, nil
}

// Execute renders the template to the given writer with the provided data.
func (t *Template) Execute(w io.Writer, data *TemplateData) error {
	return t.tmpl.ExecuteTemplate(w, "base", data)
}

// ExecuteHTTP renders the template as a 200 response.
func (t *Template) ExecuteHTTP(w http.ResponseWriter, r *http.Request, data *TemplateData) {
	t.ExecuteHTTPWithStatus(w, r, http.StatusOK, data)
}

// ExecuteHTTPWithStatus renders the template with a custom HTTP status code.
// Output is buffered so a failing template never produces a partial page.
func (t *Template) ExecuteHTTPWithStatus(w http.ResponseWriter, r *http.Request, status int, data *TemplateData) {
	buf := &bytes.Buffer{}
	if err := t.Execute(buf, data); err != nil {
		context.Logger(r.Context()).Error("template execution error", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// Template function implementations

// scoreClass maps a phishing score onto the verdict bands used by the
// scoring service.
func scoreClass(score int) string {
	switch {
	case score >= 80:
		return "score-phishing"
	case score >= 60:
		return "score-suspicious"
	case score >= 30:
		return "score-minor"
	default:
		return "score-safe"
	}
}

func wordCountClass(count, limit int) string {
	if count > limit {
		return "text-red"
	}
	return "text-gray"
}

func defaultValue(value, defaultVal interface{}) interface{} {
	if value == nil || value == "" || value == 0 {
		return defaultVal
	}
	return value
}
