package controllers

import (
	"errors"
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/rahul4469/phisher-ai/context"
	"github.com/rahul4469/phisher-ai/internal/analyzer"
	"github.com/rahul4469/phisher-ai/internal/models"
	"github.com/rahul4469/phisher-ai/internal/views"
)

// Page metadata shared by every page.
const (
	SiteTitle       = "Phisher.ai"
	SiteDescription = "Check your emails for phishing attempts"
	SiteIcon        = "/static/icon0.svg"
)

// AnalyzeController renders the analyzer page and handles form submissions.
type AnalyzeController struct {
	client    analyzer.Analyzer
	templates AnalyzeTemplates
}

// AnalyzeTemplates holds the templates for analysis pages.
type AnalyzeTemplates struct {
	Page *views.Template
}

// NewAnalyzeController creates a new AnalyzeController. client is the proxy
// endpoint client every form submits through.
func NewAnalyzeController(client analyzer.Analyzer, templates AnalyzeTemplates) *AnalyzeController {
	return &AnalyzeController{
		client:    client,
		templates: templates,
	}
}

// AnalyzePageData holds data for the analyzer page template.
type AnalyzePageData struct {
	Heading    string
	Tagline    string
	Form       analyzer.FormState
	MaxWords   int
	MinLength  int
	MaxSubject int
}

// GetAnalyze renders an empty analyzer form.
func (c *AnalyzeController) GetAnalyze(w http.ResponseWriter, r *http.Request) {
	form := analyzer.NewForm(c.client, context.Logger(r.Context()))
	c.templates.Page.ExecuteHTTP(w, r, c.pageData(r, form.Snapshot()))
}

// PostAnalyze submits the form and renders its outcome.
func (c *AnalyzeController) PostAnalyze(w http.ResponseWriter, r *http.Request) {
	form := analyzer.NewForm(c.client, context.Logger(r.Context()))

	if err := r.ParseForm(); err != nil {
		c.templates.Page.ExecuteHTTPWithStatus(w, r, http.StatusBadRequest, c.pageData(r, form.Snapshot()))
		return
	}

	form.UpdateSubject(r.PostFormValue("subject"))
	form.UpdateBody(r.PostFormValue("text"))

	status := http.StatusOK
	if err := form.Submit(r.Context()); err != nil {
		status = http.StatusBadGateway
		if isValidationError(err) {
			status = http.StatusUnprocessableEntity
		}
	}

	c.templates.Page.ExecuteHTTPWithStatus(w, r, status, c.pageData(r, form.Snapshot()))
}

func (c *AnalyzeController) pageData(r *http.Request, state analyzer.FormState) *views.TemplateData {
	return &views.TemplateData{
		Title:       SiteTitle,
		Description: SiteDescription,
		Icon:        SiteIcon,
		CSRFField:   csrf.TemplateField(r),
		Data: AnalyzePageData{
			Heading:    "Email Phishing Analyzer",
			Tagline:    "Paste or type an email message to analyze it for phishing attempts",
			Form:       state,
			MaxWords:   models.MaxWordCount,
			MinLength:  models.MinBodyLength,
			MaxSubject: models.MaxSubjectLength,
		},
	}
}

func isValidationError(err error) bool {
	return errors.Is(err, models.ErrBodyTooShort) ||
		errors.Is(err, models.ErrTooManyWords) ||
		errors.Is(err, models.ErrSubjectTooLong)
}
