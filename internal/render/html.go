package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/kailas-cloud/searchview/internal/domain/richtext"
	"github.com/kailas-cloud/searchview/internal/domain/search/request"
	"github.com/kailas-cloud/searchview/internal/domain/view"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(
	template.New("page.html.tmpl").
		Funcs(template.FuncMap{
			// richtext values are sanitized on construction.
			"rich": func(h richtext.HTML) template.HTML { return template.HTML(h.String()) }, //nolint:gosec // sanitized by richtext
		}).
		ParseFS(templateFS, "templates/page.html.tmpl"),
)

// FormValues pre-fills the search form and its parameter panel.
type FormValues struct {
	Query                 string
	PageSize              int
	SummaryResultCount    int
	IncludeCitations      bool
	ReturnSnippet         bool
	MaxExtractiveAnswers  int
	MaxExtractiveSegments int
}

// DefaultFormValues mirrors the request defaults.
func DefaultFormValues() FormValues {
	return FormValues{
		PageSize:              request.DefaultPageSize,
		SummaryResultCount:    request.DefaultSummaryResultCount,
		IncludeCitations:      true,
		ReturnSnippet:         true,
		MaxExtractiveAnswers:  request.DefaultMaxExtractiveAnswers,
		MaxExtractiveSegments: request.DefaultMaxExtractiveSegments,
	}
}

// FormValuesFrom reflects a validated request back into the form.
func FormValuesFrom(req *request.Request) FormValues {
	return FormValues{
		Query:                 req.Query(),
		PageSize:              req.PageSize(),
		SummaryResultCount:    req.SummaryResultCount(),
		IncludeCitations:      req.IncludeCitations(),
		ReturnSnippet:         req.ReturnSnippet(),
		MaxExtractiveAnswers:  req.MaxExtractiveAnswers(),
		MaxExtractiveSegments: req.MaxExtractiveSegments(),
	}
}

// PageData is everything the HTML page shows.
type PageData struct {
	Title string
	Form  FormValues
	// Page is nil before the first search.
	Page *view.Page
	// Summary is shown even without a page, so the placeholder is visible.
	Summary view.Summary
	Error   string
}

// HTMLRenderer renders the full search page.
type HTMLRenderer struct {
	title       string
	placeholder view.Summary
}

// NewHTMLRenderer creates an HTML renderer. placeholder is the summary shown
// before any search ran.
func NewHTMLRenderer(title string, placeholder view.Summary) *HTMLRenderer {
	return &HTMLRenderer{title: title, placeholder: placeholder}
}

// Render implements Renderer.
func (r *HTMLRenderer) Render(w io.Writer, page *view.Page) error {
	form := DefaultFormValues()
	if page != nil {
		form.Query = page.Query
	}
	return r.RenderPage(w, PageData{Form: form, Page: page})
}

// RenderPage renders the page with explicit form values and error text.
func (r *HTMLRenderer) RenderPage(w io.Writer, data PageData) error {
	if data.Title == "" {
		data.Title = r.title
	}
	switch {
	case data.Page != nil:
		data.Summary = data.Page.Summary
	case data.Summary.Text == "":
		data.Summary = r.placeholder
	}
	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}
