package chi

import (
	"fmt"
	"net/http"

	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/searchview/internal/domain"
	"github.com/kailas-cloud/searchview/internal/domain/search/request"
)

// bindSearchParams reads the optional search query parameters.
func bindSearchParams(r *http.Request) (searchParams, error) {
	var p searchParams
	query := r.URL.Query()

	bindings := []struct {
		name string
		dest any
	}{
		{"q", &p.Q},
		{"page_size", &p.PageSize},
		{"summary_result_count", &p.SummaryResultCount},
		{"include_citations", &p.IncludeCitations},
		{"return_snippet", &p.ReturnSnippet},
		{"max_extractive_answers", &p.MaxExtractiveAnswers},
		{"max_extractive_segments", &p.MaxExtractiveSegments},
	}
	for _, b := range bindings {
		if err := runtime.BindQueryParameter("form", true, false, b.name, query, b.dest); err != nil {
			return searchParams{}, fmt.Errorf("%w: invalid format for parameter %s: %w", domain.ErrInvalidRequest, b.name, err)
		}
	}
	return p, nil
}

func (p *searchParams) query() string {
	if p.Q == nil {
		return ""
	}
	return *p.Q
}

func (p *searchParams) toRequest() (request.Request, error) {
	return request.New(p.query(), request.Params{
		PageSize:              derefInt(p.PageSize),
		SummaryResultCount:    derefInt(p.SummaryResultCount),
		IncludeCitations:      p.IncludeCitations,
		ReturnSnippet:         p.ReturnSnippet,
		MaxExtractiveAnswers:  p.MaxExtractiveAnswers,
		MaxExtractiveSegments: p.MaxExtractiveSegments,
	})
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
