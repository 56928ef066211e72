package request

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/searchview/internal/domain"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 4096

	DefaultPageSize = 10
	MaxPageSize     = 100

	DefaultSummaryResultCount = 5
	MaxSummaryResultCount     = 10

	DefaultMaxExtractiveAnswers  = 1
	MaxExtractiveAnswers         = 5
	DefaultMaxExtractiveSegments = 1
	MaxExtractiveSegments        = 10
)

// Params are the optional knobs of a search call. Zero values and nil
// pointers mean "use the default".
type Params struct {
	PageSize              int
	SummaryResultCount    int
	IncludeCitations      *bool
	ReturnSnippet         *bool
	MaxExtractiveAnswers  *int
	MaxExtractiveSegments *int
}

// Request is a validated search query.
type Request struct {
	query                 string
	pageSize              int
	summaryResultCount    int
	includeCitations      bool
	returnSnippet         bool
	maxExtractiveAnswers  int
	maxExtractiveSegments int
}

// New validates and normalizes search parameters.
// Counts above their maximum are clamped; negative extractive counts are rejected.
func New(query string, p Params) (Request, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Request{}, fmt.Errorf("%w: query is required", domain.ErrInvalidRequest)
	}
	if utf8.RuneCountInString(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidRequest, MaxQueryLength)
	}
	if p.PageSize < 0 {
		return Request{}, fmt.Errorf("%w: page_size must not be negative", domain.ErrInvalidRequest)
	}
	if p.SummaryResultCount < 0 {
		return Request{}, fmt.Errorf("%w: summary_result_count must not be negative", domain.ErrInvalidRequest)
	}

	answers, err := bounded("max_extractive_answers", p.MaxExtractiveAnswers, DefaultMaxExtractiveAnswers, MaxExtractiveAnswers)
	if err != nil {
		return Request{}, err
	}
	segments, err := bounded("max_extractive_segments", p.MaxExtractiveSegments, DefaultMaxExtractiveSegments, MaxExtractiveSegments)
	if err != nil {
		return Request{}, err
	}

	return Request{
		query:                 query,
		pageSize:              clamp(p.PageSize, DefaultPageSize, MaxPageSize),
		summaryResultCount:    clamp(p.SummaryResultCount, DefaultSummaryResultCount, MaxSummaryResultCount),
		includeCitations:      boolOr(p.IncludeCitations, true),
		returnSnippet:         boolOr(p.ReturnSnippet, true),
		maxExtractiveAnswers:  answers,
		maxExtractiveSegments: segments,
	}, nil
}

func clamp(v, def, maxV int) int {
	if v <= 0 {
		return def
	}
	return min(v, maxV)
}

// bounded treats 0 as a valid explicit value, unlike clamp.
func bounded(name string, v *int, def, maxV int) (int, error) {
	if v == nil {
		return def, nil
	}
	if *v < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative", domain.ErrInvalidRequest, name)
	}
	return min(*v, maxV), nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// Query returns the search query text.
func (r *Request) Query() string { return r.query }

// PageSize returns the number of results to request.
func (r *Request) PageSize() int { return r.pageSize }

// SummaryResultCount returns how many top results feed the summary.
func (r *Request) SummaryResultCount() int { return r.summaryResultCount }

// IncludeCitations reports whether the summary should carry citation markers.
func (r *Request) IncludeCitations() bool { return r.includeCitations }

// ReturnSnippet reports whether snippets are requested.
func (r *Request) ReturnSnippet() bool { return r.returnSnippet }

// MaxExtractiveAnswers returns the per-document extractive answer cap.
func (r *Request) MaxExtractiveAnswers() int { return r.maxExtractiveAnswers }

// MaxExtractiveSegments returns the per-document extractive segment cap.
func (r *Request) MaxExtractiveSegments() int { return r.maxExtractiveSegments }
