package request

import (
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/searchview/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func TestNew_Defaults(t *testing.T) {
	r, err := New("hello", Params{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Query() != "hello" {
		t.Errorf("Query() = %q", r.Query())
	}
	if r.PageSize() != DefaultPageSize {
		t.Errorf("PageSize() = %d, want %d", r.PageSize(), DefaultPageSize)
	}
	if r.SummaryResultCount() != DefaultSummaryResultCount {
		t.Errorf("SummaryResultCount() = %d, want %d", r.SummaryResultCount(), DefaultSummaryResultCount)
	}
	if !r.IncludeCitations() {
		t.Error("IncludeCitations() = false, want true by default")
	}
	if !r.ReturnSnippet() {
		t.Error("ReturnSnippet() = false, want true by default")
	}
	if r.MaxExtractiveAnswers() != DefaultMaxExtractiveAnswers {
		t.Errorf("MaxExtractiveAnswers() = %d", r.MaxExtractiveAnswers())
	}
	if r.MaxExtractiveSegments() != DefaultMaxExtractiveSegments {
		t.Errorf("MaxExtractiveSegments() = %d", r.MaxExtractiveSegments())
	}
}

func TestNew_ExplicitValues(t *testing.T) {
	r, err := New("  mounting bracket  ", Params{
		PageSize:              25,
		SummaryResultCount:    3,
		IncludeCitations:      ptr(false),
		ReturnSnippet:         ptr(false),
		MaxExtractiveAnswers:  ptr(0),
		MaxExtractiveSegments: ptr(4),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Query() != "mounting bracket" {
		t.Errorf("Query() = %q, want trimmed", r.Query())
	}
	if r.PageSize() != 25 || r.SummaryResultCount() != 3 {
		t.Errorf("PageSize/SummaryResultCount = %d/%d", r.PageSize(), r.SummaryResultCount())
	}
	if r.IncludeCitations() || r.ReturnSnippet() {
		t.Error("explicit false flags were ignored")
	}
	if r.MaxExtractiveAnswers() != 0 {
		t.Errorf("MaxExtractiveAnswers() = %d, want explicit 0", r.MaxExtractiveAnswers())
	}
	if r.MaxExtractiveSegments() != 4 {
		t.Errorf("MaxExtractiveSegments() = %d", r.MaxExtractiveSegments())
	}
}

func TestNew_Clamping(t *testing.T) {
	r, err := New("q", Params{
		PageSize:              1000,
		SummaryResultCount:    50,
		MaxExtractiveAnswers:  ptr(99),
		MaxExtractiveSegments: ptr(99),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.PageSize() != MaxPageSize {
		t.Errorf("PageSize() = %d, want %d", r.PageSize(), MaxPageSize)
	}
	if r.SummaryResultCount() != MaxSummaryResultCount {
		t.Errorf("SummaryResultCount() = %d, want %d", r.SummaryResultCount(), MaxSummaryResultCount)
	}
	if r.MaxExtractiveAnswers() != MaxExtractiveAnswers {
		t.Errorf("MaxExtractiveAnswers() = %d", r.MaxExtractiveAnswers())
	}
	if r.MaxExtractiveSegments() != MaxExtractiveSegments {
		t.Errorf("MaxExtractiveSegments() = %d", r.MaxExtractiveSegments())
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		query string
		p     Params
		want  string
	}{
		{"empty query", "", Params{}, "required"},
		{"blank query", "   ", Params{}, "required"},
		{"too long", strings.Repeat("x", MaxQueryLength+1), Params{}, "too long"},
		{"negative page size", "q", Params{PageSize: -1}, "page_size"},
		{"negative summary count", "q", Params{SummaryResultCount: -3}, "summary_result_count"},
		{"negative answers", "q", Params{MaxExtractiveAnswers: ptr(-1)}, "max_extractive_answers"},
		{"negative segments", "q", Params{MaxExtractiveSegments: ptr(-1)}, "max_extractive_segments"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.query, tt.p)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, domain.ErrInvalidRequest) {
				t.Errorf("error %v does not wrap ErrInvalidRequest", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want substring %q", err, tt.want)
			}
		})
	}
}

func TestNew_QueryLengthCountsRunes(t *testing.T) {
	q := strings.Repeat("ж", MaxQueryLength)
	if _, err := New(q, Params{}); err != nil {
		t.Fatalf("query of %d runes rejected: %v", MaxQueryLength, err)
	}
}
