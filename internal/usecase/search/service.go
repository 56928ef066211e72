package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/searchview/internal/domain/raw"
	"github.com/kailas-cloud/searchview/internal/domain/search/request"
	"github.com/kailas-cloud/searchview/internal/domain/view"
	"github.com/kailas-cloud/searchview/internal/logger"
	"github.com/kailas-cloud/searchview/internal/metrics"
	"github.com/kailas-cloud/searchview/internal/usecase/normalize"
)

// Payload sources used as metric labels.
const (
	SourceBackend = "backend"
	SourceUpload  = "upload"
)

// Service runs searches and turns backend payloads into pages.
type Service struct {
	backend    Backend
	normalizer *normalize.Normalizer
}

// New creates a search service. backend may be nil for normalize-only use.
func New(backend Backend, normalizer *normalize.Normalizer) *Service {
	if normalizer == nil {
		normalizer = normalize.New(nil)
	}
	return &Service{backend: backend, normalizer: normalizer}
}

// Search queries the backend and normalizes its answer.
func (s *Service) Search(ctx context.Context, req *request.Request) (view.Page, error) {
	if s.backend == nil {
		return view.Page{}, fmt.Errorf("search backend is not configured")
	}
	payload, err := s.backend.Search(ctx, req)
	if err != nil {
		return view.Page{}, fmt.Errorf("search %q: %w", req.Query(), err)
	}

	logger.FromContext(ctx).Debug("search backend payload", logger.Payload(payload))

	page := s.normalize(ctx, payload, SourceBackend)
	page.Query = req.Query()
	return page, nil
}

// Normalize turns an already retrieved payload into a page. It never fails.
func (s *Service) Normalize(ctx context.Context, payload []byte) view.Page {
	return s.normalize(ctx, payload, SourceUpload)
}

func (s *Service) normalize(ctx context.Context, payload []byte, source string) view.Page {
	root := raw.Parse(payload)
	if !root.IsObject() {
		logger.FromContext(ctx).Debug("payload is not a JSON object, rendering empty page",
			zap.String("source", source), zap.Int("bytes", len(payload)))
	}
	page := s.normalizer.Normalize(root)
	record(page, source)
	return page
}

func record(page view.Page, source string) {
	metrics.NormalizedResponsesTotal.WithLabelValues(source).Inc()
	metrics.NormalizedDocumentsTotal.Add(float64(len(page.Documents)))
	if page.Summary.Placeholder {
		metrics.SummaryPlaceholderTotal.Inc()
	}
	for i := range page.Documents {
		d := &page.Documents[i]
		countSection("references", len(d.References))
		countSection("snippets", len(d.Snippets))
		countSection("extractive_answers", len(d.ExtractiveAnswers))
		countSection("extractive_segments", len(d.ExtractiveSegments))
	}
}

func countSection(name string, n int) {
	if n > 0 {
		metrics.DocumentSectionsTotal.WithLabelValues(name).Inc()
	}
}
