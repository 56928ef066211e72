package searchview

import (
	"context"
	"time"

	"github.com/kailas-cloud/searchview/internal/domain/view"
	"github.com/kailas-cloud/searchview/internal/usecase/normalize"
)

// DefaultSummaryPlaceholder is the summary text used when a response has none.
const DefaultSummaryPlaceholder = normalize.DefaultSummaryPlaceholder

// Normalizer converts raw search responses into pages.
// It is safe for concurrent use.
type Normalizer struct {
	core *normalize.Normalizer
	obs  *observer
}

// New creates a Normalizer. It fails only when metrics cannot be registered.
func New(opts ...Option) (*Normalizer, error) {
	cfg := &normalizerConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	var policy normalize.ReferencePolicy = normalize.FirstGroupPolicy{}
	if cfg.perDocument {
		policy = normalize.PerDocumentPolicy{}
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	return &Normalizer{
		core: normalize.New(policy).WithSummaryPlaceholder(cfg.placeholder),
		obs:  obs,
	}, nil
}

// Normalize converts one response body. Malformed input yields an empty page.
func (n *Normalizer) Normalize(ctx context.Context, payload []byte) Page {
	start := time.Now()
	page := toPage(n.core.NormalizeBytes(payload))
	n.obs.observe(ctx, start, len(payload), &page)
	return page
}

func toPage(p view.Page) Page {
	docs := make([]Document, 0, len(p.Documents))
	for i := range p.Documents {
		docs = append(docs, toDocument(&p.Documents[i]))
	}
	return Page{
		Summary: Summary{
			Text:           p.Summary.Text,
			HTML:           p.Summary.HTML.String(),
			Placeholder:    p.Summary.Placeholder,
			SkippedReasons: append([]string{}, p.Summary.SkippedReasons...),
		},
		Documents: docs,
		TotalSize: p.TotalSize,
	}
}

func toDocument(d *view.Document) Document {
	out := Document{
		Key:                d.Key,
		Title:              d.Title,
		Heading:            d.Heading(),
		References:         make([]ReferenceExcerpt, 0, len(d.References)),
		Snippets:           make([]string, 0, len(d.Snippets)),
		ExtractiveAnswers:  make([]ExtractiveAnswer, 0, len(d.ExtractiveAnswers)),
		ExtractiveSegments: make([]ExtractiveSegment, 0, len(d.ExtractiveSegments)),
	}
	for _, r := range d.References {
		out.References = append(out.References, ReferenceExcerpt(r))
	}
	for _, s := range d.Snippets {
		out.Snippets = append(out.Snippets, s.Snippet.String())
	}
	for _, a := range d.ExtractiveAnswers {
		out.ExtractiveAnswers = append(out.ExtractiveAnswers, ExtractiveAnswer(a))
	}
	for _, s := range d.ExtractiveSegments {
		out.ExtractiveSegments = append(out.ExtractiveSegments, ExtractiveSegment(s))
	}
	return out
}
