package normalize

import (
	"github.com/kailas-cloud/searchview/internal/domain/raw"
	"github.com/kailas-cloud/searchview/internal/domain/view"
)

// Normalizer runs extraction, reference association and projection.
// It keeps no state between calls and is safe for concurrent use.
type Normalizer struct {
	policy      ReferencePolicy
	placeholder string
}

// New creates a Normalizer. A nil policy means FirstGroupPolicy.
func New(policy ReferencePolicy) *Normalizer {
	if policy == nil {
		policy = FirstGroupPolicy{}
	}
	return &Normalizer{policy: policy, placeholder: DefaultSummaryPlaceholder}
}

// WithSummaryPlaceholder overrides the text shown when there is no summary.
func (n *Normalizer) WithSummaryPlaceholder(placeholder string) *Normalizer {
	if placeholder != "" {
		n.placeholder = placeholder
	}
	return n
}

// Normalize builds the page for one response.
func (n *Normalizer) Normalize(root raw.Node) view.Page {
	ex := Extract(root)

	docs := make([]view.Document, 0, len(ex.Items))
	for i, item := range ex.Items {
		docs = append(docs, Project(item, i, n.policy.ReferencesFor(item, ex.Groups)))
	}

	total := 0
	if v, ok := root.Get("totalSize").Number().Get(); ok && v > 0 {
		total = int(v)
	}

	return view.Page{
		Summary:   ExtractSummary(root, n.placeholder),
		Documents: docs,
		TotalSize: total,
	}
}

// NormalizeBytes parses payload and normalizes it. Invalid JSON yields an empty page.
func (n *Normalizer) NormalizeBytes(payload []byte) view.Page {
	return n.Normalize(raw.Parse(payload))
}
