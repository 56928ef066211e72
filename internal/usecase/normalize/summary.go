package normalize

import (
	"github.com/kailas-cloud/searchview/internal/domain/raw"
	"github.com/kailas-cloud/searchview/internal/domain/richtext"
	"github.com/kailas-cloud/searchview/internal/domain/view"
)

// DefaultSummaryPlaceholder is shown until a response carries a summary.
const DefaultSummaryPlaceholder = "Summary will appear here for your answers"

// ExtractSummary reads summary.summaryText, falling back to placeholder when
// it is absent or null. An empty summary text is kept as-is.
func ExtractSummary(root raw.Node, placeholder string) view.Summary {
	s := root.Get("summary")

	text, ok := s.Get("summaryText").Value().Get()
	if !ok {
		text = placeholder
	}

	reasons := []string{}
	for _, r := range s.Get("summarySkippedReasons").Items() {
		if v, present := r.Value().Get(); present {
			reasons = append(reasons, v)
		}
	}

	return view.Summary{
		Text:           text,
		HTML:           richtext.FromMarkdown(text),
		Placeholder:    !ok,
		SkippedReasons: reasons,
	}
}
