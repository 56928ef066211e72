package normalize

import (
	"slices"
	"strconv"

	"github.com/kailas-cloud/searchview/internal/domain/raw"
	"github.com/kailas-cloud/searchview/internal/domain/richtext"
	"github.com/kailas-cloud/searchview/internal/domain/view"
)

// Project builds the view model of one result item.
// index is the item position in the response and only feeds the key fallback.
func Project(item raw.Node, index int, refs []view.ReferenceExcerpt) view.Document {
	derived := item.Get("document", "derivedStructData")

	references := slices.Clone(refs)
	if references == nil {
		references = []view.ReferenceExcerpt{}
	}

	return view.Document{
		Key:                resolveKey(item, index),
		Title:              ResolveTitle(item),
		References:         references,
		Snippets:           projectSnippets(derived.Get("snippets").Items()),
		ExtractiveAnswers:  projectAnswers(derived.Get("extractive_answers").Items()),
		ExtractiveSegments: projectSegments(derived.Get("extractive_segments").Items()),
	}
}

// ResolveTitle picks the first defined title-bearing field of an item.
func ResolveTitle(item raw.Node) string {
	doc := item.Get("document")
	return raw.FirstDefined(
		doc.Get("structData", "title").Value,
		doc.Get("derivedStructData", "title").Value,
		doc.Get("title").Value,
		doc.Get("id").Value,
	).OrElse("")
}

func resolveKey(item raw.Node, index int) string {
	return raw.FirstDefined(
		item.Get("id").Value,
		item.Get("document", "id").Value,
	).OrElse(strconv.Itoa(index))
}

func projectSnippets(nodes []raw.Node) []view.Snippet {
	out := make([]view.Snippet, len(nodes))
	for i, n := range nodes {
		out[i] = view.Snippet{Snippet: richtext.Sanitize(n.Get("snippet").String())}
	}
	return out
}

func projectAnswers(nodes []raw.Node) []view.ExtractiveAnswer {
	out := make([]view.ExtractiveAnswer, len(nodes))
	for i, n := range nodes {
		out[i] = view.ExtractiveAnswer{
			PageNumber: n.Get("pageNumber").Value().OrElse(view.Placeholder),
			Content:    n.Get("content").String(),
		}
	}
	return out
}

func projectSegments(nodes []raw.Node) []view.ExtractiveSegment {
	out := make([]view.ExtractiveSegment, len(nodes))
	for i, n := range nodes {
		score := view.Placeholder
		if v, ok := n.Get("relevanceScore").Number().Get(); ok {
			score = view.FormatScore(v)
		}
		out[i] = view.ExtractiveSegment{
			PageNumber:     n.Get("pageNumber").Value().OrElse(view.Placeholder),
			Content:        n.Get("content").String(),
			RelevanceScore: score,
		}
	}
	return out
}
