// Package normalize turns raw search responses into view models.
//
// Nothing in this package returns an error. Missing paths, nulls, wrong
// types and non-array values where a list was expected all degrade to the
// empty string, the empty list or the "?" placeholder.
package normalize

import (
	"github.com/kailas-cloud/searchview/internal/domain/raw"
	"github.com/kailas-cloud/searchview/internal/domain/view"
)

// ReferenceGroup is one entry of the summary reference list.
type ReferenceGroup struct {
	Document string
	Title    string
	URI      string
	Chunks   []view.ReferenceExcerpt
}

// Extraction is the top level of a response split into its parts.
type Extraction struct {
	// Items are the raw result entries, unvalidated.
	Items []raw.Node
	// References are the chunk contents of the first reference group.
	References []view.ReferenceExcerpt
	// Groups holds every reference group, for association policies.
	Groups []ReferenceGroup
}

// Extract pulls the result list and the summary references out of a response.
func Extract(root raw.Node) Extraction {
	refs := root.Get("summary", "summaryWithMetadata", "references")

	groups := make([]ReferenceGroup, 0, len(refs.Items()))
	for _, g := range refs.Items() {
		groups = append(groups, ReferenceGroup{
			Document: g.Get("document").String(),
			Title:    g.Get("title").String(),
			URI:      g.Get("uri").String(),
			Chunks:   projectReferences(g.Get("chunkContents").Items()),
		})
	}

	return Extraction{
		Items:      root.Get("results").Items(),
		References: projectReferences(refs.Index(0).Get("chunkContents").Items()),
		Groups:     groups,
	}
}

func projectReferences(nodes []raw.Node) []view.ReferenceExcerpt {
	out := make([]view.ReferenceExcerpt, len(nodes))
	for i, n := range nodes {
		out[i] = view.ReferenceExcerpt{
			PageIdentifier: n.Get("pageIdentifier").Value().OrElse(view.Placeholder),
			Content:        n.Get("content").String(),
		}
	}
	return out
}
