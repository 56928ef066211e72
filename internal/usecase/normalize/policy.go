package normalize

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/searchview/internal/domain/raw"
	"github.com/kailas-cloud/searchview/internal/domain/view"
)

// Reference policy names accepted in configuration.
const (
	PolicyFirstGroup  = "first_group"
	PolicyPerDocument = "per_document"
)

// ReferencePolicy decides which reference excerpts belong to a result item.
type ReferencePolicy interface {
	ReferencesFor(item raw.Node, groups []ReferenceGroup) []view.ReferenceExcerpt
}

// FirstGroupPolicy hands the first reference group to every item,
// whichever document the group actually cites.
type FirstGroupPolicy struct{}

// ReferencesFor implements ReferencePolicy.
func (FirstGroupPolicy) ReferencesFor(_ raw.Node, groups []ReferenceGroup) []view.ReferenceExcerpt {
	if len(groups) == 0 {
		return []view.ReferenceExcerpt{}
	}
	return groups[0].Chunks
}

// PerDocumentPolicy keeps only the groups citing the item's own document,
// matched by full resource name or by the trailing document id.
type PerDocumentPolicy struct{}

// ReferencesFor implements ReferencePolicy.
func (PerDocumentPolicy) ReferencesFor(item raw.Node, groups []ReferenceGroup) []view.ReferenceExcerpt {
	name := item.Get("document", "name").String()
	id := item.Get("document", "id").String()

	out := []view.ReferenceExcerpt{}
	for _, g := range groups {
		if g.Document == "" {
			continue
		}
		if (name != "" && g.Document == name) || (id != "" && strings.HasSuffix(g.Document, "/"+id)) {
			out = append(out, g.Chunks...)
		}
	}
	return out
}

// PolicyByName resolves a configured policy name. Empty means first_group.
func PolicyByName(name string) (ReferencePolicy, error) {
	switch name {
	case "", PolicyFirstGroup:
		return FirstGroupPolicy{}, nil
	case PolicyPerDocument:
		return PerDocumentPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown reference policy %q", name)
	}
}
