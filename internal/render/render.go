// Package render draws normalized pages as HTML or terminal text.
//
// Every renderer follows the same section contract: a document gets a
// References, Snippets, Extractive Answers or Extractive Segments section
// exactly when the matching list is non-empty.
package render

import (
	"io"

	"github.com/kailas-cloud/searchview/internal/domain/view"
)

// Section titles shared by all renderers.
const (
	SectionReferences         = "References"
	SectionSnippets           = "Snippets"
	SectionExtractiveAnswers  = "Extractive Answers"
	SectionExtractiveSegments = "Extractive Segments"
)

// Renderer writes a page in one output format.
type Renderer interface {
	Render(w io.Writer, page *view.Page) error
}
