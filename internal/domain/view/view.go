// Package view holds the flat, renderable models produced from a search response.
package view

import (
	"strings"

	"github.com/kailas-cloud/searchview/internal/domain/richtext"
)

// Placeholder is shown for page numbers and scores that are missing.
const Placeholder = "?"

const untitled = "(untitled)"

// ReferenceExcerpt is one chunk of a summary reference.
type ReferenceExcerpt struct {
	PageIdentifier string `json:"pageIdentifier"`
	Content        string `json:"content"`
}

// Snippet is a highlighted passage of a matched document.
type Snippet struct {
	Snippet richtext.HTML `json:"snippet"`
}

// ExtractiveAnswer is a verbatim answer taken from a document page.
type ExtractiveAnswer struct {
	PageNumber string `json:"pageNumber"`
	Content    string `json:"content"`
}

// ExtractiveSegment is a longer verbatim passage with its relevance score.
type ExtractiveSegment struct {
	PageNumber     string `json:"pageNumber"`
	Content        string `json:"content"`
	RelevanceScore string `json:"relevanceScore"`
}

// Document is the view model of one matched document.
// Sequences are never nil.
type Document struct {
	Key                string              `json:"key"`
	Title              string              `json:"title"`
	References         []ReferenceExcerpt  `json:"references"`
	Snippets           []Snippet           `json:"snippets"`
	ExtractiveAnswers  []ExtractiveAnswer  `json:"extractiveAnswers"`
	ExtractiveSegments []ExtractiveSegment `json:"extractiveSegments"`
}

// DisplayTitle returns the title as shown to users.
func (d Document) DisplayTitle() string { return DisplayTitle(d.Title) }

// Heading returns the "from: ..." line rendered above a document.
func (d Document) Heading() string { return Heading(d.Title) }

// DisplayTitle shortens storage paths: when the title contains "docs/",
// the path segment right after the first "docs/" is shown instead.
// An empty segment keeps the original title.
func DisplayTitle(title string) string {
	_, rest, found := strings.Cut(title, "docs/")
	if !found {
		return title
	}
	segment, _, _ := strings.Cut(rest, "/")
	if segment == "" {
		return title
	}
	return segment
}

// Heading renders the title line, falling back to "(untitled)".
func Heading(title string) string {
	if title == "" {
		return "from: " + untitled
	}
	return "from: " + DisplayTitle(title)
}

// Summary is the generated answer shown above the result list.
type Summary struct {
	Text           string        `json:"text"`
	HTML           richtext.HTML `json:"html"`
	Placeholder    bool          `json:"placeholder"`
	SkippedReasons []string      `json:"skippedReasons"`
}

// Page is the normalized form of one search response.
type Page struct {
	Query     string     `json:"query"`
	Summary   Summary    `json:"summary"`
	Documents []Document `json:"documents"`
	TotalSize int        `json:"totalSize"`
}
