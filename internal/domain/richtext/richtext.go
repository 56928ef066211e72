// Package richtext holds markup that has already been sanitized.
//
// Backend snippets and the markdown summary arrive as HTML-bearing strings.
// They are sanitized exactly once, when an HTML value is built; everything
// downstream treats the value as safe to emit unescaped.
package richtext

import (
	"bytes"
	"encoding/json"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	policy   = bluemonday.UGCPolicy()
	markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))
)

// HTML is sanitized markup.
type HTML struct {
	markup string
}

// Sanitize builds an HTML value from untrusted markup.
func Sanitize(untrusted string) HTML {
	if untrusted == "" {
		return HTML{}
	}
	return HTML{markup: policy.Sanitize(untrusted)}
}

// FromMarkdown renders GitHub-flavored markdown and sanitizes the output.
func FromMarkdown(src string) HTML {
	if src == "" {
		return HTML{}
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return Sanitize("<p>" + html.EscapeString(src) + "</p>")
	}
	return Sanitize(buf.String())
}

// String returns the sanitized markup.
func (h HTML) String() string { return h.markup }

// IsEmpty reports whether there is no markup at all.
func (h HTML) IsEmpty() bool { return h.markup == "" }

// Text returns the visible text with whitespace collapsed.
func (h HTML) Text() string {
	if h.markup == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(h.markup))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// MarshalJSON encodes the sanitized markup as a JSON string.
func (h HTML) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.markup) //nolint:wrapcheck // string encoding cannot fail
}

// UnmarshalJSON decodes a JSON string and sanitizes it again.
func (h *HTML) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err //nolint:wrapcheck // surfaced as-is by encoding/json
	}
	*h = Sanitize(s)
	return nil
}
