package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/kailas-cloud/searchview/internal/domain/view"
)

// TextRenderer prints a page for terminals.
type TextRenderer struct {
	heading *color.Color
	section *color.Color
	page    *color.Color
	score   *color.Color
	dim     *color.Color
}

// NewTextRenderer creates a text renderer. With noColor every style is plain.
func NewTextRenderer(noColor bool) *TextRenderer {
	r := &TextRenderer{
		heading: color.New(color.FgCyan, color.Bold),
		section: color.New(color.Bold),
		page:    color.New(color.FgMagenta),
		score:   color.New(color.FgGreen),
		dim:     color.New(color.Faint),
	}
	if noColor {
		for _, c := range []*color.Color{r.heading, r.section, r.page, r.score, r.dim} {
			c.DisableColor()
		}
	}
	return r
}

// Render implements Renderer.
func (r *TextRenderer) Render(w io.Writer, page *view.Page) error {
	bw := bufio.NewWriter(w)

	r.section.Fprintln(bw, "Summary")
	if page.Summary.Placeholder {
		r.dim.Fprintln(bw, page.Summary.Text)
	} else {
		fmt.Fprintln(bw, page.Summary.HTML.Text())
	}
	for _, reason := range page.Summary.SkippedReasons {
		r.dim.Fprintf(bw, "skipped: %s\n", reason)
	}

	for i := range page.Documents {
		fmt.Fprintln(bw)
		r.document(bw, &page.Documents[i])
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("render text: %w", err)
	}
	return nil
}

func (r *TextRenderer) document(w io.Writer, d *view.Document) {
	r.heading.Fprintln(w, d.Heading())

	if len(d.References) > 0 {
		r.section.Fprintln(w, "  "+SectionReferences)
		for _, ref := range d.References {
			r.page.Fprintf(w, "    page %s\n", ref.PageIdentifier)
			fmt.Fprintf(w, "    %s\n", ref.Content)
		}
	}
	if len(d.Snippets) > 0 {
		r.section.Fprintln(w, "  "+SectionSnippets)
		for _, s := range d.Snippets {
			fmt.Fprintf(w, "    %s\n", s.Snippet.Text())
		}
	}
	if len(d.ExtractiveAnswers) > 0 {
		r.section.Fprintln(w, "  "+SectionExtractiveAnswers)
		for _, a := range d.ExtractiveAnswers {
			r.page.Fprintf(w, "    page %s\n", a.PageNumber)
			fmt.Fprintf(w, "    %s\n", a.Content)
		}
	}
	if len(d.ExtractiveSegments) > 0 {
		r.section.Fprintln(w, "  "+SectionExtractiveSegments)
		for _, s := range d.ExtractiveSegments {
			r.page.Fprintf(w, "    page %s", s.PageNumber)
			r.score.Fprintf(w, "  relevance score: %s\n", s.RelevanceScore)
			fmt.Fprintf(w, "    %s\n", s.Content)
		}
	}
}
