package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/kailas-cloud/searchview/internal/domain/view"
	"github.com/kailas-cloud/searchview/internal/render"
)

// Output formats.
const (
	formatJSON = "json"
	formatText = "text"
	formatHTML = "html"
)

func writePage(w io.Writer, page *view.Page, format, title string, noColor bool) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(page); err != nil {
			return fmt.Errorf("encode page: %w", err)
		}
		return nil
	case formatText:
		return render.NewTextRenderer(noColor).Render(w, page)
	case formatHTML:
		return render.NewHTMLRenderer(title, page.Summary).Render(w, page)
	default:
		return fmt.Errorf("unknown format %q (want json, text or html)", format)
	}
}
