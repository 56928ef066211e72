// Package searchview turns raw Vertex AI Search responses into flat,
// renderable pages without talking to the search backend.
//
// Every field of a response may be missing, null or of an unexpected type.
// Normalize never fails: absent values become display placeholders and a
// response that is not JSON at all yields an empty page.
//
//	n, _ := searchview.New(
//	    searchview.WithLogger(slog.Default()),
//	    searchview.WithMetrics(prometheus.DefaultRegisterer),
//	)
//	page := n.Normalize(ctx, body)
//	for _, doc := range page.Documents {
//	    fmt.Println(doc.Heading)
//	}
package searchview
