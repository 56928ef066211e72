package searchview

// Placeholder is shown for page numbers and scores that are missing.
const Placeholder = "?"

// Page is the normalized form of one search response.
type Page struct {
	Summary   Summary
	Documents []Document
	TotalSize int
}

// Summary is the generated answer shown above the result list.
// HTML is sanitized markup rendered from the summary's markdown.
type Summary struct {
	Text           string
	HTML           string
	Placeholder    bool
	SkippedReasons []string
}

// Document is one matched document. Sequences are never nil.
type Document struct {
	Key     string
	Title   string
	Heading string // "from: ..." line with storage paths shortened

	References         []ReferenceExcerpt
	Snippets           []string // sanitized HTML
	ExtractiveAnswers  []ExtractiveAnswer
	ExtractiveSegments []ExtractiveSegment
}

// ReferenceExcerpt is one chunk of a summary reference.
type ReferenceExcerpt struct {
	PageIdentifier string
	Content        string
}

// ExtractiveAnswer is a verbatim answer taken from a document page.
type ExtractiveAnswer struct {
	PageNumber string
	Content    string
}

// ExtractiveSegment is a longer passage with its relevance score formatted
// to two fraction digits.
type ExtractiveSegment struct {
	PageNumber     string
	Content        string
	RelevanceScore string
}
