package discovery

import "github.com/kailas-cloud/searchview/internal/domain/search/request"

type searchBody struct {
	Query               string              `json:"query"`
	PageSize            int                 `json:"pageSize"`
	QueryExpansionSpec  queryExpansionSpec  `json:"queryExpansionSpec"`
	SpellCorrectionSpec spellCorrectionSpec `json:"spellCorrectionSpec"`
	ContentSearchSpec   contentSearchSpec   `json:"contentSearchSpec"`
}

type queryExpansionSpec struct {
	Condition string `json:"condition"`
}

type spellCorrectionSpec struct {
	Mode string `json:"mode"`
}

type contentSearchSpec struct {
	SnippetSpec           snippetSpec           `json:"snippetSpec"`
	SummarySpec           summarySpec           `json:"summarySpec"`
	ExtractiveContentSpec extractiveContentSpec `json:"extractiveContentSpec"`
}

type snippetSpec struct {
	ReturnSnippet bool `json:"returnSnippet"`
}

type summarySpec struct {
	SummaryResultCount           int  `json:"summaryResultCount"`
	IncludeCitations             bool `json:"includeCitations"`
	IgnoreAdversarialQuery       bool `json:"ignoreAdversarialQuery"`
	IgnoreNonSummarySeekingQuery bool `json:"ignoreNonSummarySeekingQuery"`
}

type extractiveContentSpec struct {
	MaxExtractiveAnswerCount  int `json:"maxExtractiveAnswerCount"`
	MaxExtractiveSegmentCount int `json:"maxExtractiveSegmentCount"`
}

func newSearchBody(req *request.Request) searchBody {
	return searchBody{
		Query:               req.Query(),
		PageSize:            req.PageSize(),
		QueryExpansionSpec:  queryExpansionSpec{Condition: "AUTO"},
		SpellCorrectionSpec: spellCorrectionSpec{Mode: "AUTO"},
		ContentSearchSpec: contentSearchSpec{
			SnippetSpec: snippetSpec{ReturnSnippet: req.ReturnSnippet()},
			SummarySpec: summarySpec{
				SummaryResultCount:           req.SummaryResultCount(),
				IncludeCitations:             req.IncludeCitations(),
				IgnoreAdversarialQuery:       true,
				IgnoreNonSummarySeekingQuery: true,
			},
			ExtractiveContentSpec: extractiveContentSpec{
				MaxExtractiveAnswerCount:  req.MaxExtractiveAnswers(),
				MaxExtractiveSegmentCount: req.MaxExtractiveSegments(),
			},
		},
	}
}
