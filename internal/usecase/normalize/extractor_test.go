package normalize

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/searchview/internal/domain/raw"
	"github.com/kailas-cloud/searchview/internal/domain/view"
)

func loadFixture(t *testing.T) raw.Node {
	t.Helper()
	data, err := os.ReadFile("testdata/search_response.json")
	require.NoError(t, err)
	n := raw.Parse(data)
	require.True(t, n.IsObject(), "fixture must be valid JSON")
	return n
}

func TestExtract_DegenerateInputs(t *testing.T) {
	inputs := []string{
		``,
		`null`,
		`{}`,
		`[]`,
		`42`,
		`"results"`,
		`{"results":null}`,
		`{"results":{"0":{}}}`,
		`{"results":"abc"}`,
		`{"summary":null}`,
		`{"summary":{"summaryWithMetadata":{"references":{}}}}`,
		`{"summary":{"summaryWithMetadata":{"references":[]}}}`,
		`{"summary":{"summaryWithMetadata":{"references":[null]}}}`,
		`{"summary":{"summaryWithMetadata":{"references":[{"chunkContents":"x"}]}}}`,
		`{"summary":{"summaryWithMetadata":{"references":["x",{"chunkContents":[{}]}]}}}`,
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			ex := Extract(raw.ParseString(in))
			require.NotNil(t, ex.Items)
			require.NotNil(t, ex.References)
			require.NotNil(t, ex.Groups)
			assert.Empty(t, ex.Items)
			assert.Empty(t, ex.References)
		})
	}
}

func TestExtract_OnlyFirstGroupIsShared(t *testing.T) {
	ex := Extract(loadFixture(t))

	assert.Len(t, ex.Items, 2)
	require.Len(t, ex.Groups, 2)
	assert.Equal(t, []view.ReferenceExcerpt{
		{PageIdentifier: "4", Content: "Use four M6 screws."},
		{PageIdentifier: "5", Content: "Connect power last."},
		{PageIdentifier: "?", Content: "Keep the manual."},
	}, ex.References)
	assert.Equal(t, ex.References, ex.Groups[0].Chunks)
	assert.Equal(t, "safety.pdf", ex.Groups[1].Title)
	assert.Equal(t, "gs://acme-manuals/docs/installation-guide.pdf", ex.Groups[0].URI)
}

func TestExtract_MalformedItemsPassThrough(t *testing.T) {
	ex := Extract(raw.ParseString(`{"results":[1,"two",null,{"id":"x"}]}`))
	assert.Len(t, ex.Items, 4)
}

func TestExtract_ReferenceDefaults(t *testing.T) {
	ex := Extract(raw.ParseString(`{"summary":{"summaryWithMetadata":{"references":[{"chunkContents":[
		{"pageIdentifier":null,"content":null},
		{"pageIdentifier":true,"content":12},
		{"pageIdentifier":{"p":1},"content":["a"]},
		"scalar"
	]}]}}}`))

	assert.Equal(t, []view.ReferenceExcerpt{
		{PageIdentifier: "?", Content: ""},
		{PageIdentifier: "true", Content: "12"},
		{PageIdentifier: `{"p":1}`, Content: `["a"]`},
		{PageIdentifier: "?", Content: ""},
	}, ex.References)
}
