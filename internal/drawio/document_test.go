package drawio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapDocumentContainsRootCells(t *testing.T) {
	doc := WrapDocument(sampleFragment)
	assert.Contains(t, doc, `<mxfile host="arcgen"`)
	assert.Contains(t, doc, `<mxCell id="0"/>`)
	assert.Contains(t, doc, `<mxCell id="1" parent="0"/>`)
	assert.Contains(t, doc, `id="2"`)
}

func TestExtractCellsSkipsRootCells(t *testing.T) {
	doc := WrapDocument(sampleFragment)
	extracted, err := ExtractCells(doc)
	require.NoError(t, err)

	assert.NotContains(t, extracted, `id="0"`)
	assert.NotContains(t, extracted, `id="1" parent="0"`)
	for _, id := range []string{"2", "3", "4"} {
		assert.Contains(t, extracted, `id="`+id+`"`)
	}
	// The extracted fragment must itself be valid.
	assert.NoError(t, ValidateFragment(extracted))
}

func TestWrapExtractRoundTripPreservesGeometry(t *testing.T) {
	extracted, err := ExtractCells(WrapDocument(sampleFragment))
	require.NoError(t, err)
	assert.Contains(t, extracted, `x="160"`)
	assert.Contains(t, extracted, `relative="1"`)
	assert.Contains(t, extracted, `source="2"`)
}

func TestParseCellRejectsMissingID(t *testing.T) {
	_, err := ParseCell(`<mxCell parent="1"/>`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "without id")
}

func TestCellStringEscapesAttributes(t *testing.T) {
	cell, err := ParseCell(`<mxCell id="2" value="a &lt; b" parent="1"/>`)
	require.NoError(t, err)
	rendered := cell.String()
	assert.Contains(t, rendered, "a &lt; b")
	// Rendered output must reparse to the same cell.
	again, err := ParseCell(rendered)
	require.NoError(t, err)
	assert.Equal(t, "a < b", again.Attr("value"))
}

func TestCellIDs(t *testing.T) {
	ids := CellIDs(WrapDocument(sampleFragment))
	assert.Equal(t, []string{"0", "1", "2", "3", "4"}, ids)
}

func TestUniqueIDAvoidsCollisions(t *testing.T) {
	existing := []string{"cell-2", "cell-3"}
	id := UniqueID(existing, "cell")
	assert.Equal(t, "cell-4", id)
	assert.True(t, strings.HasPrefix(UniqueID(nil, "node"), "node-"))
}
