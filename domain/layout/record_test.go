package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nibzard/beautiful-mermaid/domain/layout"
	"github.com/nibzard/beautiful-mermaid/domain/scene"
	"github.com/nibzard/beautiful-mermaid/pkg/geometry"
)

func TestNewRecord(t *testing.T) {
	positions := map[string]geometry.Point{"a": {X: 1, Y: 2}}

	rec := layout.NewRecord("doc-1", scene.FamilyFlowchart, positions)

	assert.Equal(t, layout.RecordVersion, rec.Version)
	assert.Equal(t, "doc-1", rec.Source)
	assert.Equal(t, "flowchart", rec.DiagramFamily)
	assert.False(t, rec.SavedAt.IsZero())
	assert.Equal(t, positions, rec.Positions)
}

func TestRecord_EncodeDecode(t *testing.T) {
	rec := layout.NewRecord("doc-1", scene.FamilySequence, map[string]geometry.Point{
		"node-a": {X: 10.5, Y: 20},
		"node-b": {X: -3, Y: 0},
	})

	data, err := rec.Encode()
	require.NoError(t, err)

	decoded, ok := layout.Decode(data)
	require.True(t, ok)
	assert.Equal(t, rec.Version, decoded.Version)
	assert.Equal(t, rec.Source, decoded.Source)
	assert.Equal(t, rec.DiagramFamily, decoded.DiagramFamily)
	assert.Equal(t, rec.Positions, decoded.Positions)
}

func TestDecode_MalformedIsNoLayout(t *testing.T) {
	rec, ok := layout.Decode([]byte("{not json"))
	assert.False(t, ok)
	assert.Nil(t, rec)
}

func TestDecode_MissingPositionsIsNoLayout(t *testing.T) {
	rec, ok := layout.Decode([]byte(`{"version":1,"source":"doc-1"}`))
	assert.False(t, ok)
	assert.Nil(t, rec)
}

func TestDecode_EmptyPositionsIsValid(t *testing.T) {
	rec, ok := layout.Decode([]byte(`{"version":1,"source":"doc-1","positions":{}}`))
	require.True(t, ok)
	assert.Empty(t, rec.Positions)
}
