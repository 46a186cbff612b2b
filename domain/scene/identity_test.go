package scene_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nibzard/beautiful-mermaid/domain/scene"
	"github.com/nibzard/beautiful-mermaid/pkg/geometry"
)

func TestDeriveNodeID_Deterministic(t *testing.T) {
	a := scene.DeriveNodeID(geometry.Point{X: 100, Y: 100}, "Start")
	b := scene.DeriveNodeID(geometry.Point{X: 100, Y: 100}, "Start")

	assert.Equal(t, a, b)
	assert.NotEmpty(t, a)
}

func TestDeriveNodeID_RoundsSubpixelJitter(t *testing.T) {
	a := scene.DeriveNodeID(geometry.Point{X: 100.2, Y: 50}, "Start")
	b := scene.DeriveNodeID(geometry.Point{X: 99.8, Y: 50.4}, "Start")

	assert.Equal(t, a, b)
}

func TestDeriveNodeID_DistinctInputs(t *testing.T) {
	base := scene.DeriveNodeID(geometry.Point{X: 100, Y: 100}, "Start")

	assert.NotEqual(t, base, scene.DeriveNodeID(geometry.Point{X: 100, Y: 100}, "End"))
	assert.NotEqual(t, base, scene.DeriveNodeID(geometry.Point{X: 200, Y: 100}, "Start"))
}

func TestDeriveGroupID(t *testing.T) {
	box := geometry.Box{X: 80, Y: 80, W: 140, H: 80}

	assert.Equal(t, scene.DeriveGroupID(box, "Zone"), scene.DeriveGroupID(box, "Zone"))
	assert.NotEqual(t, scene.DeriveGroupID(box, "Zone"), scene.DeriveGroupID(box, "Other"))
}

func TestDeriveEdgeID_ParallelEdgesStayDistinct(t *testing.T) {
	src := scene.DeriveNodeID(geometry.Point{}, "A")
	dst := scene.DeriveNodeID(geometry.Point{X: 200}, "B")

	a := scene.DeriveEdgeID(src, dst, geometry.Point{X: 100, Y: 110}, geometry.Point{X: 200, Y: 110})
	b := scene.DeriveEdgeID(src, dst, geometry.Point{X: 100, Y: 130}, geometry.Point{X: 200, Y: 130})

	assert.NotEqual(t, a, b)
	assert.Equal(t, a, scene.DeriveEdgeID(src, dst, geometry.Point{X: 100, Y: 110}, geometry.Point{X: 200, Y: 110}))
}

func TestDeriveDocumentID_NamespacesSeparateDocuments(t *testing.T) {
	doc := "<svg/>"

	assert.Equal(t, scene.DeriveDocumentID("preview", doc), scene.DeriveDocumentID("preview", doc))
	assert.NotEqual(t, scene.DeriveDocumentID("preview", doc), scene.DeriveDocumentID("editor", doc))
	assert.NotEqual(t, scene.DeriveDocumentID("preview", doc), scene.DeriveDocumentID("preview", "<svg></svg>"))
}
