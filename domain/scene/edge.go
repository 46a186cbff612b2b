package scene

import (
	"github.com/nibzard/beautiful-mermaid/domain/primitives"
	"github.com/nibzard/beautiful-mermaid/pkg/geometry"
)

// EdgeLabel is a text label fixed to a point along an edge path: a
// fractional arc-length position plus an offset from the point there,
// so the label keeps its exact visual placement as the path reshapes.
type EdgeLabel struct {
	Text           string
	TextEl         *primitives.Element
	Background     *primitives.Element // optional frame rect
	T              float64
	Offset         geometry.Point
	OriginalAnchor geometry.Point
}

// Decoration is a small glyph tied to one edge endpoint, e.g. a
// relationship-arity marker, kept at a fixed offset from that endpoint.
type Decoration struct {
	El       *primitives.Element
	AtSource bool
	Offset   geometry.Point
	Original geometry.Point // glyph reference point at reconstruction
}

// Edge is a connector between two nodes. Either endpoint may be
// unresolved, in which case that end of the path never moves.
type Edge struct {
	id        string
	el        *primitives.Element
	Points    []geometry.Point
	SourceID  NodeID // "" when unresolved
	TargetID  NodeID
	SourceOff geometry.Point // cached offset from source center
	TargetOff geometry.Point
	Label     *EdgeLabel
	Decor     []*Decoration

	// Orientation hints for the terminal segments, recorded at
	// reconstruction and after each polish. nil when the original path
	// had no usable segment at that end.
	FirstSegVertical *bool
	LastSegVertical  *bool
}

// NewEdge creates an edge over its connector primitive. The path must
// already hold at least two points.
func NewEdge(id string, el *primitives.Element, points []geometry.Point) *Edge {
	e := &Edge{id: id, el: el, Points: points}
	e.RecordSegmentHints()
	return e
}

// ID returns the stable identifier.
func (e *Edge) ID() string { return e.id }

// Element returns the owned connector primitive.
func (e *Edge) Element() *primitives.Element { return e.el }

// Resolved reports whether both endpoints matched a node.
func (e *Edge) Resolved() bool { return e.SourceID != "" && e.TargetID != "" }

// RecordSegmentHints captures whether the first and last path segments
// run vertically, used to keep terminal stubs axis-aligned later.
func (e *Edge) RecordSegmentHints() {
	e.FirstSegVertical = nil
	e.LastSegVertical = nil
	if len(e.Points) < 2 {
		return
	}
	first := geometry.SegmentIsVertical(e.Points[0], e.Points[1])
	last := geometry.SegmentIsVertical(e.Points[len(e.Points)-2], e.Points[len(e.Points)-1])
	e.FirstSegVertical = &first
	e.LastSegVertical = &last
}

// WritePoints rewrites the connector primitive's coordinates from the
// current path.
func (e *Edge) WritePoints() {
	e.el.SetPoints(e.Points)
}
