// Package tracker owns the live position of every node in one
// reconstructed scene graph and re-derives edge endpoints, label
// anchors and decoration anchors from those positions on every update.
// It is single-threaded by design: one interaction source, one active
// drag, no queuing.
package tracker

import (
	"go.uber.org/zap"

	"github.com/nibzard/beautiful-mermaid/domain/scene"
	"github.com/nibzard/beautiful-mermaid/pkg/geometry"
)

// Tracker mutates one scene graph in place. The graph is handed over at
// construction and owned exclusively from then on.
type Tracker struct {
	graph     *scene.Graph
	nodes     map[scene.NodeID]*scene.Node
	originals map[scene.NodeID]geometry.Point
	slack     float64 // endpoint re-resolution slack during polish
	logger    *zap.Logger

	drag dragState
}

// New creates a tracker over a reconstructed graph. endpointSlack
// mirrors the reconstructor's endpoint-resolution margin.
func New(graph *scene.Graph, endpointSlack float64, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Tracker{
		graph:     graph,
		nodes:     make(map[scene.NodeID]*scene.Node, len(graph.Nodes)),
		originals: make(map[scene.NodeID]geometry.Point, len(graph.Nodes)),
		slack:     endpointSlack,
		logger:    logger,
	}
	for _, n := range graph.Nodes {
		t.nodes[n.ID()] = n
		t.originals[n.ID()] = n.OriginalPosition()
	}
	return t
}

// Graph returns the tracked scene graph.
func (t *Tracker) Graph() *scene.Graph { return t.graph }

// UpdatePosition sets a node's live position without propagating.
// It reports false for an unknown identifier, leaving state untouched.
func (t *Tracker) UpdatePosition(id scene.NodeID, x, y float64) bool {
	n, ok := t.nodes[id]
	if !ok {
		return false
	}
	n.SetPosition(geometry.Point{X: x, Y: y})
	return true
}

// Positions returns the live position of every node keyed by stable
// identifier, the export shape the persistence collaborator consumes.
func (t *Tracker) Positions() map[string]geometry.Point {
	out := make(map[string]geometry.Point, len(t.nodes))
	for id, n := range t.nodes {
		out[string(id)] = n.Position()
	}
	return out
}

// ApplyPositionUpdates propagates every live position into the
// primitive tree: node transforms become pure translations by the
// live-minus-original delta, edge endpoints snap to node center plus
// cached offset, and label and decoration anchors follow the reshaped
// paths. Calling it twice without position changes writes identical
// coordinates both times.
func (t *Tracker) ApplyPositionUpdates() {
	for _, n := range t.graph.Nodes {
		d := n.Delta()
		for _, el := range n.Elements() {
			el.SetTranslation(d.X, d.Y)
		}
	}
	for _, e := range t.graph.Edges {
		t.reanchorEdge(e)
		t.maintainOrthogonalEdge(e)
		e.WritePoints()
		t.reanchorLabel(e)
		t.reanchorDecorations(e)
	}
}

// reanchorEdge moves each resolved terminal point to its node's current
// center plus the offset cached at reconstruction, preserving the
// original visual entry angle.
func (t *Tracker) reanchorEdge(e *scene.Edge) {
	if len(e.Points) < 2 {
		return
	}
	if n, ok := t.nodes[e.SourceID]; ok && e.SourceID != "" {
		e.Points[0] = n.Center().Add(e.SourceOff)
	}
	if n, ok := t.nodes[e.TargetID]; ok && e.TargetID != "" {
		e.Points[len(e.Points)-1] = n.Center().Add(e.TargetOff)
	}
}

// reanchorLabel keeps the label at its fractional arc-length position
// plus the fixed offset, expressed as a translation from the original
// anchor.
func (t *Tracker) reanchorLabel(e *scene.Edge) {
	l := e.Label
	if l == nil {
		return
	}
	target := geometry.PointAt(e.Points, l.T).Add(l.Offset)
	d := target.Sub(l.OriginalAnchor)
	l.TextEl.SetTranslation(d.X, d.Y)
	if l.Background != nil {
		l.Background.SetTranslation(d.X, d.Y)
	}
}

// reanchorDecorations keeps endpoint glyphs at their cached offsets
// from the endpoint they decorate.
func (t *Tracker) reanchorDecorations(e *scene.Edge) {
	for _, dec := range e.Decor {
		endpoint := e.Points[len(e.Points)-1]
		if dec.AtSource {
			endpoint = e.Points[0]
		}
		target := endpoint.Add(dec.Offset)
		d := target.Sub(dec.Original)
		dec.El.SetTranslation(d.X, d.Y)
	}
}

// ResetAllPositions moves every node back to its original position and
// applies once.
func (t *Tracker) ResetAllPositions() {
	for id, orig := range t.originals {
		t.UpdatePosition(id, orig.X, orig.Y)
	}
	t.ApplyPositionUpdates()
}

// SetPositions bulk-loads a persisted identifier-to-position mapping,
// silently ignoring identifiers absent from the current scene graph:
// schema drift across re-renders is expected and non-fatal. A single
// apply follows.
func (t *Tracker) SetPositions(positions map[string]geometry.Point) {
	applied := 0
	for id, p := range positions {
		if t.UpdatePosition(scene.NodeID(id), p.X, p.Y) {
			applied++
		}
	}
	t.ApplyPositionUpdates()
	if applied < len(positions) {
		t.logger.Debug("ignored stale position entries",
			zap.Int("applied", applied),
			zap.Int("total", len(positions)),
		)
	}
}
