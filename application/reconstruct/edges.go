package reconstruct

import (
	"math"

	"github.com/nibzard/beautiful-mermaid/domain/primitives"
	"github.com/nibzard/beautiful-mermaid/domain/scene"
	"github.com/nibzard/beautiful-mermaid/pkg/geometry"
)

// identifyEdges pairs connector primitives with their endpoint nodes.
// Candidates are polylines and unfilled paths, plus lines that carry an
// arrowhead marker (directed point-to-point messages). Small unmarked
// glyphs are left for the decoration pass.
func (p *pass) identifyEdges() {
	for _, e := range p.all {
		if e.InDefs() || !p.isConnector(e) || p.nodeOwning(e) != nil {
			continue
		}
		if p.isDecorGlyph(e) {
			continue
		}
		points := e.Points()
		if len(points) < 2 {
			continue
		}

		edge := &edgeDraft{el: e, points: points}
		edge.source, edge.sourceOff = p.resolveEndpoint(points[0])
		edge.target, edge.targetOff = p.resolveEndpoint(points[len(points)-1])
		p.edges = append(p.edges, edge.build())
	}
}

// edgeDraft accumulates endpoint resolution before the stable id can be
// derived.
type edgeDraft struct {
	el                   *primitives.Element
	points               []geometry.Point
	source, target       scene.NodeID
	sourceOff, targetOff geometry.Point
}

func (d *edgeDraft) build() *scene.Edge {
	id := scene.DeriveEdgeID(d.source, d.target, d.points[0], d.points[len(d.points)-1])
	e := scene.NewEdge(id, d.el, d.points)
	e.SourceID = d.source
	e.TargetID = d.target
	e.SourceOff = d.sourceOff
	e.TargetOff = d.targetOff
	return e
}

// resolveEndpoint matches a terminal point to the node whose center
// lies within half its max dimension plus the slack margin, caching the
// offset from the center so re-anchoring preserves the original entry
// angle. An unmatched endpoint stays unresolved.
func (p *pass) resolveEndpoint(pt geometry.Point) (scene.NodeID, geometry.Point) {
	var best *scene.Node
	bestDist := math.Inf(1)
	for _, n := range p.nodes {
		center := n.Box().Center()
		d := pt.DistanceTo(center)
		if d < n.Box().MaxDim()/2+p.th.EndpointSlack && d < bestDist {
			best, bestDist = n, d
		}
	}
	if best == nil {
		return "", geometry.Point{}
	}
	return best.ID(), pt.Sub(best.Box().Center())
}

// isDecorCandidate admits the line-drawing tags a decoration glyph can
// render as. Unlike a connector, a line qualifies without an arrowhead
// marker: arity glyphs are drawn as short plain strokes.
func (p *pass) isDecorCandidate(e *primitives.Element) bool {
	switch e.Tag {
	case "polyline", "line":
		return true
	case "path":
		fill := e.Fill()
		return fill == "" || fill == "none"
	}
	return false
}

// isDecorGlyph matches small connector-stroked primitives with no
// arrowhead marker: relationship-arity glyphs drawn near an edge
// endpoint, not connectors themselves.
func (p *pass) isDecorGlyph(e *primitives.Element) bool {
	if e.MarkerEnd() != "" {
		return false
	}
	if !p.contract.HasEdgeStroke(e) && e.DashPattern() == "" {
		return false
	}
	box, ok := e.BBox()
	if !ok {
		return false
	}
	return box.MaxDim() <= p.th.DecorGlyphMax
}
