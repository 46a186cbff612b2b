package reconstruct

import (
	"math"

	"github.com/nibzard/beautiful-mermaid/domain/primitives"
	"github.com/nibzard/beautiful-mermaid/domain/scene"
	"github.com/nibzard/beautiful-mermaid/pkg/geometry"
)

// associateLabels attaches text to edges. Background-framed labels go
// first (the frame pins down which text belongs to the label); any
// remaining free-floating text outside every node box is then matched
// to its nearest edge. An association past the distance threshold is
// simply dropped, never an error.
func (p *pass) associateLabels() {
	for _, rect := range p.edgeLabelRects {
		box, ok := rect.BBox()
		if !ok {
			continue
		}
		textEl := p.textInside(box)
		if textEl == nil {
			continue
		}
		anchor := textEl.AnchorPoint()
		edge, proj := p.nearestEdge(anchor)
		if edge == nil || proj.Distance > p.th.LabelAttach {
			continue
		}
		p.attachLabel(edge, textEl, rect, anchor, proj)
	}

	for _, textEl := range p.texts() {
		anchor := textEl.AnchorPoint()
		if p.insideAnyNode(anchor) {
			continue
		}
		edge, proj := p.nearestEdge(anchor)
		if edge == nil || proj.Distance > p.th.LabelAttach {
			continue
		}
		p.attachLabel(edge, textEl, nil, anchor, proj)
	}
}

func (p *pass) attachLabel(edge *scene.Edge, textEl, frame *primitives.Element, anchor geometry.Point, proj geometry.Projection) {
	edge.Label = &scene.EdgeLabel{
		Text:           textContent(textEl),
		TextEl:         textEl,
		Background:     frame,
		T:              proj.T,
		Offset:         anchor.Sub(proj.Point),
		OriginalAnchor: anchor,
	}
	p.claim(textEl)
	if frame != nil {
		p.claim(frame)
	}
}

// textInside returns the text whose anchor falls nearest the center of
// the given box, restricted to anchors inside it.
func (p *pass) textInside(box geometry.Box) *primitives.Element {
	center := box.Center()
	var best *primitives.Element
	bestDist := math.Inf(1)
	for _, e := range p.texts() {
		anchor := e.AnchorPoint()
		if !box.Contains(anchor) {
			continue
		}
		if d := anchor.DistanceTo(center); d < bestDist {
			best, bestDist = e, d
		}
	}
	return best
}

// nearestEdge projects a point onto every resolvable, still-unlabeled
// edge path and returns the closest.
func (p *pass) nearestEdge(pt geometry.Point) (*scene.Edge, geometry.Projection) {
	var best *scene.Edge
	bestProj := geometry.Projection{Distance: math.Inf(1)}
	for _, e := range p.edges {
		if e.Label != nil || !e.Resolved() {
			continue
		}
		proj, ok := geometry.ClosestOnPolyline(e.Points, pt)
		if ok && proj.Distance < bestProj.Distance {
			best, bestProj = e, proj
		}
	}
	return best, bestProj
}

func (p *pass) insideAnyNode(pt geometry.Point) bool {
	for _, n := range p.nodes {
		if n.Box().Contains(pt) {
			return true
		}
	}
	return false
}

// associateDecorations ties small connector-styled glyphs to the
// nearest edge endpoint, caching the offset so the glyph rides along
// when that endpoint moves.
func (p *pass) associateDecorations() {
	for _, e := range p.all {
		if e.InDefs() || p.isClaimed(e) || p.nodeOwning(e) != nil {
			continue
		}
		if !p.isDecorCandidate(e) || !p.isDecorGlyph(e) {
			continue
		}
		box, ok := e.BBox()
		if !ok {
			continue
		}
		ref := box.Center()

		var bestEdge *scene.Edge
		bestAtSource := false
		bestDist := math.Inf(1)
		for _, edge := range p.edges {
			first := edge.Points[0]
			last := edge.Points[len(edge.Points)-1]
			if d := ref.DistanceTo(first); d < bestDist {
				bestEdge, bestAtSource, bestDist = edge, true, d
			}
			if d := ref.DistanceTo(last); d < bestDist {
				bestEdge, bestAtSource, bestDist = edge, false, d
			}
		}
		if bestEdge == nil || bestDist > p.th.DecorAttach {
			continue
		}
		endpoint := bestEdge.Points[len(bestEdge.Points)-1]
		if bestAtSource {
			endpoint = bestEdge.Points[0]
		}
		bestEdge.Decor = append(bestEdge.Decor, &scene.Decoration{
			El:       e,
			AtSource: bestAtSource,
			Offset:   ref.Sub(endpoint),
			Original: ref,
		})
		p.claim(e)
	}
}
