package reconstruct

import (
	"math"

	"github.com/nibzard/beautiful-mermaid/domain/primitives"
	"github.com/nibzard/beautiful-mermaid/domain/scene"
	"github.com/nibzard/beautiful-mermaid/pkg/geometry"
)

// candidate is a shape primitive eligible to seed or join a node
// cluster.
type candidate struct {
	el  *primitives.Element
	box geometry.Box
}

// clusterNodes groups candidate shapes into nodes with the proximity
// rule: a shape absorbs every other unclustered shape whose center lies
// within half the larger shape's max dimension of its own center.
func (p *pass) clusterNodes(family scene.Family) {
	cands := p.nodeCandidates(family)
	used := make([]bool, len(cands))

	for i := range cands {
		if used[i] {
			continue
		}
		used[i] = true
		cluster := []candidate{cands[i]}
		seedCenter := cands[i].box.Center()
		seedDim := cands[i].box.MaxDim()

		for j := range cands {
			if used[j] {
				continue
			}
			limit := math.Max(seedDim, cands[j].box.MaxDim()) / 2
			if cands[j].box.Center().DistanceTo(seedCenter) <= limit {
				used[j] = true
				cluster = append(cluster, cands[j])
			}
		}
		p.nodes = append(p.nodes, p.buildNode(cluster))
	}
}

// nodeCandidates selects the shape primitives that may form nodes,
// excluding marker templates, arity badges, edge-label backgrounds,
// group chrome and, for sequence diagrams, activation bars (attached
// to their node later).
func (p *pass) nodeCandidates(family scene.Family) []candidate {
	var out []candidate
	for _, e := range p.all {
		switch e.Tag {
		case "rect", "circle", "ellipse", "polygon":
		case "path":
			if !p.contract.HasNodeFill(e) {
				continue
			}
		default:
			continue
		}
		if e.InDefs() || p.isChrome(e) {
			continue
		}
		if e.Tag == "circle" && e.Float("r") <= p.th.BadgeRadiusMax {
			continue
		}
		if family == scene.FamilySequence && p.isActivationBar(e) {
			continue
		}
		box, ok := e.BBox()
		if !ok || box.IsDegenerate() {
			continue
		}
		out = append(out, candidate{el: e, box: box})
	}
	return out
}

// buildNode turns one cluster into a node: union bounding box, shape
// kind from the largest-area member, label elected from contained text.
func (p *pass) buildNode(cluster []candidate) *scene.Node {
	box := cluster[0].box
	largest := cluster[0]
	for _, c := range cluster[1:] {
		box = box.Union(c.box)
		if c.box.Area() > largest.box.Area() {
			largest = c
		}
	}

	elements := make([]*primitives.Element, 0, len(cluster)+1)
	for _, c := range cluster {
		elements = append(elements, c.el)
	}

	label, labelEl := p.electLabel(box)
	if labelEl != nil {
		elements = append(elements, labelEl)
		p.claim(labelEl)
	}

	id := scene.DeriveNodeID(geometry.Point{X: box.X, Y: box.Y}, label)
	return scene.NewNode(id, shapeKindOf(largest.el), label, box, elements)
}

// electLabel picks the node's label: the text anchored inside the
// padded box, preferring non-monospaced text and breaking ties by
// topmost anchor. When nothing falls inside, the nearest caption
// directly below the box wins (icon-style nodes render their caption
// outside the shape).
func (p *pass) electLabel(box geometry.Box) (string, *primitives.Element) {
	padded := box.Expand(p.th.LabelPad)
	var best *primitives.Element
	bestMono := true
	bestY := math.Inf(1)
	for _, e := range p.texts() {
		anchor := e.AnchorPoint()
		if !padded.Contains(anchor) {
			continue
		}
		mono := p.contract.IsMonospaceText(e)
		if best == nil || (!mono && bestMono) || (mono == bestMono && anchor.Y < bestY) {
			best, bestMono, bestY = e, mono, anchor.Y
		}
	}
	if best != nil {
		return textContent(best), best
	}

	// Fallback: nearest caption anchored directly below the box.
	bottom := geometry.Point{X: box.X + box.W/2, Y: box.Y + box.H}
	bestDist := math.Inf(1)
	for _, e := range p.texts() {
		anchor := e.AnchorPoint()
		if anchor.Y <= box.Y+box.H || anchor.Y > box.Y+box.H+p.th.CaptionBelowMax {
			continue
		}
		if anchor.X < padded.X || anchor.X > padded.X+padded.W {
			continue
		}
		if d := anchor.DistanceTo(bottom); d < bestDist {
			best, bestDist = e, d
		}
	}
	if best != nil {
		return textContent(best), best
	}
	return "", nil
}

// texts returns the scene's free text elements, skipping nested tspans
// so a label is always the outermost text primitive.
func (p *pass) texts() []*primitives.Element {
	var out []*primitives.Element
	for _, e := range p.all {
		if e.Tag != "text" || e.InDefs() || p.isClaimed(e) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// expandNodes re-scans the document and absorbs every primitive whose
// anchor falls inside a node's box: separator lines, member rows and
// badges render as siblings of the shape, not children.
func (p *pass) expandNodes() {
	for _, n := range p.nodes {
		box := n.Box().Expand(p.th.LabelPad)
		for _, e := range p.all {
			switch e.Tag {
			case "text", "line", "rect", "circle", "ellipse", "polygon", "path":
			default:
				continue
			}
			if e.InDefs() || p.isChrome(e) || p.isConnector(e) {
				continue
			}
			if n.Owns(e) || p.nodeOwning(e) != nil {
				continue
			}
			anchor, ok := anchorOf(e)
			if !ok || !box.Contains(anchor) {
				continue
			}
			n.Absorb(e)
			p.claim(e)
		}
	}
}

// isActivationBar matches the narrow, tall, node-styled rects sequence
// diagrams draw over lifelines.
func (p *pass) isActivationBar(e *primitives.Element) bool {
	if e.Tag != "rect" || !p.contract.HasNodeFill(e) {
		return false
	}
	w, h := e.Float("width"), e.Float("height")
	return w > 0 && w <= p.th.ActivationMaxWidth && h > w
}

// anchorOf returns the point a primitive hangs from: the text anchor
// for text, the bounding-box center otherwise.
func anchorOf(e *primitives.Element) (geometry.Point, bool) {
	if e.Tag == "text" {
		return e.AnchorPoint(), true
	}
	box, ok := e.BBox()
	if !ok {
		return geometry.Point{}, false
	}
	return box.Center(), true
}
