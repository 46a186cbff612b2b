package tracker

import (
	"math"

	"go.uber.org/zap"

	"github.com/nibzard/beautiful-mermaid/domain/scene"
	"github.com/nibzard/beautiful-mermaid/pkg/geometry"
)

const (
	simplifyMinGap  = 0.5
	simplifyAxisTol = 1.0
)

// PolishLayout is the end-of-gesture cleanup: it re-resolves edge
// endpoints, restores orthogonal routing, simplifies each path,
// refreshes the segment orientation hints, reapplies label and
// decoration anchors and refits every group box around its members'
// current positions. Degenerate geometry skips that one element and
// the pass continues.
func (t *Tracker) PolishLayout() {
	for _, e := range t.graph.Edges {
		t.polishEdge(e)
	}
	for _, g := range t.graph.Groups {
		t.refitGroup(g)
	}
	t.logger.Debug("layout polished",
		zap.Int("edges", len(t.graph.Edges)),
		zap.Int("groups", len(t.graph.Groups)),
	)
}

func (t *Tracker) polishEdge(e *scene.Edge) {
	if len(e.Points) < 2 {
		return
	}
	t.reresolveEndpoints(e)
	t.maintainOrthogonalEdge(e)

	simplified := geometry.Simplify(e.Points, simplifyMinGap, simplifyAxisTol)
	if len(simplified) >= 2 && finitePath(simplified) {
		e.Points = simplified
	}
	e.RecordSegmentHints()
	e.WritePoints()
	t.reanchorLabel(e)
	t.reanchorDecorations(e)
}

// reresolveEndpoints re-derives each bound terminal point from its
// node's current center plus the cached offset, then tries to bind any
// endpoint still dangling to a node whose current box now covers the
// resolution radius. A bound endpoint never re-matches to a different
// node; late binding caches the offset the same way reconstruction
// does.
func (t *Tracker) reresolveEndpoints(e *scene.Edge) {
	t.reanchorEdge(e)
	if e.SourceID == "" {
		e.SourceID, e.SourceOff = t.resolveEndpoint(e.Points[0])
	}
	if e.TargetID == "" {
		e.TargetID, e.TargetOff = t.resolveEndpoint(e.Points[len(e.Points)-1])
	}
}

// resolveEndpoint matches a terminal point against current node boxes
// under the same rule the reconstructor uses: within half the node's
// max dimension plus the slack margin, nearest match wins.
func (t *Tracker) resolveEndpoint(pt geometry.Point) (scene.NodeID, geometry.Point) {
	var best *scene.Node
	bestDist := math.Inf(1)
	for _, n := range t.graph.Nodes {
		box := n.CurrentBox()
		d := pt.DistanceTo(box.Center())
		if d < box.MaxDim()/2+t.slack && d < bestDist {
			best, bestDist = n, d
		}
	}
	if best == nil {
		return "", geometry.Point{}
	}
	return best.ID(), pt.Sub(best.CurrentBox().Center())
}

// refitGroup recomputes the container box as the union of current
// member boxes expanded by the group's fixed padding, then rewrites the
// container, header band and header label coordinates. A group with no
// resolvable members, or a degenerate recomputed box, is left
// untouched.
func (t *Tracker) refitGroup(g *scene.Group) {
	var mbox geometry.Box
	have := false
	for _, id := range g.Members() {
		n, ok := t.nodes[id]
		if !ok {
			continue
		}
		if !have {
			mbox, have = n.CurrentBox(), true
		} else {
			mbox = mbox.Union(n.CurrentBox())
		}
	}
	if !have {
		return
	}
	pad := g.Padding()
	box := geometry.Box{
		X: mbox.X - pad.Left,
		Y: mbox.Y - pad.Top,
		W: mbox.W + pad.Left + pad.Right,
		H: mbox.H + pad.Top + pad.Bottom,
	}
	if box.IsDegenerate() {
		t.logger.Debug("skipping degenerate group refit", zap.String("group", g.ID()))
		return
	}
	g.Refit(box)
}

func finitePath(points []geometry.Point) bool {
	for _, p := range points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return false
		}
	}
	return true
}
