package tracker

import (
	"math"

	"github.com/nibzard/beautiful-mermaid/domain/scene"
	"github.com/nibzard/beautiful-mermaid/pkg/geometry"
)

// maintainOrthogonalEdge keeps a routed path axis-aligned as its
// endpoints move. Direct two-point lines (point-to-point messages)
// carry no routing to maintain and are left alone.
//
// A two-point routed path that would turn diagonal gains exactly one
// bend: the first-segment orientation hint picks the leading axis when
// known, otherwise the axis with the larger delta leads. Longer paths
// have the points adjacent to each endpoint snapped onto that end's
// recorded axis, so incremental endpoint motion never accumulates
// diagonal stubs.
func (t *Tracker) maintainOrthogonalEdge(e *scene.Edge) {
	if e.Element().Tag == "line" || len(e.Points) < 2 {
		return
	}

	if len(e.Points) == 2 {
		a, b := e.Points[0], e.Points[1]
		dx, dy := math.Abs(b.X-a.X), math.Abs(b.Y-a.Y)
		if dx <= 1 || dy <= 1 {
			return
		}
		verticalFirst := dy >= dx
		if e.FirstSegVertical != nil {
			verticalFirst = *e.FirstSegVertical
		}
		var bend geometry.Point
		if verticalFirst {
			bend = geometry.Point{X: a.X, Y: b.Y}
		} else {
			bend = geometry.Point{X: b.X, Y: a.Y}
		}
		e.Points = []geometry.Point{a, bend, b}
		return
	}

	if e.FirstSegVertical != nil {
		if *e.FirstSegVertical {
			e.Points[1].X = e.Points[0].X
		} else {
			e.Points[1].Y = e.Points[0].Y
		}
	}
	if e.LastSegVertical != nil {
		n := len(e.Points)
		// A single interior bend adjacent to both ends can only obey
		// one hint when both record the same axis; the leading end
		// wins.
		if n == 3 && e.FirstSegVertical != nil && *e.FirstSegVertical == *e.LastSegVertical {
			return
		}
		if *e.LastSegVertical {
			e.Points[n-2].X = e.Points[n-1].X
		} else {
			e.Points[n-2].Y = e.Points[n-1].Y
		}
	}
}
