package geometry_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nibzard/beautiful-mermaid/pkg/geometry"
)

func TestBox_Center(t *testing.T) {
	b := geometry.Box{X: 10, Y: 20, W: 100, H: 40}
	assert.Equal(t, geometry.Point{X: 60, Y: 40}, b.Center())
}

func TestBox_Contains(t *testing.T) {
	b := geometry.Box{X: 0, Y: 0, W: 10, H: 10}

	assert.True(t, b.Contains(geometry.Point{X: 5, Y: 5}))
	// Borders count as inside.
	assert.True(t, b.Contains(geometry.Point{X: 0, Y: 0}))
	assert.True(t, b.Contains(geometry.Point{X: 10, Y: 10}))
	assert.False(t, b.Contains(geometry.Point{X: 10.01, Y: 5}))
	assert.False(t, b.Contains(geometry.Point{X: -0.01, Y: 5}))
}

func TestBox_Union(t *testing.T) {
	a := geometry.Box{X: 0, Y: 0, W: 10, H: 10}
	b := geometry.Box{X: 20, Y: 5, W: 10, H: 10}

	u := a.Union(b)

	assert.Equal(t, geometry.Box{X: 0, Y: 0, W: 30, H: 15}, u)
	assert.Equal(t, u, b.Union(a))
}

func TestBox_Expand(t *testing.T) {
	b := geometry.Box{X: 10, Y: 10, W: 20, H: 20}
	assert.Equal(t, geometry.Box{X: 6, Y: 6, W: 28, H: 28}, b.Expand(4))
}

func TestBox_Translate(t *testing.T) {
	b := geometry.Box{X: 10, Y: 10, W: 20, H: 20}
	assert.Equal(t, geometry.Box{X: 15, Y: 5, W: 20, H: 20}, b.Translate(geometry.Point{X: 5, Y: -5}))
}

func TestBox_IsDegenerate(t *testing.T) {
	assert.False(t, geometry.Box{W: 1, H: 1}.IsDegenerate())
	assert.True(t, geometry.Box{W: 0, H: 10}.IsDegenerate())
	assert.True(t, geometry.Box{W: 10, H: -1}.IsDegenerate())
	assert.True(t, geometry.Box{X: math.NaN(), W: 10, H: 10}.IsDegenerate())
	assert.True(t, geometry.Box{Y: math.Inf(1), W: 10, H: 10}.IsDegenerate())
}

func TestBoundingBox(t *testing.T) {
	_, ok := geometry.BoundingBox(nil)
	assert.False(t, ok)

	box, ok := geometry.BoundingBox([]geometry.Point{
		{X: 10, Y: 30},
		{X: -5, Y: 0},
		{X: 20, Y: 15},
	})
	require.True(t, ok)
	assert.Equal(t, geometry.Box{X: -5, Y: 0, W: 25, H: 30}, box)
}

func TestPolylineLength(t *testing.T) {
	pts := []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	assert.Equal(t, 20.0, geometry.PolylineLength(pts))
	assert.Equal(t, 0.0, geometry.PolylineLength(pts[:1]))
}

func TestPointAt(t *testing.T) {
	pts := []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}

	assert.Equal(t, geometry.Point{}, geometry.PointAt(nil, 0.5))
	assert.Equal(t, pts[0], geometry.PointAt(pts[:1], 0.5))
	assert.Equal(t, pts[0], geometry.PointAt(pts, -1))
	assert.Equal(t, pts[2], geometry.PointAt(pts, 2))
	assert.Equal(t, geometry.Point{X: 10, Y: 0}, geometry.PointAt(pts, 0.5))
	assert.Equal(t, geometry.Point{X: 10, Y: 5}, geometry.PointAt(pts, 0.75))
}

func TestClosestOnPolyline(t *testing.T) {
	pts := []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}

	proj, ok := geometry.ClosestOnPolyline(pts, geometry.Point{X: 5, Y: 3})
	require.True(t, ok)
	assert.Equal(t, geometry.Point{X: 5, Y: 0}, proj.Point)
	assert.InDelta(t, 0.5, proj.T, 1e-9)
	assert.InDelta(t, 3, proj.Distance, 1e-9)

	// Query beyond the end clamps to the terminal point.
	proj, ok = geometry.ClosestOnPolyline(pts, geometry.Point{X: 15, Y: 0})
	require.True(t, ok)
	assert.Equal(t, geometry.Point{X: 10, Y: 0}, proj.Point)
	assert.InDelta(t, 1.0, proj.T, 1e-9)

	_, ok = geometry.ClosestOnPolyline(pts[:1], geometry.Point{})
	assert.False(t, ok)
}

func TestSimplify_RemovesCollinearBend(t *testing.T) {
	pts := []geometry.Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}}

	out := geometry.Simplify(pts, 0.5, 1.0)

	assert.Equal(t, []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}, out)
}

func TestSimplify_RemovesCrowdedPoints(t *testing.T) {
	pts := []geometry.Point{{X: 0, Y: 0}, {X: 0.2, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}

	out := geometry.Simplify(pts, 0.5, 1.0)

	assert.Equal(t, []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}, out)
}

func TestSimplify_PreservesEndpoints(t *testing.T) {
	// The last point crowds its neighbor; the neighbor goes, not the end.
	pts := []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10.1, Y: 0}}

	out := geometry.Simplify(pts, 0.5, 1.0)

	require.NotEmpty(t, out)
	assert.Equal(t, geometry.Point{X: 0, Y: 0}, out[0])
	assert.Equal(t, geometry.Point{X: 10.1, Y: 0}, out[len(out)-1])
}

func TestSimplify_ShortPathsPassThrough(t *testing.T) {
	pts := []geometry.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}
	assert.Equal(t, pts, geometry.Simplify(pts, 0.5, 1.0))
}

func TestSimplify_KeepsRealBend(t *testing.T) {
	pts := []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	assert.Equal(t, pts, geometry.Simplify(pts, 0.5, 1.0))
}

func TestSegmentIsVertical(t *testing.T) {
	assert.True(t, geometry.SegmentIsVertical(geometry.Point{}, geometry.Point{X: 0, Y: 5}))
	assert.False(t, geometry.SegmentIsVertical(geometry.Point{}, geometry.Point{X: 5, Y: 1}))
	// Perfect diagonals read as vertical.
	assert.True(t, geometry.SegmentIsVertical(geometry.Point{}, geometry.Point{X: 5, Y: 5}))
}

func TestPoint_Arithmetic(t *testing.T) {
	p := geometry.Point{X: 3, Y: 4}

	assert.Equal(t, geometry.Point{X: 5, Y: 6}, p.Add(geometry.Point{X: 2, Y: 2}))
	assert.Equal(t, geometry.Point{X: 1, Y: 2}, p.Sub(geometry.Point{X: 2, Y: 2}))
	assert.InDelta(t, 5, p.DistanceTo(geometry.Point{}), 1e-9)
	assert.True(t, geometry.Point{}.IsZero())
	assert.False(t, p.IsZero())
}
