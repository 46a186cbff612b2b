// Package geometry provides the small set of pure 2D helpers the scene
// reconstructor and position tracker are built on: bounding boxes,
// point-in-box tests, polyline projection and simplification.
package geometry

import "math"

// Point is a 2D coordinate in document units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// DistanceTo returns the Euclidean distance between p and q.
func (p Point) DistanceTo(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// IsZero reports whether both coordinates are exactly zero.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Box is an axis-aligned bounding box anchored at its top-left corner.
type Box struct {
	X, Y, W, H float64
}

// Center returns the box midpoint.
func (b Box) Center() Point {
	return Point{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// MaxDim returns the larger of width and height.
func (b Box) MaxDim() float64 {
	return math.Max(b.W, b.H)
}

// Area returns width times height.
func (b Box) Area() float64 {
	return b.W * b.H
}

// Contains reports whether p lies inside b, borders included.
func (b Box) Contains(p Point) bool {
	return p.X >= b.X && p.X <= b.X+b.W && p.Y >= b.Y && p.Y <= b.Y+b.H
}

// Expand grows the box by pad on every side.
func (b Box) Expand(pad float64) Box {
	return Box{X: b.X - pad, Y: b.Y - pad, W: b.W + 2*pad, H: b.H + 2*pad}
}

// Union returns the smallest box covering both b and o.
func (b Box) Union(o Box) Box {
	x1 := math.Min(b.X, o.X)
	y1 := math.Min(b.Y, o.Y)
	x2 := math.Max(b.X+b.W, o.X+o.W)
	y2 := math.Max(b.Y+b.H, o.Y+o.H)
	return Box{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

// Translate returns the box shifted by d.
func (b Box) Translate(d Point) Box {
	return Box{X: b.X + d.X, Y: b.Y + d.Y, W: b.W, H: b.H}
}

// IsDegenerate reports whether the box has a non-finite or non-positive
// dimension and therefore cannot be written back to a shape.
func (b Box) IsDegenerate() bool {
	if math.IsNaN(b.X) || math.IsNaN(b.Y) || math.IsNaN(b.W) || math.IsNaN(b.H) {
		return true
	}
	if math.IsInf(b.X, 0) || math.IsInf(b.Y, 0) || math.IsInf(b.W, 0) || math.IsInf(b.H, 0) {
		return true
	}
	return b.W <= 0 || b.H <= 0
}

// BoundingBox returns the box covering all points. The second return is
// false for an empty slice.
func BoundingBox(points []Point) (Box, bool) {
	if len(points) == 0 {
		return Box{}, false
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Box{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}, true
}
