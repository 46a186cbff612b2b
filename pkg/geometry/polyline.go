package geometry

import "math"

// PolylineLength returns the total arc length of the path.
func PolylineLength(points []Point) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += points[i-1].DistanceTo(points[i])
	}
	return total
}

// PointAt returns the point at fractional arc length t along the path,
// with t clamped to [0, 1]. A path shorter than two points yields its
// only point or the origin.
func PointAt(points []Point, t float64) Point {
	if len(points) == 0 {
		return Point{}
	}
	if len(points) == 1 {
		return points[0]
	}
	if t <= 0 {
		return points[0]
	}
	if t >= 1 {
		return points[len(points)-1]
	}
	target := PolylineLength(points) * t
	var walked float64
	for i := 1; i < len(points); i++ {
		seg := points[i-1].DistanceTo(points[i])
		if walked+seg >= target && seg > 0 {
			f := (target - walked) / seg
			return Point{
				X: points[i-1].X + (points[i].X-points[i-1].X)*f,
				Y: points[i-1].Y + (points[i].Y-points[i-1].Y)*f,
			}
		}
		walked += seg
	}
	return points[len(points)-1]
}

// Projection is the result of projecting a point onto a polyline.
type Projection struct {
	Point    Point   // closest point on the path
	T        float64 // fractional arc length of that point
	Distance float64 // distance from the query point to the path
}

// ClosestOnPolyline projects p onto the path and returns the nearest
// point together with its fractional arc-length position. The second
// return is false when the path has fewer than two points.
func ClosestOnPolyline(points []Point, p Point) (Projection, bool) {
	if len(points) < 2 {
		return Projection{}, false
	}
	total := PolylineLength(points)
	best := Projection{Distance: math.Inf(1)}
	var walked float64
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		seg := a.DistanceTo(b)
		q, f := closestOnSegment(a, b, p)
		if d := p.DistanceTo(q); d < best.Distance {
			t := 0.0
			if total > 0 {
				t = (walked + seg*f) / total
			}
			best = Projection{Point: q, T: t, Distance: d}
		}
		walked += seg
	}
	return best, true
}

// closestOnSegment returns the nearest point on segment ab to p and the
// fraction along the segment where it falls.
func closestOnSegment(a, b, p Point) (Point, float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return a, 0
	}
	f := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	f = math.Max(0, math.Min(1, f))
	return Point{X: a.X + dx*f, Y: a.Y + dy*f}, f
}

// Simplify removes consecutive points closer than minGap, then interior
// points collinear with both neighbors along the same axis within
// axisTol. The terminal points are always preserved.
func Simplify(points []Point, minGap, axisTol float64) []Point {
	if len(points) <= 2 {
		return points
	}
	deduped := points[:1:1]
	for i := 1; i < len(points); i++ {
		last := deduped[len(deduped)-1]
		if points[i].DistanceTo(last) < minGap {
			// Keep the final endpoint even when it crowds its neighbor.
			if i == len(points)-1 {
				deduped = append(deduped, points[i])
			}
			continue
		}
		deduped = append(deduped, points[i])
	}
	if len(deduped) <= 2 {
		return deduped
	}
	out := deduped[:1:1]
	for i := 1; i < len(deduped)-1; i++ {
		prev := out[len(out)-1]
		cur, next := deduped[i], deduped[i+1]
		sameX := math.Abs(prev.X-cur.X) < axisTol && math.Abs(cur.X-next.X) < axisTol
		sameY := math.Abs(prev.Y-cur.Y) < axisTol && math.Abs(cur.Y-next.Y) < axisTol
		if sameX || sameY {
			continue
		}
		out = append(out, cur)
	}
	out = append(out, deduped[len(deduped)-1])
	return out
}

// SegmentIsVertical reports whether the segment from a to b runs closer
// to vertical than horizontal.
func SegmentIsVertical(a, b Point) bool {
	return math.Abs(b.Y-a.Y) >= math.Abs(b.X-a.X)
}
