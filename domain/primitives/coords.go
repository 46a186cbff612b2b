package primitives

import (
	"strconv"
	"strings"

	"github.com/nibzard/beautiful-mermaid/pkg/geometry"
)

// parseTranslate extracts the leading translate(x[,y]) from a transform
// attribute. Other transform kinds are not produced by the upstream
// renderer for structural elements and are ignored.
func parseTranslate(s string) geometry.Point {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "translate(") {
		return geometry.Point{}
	}
	body, _, ok := strings.Cut(s[len("translate("):], ")")
	if !ok {
		return geometry.Point{}
	}
	args := strings.FieldsFunc(body, func(r rune) bool { return r == ',' || r == ' ' })
	var p geometry.Point
	if len(args) >= 1 {
		p.X, _ = strconv.ParseFloat(args[0], 64)
	}
	if len(args) >= 2 {
		p.Y, _ = strconv.ParseFloat(args[1], 64)
	}
	return p
}

// originalTransform returns the transform the renderer emitted,
// before any tracker translation was composed over it.
func (e *Element) originalTransform() string {
	if e.baseTransformSet {
		return e.baseTransform
	}
	return e.Attrs["transform"]
}

// AncestorOffset accumulates the renderer-emitted translations of every
// ancestor, converting local coordinates to document coordinates.
func (e *Element) AncestorOffset() geometry.Point {
	var off geometry.Point
	for p := e.Parent; p != nil; p = p.Parent {
		off = off.Add(parseTranslate(p.originalTransform()))
	}
	return off
}

// OwnOffset is AncestorOffset plus the element's own original translation.
func (e *Element) OwnOffset() geometry.Point {
	return e.AncestorOffset().Add(parseTranslate(e.originalTransform()))
}

// AnchorPoint returns the document-coordinate anchor of a text element.
func (e *Element) AnchorPoint() geometry.Point {
	return geometry.Point{X: e.Float("x"), Y: e.Float("y")}.Add(e.OwnOffset())
}

// Points returns the connector's path in document coordinates. Supported
// carriers are polyline/polygon (points attribute), line (x1..y2) and
// path (d attribute).
func (e *Element) Points() []geometry.Point {
	off := e.AncestorOffset()
	var pts []geometry.Point
	switch e.Tag {
	case "polyline", "polygon":
		pts = parsePointList(e.Attrs["points"])
	case "line":
		pts = []geometry.Point{
			{X: e.Float("x1"), Y: e.Float("y1")},
			{X: e.Float("x2"), Y: e.Float("y2")},
		}
	case "path":
		pts = ParsePathData(e.Attrs["d"])
	default:
		return nil
	}
	for i := range pts {
		pts[i] = pts[i].Add(off)
	}
	return pts
}

// SetPoints rewrites the connector's coordinate data from document
// coordinates. Polylines get a points attribute, lines their terminal
// coordinates, paths a plain move-line sequence.
func (e *Element) SetPoints(pts []geometry.Point) {
	off := e.AncestorOffset()
	local := make([]geometry.Point, len(pts))
	for i, p := range pts {
		local[i] = p.Sub(off)
	}
	switch e.Tag {
	case "polyline", "polygon":
		e.SetAttr("points", formatPointList(local))
	case "line":
		if len(local) == 0 {
			return
		}
		first, last := local[0], local[len(local)-1]
		e.SetFloat("x1", first.X)
		e.SetFloat("y1", first.Y)
		e.SetFloat("x2", last.X)
		e.SetFloat("y2", last.Y)
	case "path":
		e.SetAttr("d", FormatPathData(local))
	}
}

// BBox computes the document-coordinate bounding box of a shape
// element. The second return is false for tags without box geometry.
func (e *Element) BBox() (geometry.Box, bool) {
	off := e.AncestorOffset()
	switch e.Tag {
	case "rect", "image", "foreignObject":
		b := geometry.Box{X: e.Float("x"), Y: e.Float("y"), W: e.Float("width"), H: e.Float("height")}
		return b.Translate(off.Add(parseTranslate(e.originalTransform()))), true
	case "circle":
		r := e.Float("r")
		b := geometry.Box{X: e.Float("cx") - r, Y: e.Float("cy") - r, W: 2 * r, H: 2 * r}
		return b.Translate(off), true
	case "ellipse":
		rx, ry := e.Float("rx"), e.Float("ry")
		b := geometry.Box{X: e.Float("cx") - rx, Y: e.Float("cy") - ry, W: 2 * rx, H: 2 * ry}
		return b.Translate(off), true
	case "polygon", "polyline", "line", "path":
		return geometry.BoundingBox(e.Points())
	default:
		return geometry.Box{}, false
	}
}

func parsePointList(s string) []geometry.Point {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\n' || r == '\t' })
	pts := make([]geometry.Point, 0, len(fields)/2)
	for i := 0; i+1 < len(fields); i += 2 {
		x, errX := strconv.ParseFloat(fields[i], 64)
		y, errY := strconv.ParseFloat(fields[i+1], 64)
		if errX != nil || errY != nil {
			continue
		}
		pts = append(pts, geometry.Point{X: x, Y: y})
	}
	return pts
}

func formatPointList(pts []geometry.Point) string {
	var sb strings.Builder
	for i, p := range pts {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(FormatFloat(p.X))
		sb.WriteByte(',')
		sb.WriteString(FormatFloat(p.Y))
	}
	return sb.String()
}
