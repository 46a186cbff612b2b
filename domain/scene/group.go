package scene

import (
	"github.com/nibzard/beautiful-mermaid/domain/primitives"
	"github.com/nibzard/beautiful-mermaid/pkg/geometry"
)

// Insets is the fixed visual margin between a group's container box and
// the bounding box of its member nodes, derived once at reconstruction.
type Insets struct {
	Left, Top, Right, Bottom float64
}

// Group is a container box with an optional header band and label, and
// a membership fixed for the session by original geometric containment.
type Group struct {
	id      string
	rect    *primitives.Element
	header  *primitives.Element // optional, shares top-left x/y and width
	labelEl *primitives.Element // optional header label
	label   string
	box     geometry.Box
	members []NodeID
	padding Insets

	// Label offset relative to the container origin, so a refit keeps
	// the label's visual placement.
	labelOff geometry.Point
	headerH  float64
}

// NewGroup creates a group from its container chrome.
func NewGroup(id string, rect, header, labelEl *primitives.Element, label string, box geometry.Box, members []NodeID, padding Insets) *Group {
	g := &Group{
		id:      id,
		rect:    rect,
		header:  header,
		labelEl: labelEl,
		label:   label,
		box:     box,
		members: members,
		padding: padding,
	}
	if header != nil {
		g.headerH = header.Float("height")
	}
	if labelEl != nil {
		g.labelOff = labelEl.AnchorPoint().Sub(geometry.Point{X: box.X, Y: box.Y})
	}
	return g
}

// ID returns the stable identifier.
func (g *Group) ID() string { return g.id }

// Label returns the header label text, or "".
func (g *Group) Label() string { return g.label }

// Box returns the current container box.
func (g *Group) Box() geometry.Box { return g.box }

// Members returns the node identifiers contained at reconstruction.
func (g *Group) Members() []NodeID { return g.members }

// Padding returns the fixed container margin.
func (g *Group) Padding() Insets { return g.padding }

// Chrome reports the container primitives so a reconstructor can
// exclude them from node clustering.
func (g *Group) Chrome() (rect, header, label *primitives.Element) {
	return g.rect, g.header, g.labelEl
}

// Refit rewrites the container box, header band and label position from
// a recomputed member bounding box. The coordinates are rewritten in
// place; the chrome never carries a translation transform.
func (g *Group) Refit(box geometry.Box) {
	if box.IsDegenerate() {
		return
	}
	g.box = box
	off := g.rect.AncestorOffset().Add(parseTranslateOf(g.rect))
	g.rect.SetFloat("x", box.X-off.X)
	g.rect.SetFloat("y", box.Y-off.Y)
	g.rect.SetFloat("width", box.W)
	g.rect.SetFloat("height", box.H)
	if g.header != nil {
		hoff := g.header.AncestorOffset().Add(parseTranslateOf(g.header))
		g.header.SetFloat("x", box.X-hoff.X)
		g.header.SetFloat("y", box.Y-hoff.Y)
		g.header.SetFloat("width", box.W)
	}
	if g.labelEl != nil {
		anchor := geometry.Point{X: box.X, Y: box.Y}.Add(g.labelOff)
		loff := g.labelEl.OwnOffset()
		g.labelEl.SetFloat("x", anchor.X-loff.X)
		g.labelEl.SetFloat("y", anchor.Y-loff.Y)
	}
}

// parseTranslateOf mirrors the element's own original translation so
// chrome rewrites stay in local coordinates.
func parseTranslateOf(e *primitives.Element) geometry.Point {
	return e.OwnOffset().Sub(e.AncestorOffset())
}
