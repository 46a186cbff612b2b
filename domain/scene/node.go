// Package scene holds the inferred scene graph: nodes, edges and groups
// reconstructed from an id-less primitive tree, addressed by stable
// content-derived identifiers.
package scene

import (
	"github.com/nibzard/beautiful-mermaid/domain/primitives"
	"github.com/nibzard/beautiful-mermaid/pkg/geometry"
)

// ShapeKind is the rendered silhouette of a node.
type ShapeKind string

const (
	ShapeRectangle ShapeKind = "rectangle"
	ShapeRounded   ShapeKind = "rounded"
	ShapeDiamond   ShapeKind = "diamond"
	ShapeCircle    ShapeKind = "circle"
	ShapeStadium   ShapeKind = "stadium"
	ShapePolygon   ShapeKind = "polygon"
	ShapeUnknown   ShapeKind = "unknown"
)

// NodeID is a stable content-derived node identifier.
type NodeID string

// Node is a draggable visual unit: a cluster of primitives with a live
// position the tracker mutates and an immutable original position used
// as the delta baseline.
type Node struct {
	id       NodeID
	elements []*primitives.Element
	shape    ShapeKind
	label    string
	box      geometry.Box   // original bounding box
	position geometry.Point // live top-left
	original geometry.Point // top-left at reconstruction
}

// NewNode creates a node from its reconstructed cluster.
func NewNode(id NodeID, shape ShapeKind, label string, box geometry.Box, elements []*primitives.Element) *Node {
	origin := geometry.Point{X: box.X, Y: box.Y}
	return &Node{
		id:       id,
		elements: elements,
		shape:    shape,
		label:    label,
		box:      box,
		position: origin,
		original: origin,
	}
}

// ID returns the stable identifier.
func (n *Node) ID() NodeID { return n.id }

// Shape returns the rendered shape kind.
func (n *Node) Shape() ShapeKind { return n.shape }

// Label returns the node's text label, or "".
func (n *Node) Label() string { return n.label }

// Box returns the original bounding box.
func (n *Node) Box() geometry.Box { return n.box }

// Size returns the node's width and height.
func (n *Node) Size() (w, h float64) { return n.box.W, n.box.H }

// Position returns the live top-left position.
func (n *Node) Position() geometry.Point { return n.position }

// OriginalPosition returns the top-left position at reconstruction.
func (n *Node) OriginalPosition() geometry.Point { return n.original }

// SetPosition moves the live position without propagating.
func (n *Node) SetPosition(p geometry.Point) { n.position = p }

// Delta returns live minus original.
func (n *Node) Delta() geometry.Point { return n.position.Sub(n.original) }

// Center returns the node's current center.
func (n *Node) Center() geometry.Point { return n.box.Center().Add(n.Delta()) }

// CurrentBox returns the original box shifted by the live delta.
func (n *Node) CurrentBox() geometry.Box { return n.box.Translate(n.Delta()) }

// Elements returns the primitives the node owns.
func (n *Node) Elements() []*primitives.Element { return n.elements }

// Absorb adds a primitive to the node's owned set.
func (n *Node) Absorb(e *primitives.Element) { n.elements = append(n.elements, e) }

// Owns reports whether el or one of its ancestors belongs to the node.
func (n *Node) Owns(el *primitives.Element) bool {
	for e := el; e != nil; e = e.Parent {
		for _, owned := range n.elements {
			if owned == e {
				return true
			}
		}
	}
	return false
}
