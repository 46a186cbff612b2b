package tracker

import (
	"errors"

	"github.com/nibzard/beautiful-mermaid/domain/scene"
)

// The drag lifecycle is an explicit two-state machine: idle or dragging
// exactly one node. A second drag start while one is active is
// rejected rather than silently clobbering the slot; concurrent
// multi-node drags are undefined by construction.

var (
	// ErrDragActive is returned when a drag starts while another is in
	// progress.
	ErrDragActive = errors.New("a drag is already in progress")
	// ErrNoDrag is returned when motion or release arrives while idle.
	ErrNoDrag = errors.New("no drag in progress")
	// ErrUnknownNode is returned when a drag targets an identifier not
	// in the scene graph.
	ErrUnknownNode = errors.New("unknown node identifier")
)

type dragState struct {
	active bool
	nodeID scene.NodeID
}

// StartDrag begins a gesture on the given node.
func (t *Tracker) StartDrag(id scene.NodeID) error {
	if t.drag.active {
		return ErrDragActive
	}
	if _, ok := t.nodes[id]; !ok {
		return ErrUnknownNode
	}
	t.drag = dragState{active: true, nodeID: id}
	return nil
}

// DragTo handles one movement tick: position update plus one apply.
func (t *Tracker) DragTo(x, y float64) error {
	if !t.drag.active {
		return ErrNoDrag
	}
	t.UpdatePosition(t.drag.nodeID, x, y)
	t.ApplyPositionUpdates()
	return nil
}

// EndDrag completes the gesture and runs exactly one polish pass.
func (t *Tracker) EndDrag() error {
	if !t.drag.active {
		return ErrNoDrag
	}
	t.drag = dragState{}
	t.PolishLayout()
	return nil
}

// Dragging reports the active drag target, if any.
func (t *Tracker) Dragging() (scene.NodeID, bool) {
	return t.drag.nodeID, t.drag.active
}
