// Package drag interprets pointer gestures into collection mutations:
// reorder within a scope, migrate across group boundaries, or reorder
// groups. The coordinator is a small state machine fed by the UI's mouse
// events; every hover is an idempotent re-evaluation of the current
// target, never an incremental delta, so repeated or out-of-order events
// cannot corrupt state.
package drag

import (
	"github.com/formloom/formloom-cli/pkg/collection"
)

// State of the coordinator.
type State int

const (
	Idle State = iota
	// Pressed means the pointer is down on a draggable but has not
	// travelled far enough to count as a drag. A release in this state
	// is a click, not a drop.
	Pressed
	Dragging
)

// Kind of thing being dragged.
type Kind int

const (
	KindNone Kind = iota
	KindItem
	KindGroup
)

// TargetKind classifies what the pointer is currently over.
type TargetKind int

const (
	TargetNone      TargetKind = iota
	TargetItem                 // another item card
	TargetGroupZone            // a group's empty drop zone
	TargetGroup                // a group card (group drags only)
)

// Target is a candidate drop target.
type Target struct {
	Kind TargetKind
	ID   string // item id for TargetItem, group id otherwise
}

// Threshold is the pointer travel (in cells) required before a press
// becomes a drag. It separates click-to-expand from drag-to-reorder.
const Threshold = 4

// Coordinator turns gesture events into engine operations.
type Coordinator struct {
	engine *collection.Engine

	state    State
	kind     Kind
	activeID string

	// originGroupID is the dragged item's group when the gesture began.
	// Cross-group migration during hover is committed, not previewed;
	// the origin is kept for callers that want to inspect it.
	originGroupID string

	// expandedID is the item that was open for editing when the drag
	// began. It is collapsed for the duration and restored on finish.
	expandedID string

	startX, startY int
}

// NewCoordinator returns an idle coordinator bound to the engine.
func NewCoordinator(engine *collection.Engine) *Coordinator {
	return &Coordinator{engine: engine}
}

// State returns the current gesture state.
func (c *Coordinator) State() State { return c.state }

// Kind returns what is being dragged, or KindNone when idle.
func (c *Coordinator) Kind() Kind {
	if c.state == Idle {
		return KindNone
	}
	return c.kind
}

// ActiveID returns the id of the dragged item or group.
func (c *Coordinator) ActiveID() string {
	if c.state == Idle {
		return ""
	}
	return c.activeID
}

// OriginGroupID returns the dragged item's group at gesture start.
func (c *Coordinator) OriginGroupID() string { return c.originGroupID }

// Press begins a gesture on an item or group at the given pointer
// position. expandedID is the currently open editor card, if any; it is
// remembered so the UI can restore it after the gesture.
func (c *Coordinator) Press(kind Kind, id, expandedID string, x, y int) {
	if c.state != Idle || kind == KindNone || id == "" {
		return
	}

	c.state = Pressed
	c.kind = kind
	c.activeID = id
	c.expandedID = expandedID
	c.startX, c.startY = x, y
	c.originGroupID = ""

	if kind == KindItem {
		if it := c.engine.Form().ItemByID(id); it != nil {
			c.originGroupID = it.GroupRef()
		}
	}
}

// Move reports pointer travel. Once the travel exceeds the threshold the
// press is recognized as a drag. Returns true while dragging.
func (c *Coordinator) Move(x, y int) bool {
	switch c.state {
	case Pressed:
		dx, dy := x-c.startX, y-c.startY
		if dx < 0 {
			dx = -dx
		}
		if dy < 0 {
			dy = -dy
		}
		if dx+dy >= Threshold {
			c.state = Dragging
		}
	case Dragging:
		// still dragging
	default:
		return false
	}
	return c.state == Dragging
}

// Over re-evaluates the current hover target. For item drags, hovering a
// group's empty zone or an item in another group migrates the dragged
// item to that group immediately, so the user sees the move before the
// drop lands. Group drags ignore item-level targets entirely.
func (c *Coordinator) Over(t Target) {
	if c.state != Dragging {
		return
	}

	if c.kind != KindItem {
		return
	}

	switch t.Kind {
	case TargetGroupZone:
		c.adoptGroup(t.ID)
	case TargetItem:
		if t.ID == c.activeID {
			return
		}
		if over := c.engine.Form().ItemByID(t.ID); over != nil {
			c.adoptGroup(over.GroupRef())
		}
	}
}

func (c *Coordinator) adoptGroup(groupID string) {
	it := c.engine.Form().ItemByID(c.activeID)
	if it == nil || it.GroupRef() == groupID {
		return
	}
	c.engine.MoveItemToGroup(c.activeID, groupID)
}

// Drop finalizes the gesture against the last target. Item drops over a
// real item splice-move within the collection; group drops resolve only
// against group targets. Returns the id of the item to re-expand, or ""
// if none was open.
func (c *Coordinator) Drop(t Target) string {
	if c.state != Dragging {
		// A release below the threshold is a click; the caller
		// handles expand/collapse itself.
		return c.reset()
	}

	switch c.kind {
	case KindItem:
		if t.Kind == TargetItem && t.ID != c.activeID {
			c.engine.ReorderItems(c.activeID, t.ID)
		}
	case KindGroup:
		if t.Kind == TargetGroup && t.ID != c.activeID {
			c.engine.ReorderGroups(c.activeID, t.ID)
		}
	}

	return c.reset()
}

// Cancel aborts the gesture, restoring presentation state only. Any
// cross-group migration already applied by Over stays committed.
func (c *Coordinator) Cancel() string {
	return c.reset()
}

func (c *Coordinator) reset() string {
	expanded := c.expandedID
	c.state = Idle
	c.kind = KindNone
	c.activeID = ""
	c.originGroupID = ""
	c.expandedID = ""
	return expanded
}
