package engine

import (
	"slices"

	"github.com/inamate/canvas/internal/document"
)

// AddToFrame nests an element inside a frame, converting its position into
// the frame's local space so it does not move on screen. It is a no-op when
// the element is already a child of the frame, when frameID is not a frame,
// or when the frame is the element itself or nested inside it.
func (e *Engine) AddToFrame(elementID, frameID string) {
	el, ok := e.byID[elementID]
	if !ok {
		return
	}
	frame, ok := e.byID[frameID]
	if !ok || !frame.IsFrame() {
		return
	}
	if el.ParentID == frameID || elementID == frameID {
		return
	}
	if slices.Contains(e.descendants(elementID), frameID) {
		return
	}

	e.attach(el, frame)
	e.changed()
}

// RemoveFromFrame moves a nested element back to the root, converting its
// position to world space.
func (e *Engine) RemoveFromFrame(elementID string) {
	el, ok := e.byID[elementID]
	if !ok || el.ParentID == "" {
		return
	}

	e.detach(el)
	e.changed()
}

// attach re-parents el under frame. Positions are read before any field is
// written, and the id is dropped from every other children list in the same
// pass so it is never owned twice.
func (e *Engine) attach(el, frame *document.Element) {
	world := e.worldPos(el)
	frameWorld := e.worldPos(frame)

	e.unlink(el.ID)
	el.X = world.X - frameWorld.X
	el.Y = world.Y - frameWorld.Y
	el.ParentID = frame.ID
	frame.Children = append(frame.Children, el.ID)

	e.logger.Debug("attached to frame", "element", el.ID, "frame", frame.ID)
}

// detach moves el to the root in world coordinates.
func (e *Engine) detach(el *document.Element) {
	world := e.worldPos(el)

	e.unlink(el.ID)
	el.X = world.X
	el.Y = world.Y
	el.ParentID = ""

	e.logger.Debug("detached from frame", "element", el.ID)
}

// unlink removes id from every frame's children list.
func (e *Engine) unlink(id string) {
	for _, el := range e.elements {
		if !el.IsFrame() || len(el.Children) == 0 {
			continue
		}
		el.Children = slices.DeleteFunc(el.Children, func(c string) bool { return c == id })
	}
}
