package engine

import (
	"slices"

	"github.com/inamate/canvas/internal/geom"
	"github.com/inamate/canvas/internal/snap"
)

// StartDragging begins moving the given elements.
func (e *Engine) StartDragging(ids []string, start geom.Point) {
	e.setGesture(Dragging{Start: start, IDs: slices.Clone(ids)})
}

// StopDragging ends the drag and clears the hover frame and snap guides.
// Any other active gesture is reset to idle as well.
func (e *Engine) StopDragging() {
	e.Transaction(func() {
		if e.hoverFrameID != "" || len(e.guides) > 0 {
			e.hoverFrameID = ""
			e.guides = nil
			e.changed()
		}
		e.resetGesture()
	})
}

// HandleDrag translates the dragged elements by delta. Elements whose
// ancestor is also being dragged are carried by it and are not moved
// themselves.
//
// When exactly one element is dragged and mouse is given, the frame under
// the cursor is evaluated on every call and the element is re-parented into
// it, or back to the root, keeping its world position.
func (e *Engine) HandleDrag(ids []string, delta geom.Point, mouse *geom.Point) {
	moving := make(map[string]bool, len(ids))
	for _, id := range ids {
		moving[id] = true
	}

	e.Transaction(func() {
		moved := false
		for _, id := range ids {
			el, ok := e.byID[id]
			if !ok || e.hasAncestorIn(el, moving) {
				continue
			}
			el.X += delta.X
			el.Y += delta.Y
			moved = true
		}
		if moved {
			e.changed()
		}

		if len(ids) == 1 && mouse != nil {
			e.reparentUnderCursor(ids[0], *mouse)
		}
	})
}

func (e *Engine) reparentUnderCursor(id string, mouse geom.Point) {
	el, ok := e.byID[id]
	if !ok {
		return
	}

	// A frame cannot be dropped into itself or anything it contains.
	exclude := append([]string{id}, e.descendants(id)...)
	target := e.FindFrameAtPoint(mouse.X, mouse.Y, exclude)

	if e.hoverFrameID != target {
		e.hoverFrameID = target
		e.changed()
	}
	if target == el.ParentID {
		return
	}

	if target != "" {
		e.attach(el, e.byID[target])
	} else {
		e.detach(el)
	}
	e.changed()
}

// SnapDrag adjusts a proposed drag delta so the dragged selection aligns
// with its siblings, and records the guides to draw. It returns the delta
// to pass to HandleDrag. Snapping is skipped when disabled in the config.
func (e *Engine) SnapDrag(ids []string, delta geom.Point) geom.Point {
	if !e.cfg.SnapEnabled {
		return delta
	}

	moving := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := e.byID[id]; ok {
			moving[id] = true
		}
	}
	if len(moving) == 0 {
		return delta
	}

	var bounds geom.Rect
	parentID := ""
	first := true
	for _, id := range ids {
		el, ok := e.byID[id]
		if !ok || e.hasAncestorIn(el, moving) {
			continue
		}
		if first {
			parentID = el.ParentID
			bounds = e.worldBounds(el)
			first = false
			continue
		}
		bounds = bounds.Union(e.worldBounds(el))
	}
	bounds = bounds.Translate(delta.X, delta.Y)

	var anchors []geom.Rect
	for _, el := range e.elements {
		if el.ParentID != parentID || moving[el.ID] {
			continue
		}
		anchors = append(anchors, e.worldBounds(el))
	}
	if parent, ok := e.byID[parentID]; ok {
		anchors = append(anchors, e.worldBounds(parent))
	}

	res := snap.Compute(bounds, anchors, e.cfg.Snap)
	if len(res.Guides) > 0 || len(e.guides) > 0 {
		e.guides = res.Guides
		e.changed()
	}
	return geom.Point{X: delta.X + res.DX, Y: delta.Y + res.DY}
}
