package engine

import (
	"cmp"
	"slices"

	"github.com/inamate/canvas/internal/document"
	"github.com/inamate/canvas/internal/geom"
)

// ElementPatch carries the element fields to merge. Nil fields are kept.
// Topology (parentId, children) is changed only through AddToFrame and
// RemoveFromFrame.
type ElementPatch struct {
	X          *float64        `json:"x,omitempty"`
	Y          *float64        `json:"y,omitempty"`
	Width      *float64        `json:"width,omitempty"`
	Height     *float64        `json:"height,omitempty"`
	Rotation   *float64        `json:"rotation,omitempty"`
	ZIndex     *int            `json:"zIndex,omitempty"`
	Content    *string         `json:"content,omitempty"`
	ImageURL   *string         `json:"imageUrl,omitempty"`
	Style      *document.Style `json:"style,omitempty"`
	FixedWidth *bool           `json:"fixedWidth,omitempty"`
}

// Element returns a copy of the element with the given id.
func (e *Engine) Element(id string) (document.Element, bool) {
	el, ok := e.byID[id]
	if !ok {
		return document.Element{}, false
	}
	return el.Clone(), true
}

// Elements returns copies of all elements in paint order: ascending
// z-index, ties in store order.
func (e *Engine) Elements() []document.Element {
	out := e.cloneElements()
	slices.SortStableFunc(out, func(a, b document.Element) int {
		return cmp.Compare(a.ZIndex, b.ZIndex)
	})
	return out
}

// ElementsInGroup returns copies of the elements whose parent is parentID
// ("" for the root), sorted by z-index.
func (e *Engine) ElementsInGroup(parentID string) []document.Element {
	group := e.siblings(parentID)
	out := make([]document.Element, len(group))
	for i, el := range group {
		out[i] = el.Clone()
	}
	return out
}

// Len returns the number of elements.
func (e *Engine) Len() int {
	return len(e.elements)
}

// AddElement inserts a new root-level element built from tmpl and returns its
// id. The id and z-index are assigned by the engine; topology fields of tmpl
// are ignored.
func (e *Engine) AddElement(tmpl document.Element) string {
	el := tmpl.Clone()
	if !el.Type.Valid() {
		el.Type = document.ElementTypeRectangle
	}
	el.ID = e.newID()
	el.ParentID = ""
	el.Children = nil
	if el.Style == (document.Style{}) {
		el.Style = document.DefaultStyle(el.Type)
	}
	el.ZIndex = e.nextZIndex(el.Type)

	e.elements = append(e.elements, &el)
	e.byID[el.ID] = &el
	e.changed()
	return el.ID
}

// UpdateElement shallow-merges the patch into an element.
func (e *Engine) UpdateElement(id string, p ElementPatch) {
	el, ok := e.byID[id]
	if !ok {
		return
	}
	if p.X != nil {
		el.X = *p.X
	}
	if p.Y != nil {
		el.Y = *p.Y
	}
	if p.Width != nil {
		el.Width = *p.Width
	}
	if p.Height != nil {
		el.Height = *p.Height
	}
	if p.Rotation != nil {
		el.Rotation = *p.Rotation
	}
	if p.ZIndex != nil {
		el.ZIndex = *p.ZIndex
	}
	if p.Content != nil {
		el.Content = *p.Content
	}
	if p.ImageURL != nil {
		el.ImageURL = *p.ImageURL
	}
	if p.Style != nil {
		el.Style = *p.Style
	}
	if p.FixedWidth != nil {
		el.FixedWidth = *p.FixedWidth
	}
	e.changed()
}

// DeleteElements removes the elements and, for frames, everything nested in
// them. Deleted ids are pruned from surviving parents, the selection, the
// editing and hover pointers.
func (e *Engine) DeleteElements(ids []string) {
	doomed := make(map[string]bool)
	for _, id := range ids {
		if _, ok := e.byID[id]; !ok {
			continue
		}
		doomed[id] = true
		for _, d := range e.descendants(id) {
			doomed[d] = true
		}
	}
	if len(doomed) == 0 {
		return
	}

	for id := range doomed {
		el := e.byID[id]
		if parent, ok := e.byID[el.ParentID]; ok && !doomed[parent.ID] {
			parent.Children = slices.DeleteFunc(parent.Children, func(c string) bool { return c == id })
		}
	}

	e.elements = slices.DeleteFunc(e.elements, func(el *document.Element) bool { return doomed[el.ID] })
	for id := range doomed {
		delete(e.byID, id)
	}

	e.selection = slices.DeleteFunc(e.selection, func(id string) bool { return doomed[id] })
	if doomed[e.editingID] {
		e.editingID = ""
	}
	if doomed[e.hoverFrameID] {
		e.hoverFrameID = ""
	}
	if r, ok := e.gesture.(Resizing); ok && doomed[r.ID] {
		e.gesture = Idle{}
	}

	e.logger.Debug("deleted elements", "count", len(doomed))
	e.changed()
}

// MoveElements translates local coordinates. Callers must not pass both an
// element and one of its ancestors.
func (e *Engine) MoveElements(ids []string, dx, dy float64) {
	moved := false
	for _, id := range ids {
		el, ok := e.byID[id]
		if !ok {
			continue
		}
		el.X += dx
		el.Y += dy
		moved = true
	}
	if moved {
		e.changed()
	}
}

// ResizeElement overwrites position and size in one step.
func (e *Engine) ResizeElement(id string, bounds geom.Rect) {
	el, ok := e.byID[id]
	if !ok {
		return
	}
	el.X, el.Y = bounds.X, bounds.Y
	el.Width, el.Height = bounds.Width, bounds.Height
	e.changed()
}
