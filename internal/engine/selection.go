package engine

import (
	"slices"

	"github.com/inamate/canvas/internal/geom"
)

// Selection returns the selected ids.
func (e *Engine) Selection() []string {
	return slices.Clone(e.selection)
}

// IsSelected reports whether id is selected.
func (e *Engine) IsSelected(id string) bool {
	return slices.Contains(e.selection, id)
}

// SelectElements replaces the selection with ids, or adds them when
// additive is set. Unknown ids are ignored.
func (e *Engine) SelectElements(ids []string, additive bool) {
	var next []string
	if additive {
		next = slices.Clone(e.selection)
	}
	for _, id := range ids {
		if _, ok := e.byID[id]; !ok || slices.Contains(next, id) {
			continue
		}
		next = append(next, id)
	}
	e.setSelection(next)
}

// ToggleSelection adds id to the selection or removes it if present.
func (e *Engine) ToggleSelection(id string) {
	if _, ok := e.byID[id]; !ok {
		return
	}
	next := slices.Clone(e.selection)
	if i := slices.Index(next, id); i >= 0 {
		next = slices.Delete(next, i, i+1)
	} else {
		next = append(next, id)
	}
	e.setSelection(next)
}

// SelectAll selects every element.
func (e *Engine) SelectAll() {
	next := make([]string, len(e.elements))
	for i, el := range e.elements {
		next[i] = el.ID
	}
	e.setSelection(next)
}

// ClearSelection empties the selection.
func (e *Engine) ClearSelection() {
	e.setSelection(nil)
}

// SelectionBounds returns the world-space union of the selected elements.
func (e *Engine) SelectionBounds() geom.Rect {
	var result geom.Rect
	first := true
	for _, id := range e.selection {
		el, ok := e.byID[id]
		if !ok {
			continue
		}
		b := e.worldBounds(el)
		if first {
			result = b
			first = false
			continue
		}
		result = result.Union(b)
	}
	return result
}

func (e *Engine) setSelection(next []string) {
	if slices.Equal(next, e.selection) {
		return
	}
	e.selection = next
	e.changed()
}
