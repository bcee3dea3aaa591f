package engine

import (
	"github.com/inamate/canvas/internal/document"
	"github.com/inamate/canvas/internal/geom"
)

// ElementWorldPos returns the world position of an element: its local
// position plus the world position of its parent, recursively. It is
// recomputed on every call.
func (e *Engine) ElementWorldPos(id string) (geom.Point, bool) {
	el, ok := e.byID[id]
	if !ok {
		return geom.Point{}, false
	}
	return e.worldPos(el), true
}

// ElementWorldBounds returns the world-space rectangle of an element.
func (e *Engine) ElementWorldBounds(id string) (geom.Rect, bool) {
	el, ok := e.byID[id]
	if !ok {
		return geom.Rect{}, false
	}
	return e.worldBounds(el), true
}

func (e *Engine) worldPos(el *document.Element) geom.Point {
	p := geom.Point{X: el.X, Y: el.Y}

	// A dangling parent ends the walk. The step bound guards against cycles
	// in imported data.
	cur := el
	for steps := 0; cur.ParentID != "" && steps < len(e.elements); steps++ {
		parent, ok := e.byID[cur.ParentID]
		if !ok {
			break
		}
		p = p.Add(geom.Point{X: parent.X, Y: parent.Y})
		cur = parent
	}
	return p
}

func (e *Engine) worldBounds(el *document.Element) geom.Rect {
	p := e.worldPos(el)
	return geom.Rect{X: p.X, Y: p.Y, Width: el.Width, Height: el.Height}
}

// FindFrameAtPoint returns the topmost frame whose world bounds contain the
// point, skipping excluded ids. Frames are compared by z-index, later store
// entries win ties. Returns "" when no frame matches.
func (e *Engine) FindFrameAtPoint(x, y float64, exclude []string) string {
	skip := make(map[string]bool, len(exclude))
	for _, id := range exclude {
		skip[id] = true
	}

	var best *document.Element
	for _, el := range e.elements {
		if !el.IsFrame() || skip[el.ID] {
			continue
		}
		if !e.worldBounds(el).Contains(x, y) {
			continue
		}
		if best == nil || el.ZIndex >= best.ZIndex {
			best = el
		}
	}
	if best == nil {
		return ""
	}
	return best.ID
}

// HitTest returns the topmost element of any type containing the world
// point, or "".
func (e *Engine) HitTest(x, y float64) string {
	var best *document.Element
	for _, el := range e.elements {
		if !e.worldBounds(el).Contains(x, y) {
			continue
		}
		if best == nil || el.ZIndex >= best.ZIndex {
			best = el
		}
	}
	if best == nil {
		return ""
	}
	return best.ID
}

// ElementsInRect returns the ids of elements whose world bounds intersect r.
func (e *Engine) ElementsInRect(r geom.Rect) []string {
	var ids []string
	for _, el := range e.elements {
		if e.worldBounds(el).Intersects(r) {
			ids = append(ids, el.ID)
		}
	}
	return ids
}

// descendants returns every id nested below id, depth first.
func (e *Engine) descendants(id string) []string {
	var out []string
	seen := map[string]bool{id: true}
	var walk func(string)
	walk = func(parentID string) {
		parent, ok := e.byID[parentID]
		if !ok {
			return
		}
		for _, childID := range parent.Children {
			if seen[childID] {
				continue
			}
			seen[childID] = true
			out = append(out, childID)
			walk(childID)
		}
	}
	walk(id)
	return out
}

// hasAncestorIn reports whether any ancestor of el is in set.
func (e *Engine) hasAncestorIn(el *document.Element, set map[string]bool) bool {
	cur := el
	for steps := 0; cur.ParentID != "" && steps < len(e.elements); steps++ {
		if set[cur.ParentID] {
			return true
		}
		parent, ok := e.byID[cur.ParentID]
		if !ok {
			return false
		}
		cur = parent
	}
	return false
}
