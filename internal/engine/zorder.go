package engine

import (
	"cmp"
	"slices"

	"github.com/inamate/canvas/internal/document"
)

// ReorderAction is a z-order change within a sibling group.
type ReorderAction string

const (
	ReorderFront    ReorderAction = "front"
	ReorderBack     ReorderAction = "back"
	ReorderForward  ReorderAction = "forward"
	ReorderBackward ReorderAction = "backward"
)

// nextZIndex applies the insertion policy: frames go beneath everything,
// text gets the fixed text tier, everything else lands above the highest
// non-text element.
func (e *Engine) nextZIndex(t document.ElementType) int {
	switch t {
	case document.ElementTypeFrame:
		if len(e.elements) == 0 {
			return 0
		}
		lowest := e.elements[0].ZIndex
		for _, el := range e.elements[1:] {
			lowest = min(lowest, el.ZIndex)
		}
		return lowest - 1
	case document.ElementTypeText:
		return e.cfg.TextZIndex
	default:
		// With no non-text element yet the first one lands at 1.
		highest, found := 0, false
		for _, el := range e.elements {
			if el.Type == document.ElementTypeText {
				continue
			}
			if !found || el.ZIndex > highest {
				highest, found = el.ZIndex, true
			}
		}
		return highest + 1
	}
}

// siblings returns the elements sharing parentID, sorted by z-index. Ties
// keep store order.
func (e *Engine) siblings(parentID string) []*document.Element {
	var group []*document.Element
	for _, el := range e.elements {
		if el.ParentID == parentID {
			group = append(group, el)
		}
	}
	slices.SortStableFunc(group, byZIndex)
	return group
}

func byZIndex(a, b *document.Element) int {
	return cmp.Compare(a.ZIndex, b.ZIndex)
}

// ReorderElements changes stacking order inside each affected sibling
// group. Front and back move the whole set while keeping its relative order;
// forward and backward act on the first id only.
func (e *Engine) ReorderElements(ids []string, action ReorderAction) {
	switch action {
	case ReorderForward, ReorderBackward:
		for _, id := range ids {
			if _, ok := e.byID[id]; ok {
				e.step(id, action == ReorderForward)
				return
			}
		}
		return
	case ReorderFront, ReorderBack:
	default:
		return
	}

	groups := make(map[string][]*document.Element)
	var order []string
	seen := make(map[string]bool)
	for _, id := range ids {
		el, ok := e.byID[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		if _, ok := groups[el.ParentID]; !ok {
			order = append(order, el.ParentID)
		}
		groups[el.ParentID] = append(groups[el.ParentID], el)
	}
	if len(order) == 0 {
		return
	}

	for _, parentID := range order {
		set := groups[parentID]
		slices.SortStableFunc(set, byZIndex)
		group := e.siblings(parentID)

		if action == ReorderFront {
			top := group[len(group)-1].ZIndex
			for i, el := range set {
				el.ZIndex = top + 1 + i
			}
		} else {
			bottom := group[0].ZIndex
			for i, el := range set {
				el.ZIndex = bottom - len(set) + i
			}
		}
	}
	e.changed()
}

// step swaps z-index with the immediate neighbour in the sibling group.
func (e *Engine) step(id string, up bool) {
	el := e.byID[id]
	group := e.siblings(el.ParentID)
	idx := slices.Index(group, el)

	next := idx - 1
	if up {
		next = idx + 1
	}
	if next < 0 || next >= len(group) {
		return
	}

	neighbour := group[next]
	if neighbour.ZIndex == el.ZIndex {
		// Equal keys: nudge past the neighbour instead of a no-op swap.
		if up {
			el.ZIndex++
		} else {
			el.ZIndex--
		}
	} else {
		el.ZIndex, neighbour.ZIndex = neighbour.ZIndex, el.ZIndex
	}
	e.changed()
}
