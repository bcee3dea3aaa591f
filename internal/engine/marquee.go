package engine

import (
	"slices"

	"github.com/inamate/canvas/internal/geom"
)

// StartMarqueeSelect begins a rubber-band selection. With additive set the
// hits are added to the selection held at start.
func (e *Engine) StartMarqueeSelect(start geom.Point, additive bool) {
	m := MarqueeSelecting{
		Start:    start,
		Rect:     geom.Rect{X: start.X, Y: start.Y},
		Additive: additive,
	}
	if additive {
		m.Base = slices.Clone(e.selection)
	}
	e.setGesture(m)
}

// UpdateMarqueeSelect stretches the marquee to p.
func (e *Engine) UpdateMarqueeSelect(p geom.Point) {
	m, ok := e.gesture.(MarqueeSelecting)
	if !ok {
		return
	}
	m.Rect = geom.RectFromPoints(m.Start, p)
	e.setGesture(m)
}

// FinishMarqueeSelect selects every element whose world bounds intersect the
// marquee. Marquees not larger than the minimum size on either axis leave
// the selection untouched.
func (e *Engine) FinishMarqueeSelect() {
	m, ok := e.gesture.(MarqueeSelecting)
	if !ok {
		e.resetGesture()
		return
	}

	e.Transaction(func() {
		e.setGesture(Idle{})
		if m.Rect.Width <= e.cfg.MarqueeMinSize && m.Rect.Height <= e.cfg.MarqueeMinSize {
			return
		}

		hits := e.ElementsInRect(m.Rect)
		if m.Additive {
			next := slices.Clone(m.Base)
			for _, id := range hits {
				if _, ok := e.byID[id]; ok && !slices.Contains(next, id) {
					next = append(next, id)
				}
			}
			next = slices.DeleteFunc(next, func(id string) bool {
				_, ok := e.byID[id]
				return !ok
			})
			e.setSelection(next)
			return
		}
		e.setSelection(hits)
	})
}
