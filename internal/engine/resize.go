package engine

import (
	"math"

	"github.com/inamate/canvas/internal/document"
	"github.com/inamate/canvas/internal/geom"
)

// ResizeBounds carries the bounds reported by a resize handle. Nil fields
// are left unchanged.
type ResizeBounds struct {
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
}

// StartResizing begins a resize of id from handle and snapshots the element.
func (e *Engine) StartResizing(id string, handle Handle, start geom.Point) {
	el, ok := e.byID[id]
	if !ok {
		e.resetGesture()
		return
	}
	e.setGesture(Resizing{Start: start, ID: id, Handle: handle, Original: el.Clone()})
}

// StopResizing ends the resize gesture.
func (e *Engine) StopResizing() {
	if _, ok := e.gesture.(Resizing); !ok {
		e.resetGesture()
		return
	}
	e.setGesture(Idle{})
}

// HandleResize applies new bounds to an element.
//
// Shapes, images and frames take every supplied field. Text depends on the
// handle: a corner scales the font with the width, relative to original;
// an edge changes only the width (and x, for left-side handles) and pins
// the width. Text height is left to the host's content reflow.
//
// When original is nil the snapshot of the active resize gesture is used,
// falling back to the element's current values.
func (e *Engine) HandleResize(id string, b ResizeBounds, corner bool, original *document.Element) {
	el, ok := e.byID[id]
	if !ok {
		return
	}

	if el.Type != document.ElementTypeText {
		applyBounds(el, b)
		e.changed()
		return
	}

	if !corner {
		if b.Width != nil {
			el.Width = *b.Width
		}
		if b.X != nil {
			el.X = *b.X
		}
		el.FixedWidth = true
		e.changed()
		return
	}

	orig := e.resizeOrigin(el, original)
	if b.Width != nil {
		if orig.Width > 0 {
			fontSize := orig.Style.FontSize
			if fontSize <= 0 {
				fontSize = document.DefaultStyle(document.ElementTypeText).FontSize
			}
			scaled := math.Round(fontSize * *b.Width / orig.Width)
			el.Style.FontSize = max(scaled, e.cfg.MinFontSize)
		}
		el.Width = *b.Width
	}
	if b.X != nil {
		el.X = *b.X
	}
	if b.Y != nil {
		el.Y = *b.Y
	}
	e.changed()
}

func (e *Engine) resizeOrigin(el, original *document.Element) document.Element {
	if original != nil {
		return *original
	}
	if r, ok := e.gesture.(Resizing); ok && r.ID == el.ID {
		return r.Original
	}
	return *el
}

func applyBounds(el *document.Element, b ResizeBounds) {
	if b.X != nil {
		el.X = *b.X
	}
	if b.Y != nil {
		el.Y = *b.Y
	}
	if b.Width != nil {
		el.Width = *b.Width
	}
	if b.Height != nil {
		el.Height = *b.Height
	}
}
