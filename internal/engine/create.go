package engine

import (
	"github.com/inamate/canvas/internal/document"
	"github.com/inamate/canvas/internal/geom"
)

// StartCreating begins drawing a new element of type t from start.
func (e *Engine) StartCreating(t document.ElementType, start geom.Point) {
	if !t.Valid() {
		e.resetGesture()
		return
	}
	e.setGesture(Creating{Start: start, Type: t, Rect: geom.Rect{X: start.X, Y: start.Y}})
}

// UpdateCreating updates the preview rectangle of the pending element.
func (e *Engine) UpdateCreating(p geom.Point) {
	c, ok := e.gesture.(Creating)
	if !ok {
		return
	}
	c.Rect = geom.RectFromPoints(c.Start, p)
	e.setGesture(c)
}

// FinishCreating commits the pending element spanning the anchor and end.
//
// A drag smaller than the click threshold on both axes creates nothing,
// except for text, which gets a minimum-size auto-width box. New text enters
// edit mode. The created element is selected on its own and the tool goes
// back to select. It returns the new id and whether an element was created.
func (e *Engine) FinishCreating(end geom.Point) (string, bool) {
	c, ok := e.gesture.(Creating)
	if !ok {
		e.resetGesture()
		return "", false
	}

	rect := geom.RectFromPoints(c.Start, end)
	isClick := rect.Width < e.cfg.ClickThreshold && rect.Height < e.cfg.ClickThreshold
	if isClick && c.Type != document.ElementTypeText {
		e.setGesture(Idle{})
		return "", false
	}

	tmpl := document.Element{
		Type:   c.Type,
		X:      rect.X,
		Y:      rect.Y,
		Width:  rect.Width,
		Height: rect.Height,
	}
	if c.Type == document.ElementTypeText {
		if isClick {
			tmpl.X, tmpl.Y = c.Start.X, c.Start.Y
			tmpl.Width = e.cfg.MinTextWidth
			tmpl.Height = e.cfg.MinTextHeight
		} else {
			tmpl.FixedWidth = true
			tmpl.Height = max(tmpl.Height, e.cfg.MinTextHeight)
		}
	}

	var id string
	e.Transaction(func() {
		e.gesture = Idle{}
		id = e.AddElement(tmpl)

		if c.Type != document.ElementTypeFrame {
			if frameID := e.FindFrameAtPoint(c.Start.X, c.Start.Y, []string{id}); frameID != "" {
				e.AddToFrame(id, frameID)
			}
		}

		e.selection = []string{id}
		if c.Type == document.ElementTypeText {
			e.editingID = id
		}
		e.tool = ToolSelect
		e.changed()
	})

	e.logger.Debug("created element", "id", id, "type", c.Type)
	return id, true
}
