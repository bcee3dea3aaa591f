package engine

import (
	"math"

	"github.com/inamate/canvas/internal/document"
	"github.com/inamate/canvas/internal/geom"
)

// ViewportPatch carries the viewport fields to merge. Nil fields are kept.
type ViewportPatch struct {
	X    *float64 `json:"x,omitempty"`
	Y    *float64 `json:"y,omitempty"`
	Zoom *float64 `json:"zoom,omitempty"`
}

// Viewport returns the current viewport.
func (e *Engine) Viewport() document.Viewport {
	return e.viewport
}

// SetViewport merges the supplied fields. Zoom is clamped.
func (e *Engine) SetViewport(p ViewportPatch) {
	next := e.viewport
	if p.X != nil {
		next.X = *p.X
	}
	if p.Y != nil {
		next.Y = *p.Y
	}
	if p.Zoom != nil {
		next.Zoom = e.clampZoom(*p.Zoom)
	}
	if next == e.viewport {
		return
	}
	e.viewport = next
	e.changed()
}

// Pan moves the viewport offset by a screen-space delta.
func (e *Engine) Pan(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	e.viewport.X += dx
	e.viewport.Y += dy
	e.changed()
}

// ZoomTo sets the zoom level. When center is given, in screen coordinates,
// the offset is recomputed so the world point under center stays put.
func (e *Engine) ZoomTo(zoom float64, center *geom.Point) {
	if math.IsNaN(zoom) || zoom <= 0 {
		return
	}
	newZoom := e.clampZoom(zoom)
	oldZoom := e.viewport.Zoom
	if newZoom == oldZoom {
		return
	}

	if center != nil {
		ratio := newZoom / oldZoom
		e.viewport.X = center.X - (center.X-e.viewport.X)*ratio
		e.viewport.Y = center.Y - (center.Y-e.viewport.Y)*ratio
	}
	e.viewport.Zoom = newZoom
	e.changed()
}

// ZoomBy multiplies the zoom level by factor, anchored like ZoomTo.
func (e *Engine) ZoomBy(factor float64, center *geom.Point) {
	e.ZoomTo(e.viewport.Zoom*factor, center)
}

// ResetViewport restores offset 0 and zoom 1.
func (e *Engine) ResetViewport() {
	if e.viewport == document.DefaultViewport() {
		return
	}
	e.viewport = document.DefaultViewport()
	e.changed()
}

// ScreenToWorld maps a point relative to the canvas origin into world space.
func (e *Engine) ScreenToWorld(screen geom.Point) geom.Point {
	return ScreenToWorld(e.viewport, screen)
}

// WorldToScreen maps a world point to a point relative to the canvas origin.
func (e *Engine) WorldToScreen(world geom.Point) geom.Point {
	return WorldToScreen(e.viewport, world)
}

// ScreenToWorld applies world = (screen - offset) / zoom.
func ScreenToWorld(v document.Viewport, screen geom.Point) geom.Point {
	return geom.Point{
		X: (screen.X - v.X) / v.Zoom,
		Y: (screen.Y - v.Y) / v.Zoom,
	}
}

// WorldToScreen applies screen = world * zoom + offset.
func WorldToScreen(v document.Viewport, world geom.Point) geom.Point {
	return geom.Point{
		X: world.X*v.Zoom + v.X,
		Y: world.Y*v.Zoom + v.Y,
	}
}

func (e *Engine) clampZoom(z float64) float64 {
	return min(max(z, e.cfg.MinZoom), e.cfg.MaxZoom)
}
