package engine

import (
	"slices"
	"testing"

	"github.com/inamate/canvas/internal/document"
	"github.com/inamate/canvas/internal/geom"
)

func worldPos(t *testing.T, e *Engine, id string) geom.Point {
	t.Helper()
	p, ok := e.ElementWorldPos(id)
	if !ok {
		t.Fatalf("element %s not found", id)
	}
	return p
}

func TestWorldPositionNested(t *testing.T) {
	e := newTestEngine(t)
	outer := add(e, document.ElementTypeFrame, 100, 100, 500, 500)
	inner := add(e, document.ElementTypeFrame, 150, 150, 200, 200)
	leaf := add(e, document.ElementTypeRectangle, 170, 180, 10, 10)

	e.AddToFrame(inner, outer)
	e.AddToFrame(leaf, inner)

	if el := mustElement(t, e, leaf); el.X != 20 || el.Y != 30 {
		t.Errorf("expected local (20,30), got (%v,%v)", el.X, el.Y)
	}
	if p := worldPos(t, e, leaf); p != (geom.Point{X: 170, Y: 180}) {
		t.Errorf("expected world (170,180), got %+v", p)
	}

	e.MoveElements([]string{outer}, 10, 10)
	if p := worldPos(t, e, leaf); p != (geom.Point{X: 180, Y: 190}) {
		t.Errorf("leaf should follow its ancestors, got %+v", p)
	}

	b, _ := e.ElementWorldBounds(leaf)
	if b != (geom.Rect{X: 180, Y: 190, Width: 10, Height: 10}) {
		t.Errorf("unexpected world bounds %+v", b)
	}
}

func TestAddRemoveFrameRoundTrip(t *testing.T) {
	e := newTestEngine(t)
	frame := add(e, document.ElementTypeFrame, 40, 60, 300, 300)
	rect := add(e, document.ElementTypeRectangle, 75, 95, 10, 10)

	e.AddToFrame(rect, frame)
	if el := mustElement(t, e, rect); el.ParentID != frame || el.X != 35 || el.Y != 35 {
		t.Errorf("after AddToFrame: %+v", el)
	}
	if got := mustElement(t, e, frame).Children; !slices.Equal(got, []string{rect}) {
		t.Errorf("expected frame children [%s], got %v", rect, got)
	}

	e.RemoveFromFrame(rect)
	el := mustElement(t, e, rect)
	if el.ParentID != "" || el.X != 75 || el.Y != 95 {
		t.Errorf("after RemoveFromFrame: %+v", el)
	}
	if got := mustElement(t, e, frame).Children; len(got) != 0 {
		t.Errorf("expected no children, got %v", got)
	}
}

func TestMoveBetweenFramesKeepsSingleOwner(t *testing.T) {
	e := newTestEngine(t)
	a := add(e, document.ElementTypeFrame, 0, 0, 100, 100)
	b := add(e, document.ElementTypeFrame, 200, 0, 100, 100)
	rect := add(e, document.ElementTypeRectangle, 10, 10, 10, 10)

	e.AddToFrame(rect, a)
	e.AddToFrame(rect, b)

	if got := mustElement(t, e, a).Children; slices.Contains(got, rect) {
		t.Errorf("rect still listed in previous frame: %v", got)
	}
	if got := mustElement(t, e, b).Children; !slices.Equal(got, []string{rect}) {
		t.Errorf("expected rect in new frame, got %v", got)
	}
	if p := worldPos(t, e, rect); p != (geom.Point{X: 10, Y: 10}) {
		t.Errorf("world position changed to %+v", p)
	}

	env := e.ExportData()
	if err := document.CheckTopology(env.Elements); err != nil {
		t.Errorf("topology broken: %v", err)
	}
}

func TestAddToFrameRejections(t *testing.T) {
	e := newTestEngine(t)
	outer := add(e, document.ElementTypeFrame, 0, 0, 400, 400)
	inner := add(e, document.ElementTypeFrame, 10, 10, 100, 100)
	rect := add(e, document.ElementTypeRectangle, 0, 0, 10, 10)
	other := add(e, document.ElementTypeRectangle, 0, 0, 10, 10)
	e.AddToFrame(inner, outer)

	calls := 0
	e.Subscribe(func() { calls++ })

	e.AddToFrame(outer, inner)
	e.AddToFrame(outer, outer)
	e.AddToFrame(other, rect)
	e.AddToFrame(inner, outer)
	e.AddToFrame("missing", outer)

	if calls != 0 {
		t.Errorf("expected every call to be a no-op, got %d notifications", calls)
	}
	if mustElement(t, e, outer).ParentID != "" {
		t.Error("frame was nested inside its own descendant")
	}
}

func TestRemoveFromFrameAtRoot(t *testing.T) {
	e := newTestEngine(t)
	rect := add(e, document.ElementTypeRectangle, 5, 5, 10, 10)
	calls := 0
	e.Subscribe(func() { calls++ })

	e.RemoveFromFrame(rect)
	if calls != 0 {
		t.Error("removing a root element should be a no-op")
	}
}

func TestFindFrameAtPoint(t *testing.T) {
	e := newTestEngine(t)
	back := add(e, document.ElementTypeFrame, 0, 0, 300, 300)
	front := add(e, document.ElementTypeFrame, 100, 100, 100, 100)
	add(e, document.ElementTypeRectangle, 0, 0, 500, 500)
	e.UpdateElement(front, ElementPatch{ZIndex: ptr(5)})

	tests := []struct {
		name    string
		x, y    float64
		exclude []string
		want    string
	}{
		{"topmost wins", 150, 150, nil, front},
		{"edge inclusive", 200, 200, nil, front},
		{"only back", 50, 50, nil, back},
		{"excluded", 150, 150, []string{front}, back},
		{"miss", 400, 400, nil, ""},
	}
	for _, tt := range tests {
		if got := e.FindFrameAtPoint(tt.x, tt.y, tt.exclude); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestHitTest(t *testing.T) {
	e := newTestEngine(t)
	frame := add(e, document.ElementTypeFrame, 0, 0, 200, 200)
	rect := add(e, document.ElementTypeRectangle, 10, 10, 50, 50)

	if got := e.HitTest(20, 20); got != rect {
		t.Errorf("expected rect, got %q", got)
	}
	if got := e.HitTest(150, 150); got != frame {
		t.Errorf("expected frame, got %q", got)
	}
	if got := e.HitTest(-1, -1); got != "" {
		t.Errorf("expected miss, got %q", got)
	}
}
