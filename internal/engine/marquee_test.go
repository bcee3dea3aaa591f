package engine

import (
	"slices"
	"testing"

	"github.com/inamate/canvas/internal/document"
	"github.com/inamate/canvas/internal/geom"
)

func marquee(e *Engine, from, to geom.Point, additive bool) {
	e.StartMarqueeSelect(from, additive)
	e.UpdateMarqueeSelect(to)
	e.FinishMarqueeSelect()
}

func TestMarqueeSelectsIntersecting(t *testing.T) {
	e := newTestEngine(t)
	frame := add(e, document.ElementTypeFrame, 200, 200, 300, 300)
	nested := add(e, document.ElementTypeRectangle, 210, 210, 20, 20)
	root := add(e, document.ElementTypeRectangle, 0, 0, 20, 20)
	add(e, document.ElementTypeRectangle, 900, 900, 20, 20)
	e.AddToFrame(nested, frame)

	marquee(e, geom.Point{X: 250, Y: 250}, geom.Point{X: -5, Y: -5}, false)

	got := e.Selection()
	slices.Sort(got)
	want := []string{frame, nested, root}
	slices.Sort(want)
	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if e.Gesture().Kind() != KindIdle {
		t.Errorf("expected idle, got %s", e.Gesture().Kind())
	}
}

func TestMarqueeTooSmallKeepsSelection(t *testing.T) {
	e := newTestEngine(t)
	add(e, document.ElementTypeRectangle, 0, 0, 20, 20)
	b := add(e, document.ElementTypeRectangle, 100, 100, 20, 20)
	e.SelectElements([]string{b}, false)

	marquee(e, geom.Point{X: 1, Y: 1}, geom.Point{X: 4, Y: 5}, false)

	if got := e.Selection(); !slices.Equal(got, []string{b}) {
		t.Errorf("expected selection untouched, got %v", got)
	}
}

func TestMarqueeThinOnOneAxis(t *testing.T) {
	e := newTestEngine(t)
	a := add(e, document.ElementTypeRectangle, 0, 0, 20, 20)

	marquee(e, geom.Point{X: -10, Y: 5}, geom.Point{X: 30, Y: 7}, false)

	if got := e.Selection(); !slices.Equal(got, []string{a}) {
		t.Errorf("expected [%s], got %v", a, got)
	}
}

func TestMarqueeAdditive(t *testing.T) {
	e := newTestEngine(t)
	a := add(e, document.ElementTypeRectangle, 0, 0, 20, 20)
	b := add(e, document.ElementTypeRectangle, 100, 100, 20, 20)
	e.SelectElements([]string{b}, false)

	marquee(e, geom.Point{X: -10, Y: -10}, geom.Point{X: 30, Y: 30}, true)

	if got := e.Selection(); !slices.Equal(got, []string{b, a}) {
		t.Errorf("expected [%s %s], got %v", b, a, got)
	}
}

func TestMarqueeReplacesSelection(t *testing.T) {
	e := newTestEngine(t)
	a := add(e, document.ElementTypeRectangle, 0, 0, 20, 20)
	b := add(e, document.ElementTypeRectangle, 100, 100, 20, 20)
	e.SelectElements([]string{b}, false)

	marquee(e, geom.Point{X: -10, Y: -10}, geom.Point{X: 30, Y: 30}, false)

	if got := e.Selection(); !slices.Equal(got, []string{a}) {
		t.Errorf("expected [%s], got %v", a, got)
	}
}

func TestMarqueeRectIsNormalized(t *testing.T) {
	e := newTestEngine(t)
	e.StartMarqueeSelect(geom.Point{X: 50, Y: 50}, false)
	e.UpdateMarqueeSelect(geom.Point{X: 10, Y: 70})

	m, ok := e.Gesture().(MarqueeSelecting)
	if !ok {
		t.Fatalf("expected marquee gesture, got %s", e.Gesture().Kind())
	}
	if m.Rect != (geom.Rect{X: 10, Y: 50, Width: 40, Height: 20}) {
		t.Errorf("unexpected rect %+v", m.Rect)
	}
}
