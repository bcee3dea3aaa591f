package engine

import (
	"slices"
	"testing"

	"github.com/inamate/canvas/internal/document"
	"github.com/inamate/canvas/internal/geom"
)

func TestAddElementZIndexPolicy(t *testing.T) {
	e := newTestEngine(t)

	frame := add(e, document.ElementTypeFrame, 0, 0, 100, 100)
	rect := add(e, document.ElementTypeRectangle, 0, 0, 10, 10)
	text := add(e, document.ElementTypeText, 0, 0, 40, 24)
	image := add(e, document.ElementTypeImage, 0, 0, 10, 10)
	lower := add(e, document.ElementTypeFrame, 0, 0, 100, 100)

	tests := []struct {
		id   string
		want int
	}{
		{frame, 0},
		{rect, 1},
		{text, 1000},
		{image, 2},
		{lower, -1},
	}
	for _, tt := range tests {
		if got := mustElement(t, e, tt.id).ZIndex; got != tt.want {
			t.Errorf("element %s: zIndex = %d, want %d", tt.id, got, tt.want)
		}
	}
}

func TestAddElementAppliesDefaults(t *testing.T) {
	e := newTestEngine(t)
	id := e.AddElement(document.Element{
		ID:       "ignored",
		Type:     document.ElementTypeText,
		ParentID: "nowhere",
		Children: []string{"x"},
	})

	el := mustElement(t, e, id)
	if el.ID == "ignored" {
		t.Error("template id should be replaced")
	}
	if el.ParentID != "" || len(el.Children) != 0 {
		t.Error("template topology should be ignored")
	}
	if el.Style.FontSize != 16 {
		t.Errorf("expected default font size 16, got %v", el.Style.FontSize)
	}
}

func TestUpdateElementMergesPatch(t *testing.T) {
	e := newTestEngine(t)
	id := add(e, document.ElementTypeRectangle, 1, 2, 3, 4)

	width := 50.0
	content := "ignored by shapes"
	e.UpdateElement(id, ElementPatch{Width: &width, Content: &content})

	el := mustElement(t, e, id)
	if el.X != 1 || el.Y != 2 || el.Height != 4 {
		t.Errorf("unpatched fields changed: %+v", el)
	}
	if el.Width != 50 || el.Content != content {
		t.Errorf("patch not applied: %+v", el)
	}
}

func TestDeleteElementsCascades(t *testing.T) {
	e := newTestEngine(t)
	outer := add(e, document.ElementTypeFrame, 0, 0, 400, 400)
	inner := add(e, document.ElementTypeFrame, 10, 10, 200, 200)
	leaf := add(e, document.ElementTypeRectangle, 20, 20, 10, 10)
	sibling := add(e, document.ElementTypeRectangle, 300, 300, 10, 10)
	outside := add(e, document.ElementTypeRectangle, 900, 900, 10, 10)

	e.AddToFrame(inner, outer)
	e.AddToFrame(leaf, inner)
	e.AddToFrame(sibling, outer)
	e.SelectElements([]string{leaf, outside}, false)

	e.DeleteElements([]string{inner})

	for _, id := range []string{inner, leaf} {
		if _, ok := e.Element(id); ok {
			t.Errorf("element %s should be deleted", id)
		}
	}
	if got := mustElement(t, e, outer).Children; !slices.Equal(got, []string{sibling}) {
		t.Errorf("expected outer children [%s], got %v", sibling, got)
	}
	if got := e.Selection(); !slices.Equal(got, []string{outside}) {
		t.Errorf("expected selection pruned to [%s], got %v", outside, got)
	}

	e.DeleteElements([]string{outer})
	if e.Len() != 1 {
		t.Errorf("expected only the root rectangle to remain, got %d elements", e.Len())
	}
}

func TestDeleteElementsClearsEditing(t *testing.T) {
	e := newTestEngine(t)
	text := add(e, document.ElementTypeText, 0, 0, 40, 24)
	e.StartEditing(text)
	e.StartResizing(text, HandleE, geom.Point{})

	e.DeleteElements([]string{text})

	if e.EditingID() != "" {
		t.Error("editing id should be cleared")
	}
	if e.Gesture().Kind() != KindIdle {
		t.Error("resize of a deleted element should be cancelled")
	}
}

func TestDeleteUnknownIsNoOp(t *testing.T) {
	e := newTestEngine(t)
	add(e, document.ElementTypeRectangle, 0, 0, 1, 1)
	calls := 0
	e.Subscribe(func() { calls++ })

	e.DeleteElements([]string{"missing"})
	if calls != 0 || e.Len() != 1 {
		t.Errorf("unexpected change: calls=%d len=%d", calls, e.Len())
	}
}

func TestMoveElements(t *testing.T) {
	e := newTestEngine(t)
	a := add(e, document.ElementTypeRectangle, 0, 0, 10, 10)
	b := add(e, document.ElementTypeRectangle, 5, 5, 10, 10)

	e.MoveElements([]string{a, b, "missing"}, 3, -2)

	if el := mustElement(t, e, a); el.X != 3 || el.Y != -2 {
		t.Errorf("a at (%v,%v)", el.X, el.Y)
	}
	if el := mustElement(t, e, b); el.X != 8 || el.Y != 3 {
		t.Errorf("b at (%v,%v)", el.X, el.Y)
	}
}

func TestResizeElement(t *testing.T) {
	e := newTestEngine(t)
	id := add(e, document.ElementTypeImage, 0, 0, 10, 10)

	e.ResizeElement(id, geom.Rect{X: 1, Y: 2, Width: 30, Height: 40})

	el := mustElement(t, e, id)
	if el.X != 1 || el.Y != 2 || el.Width != 30 || el.Height != 40 {
		t.Errorf("unexpected bounds %+v", el)
	}
}

func TestElementsInPaintOrder(t *testing.T) {
	e := newTestEngine(t)
	a := add(e, document.ElementTypeRectangle, 0, 0, 10, 10)
	b := add(e, document.ElementTypeRectangle, 0, 0, 10, 10)
	c := add(e, document.ElementTypeRectangle, 0, 0, 10, 10)

	e.ReorderElements([]string{a}, ReorderFront)

	var got []string
	for _, el := range e.Elements() {
		got = append(got, el.ID)
	}
	if want := []string{b, c, a}; !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestAddElementAboveNegativeZIndices(t *testing.T) {
	e := newTestEngine(t)
	env := document.NewEmptyEnvelope()
	env.Elements = []document.Element{
		{ID: "old", Type: document.ElementTypeRectangle, Width: 10, Height: 10, ZIndex: -5},
	}
	e.ImportData(*env)

	id := add(e, document.ElementTypeRectangle, 0, 0, 10, 10)
	if z := mustElement(t, e, id).ZIndex; z != -4 {
		t.Errorf("expected z -4, got %d", z)
	}
}
