package engine

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/inamate/canvas/internal/document"
	"github.com/inamate/canvas/internal/geom"
)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	n := 0
	gen := WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("el%d", n)
	})
	return New(append([]Option{gen}, opts...)...)
}

func add(e *Engine, t document.ElementType, x, y, w, h float64) string {
	return e.AddElement(document.Element{Type: t, X: x, Y: y, Width: w, Height: h})
}

func mustElement(t *testing.T, e *Engine, id string) document.Element {
	t.Helper()
	el, ok := e.Element(id)
	if !ok {
		t.Fatalf("element %s not found", id)
	}
	return el
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func approxPoint(a, b geom.Point) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y)
}

func TestNew(t *testing.T) {
	e := New()
	if e.Len() != 0 {
		t.Errorf("expected empty engine, got %d elements", e.Len())
	}
	if e.Viewport() != document.DefaultViewport() {
		t.Errorf("expected default viewport, got %+v", e.Viewport())
	}
	if e.Gesture().Kind() != KindIdle {
		t.Errorf("expected idle gesture, got %s", e.Gesture().Kind())
	}
	if e.Tool() != ToolSelect {
		t.Errorf("expected select tool, got %s", e.Tool())
	}
}

func TestNewAssignsTypeIDs(t *testing.T) {
	e := New()
	id := add(e, document.ElementTypeRectangle, 0, 0, 10, 10)
	if len(id) < 4 || id[:3] != "el_" {
		t.Errorf("expected el_ prefixed id, got %q", id)
	}
}

func TestSubscribeAndUnsubscribe(t *testing.T) {
	e := newTestEngine(t)

	calls := 0
	unsubscribe := e.Subscribe(func() { calls++ })

	e.Pan(10, 0)
	if calls != 1 {
		t.Fatalf("expected 1 notification, got %d", calls)
	}

	unsubscribe()
	e.Pan(10, 0)
	if calls != 1 {
		t.Errorf("unsubscribed listener was notified, calls = %d", calls)
	}
}

func TestNoOpDoesNotNotify(t *testing.T) {
	e := newTestEngine(t)
	calls := 0
	e.Subscribe(func() { calls++ })

	e.UpdateElement("missing", ElementPatch{})
	e.RemoveFromFrame("missing")
	e.FinishCreating(geom.Point{})
	e.StopDragging()
	e.Pan(0, 0)

	if calls != 0 {
		t.Errorf("expected no notifications, got %d", calls)
	}
}

func TestTransactionBatchesNotifications(t *testing.T) {
	e := newTestEngine(t)
	calls := 0
	e.Subscribe(func() { calls++ })

	e.Transaction(func() {
		e.Pan(1, 1)
		e.Transaction(func() {
			add(e, document.ElementTypeRectangle, 0, 0, 10, 10)
			e.ZoomTo(2, nil)
		})
		if calls != 0 {
			t.Errorf("listener fired inside transaction")
		}
	})

	if calls != 1 {
		t.Errorf("expected exactly 1 notification, got %d", calls)
	}
}

func TestTransactionWithoutChangesIsSilent(t *testing.T) {
	e := newTestEngine(t)
	calls := 0
	e.Subscribe(func() { calls++ })

	e.Transaction(func() {})

	if calls != 0 {
		t.Errorf("expected no notification, got %d", calls)
	}
}

func TestTransactionNotifiesOnPanic(t *testing.T) {
	e := newTestEngine(t)
	calls := 0
	e.Subscribe(func() { calls++ })

	func() {
		defer func() { _ = recover() }()
		e.Transaction(func() {
			e.Pan(5, 5)
			panic("boom")
		})
	}()

	if calls != 1 {
		t.Errorf("expected notification after panic, got %d", calls)
	}

	e.Pan(1, 1)
	if calls != 2 {
		t.Errorf("batch depth not restored after panic, calls = %d", calls)
	}
}

func TestStateIsASnapshot(t *testing.T) {
	e := newTestEngine(t)
	frame := add(e, document.ElementTypeFrame, 0, 0, 100, 100)
	rect := add(e, document.ElementTypeRectangle, 10, 10, 10, 10)
	e.AddToFrame(rect, frame)
	e.SelectElements([]string{rect}, false)

	s := e.State()
	s.Elements[0].Children[0] = "tampered"
	s.Elements[1].X = 999
	s.SelectedIDs[0] = "tampered"

	if mustElement(t, e, frame).Children[0] != rect {
		t.Error("snapshot shares children with engine")
	}
	if mustElement(t, e, rect).X == 999 {
		t.Error("snapshot shares elements with engine")
	}
	if e.Selection()[0] != rect {
		t.Error("snapshot shares selection with engine")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	e := newTestEngine(t)
	frame := add(e, document.ElementTypeFrame, 0, 0, 200, 200)
	rect := add(e, document.ElementTypeRectangle, 20, 20, 10, 10)
	e.AddToFrame(rect, frame)
	e.ZoomTo(2, nil)

	env := e.ExportData()
	if env.Version != document.CurrentVersion {
		t.Errorf("expected version %d, got %d", document.CurrentVersion, env.Version)
	}
	if err := document.Validate(&env); err != nil {
		t.Fatalf("exported envelope invalid: %v", err)
	}

	other := newTestEngine(t)
	other.SelectAll()
	other.StartPanning(geom.Point{})
	other.ImportData(env)

	if other.Len() != 2 {
		t.Fatalf("expected 2 elements, got %d", other.Len())
	}
	if other.Viewport().Zoom != 2 {
		t.Errorf("expected zoom 2, got %v", other.Viewport().Zoom)
	}
	if got := mustElement(t, other, rect).ParentID; got != frame {
		t.Errorf("expected parent %s, got %s", frame, got)
	}
	if len(other.Selection()) != 0 {
		t.Error("import should reset selection")
	}
	if other.Gesture().Kind() != KindIdle {
		t.Error("import should reset interaction")
	}
}

func TestImportSkipsDuplicatesAndFixesZoom(t *testing.T) {
	e := newTestEngine(t)
	e.ImportData(document.Envelope{
		Version:  1,
		Viewport: document.Viewport{Zoom: 0},
		Elements: []document.Element{
			{ID: "a", Type: document.ElementTypeRectangle},
			{ID: "a", Type: document.ElementTypeText},
			{ID: "", Type: document.ElementTypeText},
		},
	})

	if e.Len() != 1 {
		t.Errorf("expected 1 element, got %d", e.Len())
	}
	if e.Viewport().Zoom != 1 {
		t.Errorf("expected zoom 1, got %v", e.Viewport().Zoom)
	}
}

func TestStateJSON(t *testing.T) {
	e := newTestEngine(t)
	e.StartMarqueeSelect(geom.Point{X: 1, Y: 2}, false)

	data, err := json.Marshal(e.State())
	if err != nil {
		t.Fatalf("marshal state: %v", err)
	}

	var decoded struct {
		Interaction struct {
			Kind       string    `json:"kind"`
			StartPoint geom.Point `json:"startPoint"`
		} `json:"interaction"`
		SelectedIDs []string `json:"selectedIds"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal state: %v", err)
	}
	if decoded.Interaction.Kind != string(KindMarqueeSelecting) {
		t.Errorf("expected kind %s, got %s", KindMarqueeSelecting, decoded.Interaction.Kind)
	}
	if decoded.Interaction.StartPoint != (geom.Point{X: 1, Y: 2}) {
		t.Errorf("unexpected start point %+v", decoded.Interaction.StartPoint)
	}
	if decoded.SelectedIDs == nil {
		t.Error("selectedIds should serialize as an empty array")
	}
}

func TestSetTool(t *testing.T) {
	e := newTestEngine(t)
	e.SetTool(ToolFrame)
	if e.Tool() != ToolFrame {
		t.Errorf("expected frame tool, got %s", e.Tool())
	}
	e.SetTool(Tool("lasso"))
	if e.Tool() != ToolFrame {
		t.Errorf("unknown tool should be ignored, got %s", e.Tool())
	}
}

func TestWithConfigFillsDefaults(t *testing.T) {
	e := New(WithConfig(Config{MaxZoom: 4}))
	cfg := e.Config()
	if cfg.MinZoom != 0.1 {
		t.Errorf("expected default min zoom, got %v", cfg.MinZoom)
	}
	if cfg.MaxZoom != 4 {
		t.Errorf("expected max zoom 4, got %v", cfg.MaxZoom)
	}
	if cfg.TextZIndex != 1000 {
		t.Errorf("expected default text tier, got %d", cfg.TextZIndex)
	}
}
