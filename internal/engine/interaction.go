package engine

import (
	"encoding/json"
	"slices"

	"github.com/inamate/canvas/internal/document"
	"github.com/inamate/canvas/internal/geom"
)

// Tool is the active editor tool.
type Tool string

const (
	ToolSelect    Tool = "select"
	ToolHand      Tool = "hand"
	ToolRectangle Tool = "rectangle"
	ToolText      Tool = "text"
	ToolImage     Tool = "image"
	ToolFrame     Tool = "frame"
)

// Valid reports whether t is a known tool.
func (t Tool) Valid() bool {
	switch t {
	case ToolSelect, ToolHand, ToolRectangle, ToolText, ToolImage, ToolFrame:
		return true
	}
	return false
}

// GestureKind tags the active gesture.
type GestureKind string

const (
	KindIdle             GestureKind = "idle"
	KindPanning          GestureKind = "panning"
	KindDragging         GestureKind = "dragging"
	KindResizing         GestureKind = "resizing"
	KindMarqueeSelecting GestureKind = "marqueeSelecting"
	KindCreating         GestureKind = "creating"
)

// Gesture is the sum of all interaction states. Exactly one is active.
type Gesture interface {
	Kind() GestureKind
	clone() Gesture
}

type Idle struct{}

// Panning tracks a viewport drag in screen coordinates.
type Panning struct {
	Start geom.Point `json:"startPoint"`
	Last  geom.Point `json:"lastPoint"`
}

type Dragging struct {
	Start geom.Point `json:"startPoint"`
	IDs   []string   `json:"ids"`
}

// Resizing keeps a snapshot of the element taken when the gesture started,
// so proportional text scaling is computed from stable original values.
type Resizing struct {
	Start    geom.Point       `json:"startPoint"`
	ID       string           `json:"id"`
	Handle   Handle           `json:"handle"`
	Original document.Element `json:"original"`
}

type MarqueeSelecting struct {
	Start    geom.Point `json:"startPoint"`
	Rect     geom.Rect  `json:"marqueeRect"`
	Additive bool       `json:"additive"`
	Base     []string   `json:"-"`
}

type Creating struct {
	Start geom.Point           `json:"startPoint"`
	Type  document.ElementType `json:"elementType"`
	Rect  geom.Rect            `json:"previewRect"`
}

func (Idle) Kind() GestureKind             { return KindIdle }
func (Panning) Kind() GestureKind          { return KindPanning }
func (Dragging) Kind() GestureKind         { return KindDragging }
func (Resizing) Kind() GestureKind         { return KindResizing }
func (MarqueeSelecting) Kind() GestureKind { return KindMarqueeSelecting }
func (Creating) Kind() GestureKind         { return KindCreating }

func (g Idle) clone() Gesture    { return g }
func (g Panning) clone() Gesture { return g }
func (g Dragging) clone() Gesture {
	g.IDs = slices.Clone(g.IDs)
	return g
}
func (g Resizing) clone() Gesture {
	g.Original = g.Original.Clone()
	return g
}
func (g MarqueeSelecting) clone() Gesture {
	g.Base = slices.Clone(g.Base)
	return g
}
func (g Creating) clone() Gesture { return g }

// Handle identifies a resize handle.
type Handle string

const (
	HandleN  Handle = "n"
	HandleS  Handle = "s"
	HandleE  Handle = "e"
	HandleW  Handle = "w"
	HandleNE Handle = "ne"
	HandleNW Handle = "nw"
	HandleSE Handle = "se"
	HandleSW Handle = "sw"
)

// IsCorner reports whether h is a corner handle.
func (h Handle) IsCorner() bool {
	return len(h) == 2
}

// Interaction wraps a gesture for serialization as a tagged record.
type Interaction struct {
	Gesture
}

// MarshalJSON flattens the gesture fields next to a "kind" tag.
func (i Interaction) MarshalJSON() ([]byte, error) {
	g := i.Gesture
	if g == nil {
		g = Idle{}
	}
	payload, err := json.Marshal(g)
	if err != nil {
		return nil, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, err
	}
	kind, _ := json.Marshal(g.Kind())
	fields["kind"] = kind
	return json.Marshal(fields)
}

// Gesture returns the active gesture.
func (e *Engine) Gesture() Gesture {
	return e.gesture.clone()
}

// setGesture switches gestures. Leaving a drag drops its hover frame and
// snap guides.
func (e *Engine) setGesture(g Gesture) {
	if _, dragging := g.(Dragging); !dragging {
		e.hoverFrameID = ""
		e.guides = nil
	}
	e.gesture = g
	e.changed()
}

// resetGesture returns to idle, notifying only if something was active.
func (e *Engine) resetGesture() {
	if e.gesture.Kind() == KindIdle {
		return
	}
	e.setGesture(Idle{})
}

// --- Panning ---

// StartPanning begins a viewport drag at a screen point.
func (e *Engine) StartPanning(screen geom.Point) {
	e.setGesture(Panning{Start: screen, Last: screen})
}

// UpdatePanning pans by the screen distance moved since the last update.
func (e *Engine) UpdatePanning(screen geom.Point) {
	p, ok := e.gesture.(Panning)
	if !ok {
		return
	}
	delta := screen.Sub(p.Last)
	p.Last = screen
	e.Transaction(func() {
		e.gesture = p
		e.Pan(delta.X, delta.Y)
	})
}

// StopPanning ends a viewport drag.
func (e *Engine) StopPanning() {
	e.resetGesture()
}

// --- Text editing ---

// EditingID returns the id of the text element being edited, if any.
func (e *Engine) EditingID() string {
	return e.editingID
}

// StartEditing enters content editing for a text element.
func (e *Engine) StartEditing(id string) {
	el, ok := e.byID[id]
	if !ok || el.Type != document.ElementTypeText || e.editingID == id {
		return
	}
	e.editingID = id
	e.changed()
}

// StopEditing leaves content editing.
func (e *Engine) StopEditing() {
	if e.editingID == "" {
		return
	}
	e.editingID = ""
	e.changed()
}
