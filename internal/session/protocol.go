package session

import (
	"encoding/json"

	"github.com/inamate/canvas/internal/document"
	"github.com/inamate/canvas/internal/engine"
	"github.com/inamate/canvas/internal/geom"
)

type Message struct {
	Type     string          `json:"type"`
	BoardID  string          `json:"boardId,omitempty"`
	ClientID string          `json:"clientId,omitempty"`
	Seq      int64           `json:"seq,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

const (
	// Client to server
	TypeCommand = "command"
	TypeSave    = "save"

	// Server to client
	TypeWelcome = "welcome"
	TypeState   = "state"
	TypeSaved   = "saved"
	TypeError   = "error"
)

type WelcomePayload struct {
	BoardID  string `json:"boardId"`
	ClientID string `json:"clientId"`
}

type SavedPayload struct {
	Version int `json:"version"`
}

type ErrorPayload struct {
	CommandID string `json:"commandId,omitempty"`
	Message   string `json:"message"`
}

// --- Commands ---

// Command is one editor call sent by the host. Only the fields used by
// Type are read.
type Command struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"type"`

	IDs       []string `json:"ids,omitempty"`
	ElementID string   `json:"elementId,omitempty"`
	FrameID   string   `json:"frameId,omitempty"`

	Point  *geom.Point `json:"point,omitempty"`
	Delta  *geom.Point `json:"delta,omitempty"`
	Mouse  *geom.Point `json:"mouse,omitempty"`
	Center *geom.Point `json:"center,omitempty"`
	Rect   *geom.Rect  `json:"rect,omitempty"`

	Zoom     float64 `json:"zoom,omitempty"`
	Factor   float64 `json:"factor,omitempty"`
	Additive bool    `json:"additive,omitempty"`
	Snap     bool    `json:"snap,omitempty"`
	Corner   *bool   `json:"corner,omitempty"`

	Tool        engine.Tool          `json:"tool,omitempty"`
	ElementType document.ElementType `json:"elementType,omitempty"`
	Handle      engine.Handle        `json:"handle,omitempty"`
	Action      engine.ReorderAction `json:"action,omitempty"`

	Element  *document.Element     `json:"element,omitempty"`
	Patch    *engine.ElementPatch  `json:"patch,omitempty"`
	Bounds   *engine.ResizeBounds  `json:"bounds,omitempty"`
	Viewport *engine.ViewportPatch `json:"viewport,omitempty"`
	Document *document.Envelope    `json:"document,omitempty"`
}

const (
	CmdViewportSet    = "viewport.set"
	CmdViewportPan    = "viewport.pan"
	CmdViewportZoom   = "viewport.zoom"
	CmdViewportZoomBy = "viewport.zoomBy"
	CmdViewportReset  = "viewport.reset"

	CmdToolSet = "tool.set"

	CmdElementAdd     = "element.add"
	CmdElementUpdate  = "element.update"
	CmdElementDelete  = "element.delete"
	CmdElementMove    = "element.move"
	CmdElementResize  = "element.resize"
	CmdElementReorder = "element.reorder"

	CmdFrameAdd    = "frame.add"
	CmdFrameRemove = "frame.remove"

	CmdSelectionSet    = "selection.set"
	CmdSelectionToggle = "selection.toggle"
	CmdSelectionAll    = "selection.all"
	CmdSelectionClear  = "selection.clear"

	CmdPanStart  = "pan.start"
	CmdPanUpdate = "pan.update"
	CmdPanStop   = "pan.stop"

	CmdDragStart  = "drag.start"
	CmdDragUpdate = "drag.update"
	CmdDragStop   = "drag.stop"

	CmdResizeStart  = "resize.start"
	CmdResizeUpdate = "resize.update"
	CmdResizeStop   = "resize.stop"

	CmdMarqueeStart  = "marquee.start"
	CmdMarqueeUpdate = "marquee.update"
	CmdMarqueeFinish = "marquee.finish"

	CmdCreateStart  = "create.start"
	CmdCreateUpdate = "create.update"
	CmdCreateFinish = "create.finish"

	CmdEditStart = "edit.start"
	CmdEditStop  = "edit.stop"

	CmdDocumentImport = "document.import"
)
