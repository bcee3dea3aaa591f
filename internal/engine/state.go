package engine

import (
	"slices"

	"github.com/inamate/canvas/internal/document"
	"github.com/inamate/canvas/internal/snap"
)

// State is a snapshot of everything a host needs to render the editor.
// It shares no memory with the engine.
type State struct {
	Viewport     document.Viewport  `json:"viewport"`
	Elements     []document.Element `json:"elements"`
	SelectedIDs  []string           `json:"selectedIds"`
	Interaction  Interaction        `json:"interaction"`
	HoverFrameID string             `json:"hoverFrameId,omitempty"`
	EditingID    string             `json:"editingId,omitempty"`
	Tool         Tool               `json:"tool"`
	Guides       []snap.Guide       `json:"guides,omitempty"`
}

// State returns a snapshot of the current state.
func (e *Engine) State() State {
	selected := slices.Clone(e.selection)
	if selected == nil {
		selected = []string{}
	}
	return State{
		Viewport:     e.viewport,
		Elements:     e.cloneElements(),
		SelectedIDs:  selected,
		Interaction:  Interaction{Gesture: e.gesture.clone()},
		HoverFrameID: e.hoverFrameID,
		EditingID:    e.editingID,
		Tool:         e.tool,
		Guides:       slices.Clone(e.guides),
	}
}

// HoverFrameID returns the frame targeted by the current single-element drag.
func (e *Engine) HoverFrameID() string {
	return e.hoverFrameID
}

// Guides returns the snap guides of the current drag.
func (e *Engine) Guides() []snap.Guide {
	return slices.Clone(e.guides)
}
