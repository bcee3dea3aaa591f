package session

import (
	"errors"
	"fmt"

	"github.com/inamate/canvas/internal/document"
	"github.com/inamate/canvas/internal/engine"
)

var ErrUnknownCommand = errors.New("unknown command")

// Apply runs one command against the engine. It only checks that the fields
// the command needs are present; the engine ignores unknown ids.
func Apply(e *engine.Engine, cmd Command) error {
	switch cmd.Type {
	case CmdViewportSet:
		if cmd.Viewport == nil {
			return missing(cmd, "viewport")
		}
		e.SetViewport(*cmd.Viewport)
	case CmdViewportPan:
		if cmd.Delta == nil {
			return missing(cmd, "delta")
		}
		e.Pan(cmd.Delta.X, cmd.Delta.Y)
	case CmdViewportZoom:
		e.ZoomTo(cmd.Zoom, cmd.Center)
	case CmdViewportZoomBy:
		e.ZoomBy(cmd.Factor, cmd.Center)
	case CmdViewportReset:
		e.ResetViewport()

	case CmdToolSet:
		if !cmd.Tool.Valid() {
			return fmt.Errorf("%s: unknown tool %q", cmd.Type, cmd.Tool)
		}
		e.SetTool(cmd.Tool)

	case CmdElementAdd:
		if cmd.Element == nil {
			return missing(cmd, "element")
		}
		e.AddElement(*cmd.Element)
	case CmdElementUpdate:
		if cmd.Patch == nil {
			return missing(cmd, "patch")
		}
		e.UpdateElement(cmd.ElementID, *cmd.Patch)
	case CmdElementDelete:
		e.DeleteElements(cmd.IDs)
	case CmdElementMove:
		if cmd.Delta == nil {
			return missing(cmd, "delta")
		}
		e.MoveElements(cmd.IDs, cmd.Delta.X, cmd.Delta.Y)
	case CmdElementResize:
		if cmd.Rect == nil {
			return missing(cmd, "rect")
		}
		e.ResizeElement(cmd.ElementID, *cmd.Rect)
	case CmdElementReorder:
		e.ReorderElements(cmd.IDs, cmd.Action)

	case CmdFrameAdd:
		e.AddToFrame(cmd.ElementID, cmd.FrameID)
	case CmdFrameRemove:
		e.RemoveFromFrame(cmd.ElementID)

	case CmdSelectionSet:
		e.SelectElements(cmd.IDs, cmd.Additive)
	case CmdSelectionToggle:
		e.ToggleSelection(cmd.ElementID)
	case CmdSelectionAll:
		e.SelectAll()
	case CmdSelectionClear:
		e.ClearSelection()

	case CmdPanStart:
		if cmd.Point == nil {
			return missing(cmd, "point")
		}
		e.StartPanning(*cmd.Point)
	case CmdPanUpdate:
		if cmd.Point == nil {
			return missing(cmd, "point")
		}
		e.UpdatePanning(*cmd.Point)
	case CmdPanStop:
		e.StopPanning()

	case CmdDragStart:
		if cmd.Point == nil {
			return missing(cmd, "point")
		}
		e.StartDragging(cmd.IDs, *cmd.Point)
	case CmdDragUpdate:
		if cmd.Delta == nil {
			return missing(cmd, "delta")
		}
		delta := *cmd.Delta
		if cmd.Snap {
			delta = e.SnapDrag(cmd.IDs, delta)
		}
		e.HandleDrag(cmd.IDs, delta, cmd.Mouse)
	case CmdDragStop:
		e.StopDragging()

	case CmdResizeStart:
		if cmd.Point == nil {
			return missing(cmd, "point")
		}
		e.StartResizing(cmd.ElementID, cmd.Handle, *cmd.Point)
	case CmdResizeUpdate:
		if cmd.Bounds == nil {
			return missing(cmd, "bounds")
		}
		corner := cmd.Handle.IsCorner()
		if cmd.Corner != nil {
			corner = *cmd.Corner
		}
		e.HandleResize(cmd.ElementID, *cmd.Bounds, corner, nil)
	case CmdResizeStop:
		e.StopResizing()

	case CmdMarqueeStart:
		if cmd.Point == nil {
			return missing(cmd, "point")
		}
		e.StartMarqueeSelect(*cmd.Point, cmd.Additive)
	case CmdMarqueeUpdate:
		if cmd.Point == nil {
			return missing(cmd, "point")
		}
		e.UpdateMarqueeSelect(*cmd.Point)
	case CmdMarqueeFinish:
		e.FinishMarqueeSelect()

	case CmdCreateStart:
		if cmd.Point == nil {
			return missing(cmd, "point")
		}
		if !cmd.ElementType.Valid() {
			return fmt.Errorf("%s: unknown element type %q", cmd.Type, cmd.ElementType)
		}
		e.StartCreating(cmd.ElementType, *cmd.Point)
	case CmdCreateUpdate:
		if cmd.Point == nil {
			return missing(cmd, "point")
		}
		e.UpdateCreating(*cmd.Point)
	case CmdCreateFinish:
		if cmd.Point == nil {
			return missing(cmd, "point")
		}
		e.FinishCreating(*cmd.Point)

	case CmdEditStart:
		e.StartEditing(cmd.ElementID)
	case CmdEditStop:
		e.StopEditing()

	case CmdDocumentImport:
		if cmd.Document == nil {
			return missing(cmd, "document")
		}
		if err := document.Validate(cmd.Document); err != nil {
			return fmt.Errorf("%s: %w", cmd.Type, err)
		}
		e.ImportData(*cmd.Document)

	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Type)
	}
	return nil
}

func missing(cmd Command, field string) error {
	return fmt.Errorf("%s: missing %s", cmd.Type, field)
}
