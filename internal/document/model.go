package document

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
)

// CurrentVersion is the envelope version written by ExportData.
const CurrentVersion = 1

type ElementType string

const (
	ElementTypeRectangle ElementType = "rectangle"
	ElementTypeText      ElementType = "text"
	ElementTypeImage     ElementType = "image"
	ElementTypeFrame     ElementType = "frame"
)

// Valid reports whether t is one of the known element types.
func (t ElementType) Valid() bool {
	switch t {
	case ElementTypeRectangle, ElementTypeText, ElementTypeImage, ElementTypeFrame:
		return true
	}
	return false
}

type Style struct {
	Fill         string  `json:"fill,omitempty"`
	Stroke       string  `json:"stroke,omitempty"`
	StrokeWidth  float64 `json:"strokeWidth,omitempty"`
	Opacity      float64 `json:"opacity,omitempty" validate:"gte=0,lte=1"`
	CornerRadius float64 `json:"cornerRadius,omitempty" validate:"gte=0"`
	Color        string  `json:"color,omitempty"`
	FontSize     float64 `json:"fontSize,omitempty" validate:"gte=0"`
	FontFamily   string  `json:"fontFamily,omitempty"`
	FontWeight   string  `json:"fontWeight,omitempty"`
	TextAlign    string  `json:"textAlign,omitempty" validate:"omitempty,oneof=left center right"`
}

// Element is a positioned node on the canvas. X and Y are relative to the
// parent frame, or to the world origin when ParentID is empty.
type Element struct {
	ID         string      `json:"id" validate:"required"`
	Type       ElementType `json:"type" validate:"required,oneof=rectangle text image frame"`
	X          float64     `json:"x"`
	Y          float64     `json:"y"`
	Width      float64     `json:"width" validate:"gte=0"`
	Height     float64     `json:"height" validate:"gte=0"`
	Rotation   float64     `json:"rotation,omitempty"`
	ZIndex     int         `json:"zIndex"`
	ParentID   string      `json:"parentId,omitempty"`
	Children   []string    `json:"children,omitempty"`
	Content    string      `json:"content,omitempty"`
	ImageURL   string      `json:"imageUrl,omitempty"`
	Style      Style       `json:"style"`
	FixedWidth bool        `json:"fixedWidth,omitempty"`
}

// IsFrame reports whether the element can own children.
func (e *Element) IsFrame() bool {
	return e.Type == ElementTypeFrame
}

// Clone returns a copy that shares no slices with e.
func (e Element) Clone() Element {
	e.Children = slices.Clone(e.Children)
	return e
}

type Viewport struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom" validate:"gt=0"`
}

// DefaultViewport is the identity viewport.
func DefaultViewport() Viewport {
	return Viewport{X: 0, Y: 0, Zoom: 1}
}

// Envelope is the persisted form of a board.
type Envelope struct {
	Version  int       `json:"version" validate:"required,gte=1"`
	Viewport Viewport  `json:"viewport"`
	Elements []Element `json:"elements" validate:"dive"`
}

// NewEmptyEnvelope creates an envelope for a new board.
func NewEmptyEnvelope() *Envelope {
	return &Envelope{
		Version:  CurrentVersion,
		Viewport: DefaultViewport(),
		Elements: []Element{},
	}
}

// Decode reads and validates an envelope.
func Decode(r io.Reader) (*Envelope, error) {
	var env Envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	if err := Validate(&env); err != nil {
		return nil, err
	}
	return &env, nil
}

// DefaultStyle returns the style a freshly created element of type t gets.
func DefaultStyle(t ElementType) Style {
	switch t {
	case ElementTypeFrame:
		return Style{Fill: "#ffffff", Stroke: "#e0e0e0", StrokeWidth: 1, Opacity: 1}
	case ElementTypeText:
		return Style{Color: "#1e1e1e", FontSize: 16, FontFamily: "Inter", FontWeight: "400", TextAlign: "left", Opacity: 1}
	case ElementTypeImage:
		return Style{Opacity: 1}
	default:
		return Style{Fill: "#d9d9d9", Stroke: "", StrokeWidth: 0, Opacity: 1}
	}
}
