package document

import (
	"github.com/inamate/canvas/internal/typeid"
)

// NewSampleEnvelope returns a small board: a frame holding a rectangle and a
// heading, plus a root-level image beside it.
func NewSampleEnvelope() *Envelope {
	frameID := typeid.NewElementID()
	rectID := typeid.NewElementID()
	headingID := typeid.NewElementID()
	imageID := typeid.NewElementID()

	frameStyle := DefaultStyle(ElementTypeFrame)
	rectStyle := DefaultStyle(ElementTypeRectangle)
	rectStyle.Fill = "#e94560"
	rectStyle.CornerRadius = 8
	headingStyle := DefaultStyle(ElementTypeText)
	headingStyle.FontSize = 24
	headingStyle.FontWeight = "700"

	return &Envelope{
		Version:  CurrentVersion,
		Viewport: DefaultViewport(),
		Elements: []Element{
			{
				ID:       frameID,
				Type:     ElementTypeFrame,
				X:        80,
				Y:        80,
				Width:    480,
				Height:   320,
				ZIndex:   0,
				Children: []string{rectID, headingID},
				Style:    frameStyle,
			},
			{
				ID:       rectID,
				Type:     ElementTypeRectangle,
				X:        40,
				Y:        80,
				Width:    160,
				Height:   100,
				ZIndex:   1,
				ParentID: frameID,
				Style:    rectStyle,
			},
			{
				ID:         headingID,
				Type:       ElementTypeText,
				X:          40,
				Y:          24,
				Width:      240,
				Height:     32,
				ZIndex:     1000,
				ParentID:   frameID,
				Content:    "Welcome to the board",
				Style:      headingStyle,
				FixedWidth: true,
			},
			{
				ID:       imageID,
				Type:     ElementTypeImage,
				X:        640,
				Y:        120,
				Width:    240,
				Height:   160,
				ZIndex:   2,
				ImageURL: "https://picsum.photos/240/160",
				Style:    DefaultStyle(ElementTypeImage),
			},
		},
	}
}
