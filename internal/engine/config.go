package engine

import "github.com/inamate/canvas/internal/snap"

// Config holds the thresholds and limits the engine applies.
type Config struct {
	MinZoom float64
	MaxZoom float64

	// TextZIndex is the fixed stacking tier given to new text elements so
	// they render above shapes.
	TextZIndex int

	// ClickThreshold is the size below which a creation drag counts as a click.
	ClickThreshold float64
	// MarqueeMinSize is the size a marquee must exceed to change the selection.
	MarqueeMinSize float64

	MinFontSize   float64
	MinTextWidth  float64
	MinTextHeight float64

	SnapEnabled bool
	Snap        snap.Options
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		MinZoom:        0.1,
		MaxZoom:        10,
		TextZIndex:     1000,
		ClickThreshold: 5,
		MarqueeMinSize: 5,
		MinFontSize:    8,
		MinTextWidth:   40,
		MinTextHeight:  24,
		SnapEnabled:    true,
		Snap:           snap.DefaultOptions(),
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MinZoom <= 0 {
		c.MinZoom = d.MinZoom
	}
	if c.MaxZoom < c.MinZoom {
		c.MaxZoom = max(d.MaxZoom, c.MinZoom)
	}
	if c.TextZIndex == 0 {
		c.TextZIndex = d.TextZIndex
	}
	if c.MinFontSize <= 0 {
		c.MinFontSize = d.MinFontSize
	}
	if c.MinTextWidth <= 0 {
		c.MinTextWidth = d.MinTextWidth
	}
	if c.MinTextHeight <= 0 {
		c.MinTextHeight = d.MinTextHeight
	}
	if c.Snap.Threshold <= 0 {
		c.Snap.Threshold = snap.DefaultThreshold
	}
	return c
}
