// Package snap computes alignment snapping for a moving rectangle against a
// set of static anchor rectangles. It is UI-agnostic and deterministic.
package snap

import (
	"math"

	"github.com/inamate/canvas/internal/geom"
)

// DefaultThreshold is used when Options.Threshold is not positive.
const DefaultThreshold = 6

type Orientation string

const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

type Kind string

const (
	KindEdge   Kind = "edge"
	KindCenter Kind = "center"
)

// Options controls which guide candidates are considered.
type Options struct {
	// Threshold is the maximum distance, in world units, at which snapping
	// occurs.
	Threshold     float64
	SnapToEdges   bool
	SnapToCenters bool
}

// DefaultOptions snaps edges and centers at DefaultThreshold.
func DefaultOptions() Options {
	return Options{Threshold: DefaultThreshold, SnapToEdges: true, SnapToCenters: true}
}

// Guide is a line to render while an alignment is active. Position is the x
// coordinate of a vertical guide or the y coordinate of a horizontal one.
type Guide struct {
	Orientation Orientation `json:"orientation"`
	Kind        Kind        `json:"kind"`
	Position    float64     `json:"position"`
	From        geom.Point  `json:"from"`
	To          geom.Point  `json:"to"`
}

// Result is the outcome of Compute. DX and DY are the corrections to add to
// the moving rect to land on the chosen guides.
type Result struct {
	DX     float64
	DY     float64
	Guides []Guide
}

type candidate struct {
	delta float64
	dist  float64
	guide Guide
	found bool
}

func (c *candidate) consider(delta, threshold float64, g Guide) {
	dist := math.Abs(delta)
	if dist > threshold {
		return
	}
	if !c.found || dist < c.dist {
		c.delta = delta
		c.dist = dist
		c.guide = g
		c.found = true
	}
}

// Compute snaps moving against anchors independently on each axis.
func Compute(moving geom.Rect, anchors []geom.Rect, opts Options) Result {
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}

	var bestX, bestY candidate

	mL, mR, mT, mB := moving.X, moving.Right(), moving.Y, moving.Bottom()
	mCX, mCY := moving.Center()

	for _, a := range anchors {
		aL, aR, aT, aB := a.X, a.Right(), a.Y, a.Bottom()
		aCX, aCY := a.Center()

		if opts.SnapToEdges {
			for _, target := range []float64{aL, aR} {
				bestX.consider(target-mL, opts.Threshold, verticalGuide(target, moving, a, KindEdge))
				bestX.consider(target-mR, opts.Threshold, verticalGuide(target, moving, a, KindEdge))
			}
			for _, target := range []float64{aT, aB} {
				bestY.consider(target-mT, opts.Threshold, horizontalGuide(target, moving, a, KindEdge))
				bestY.consider(target-mB, opts.Threshold, horizontalGuide(target, moving, a, KindEdge))
			}
		}
		if opts.SnapToCenters {
			bestX.consider(aCX-mCX, opts.Threshold, verticalGuide(aCX, moving, a, KindCenter))
			bestY.consider(aCY-mCY, opts.Threshold, horizontalGuide(aCY, moving, a, KindCenter))
		}
	}

	var res Result
	if bestX.found {
		res.DX = geom.Round(bestX.delta, 3)
		res.Guides = append(res.Guides, bestX.guide)
	}
	if bestY.found {
		res.DY = geom.Round(bestY.delta, 3)
		res.Guides = append(res.Guides, bestY.guide)
	}
	return res
}

func verticalGuide(x float64, moving, anchor geom.Rect, kind Kind) Guide {
	x = geom.Round(x, 3)
	return Guide{
		Orientation: Vertical,
		Kind:        kind,
		Position:    x,
		From:        geom.Point{X: x, Y: min(moving.Y, anchor.Y)},
		To:          geom.Point{X: x, Y: max(moving.Bottom(), anchor.Bottom())},
	}
}

func horizontalGuide(y float64, moving, anchor geom.Rect, kind Kind) Guide {
	y = geom.Round(y, 3)
	return Guide{
		Orientation: Horizontal,
		Kind:        kind,
		Position:    y,
		From:        geom.Point{X: min(moving.X, anchor.X), Y: y},
		To:          geom.Point{X: max(moving.Right(), anchor.Right()), Y: y},
	}
}
