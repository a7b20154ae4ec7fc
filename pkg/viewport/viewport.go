// Package viewport maps unit-square line points onto an orthographic camera.
//
// Points are generated in [0,1] on both axes. The camera spans
// [-aspect, aspect] horizontally and [1, -1] vertically, so the mapping
// flips y. Lines are stretched a little past the camera along their travel
// axis so their ends are never visible.
package viewport

import (
	"github.com/matzehuels/weave/pkg/geom"
)

// Camera depth range.
const (
	DefaultNear = -100
	DefaultFar  = 100
)

// DefaultPadding is the overshoot along the travel axis, as a fraction of
// the camera extent.
const DefaultPadding = 0.05

// DefaultUndulation is the amplitude of the per-frame wobble.
const DefaultUndulation = 0.01

// Camera is an orthographic camera sized to a canvas.
type Camera struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Near   float64 `json:"near"`
	Far    float64 `json:"far"`

	// Canvas size in device pixels.
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	PixelRatio float64 `json:"pixel_ratio"`
}

// Resize builds the camera for a canvas of w x h CSS pixels.
func Resize(pixelRatio float64, w, h int) Camera {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}
	aspect := 1.0
	if h > 0 {
		aspect = float64(w) / float64(h)
	}
	return Camera{
		Left:       -aspect,
		Right:      aspect,
		Top:        1,
		Bottom:     -1,
		Near:       DefaultNear,
		Far:        DefaultFar,
		Width:      int(float64(w) * pixelRatio),
		Height:     int(float64(h) * pixelRatio),
		PixelRatio: pixelRatio,
	}
}

// BaseZ is the depth lines are drawn at when nothing overlaps them.
func (c Camera) BaseZ() float64 { return (c.Near + c.Far) / 2 }

// Aspect is the width to height ratio.
func (c Camera) Aspect() float64 { return (c.Right - c.Left) / (c.Top - c.Bottom) }

// Map places p in camera space. padding extends the travel axis only: x for
// horizontal lines, y for vertical ones.
func Map(p geom.Point, vertical bool, cam Camera, padding float64) geom.Point {
	var xPad, yPad float64
	if vertical {
		yPad = (cam.Bottom - cam.Top) * padding
	} else {
		xPad = (cam.Right - cam.Left) * padding
	}
	return geom.Pt(
		geom.LerpFloat(cam.Left-xPad, cam.Right+xPad, p.X),
		geom.LerpFloat(cam.Top-yPad, cam.Bottom+yPad, p.Y),
		p.Z,
	)
}

// ToPixels converts a camera-space point to canvas pixel coordinates with
// the origin at the top left.
func (c Camera) ToPixels(p geom.Point) (x, y float64) {
	x = (p.X - c.Left) / (c.Right - c.Left) * float64(c.Width)
	y = (c.Top - p.Y) / (c.Top - c.Bottom) * float64(c.Height)
	return x, y
}

// Scale converts a length in camera units to pixels along the vertical axis.
func (c Camera) Scale(v float64) float64 {
	return v / (c.Top - c.Bottom) * float64(c.Height)
}
