package weave

import (
	"cmp"
	"slices"

	"github.com/matzehuels/weave/pkg/geom"
	"github.com/matzehuels/weave/pkg/viewport"
)

// Frame is everything a renderer needs to draw one moment of the animation.
type Frame struct {
	Time       float64         `json:"time"`
	Seed       uint64          `json:"seed"`
	Camera     viewport.Camera `json:"camera"`
	Background string          `json:"background"`
	Strokes    []Stroke        `json:"strokes"`
}

// Stroke is the visible part of one line.
type Stroke struct {
	LineID   int    `json:"line_id"`
	Slot     int    `json:"slot"`
	Vertical bool   `json:"vertical"`
	Phase    string `json:"phase"`
	Color    string `json:"color"`
	// Width is a fraction of the canvas height.
	Width float64 `json:"width"`
	// Points are in camera space. Z is the stacking depth.
	Points []geom.Point `json:"points"`
}

// Runs splits the stroke into maximal runs of constant depth. Neighbouring
// runs share their boundary point so the polyline stays connected.
func (s Stroke) Runs() []Run {
	if len(s.Points) < 2 {
		return nil
	}
	var runs []Run
	start := 0
	for i := 1; i < len(s.Points); i++ {
		if s.Points[i].Z != s.Points[start].Z {
			runs = append(runs, Run{Z: s.Points[start].Z, Points: s.Points[start : i+1]})
			start = i
		}
	}
	if start < len(s.Points)-1 {
		runs = append(runs, Run{Z: s.Points[start].Z, Points: s.Points[start:]})
	}
	return runs
}

// Run is a section of a stroke at one depth.
type Run struct {
	Z      float64
	Points []geom.Point
}

// DepthRun is a run tagged with the stroke it belongs to.
type DepthRun struct {
	Stroke *Stroke
	Run
}

// DepthOrder returns every run of every stroke sorted by ascending depth.
// Runs at equal depth keep stroke order, so older lines are painted first.
func (f Frame) DepthOrder() []DepthRun {
	var out []DepthRun
	for i := range f.Strokes {
		for _, r := range f.Strokes[i].Runs() {
			out = append(out, DepthRun{Stroke: &f.Strokes[i], Run: r})
		}
	}
	slices.SortStableFunc(out, func(a, b DepthRun) int { return cmp.Compare(a.Z, b.Z) })
	return out
}
