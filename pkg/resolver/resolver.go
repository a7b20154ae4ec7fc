package resolver

import (
	"slices"

	"github.com/matzehuels/weave/pkg/geom"
)

// DefaultCollisionFactor scales the line width into the collision threshold.
const DefaultCollisionFactor = 1.5

// Threshold returns the collision threshold for a line width.
func Threshold(lineWidth, factor float64) float64 {
	if factor <= 0 {
		factor = DefaultCollisionFactor
	}
	return lineWidth * factor
}

// PointGroup is a point together with the resolver state carried to the
// next point of the same line.
type PointGroup struct {
	Point       geom.Point
	Overlapping []geom.Point
	StackUp     bool
}

// Resolve assigns the depth of p given the previous point group of the same
// line and the points of every other line.
func Resolve(p geom.Point, prev PointGroup, others Index, threshold, baseZ float64) PointGroup {
	pg := PointGroup{
		Point:       p,
		Overlapping: others.Overlapping(p, threshold),
		StackUp:     prev.StackUp,
	}

	prevZs := sortedZs(prev.Overlapping)
	currentZs := sortedZs(pg.Overlapping)

	switch {
	case slices.Equal(prevZs, currentZs):
		pg.Point = p.WithZ(prev.Point.Z)
	case len(currentZs) == 0:
		pg.Point = p.WithZ(baseZ)
		pg.StackUp = !pg.StackUp
	case pg.StackUp:
		pg.Point = p.WithZ(currentZs[len(currentZs)-1] + threshold)
	default:
		pg.Point = p.WithZ(currentZs[0] - threshold)
	}
	return pg
}

// Walker resolves the points of one line in order, carrying the point group
// of the last resolved point.
type Walker struct {
	prev      PointGroup
	others    Index
	threshold float64
	baseZ     float64
}

// NewWalker starts a line whose first resolved point follows start. start
// has no overlaps, so the first point with none inherits its depth.
func NewWalker(start geom.Point, stackUp bool, others Index, threshold, baseZ float64) *Walker {
	return &Walker{
		prev:      PointGroup{Point: start, StackUp: stackUp},
		others:    others,
		threshold: threshold,
		baseZ:     baseZ,
	}
}

// Next resolves p and returns it with its depth assigned.
func (w *Walker) Next(p geom.Point) geom.Point {
	w.prev = Resolve(p, w.prev, w.others, w.threshold, w.baseZ)
	return w.prev.Point
}

// StackUp reports the direction the next point will stack in.
func (w *Walker) StackUp() bool { return w.prev.StackUp }

// Line resolves points[first:last] of a sampled path and returns a new
// slice with the adjusted depths. Points outside the section are copied
// unchanged. stackUp is the direction the line starts with.
func Line(points []geom.Point, first, last int, stackUp bool, others Index, threshold, baseZ float64) []geom.Point {
	out := slices.Clone(points)

	start := geom.Pt(0, 0, baseZ)
	if first > 0 {
		start = out[first-1]
	}
	w := NewWalker(start, stackUp, others, threshold, baseZ)
	for i := first; i < last; i++ {
		out[i] = w.Next(out[i])
	}
	return out
}

func sortedZs(points []geom.Point) []float64 {
	zs := make([]float64, len(points))
	for i, p := range points {
		zs[i] = p.Z
	}
	slices.Sort(zs)
	return zs
}
