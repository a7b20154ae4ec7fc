package resolver

import (
	"math"
	"testing"

	"github.com/matzehuels/weave/pkg/geom"
)

const (
	testThreshold = 0.03
	testBaseZ     = 0.0
)

// column returns a vertical line of n points at x, all at depth z.
func column(x, z float64, n int) []geom.Point {
	pts := make([]geom.Point, n)
	for i := range pts {
		pts[i] = geom.Pt(x, float64(i)/float64(n-1), z)
	}
	return pts
}

// row returns a horizontal line of n points at y, all at the base depth.
func row(y float64, n int) []geom.Point {
	pts := make([]geom.Point, n)
	for i := range pts {
		pts[i] = geom.Pt(float64(i)/float64(n-1), y, testBaseZ)
	}
	return pts
}

func TestResolveInheritsOnUnchangedSet(t *testing.T) {
	idx := NewLinear()
	idx.Add(0, []geom.Point{geom.Pt(0.5, 0.5, 2)})

	prev := PointGroup{
		Point:       geom.Pt(0.49, 0.5, 7.25),
		Overlapping: []geom.Point{geom.Pt(0.5, 0.5, 2)},
		StackUp:     true,
	}
	pg := Resolve(geom.Pt(0.5, 0.49, 0), prev, idx, testThreshold, testBaseZ)

	if pg.Point.Z != 7.25 {
		t.Errorf("Z = %v, want inherited 7.25", pg.Point.Z)
	}
	if !pg.StackUp {
		t.Error("StackUp should carry over unchanged")
	}
}

func TestResolveInheritsWhenBothEmpty(t *testing.T) {
	idx := NewLinear()
	prev := PointGroup{Point: geom.Pt(0.1, 0.1, testBaseZ), StackUp: false}
	pg := Resolve(geom.Pt(0.2, 0.1, testBaseZ), prev, idx, testThreshold, testBaseZ)

	if pg.Point.Z != testBaseZ || pg.StackUp {
		t.Errorf("got Z=%v StackUp=%v, want base depth and no flip", pg.Point.Z, pg.StackUp)
	}
}

func TestResolveResetsAndFlips(t *testing.T) {
	for _, stackUp := range []bool{true, false} {
		idx := NewLinear()
		idx.Add(0, []geom.Point{geom.Pt(0.5, 0.5, 0)})

		prev := PointGroup{
			Point:       geom.Pt(0.5, 0.5, 0.03),
			Overlapping: []geom.Point{geom.Pt(0.5, 0.5, 0)},
			StackUp:     stackUp,
		}
		pg := Resolve(geom.Pt(0.9, 0.9, 0.03), prev, idx, testThreshold, 50)

		if len(pg.Overlapping) != 0 {
			t.Fatalf("expected no overlaps, got %v", pg.Overlapping)
		}
		if pg.Point.Z != 50 {
			t.Errorf("Z = %v, want base depth 50", pg.Point.Z)
		}
		if pg.StackUp == stackUp {
			t.Errorf("StackUp = %v, want flipped from %v", pg.StackUp, stackUp)
		}
	}
}

func TestResolveStacksAboveOrBelow(t *testing.T) {
	idx := NewLinear()
	idx.Add(0, []geom.Point{geom.Pt(0.5, 0.5, 1)})
	idx.Add(1, []geom.Point{geom.Pt(0.51, 0.5, -2)})

	tests := []struct {
		name    string
		stackUp bool
		want    float64
	}{
		{"up", true, 1 + testThreshold},
		{"down", false, -2 - testThreshold},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := PointGroup{Point: geom.Pt(0.4, 0.5, 0), StackUp: tt.stackUp}
			pg := Resolve(geom.Pt(0.505, 0.5, 0), prev, idx, testThreshold, testBaseZ)
			if math.Abs(pg.Point.Z-tt.want) > 1e-12 {
				t.Errorf("Z = %v, want %v", pg.Point.Z, tt.want)
			}
			if pg.StackUp != tt.stackUp {
				t.Error("StackUp should not change while stacking")
			}
		})
	}
}

func TestLineCrossingOffsetsByThreshold(t *testing.T) {
	const firstZ = 0.0
	for _, stackUp := range []bool{true, false} {
		idx := NewLinear()
		idx.Add(0, column(0.5, firstZ, 101))

		second := row(0.5, 101)
		out := Line(second, 0, len(second), stackUp, idx, testThreshold, testBaseZ)

		crossing := out[50]
		if crossing.X != 0.5 || crossing.Y != 0.5 {
			t.Fatalf("unexpected crossing point %v", crossing)
		}
		want := firstZ + testThreshold
		if !stackUp {
			want = firstZ - testThreshold
		}
		if math.Abs(crossing.Z-want) > 1e-12 {
			t.Errorf("stackUp=%v crossing Z = %v, want %v", stackUp, crossing.Z, want)
		}
		if out[0].Z != testBaseZ || out[100].Z != testBaseZ {
			t.Errorf("far ends should stay at base depth: %v, %v", out[0].Z, out[100].Z)
		}
	}
}

func TestLineLeavesInputUntouched(t *testing.T) {
	idx := NewLinear()
	idx.Add(0, column(0.5, 3, 11))
	in := row(0.5, 11)
	before := append([]geom.Point(nil), in...)

	_ = Line(in, 0, len(in), true, idx, 0.2, testBaseZ)

	for i := range in {
		if in[i] != before[i] {
			t.Fatalf("Line() mutated input at %d", i)
		}
	}
}

func TestLineKeepsPointsOutsideSection(t *testing.T) {
	idx := NewLinear()
	idx.Add(0, column(0.5, 3, 11))
	in := row(0.5, 11)

	out := Line(in, 4, 7, true, idx, 0.2, testBaseZ)
	for _, i := range []int{0, 1, 2, 3, 7, 8, 9, 10} {
		if out[i] != in[i] {
			t.Errorf("point %d outside section changed: %v -> %v", i, in[i], out[i])
		}
	}
	if out[5].Z == testBaseZ {
		t.Error("point inside section next to the column should be stacked")
	}
}

func TestThreshold(t *testing.T) {
	if got := Threshold(0.02, 1.5); math.Abs(got-0.03) > 1e-12 {
		t.Errorf("Threshold() = %v, want 0.03", got)
	}
	if got := Threshold(0.02, 0); math.Abs(got-0.03) > 1e-12 {
		t.Errorf("Threshold() with zero factor = %v, want default 0.03", got)
	}
}

func TestWalkerMatchesLine(t *testing.T) {
	idx := NewLinear()
	idx.Add(0, column(0.5, 3, 41))
	in := row(0.5, 41)

	want := Line(in, 1, 40, false, idx, 0.05, testBaseZ)

	w := NewWalker(in[0], false, idx, 0.05, testBaseZ)
	for i := 1; i < 40; i++ {
		if got := w.Next(in[i]); got != want[i] {
			t.Fatalf("point %d: Walker = %v, Line = %v", i, got, want[i])
		}
	}
}
