package resolver

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/weave/pkg/geom"
	"github.com/matzehuels/weave/pkg/rng"
)

func randomLine(src *rng.Source, n int) []geom.Point {
	pts := make([]geom.Point, n)
	for i := range pts {
		pts[i] = geom.Pt(src.Float(), src.Float(), src.Range(-5, 5))
	}
	return pts
}

func TestGridMatchesLinear(t *testing.T) {
	src := rng.New(2024)
	lin := NewLinear()
	grid := NewGrid(testThreshold)

	for id := 0; id < 8; id++ {
		pts := randomLine(src, 200)
		lin.Add(id, pts)
		grid.Add(id, pts)
	}
	lin.Remove(3)
	grid.Remove(3)

	if lin.Len() != grid.Len() {
		t.Fatalf("Len() linear=%d grid=%d", lin.Len(), grid.Len())
	}

	for _, threshold := range []float64{testThreshold, 0.05, 0.1} {
		for i := 0; i < 500; i++ {
			q := geom.Pt(src.Float(), src.Float(), 0)
			want := lin.Overlapping(q, threshold)
			got := grid.Overlapping(q, threshold)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("threshold %v query %v mismatch (-linear +grid):\n%s", threshold, q, diff)
			}
		}
	}
}

func TestIndexRemove(t *testing.T) {
	for name, idx := range map[string]Index{"linear": NewLinear(), "grid": NewGrid(0.05)} {
		t.Run(name, func(t *testing.T) {
			idx.Add(1, []geom.Point{geom.Pt(0.5, 0.5, 0)})
			idx.Add(2, []geom.Point{geom.Pt(0.5, 0.5, 1)})

			if got := idx.Overlapping(geom.Pt(0.5, 0.5, 0), 0.01); len(got) != 2 {
				t.Fatalf("Overlapping() = %v, want 2 points", got)
			}

			idx.Remove(1)
			got := idx.Overlapping(geom.Pt(0.5, 0.5, 0), 0.01)
			if len(got) != 1 || got[0].Z != 1 {
				t.Errorf("after Remove() Overlapping() = %v", got)
			}

			idx.Remove(42)
			if idx.Len() != 1 {
				t.Errorf("Len() = %d, want 1", idx.Len())
			}
		})
	}
}

func TestIndexAddReplaces(t *testing.T) {
	for name, idx := range map[string]Index{"linear": NewLinear(), "grid": NewGrid(0.05)} {
		t.Run(name, func(t *testing.T) {
			idx.Add(1, []geom.Point{geom.Pt(0.1, 0.1, 0), geom.Pt(0.2, 0.2, 0)})
			idx.Add(1, []geom.Point{geom.Pt(0.9, 0.9, 0)})
			if idx.Len() != 1 {
				t.Errorf("Len() = %d, want 1", idx.Len())
			}
			if got := idx.Overlapping(geom.Pt(0.1, 0.1, 0), 0.01); len(got) != 0 {
				t.Errorf("stale points after re-Add: %v", got)
			}
		})
	}
}

func TestIndexOverlapUsesStrictThreshold(t *testing.T) {
	idx := NewLinear()
	idx.Add(0, []geom.Point{geom.Pt(0.5, 0.5, 0)})
	if got := idx.Overlapping(geom.Pt(0.75, 0.5, 0), 0.25); len(got) != 0 {
		t.Errorf("point exactly at threshold should not overlap, got %v", got)
	}
}
