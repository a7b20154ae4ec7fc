package weave

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/weave/pkg/geom"
)

func stroke(id int, zs ...float64) Stroke {
	pts := make([]geom.Point, len(zs))
	for i, z := range zs {
		pts[i] = geom.Pt(float64(i), 0, z)
	}
	return Stroke{LineID: id, Points: pts}
}

func TestStrokeRuns(t *testing.T) {
	tests := []struct {
		name string
		zs   []float64
		want [][]float64 // z of each point per run
	}{
		{"flat", []float64{0, 0, 0}, [][]float64{{0, 0, 0}}},
		{"single point", []float64{0}, nil},
		{"bump", []float64{0, 0, 1, 1, 0}, [][]float64{{0, 0, 1}, {1, 1, 0}}},
		{"last point differs", []float64{0, 0, 1}, [][]float64{{0, 0, 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got [][]float64
			for _, r := range stroke(0, tt.zs...).Runs() {
				var zs []float64
				for _, p := range r.Points {
					zs = append(zs, p.Z)
				}
				got = append(got, zs)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Runs() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDepthOrder(t *testing.T) {
	f := Frame{Strokes: []Stroke{
		stroke(1, 0, 0, 0.03, 0.03, 0),
		stroke(2, -0.03, -0.03, 0, 0),
	}}

	var got []struct {
		ID int
		Z  float64
	}
	for _, r := range f.DepthOrder() {
		got = append(got, struct {
			ID int
			Z  float64
		}{r.Stroke.LineID, r.Z})
	}
	want := []struct {
		ID int
		Z  float64
	}{
		{2, -0.03},
		{1, 0},
		{2, 0},
		{1, 0.03},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DepthOrder() mismatch (-want +got):\n%s", diff)
	}
}
