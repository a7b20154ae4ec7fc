package viewport

import (
	"math"

	"github.com/matzehuels/weave/pkg/geom"
)

// Taper rises linearly from 0 at index 0 to 1 at segments/2 and falls back
// to 0 at segments. Indexes past segments go negative.
func Taper(i, segments int) float64 {
	half := float64(segments) / 2
	if float64(i) < half {
		return float64(i) / half
	}
	return float64(segments-i) / half
}

// Undulate offsets the i-th point of a line at time t. The offset is a slow
// sine on x and cosine on y whose phase advances along the line, scaled by
// amp and the taper so the ends stay put.
func Undulate(p geom.Point, i, segments int, t, amp float64) geom.Point {
	if amp == 0 || segments <= 0 {
		return p
	}
	phase := float64(i)/(float64(segments)/3) + t
	k := amp * Taper(i, segments)
	return geom.Pt(p.X+math.Sin(phase)*k, p.Y+math.Cos(phase)*k, p.Z)
}

// Project undulates and maps every point of a line, returning a new slice.
func Project(points []geom.Point, vertical bool, cam Camera, padding float64, segments int, t, amp float64) []geom.Point {
	out := make([]geom.Point, len(points))
	for i, p := range points {
		out[i] = Map(Undulate(p, i, segments, t, amp), vertical, cam, padding)
	}
	return out
}
