package sampler

import (
	"github.com/matzehuels/weave/pkg/geom"
	"github.com/matzehuels/weave/pkg/rng"
)

// Defaults taken from the high-lines sketch.
const (
	DefaultSegments      = 150
	DefaultFrequency     = 2.5
	DefaultNoiseConstant = 0.25
	DefaultLeadIn        = 1
	DefaultLeadOut       = 10
)

// Params describes one path.
type Params struct {
	Vertical bool    // travel along y; noise displaces x
	Forward  bool    // start at edge 0 instead of edge 1
	Pos      float64 // cross-axis position of both anchors

	Segments       int
	Frequency      float64
	NoiseConstant  float64
	SymlogConstant float64
	// NoiselessZone insets the noisy section from each anchor by this
	// fraction of the path length. Zero keeps noise all the way out.
	NoiselessZone float64
	LeadIn        int
	LeadOut       int

	// BaseZ is the depth every point starts at.
	BaseZ float64

	// Resolve, when set, is called on each noisy point as it is produced
	// and its result is stored instead. Lead-in and lead-out points are
	// never passed to it.
	Resolve func(geom.Point) geom.Point
}

// Path is a sampled polyline. Points[First:Last] is the noisy section.
type Path struct {
	Points []geom.Point
	First  int
	Last   int
}

// Noisy returns the noisy section of the path.
func (p Path) Noisy() []geom.Point { return p.Points[p.First:p.Last] }

// Anchors returns the start and end anchors for params.
func Anchors(p Params) (start, end geom.Point) {
	e0, e1 := 0.0, 1.0
	if !p.Forward {
		e0, e1 = e1, e0
	}
	if p.Vertical {
		return geom.Pt(p.Pos, e0, p.BaseZ), geom.Pt(p.Pos, e1, p.BaseZ)
	}
	return geom.Pt(e0, p.Pos, p.BaseZ), geom.Pt(e1, p.Pos, p.BaseZ)
}

// Sample draws a path. The noise field of src is permuted first so every
// path gets its own field. Given the same src state and params the result is
// identical.
func Sample(src *rng.Source, p Params) Path {
	src.PermuteNoise()

	p0, p1 := Anchors(p)
	v := p1.Sub(p0)
	p0n := p0.Add(v.Scale(p.NoiselessZone))
	p1n := p0.Add(v.Scale(1 - p.NoiselessZone))

	noisy := make([]geom.Point, 0, p.Segments)
	for i := 0; i < p.Segments; i++ {
		ideal := geom.Lerp(p0n, p1n, float64(i)/float64(p.Segments))
		n := src.Noise2D(ideal.X, ideal.Y, p.Frequency) *
			Amplitude(i, p.Segments, p.NoiseConstant, p.SymlogConstant)
		if p.Vertical {
			ideal = ideal.Add(geom.Pt(n, 0, 0))
		} else {
			ideal = ideal.Add(geom.Pt(0, n, 0))
		}
		if p.Resolve != nil {
			ideal = p.Resolve(ideal)
		}
		noisy = append(noisy, ideal)
	}

	// Lead points run from each anchor to the nearest noisy point, kept at
	// base depth.
	head, tail := p0n, p1n
	if len(noisy) > 0 {
		head = noisy[0].WithZ(p.BaseZ)
		tail = noisy[len(noisy)-1].WithZ(p.BaseZ)
	}

	points := make([]geom.Point, 0, p.LeadIn+p.Segments+p.LeadOut+4)
	points = append(points, p0)
	points = append(points, geom.Between(p0, head, p.LeadIn+1, false)...)
	first := len(points)
	points = append(points, noisy...)
	last := len(points)
	points = append(points, geom.Between(tail, p1, p.LeadOut+1, false)...)
	points = append(points, p1)
	return Path{Points: points, First: first, Last: last}
}
