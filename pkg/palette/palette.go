// Package palette provides line colors: a fixed library of five-color
// palettes, the per-run palette built from it, and the slot gradient that
// cycles between two accent colors over time.
package palette

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/weave/pkg/rng"
)

// Library is the set of predefined palettes runs draw from.
var Library = [][]string{
	{"#69d2e7", "#a7dbd8", "#e0e4cc", "#f38630", "#fa6900"},
	{"#fe4365", "#fc9d9a", "#f9cdad", "#c8c8a9", "#83af9b"},
	{"#ecd078", "#d95b43", "#c02942", "#542437", "#53777a"},
	{"#556270", "#4ecdc4", "#c7f464", "#ff6b6b", "#c44d58"},
	{"#774f38", "#e08e79", "#f1d4af", "#ece5ce", "#c5e0dc"},
	{"#e8ddcb", "#cdb380", "#036564", "#033649", "#031634"},
	{"#490a3d", "#bd1550", "#e97f02", "#f8ca00", "#8a9b0f"},
	{"#594f4f", "#547980", "#45ada8", "#9de0ad", "#e5fcc2"},
	{"#00a0b0", "#6a4a3c", "#cc333f", "#eb6841", "#edc951"},
	{"#e94e77", "#d68189", "#c6a49a", "#c6e5d9", "#f4ead5"},
	{"#3fb8af", "#7fc7af", "#dad8a7", "#ff9e9d", "#ff3d7f"},
	{"#d9ceb2", "#948c75", "#d5ded9", "#7a6a53", "#99b2b7"},
	{"#efffcd", "#dce9be", "#555152", "#2e2633", "#99173c"},
	{"#343838", "#005f6b", "#008c9e", "#00b4cc", "#00dffc"},
	{"#413e4a", "#73626e", "#b38184", "#f0b49e", "#f7e4be"},
	{"#ff4e50", "#fc913a", "#f9d423", "#ede574", "#e1f5c4"},
	{"#99b898", "#fecea8", "#ff847c", "#e84a5f", "#2a363b"},
	{"#655643", "#80bca3", "#f6f7bd", "#e6ac27", "#bf4d28"},
	{"#00a8c6", "#40c0cb", "#f9f2e7", "#aee239", "#8fbe00"},
	{"#351330", "#424254", "#64908a", "#e8caa4", "#cc2a41"},
}

// Palette is the ordered color list of one run. It is read-only once built.
type Palette []string

// picks is how many library palettes are concatenated per run.
const picks = 4

// Build concatenates one randomly picked palette with three more picked from
// shuffled copies of the library.
func Build(src *rng.Source) Palette {
	p := Palette(append([]string(nil), rng.Pick(src, Library)...))
	for i := 1; i < picks; i++ {
		p = append(p, rng.Pick(src, rng.Shuffle(src, Library))...)
	}
	return p
}

// Pick returns a random color from the palette.
func (p Palette) Pick(src *rng.Source) string {
	return rng.Pick(src, p)
}

// Gradient interpolates linearly in RGB between two colors, clamping t to
// [0,1].
type Gradient struct {
	from, to colorful.Color
}

// Default gradient endpoints.
const (
	GradientFrom = "#FF388A"
	GradientTo   = "#0AA1FA"
)

// NewGradient parses two hex colors.
func NewGradient(from, to string) (Gradient, error) {
	a, err := colorful.Hex(from)
	if err != nil {
		return Gradient{}, err
	}
	b, err := colorful.Hex(to)
	if err != nil {
		return Gradient{}, err
	}
	return Gradient{from: a, to: b}, nil
}

// DefaultGradient is the pink to blue ramp.
func DefaultGradient() Gradient {
	g, _ := NewGradient(GradientFrom, GradientTo)
	return g
}

// At returns the hex color at t.
func (g Gradient) At(t float64) string {
	t = max(0, min(t, 1))
	return g.from.BlendRgb(g.to, t).Clamped().Hex()
}

// Oscillator returns a triangle wave over [lo,hi]: values rise from 0 to 1
// across one extent, fall back to 0 across the next and repeat. Values below
// lo mirror the same pattern.
func Oscillator(lo, hi float64) func(v float64) float64 {
	extent := hi - lo
	return func(v float64) float64 {
		if extent <= 0 {
			return 0
		}
		v -= lo
		period := int64(floorDiv(v, extent))
		mod := (v - float64(period)*extent) / extent
		if period%2 != 0 {
			return 1 - mod
		}
		return mod
	}
}

func floorDiv(a, b float64) float64 {
	q := a / b
	f := float64(int64(q))
	if f > q {
		f--
	}
	return f
}

// SlotColor is the gradient color of a slot at time t. Slots are spread
// across half the line count and drift along the gradient at half a slot per
// second.
func SlotColor(g Gradient, slot, linesCount int, t float64) string {
	osc := Oscillator(0, float64(linesCount)/2)
	return g.At(osc(float64(slot) + t*0.5))
}
