package geom

import (
	"fmt"
	"math"
)

// Point is a 3D coordinate. X and Y are canvas coordinates, Z is depth.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Pt is shorthand for Point{X: x, Y: y, Z: z}.
func Pt(x, y, z float64) Point { return Point{X: x, Y: y, Z: z} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y, p.Z + q.Z} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y, p.Z - q.Z} }

// Scale returns p multiplied by s.
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s, p.Z * s} }

// WithZ returns p with its depth replaced.
func (p Point) WithZ(z float64) Point { return Point{p.X, p.Y, z} }

// Dist2D is the Euclidean distance between p and q in the XY plane.
// Depth is ignored.
func (p Point) Dist2D(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// String formats the point with four decimals per axis.
func (p Point) String() string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", p.X, p.Y, p.Z)
}

// Lerp interpolates between a and b at parameter t.
func Lerp(a, b Point, t float64) Point {
	return a.Add(b.Sub(a).Scale(t))
}

// Between returns count points evenly spaced strictly between a and b.
// With inclusive set, a and b are added at the ends.
func Between(a, b Point, count int, inclusive bool) []Point {
	out := make([]Point, 0, count+2)
	if inclusive {
		out = append(out, a)
	}
	for i := 1; i <= count; i++ {
		out = append(out, Lerp(a, b, float64(i)/float64(count+1)))
	}
	if inclusive {
		out = append(out, b)
	}
	return out
}

// LerpFloat interpolates between a and b at parameter t.
func LerpFloat(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 limits v to [0,1].
func Clamp01(v float64) float64 {
	return max(0, min(v, 1))
}
