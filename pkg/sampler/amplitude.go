package sampler

import "math"

// DefaultSymlogConstant is the linear-region width of the amplitude curve.
const DefaultSymlogConstant = 0.1

// symlog is the symmetric log transform sign(x)*log1p(|x|/c).
func symlog(x, c float64) float64 {
	return math.Copysign(math.Log1p(math.Abs(x)/c), x)
}

// Symlog maps x in [-1,1] onto [0,1] through a symmetric log scale with
// constant c. Values near -1 stay close to 0 much longer than a linear ramp
// would, which keeps the ends of a path nearly still.
func Symlog(x, c float64) float64 {
	if c <= 0 {
		c = DefaultSymlogConstant
	}
	lo, hi := symlog(-1, c), symlog(1, c)
	return (symlog(x, c) - lo) / (hi - lo)
}

// Amplitude returns the noise multiplier for step i of a path with the given
// segment count. It is zero at i=0 and i=segments and equal to constant at
// the midpoint.
func Amplitude(i, segments int, constant, c float64) float64 {
	if segments <= 0 {
		return 0
	}
	half := float64(segments) / 2
	u := float64(min(i, segments-i)) / half
	u = max(0, min(u, 1))
	return Symlog(2*u-1, c) * constant
}
