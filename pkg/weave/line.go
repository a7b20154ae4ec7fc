package weave

import (
	"math"

	"github.com/matzehuels/weave/pkg/geom"
)

// Slot is a spawn position. Vertical slots place lines at X = Pos, horizontal
// ones at Y = Pos.
type Slot struct {
	Index    int     `json:"index"`
	Vertical bool    `json:"vertical"`
	Pos      float64 `json:"pos"`
}

// Phase is the lifecycle stage of a line.
type Phase uint8

const (
	Spawning  Phase = iota // points are being generated
	Revealing              // drawing in, State.Start is the reveal start
	Done                   // fully drawn
	Fading                 // shrinking, State.Start is the fade start
	Removed                // out of the live set
)

var phaseNames = [...]string{"spawning", "revealing", "done", "fading", "removed"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// State is a phase plus the time it began, where the phase has one.
type State struct {
	Phase Phase
	Start float64
}

// Line is one generated path and its lifecycle.
type Line struct {
	ID       int
	Slot     Slot
	Vertical bool
	Forward  bool
	Color    string // palette color
	Points   []geom.Point
	State    State

	born             float64
	done             bool
	doneDisappearing bool
}

// Done reports whether every point has been revealed at least once.
func (l *Line) Done() bool { return l.done }

// DoneDisappearing reports whether the fade has reached zero width.
func (l *Line) DoneDisappearing() bool { return l.doneDisappearing }

// visible is the number of points drawn at t.
func (l *Line) visible(t, duration float64) int {
	if l.done {
		return len(l.Points)
	}
	progress := geom.Clamp01((t - l.born) / duration)
	return int(math.Round(float64(len(l.Points)) * EaseQuadInOut(progress)))
}

// width is the stroke width at t.
func (l *Line) width(t, lineWidth, duration float64) float64 {
	if l.State.Phase != Fading {
		return lineWidth
	}
	return lineWidth * (1 - geom.Clamp01((t-l.State.Start)/duration))
}

// EaseQuadInOut is symmetric quadratic easing over [0,1].
func EaseQuadInOut(t float64) float64 {
	t *= 2
	if t <= 1 {
		return t * t / 2
	}
	t--
	return (t*(2-t) + 1) / 2
}
