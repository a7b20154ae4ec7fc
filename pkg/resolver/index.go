package resolver

import (
	"math"
	"slices"

	"github.com/matzehuels/weave/pkg/geom"
)

// Index answers overlap queries against the points of placed lines.
type Index interface {
	// Add stores the points of line id. Adding an id twice replaces it.
	Add(id int, points []geom.Point)
	// Remove drops every point of line id.
	Remove(id int)
	// Overlapping returns stored points whose XY distance to p is below
	// threshold, in insertion order.
	Overlapping(p geom.Point, threshold float64) []geom.Point
	// Len is the number of stored points.
	Len() int
}

type stored struct {
	seq   int
	point geom.Point
}

// =============================================================================
// Linear
// =============================================================================

// Linear keeps lines in insertion order and scans all of them per query.
type Linear struct {
	ids   []int
	lines map[int][]geom.Point
}

// NewLinear returns an empty linear index.
func NewLinear() *Linear {
	return &Linear{lines: make(map[int][]geom.Point)}
}

func (l *Linear) Add(id int, points []geom.Point) {
	if _, ok := l.lines[id]; ok {
		l.Remove(id)
	}
	l.ids = append(l.ids, id)
	l.lines[id] = slices.Clone(points)
}

func (l *Linear) Remove(id int) {
	if _, ok := l.lines[id]; !ok {
		return
	}
	delete(l.lines, id)
	l.ids = slices.DeleteFunc(l.ids, func(v int) bool { return v == id })
}

func (l *Linear) Overlapping(p geom.Point, threshold float64) []geom.Point {
	var out []geom.Point
	for _, id := range l.ids {
		for _, q := range l.lines[id] {
			if p.Dist2D(q) < threshold {
				out = append(out, q)
			}
		}
	}
	return out
}

func (l *Linear) Len() int {
	n := 0
	for _, pts := range l.lines {
		n += len(pts)
	}
	return n
}

// =============================================================================
// Grid
// =============================================================================

type cellKey struct{ x, y int }

// Grid is a uniform spatial hash over the XY plane. Queries visit only the
// cells within threshold of the query point.
type Grid struct {
	size  float64
	seq   int
	cells map[cellKey][]stored
	owned map[int][]cellKey
	seqs  map[int][2]int
}

// NewGrid returns an empty grid with square cells of the given size. Using
// the collision threshold as the size keeps queries to a 3x3 neighbourhood.
func NewGrid(cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = 0.03
	}
	return &Grid{
		size:  cellSize,
		cells: make(map[cellKey][]stored),
		owned: make(map[int][]cellKey),
		seqs:  make(map[int][2]int),
	}
}

func (g *Grid) key(p geom.Point) cellKey {
	return cellKey{int(math.Floor(p.X / g.size)), int(math.Floor(p.Y / g.size))}
}

func (g *Grid) Add(id int, points []geom.Point) {
	if _, ok := g.owned[id]; ok {
		g.Remove(id)
	}
	start := g.seq
	seen := make(map[cellKey]bool)
	var keys []cellKey
	for _, p := range points {
		k := g.key(p)
		g.cells[k] = append(g.cells[k], stored{seq: g.seq, point: p})
		g.seq++
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	g.owned[id] = keys
	g.seqs[id] = [2]int{start, g.seq}
}

func (g *Grid) Remove(id int) {
	keys, ok := g.owned[id]
	if !ok {
		return
	}
	span := g.seqs[id]
	for _, k := range keys {
		kept := slices.DeleteFunc(g.cells[k], func(s stored) bool {
			return s.seq >= span[0] && s.seq < span[1]
		})
		if len(kept) == 0 {
			delete(g.cells, k)
		} else {
			g.cells[k] = kept
		}
	}
	delete(g.owned, id)
	delete(g.seqs, id)
}

func (g *Grid) Overlapping(p geom.Point, threshold float64) []geom.Point {
	reach := int(math.Ceil(threshold / g.size))
	c := g.key(p)

	var hits []stored
	for dx := -reach; dx <= reach; dx++ {
		for dy := -reach; dy <= reach; dy++ {
			for _, s := range g.cells[cellKey{c.x + dx, c.y + dy}] {
				if p.Dist2D(s.point) < threshold {
					hits = append(hits, s)
				}
			}
		}
	}
	if len(hits) == 0 {
		return nil
	}
	slices.SortFunc(hits, func(a, b stored) int { return a.seq - b.seq })

	out := make([]geom.Point, len(hits))
	for i, s := range hits {
		out[i] = s.point
	}
	return out
}

func (g *Grid) Len() int {
	n := 0
	for _, c := range g.cells {
		n += len(c)
	}
	return n
}

var (
	_ Index = (*Linear)(nil)
	_ Index = (*Grid)(nil)
)
