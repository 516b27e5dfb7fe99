// Package linker decides which points are connected and how strongly a connection renders
package linker

import (
	"math/rand"

	"github.com/lixenwraith/luna-scenes/field"
)

// Edge is a directed connection record
// Edges are never removed once created
type Edge struct {
	From, To int
	// Alpha is the base stroke alpha before distance falloff
	Alpha float64
	// Pulse is the id of the pulse currently riding this edge, 0 when idle
	Pulse uint64
}

// Graph is the connection list of one scene
type Graph struct {
	Edges []Edge
	// Symmetric graphs also append the source to the target's adjacency
	Symmetric bool
}

// NewGraph creates an empty graph
func NewGraph(symmetric bool) *Graph {
	return &Graph{Symmetric: symmetric}
}

// Link records from→to and returns the forward edge index, -1 when either end is invalid
// A symmetric graph also records to→from, so the pair is drawn twice
func (g *Graph) Link(f *field.Field, from, to int, alpha float64) int {
	if from == to {
		return -1
	}
	src, ok := f.Get(from)
	if !ok {
		return -1
	}
	dst, ok := f.Get(to)
	if !ok {
		return -1
	}

	src.Links = append(src.Links, to)
	g.Edges = append(g.Edges, Edge{From: from, To: to, Alpha: alpha})
	idx := len(g.Edges) - 1

	if g.Symmetric {
		dst.Links = append(dst.Links, from)
		g.Edges = append(g.Edges, Edge{From: to, To: from, Alpha: alpha})
	}
	return idx
}

// Edge returns the edge at idx, false when out of range
func (g *Graph) Edge(idx int) (*Edge, bool) {
	if idx < 0 || idx >= len(g.Edges) {
		return nil, false
	}
	return &g.Edges[idx], true
}

// Len returns the number of edge records
func (g *Graph) Len() int {
	return len(g.Edges)
}

// Config is the initial wiring setup of a scene
type Config struct {
	FanOut field.IntRange
	// Dedup skips targets already in the source's adjacency and guarantees FanOut distinct links when possible
	// Without it targets are drawn with replacement and self hits are dropped
	Dedup     bool
	Symmetric bool
	// SpecialMin tops special points up to this many adjacency entries
	SpecialMin int
	Alpha      field.Range
}

// AssignInitial wires every point of f into g
func AssignInitial(f *field.Field, g *Graph, cfg Config, rng *rand.Rand) {
	n := f.Len()
	if n < 2 {
		return
	}

	for i := 0; i < n; i++ {
		AssignFor(f, g, i, cfg, rng)
	}

	if cfg.SpecialMin <= 0 {
		return
	}
	for i := 0; i < n; i++ {
		p := &f.Points[i]
		if !p.Special() || len(p.Links) >= cfg.SpecialMin {
			continue
		}
		for _, t := range candidates(f, i, rng) {
			if len(f.Points[i].Links) >= cfg.SpecialMin {
				break
			}
			g.Link(f, i, t, cfg.Alpha.Sample(rng))
		}
	}
}

// AssignFor wires one point with a freshly sampled fan-out
// Points added after the initial wiring use it directly
func AssignFor(f *field.Field, g *Graph, i int, cfg Config, rng *rand.Rand) {
	n := f.Len()
	if n < 2 || i < 0 || i >= n {
		return
	}
	k := cfg.FanOut.Sample(rng)
	if cfg.Dedup {
		for _, t := range candidates(f, i, rng) {
			if k == 0 {
				break
			}
			g.Link(f, i, t, cfg.Alpha.Sample(rng))
			k--
		}
		return
	}
	for j := 0; j < k; j++ {
		if t := rng.Intn(n); t != i {
			g.Link(f, i, t, cfg.Alpha.Sample(rng))
		}
	}
}

// FullMesh links every ordered pair whose index gap is at most maxGap, 0 meaning unlimited
func FullMesh(f *field.Field, g *Graph, maxGap int, alpha float64) {
	n := f.Len()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if maxGap > 0 && abs(i-j) > maxGap {
				continue
			}
			g.Link(f, i, j, alpha)
		}
	}
}

// Star links every point to hub, one directed edge per spoke
func Star(f *field.Field, g *Graph, hub int, alpha float64) {
	for i := 0; i < f.Len(); i++ {
		if i != hub {
			g.Link(f, hub, i, alpha)
		}
	}
}

// candidates returns ids other than i not yet linked from i, shuffled
func candidates(f *field.Field, i int, rng *rand.Rand) []int {
	p := &f.Points[i]
	out := make([]int, 0, f.Len()-1)
	for _, j := range rng.Perm(f.Len()) {
		if j != i && !p.HasLink(j) {
			out = append(out, j)
		}
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
