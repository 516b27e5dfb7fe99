package linker

import (
	"math"
	"sort"

	"github.com/lixenwraith/luna-scenes/field"
	"github.com/lixenwraith/luna-scenes/vmath"
)

// ConstellationConfig measures distances in percent of the bounds on each axis
type ConstellationConfig struct {
	// Reach is how close to the pointer a star must be to sprout links
	Reach float64
	// LinkRadius is the maximum star-to-star distance of a link
	LinkRadius float64
	// MaxLinks caps links originating from one star
	MaxLinks int
	// MinAngle is the minimum angular separation between links of one star, radians
	MinAngle float64
}

// Pair is an undirected link recomputed each frame
type Pair struct {
	A, B int
	// Strength combines link length and pointer proximity, in [0,1]
	Strength float64
}

type nearby struct {
	id    int
	dist  float64
	angle float64
}

// Constellation links stars near the pointer to well-spread neighbours
// Each unordered pair appears at most once
func Constellation(points []field.Point, bounds vmath.Rect, pointer vmath.Vec2, cfg ConstellationConfig) []Pair {
	if len(points) < 2 || bounds.Empty() || cfg.Reach <= 0 || cfg.LinkRadius <= 0 {
		return nil
	}

	pct := make([]vmath.Vec2, len(points))
	for i := range points {
		pct[i] = toPercent(points[i].Pos, bounds)
	}
	mouse := toPercent(pointer, bounds)

	seen := make(map[[2]int]struct{})
	var out []Pair
	var near []nearby

	for i := range pct {
		toMouse := mouse.Dist(pct[i])
		if toMouse >= cfg.Reach {
			continue
		}

		near = near[:0]
		for j := range pct {
			if j == i {
				continue
			}
			d := pct[i].Dist(pct[j])
			if d > 0 && d < cfg.LinkRadius {
				near = append(near, nearby{id: j, dist: d, angle: pct[j].Sub(pct[i]).Angle()})
			}
		}
		if len(near) == 0 {
			continue
		}
		sort.SliceStable(near, func(a, b int) bool { return near[a].dist < near[b].dist })

		selected := near[:1:1]
		for _, c := range near[1:] {
			if len(selected) >= cfg.MaxLinks {
				break
			}
			spread := true
			for _, s := range selected {
				if vmath.AngleDiff(s.angle, c.angle) <= cfg.MinAngle {
					spread = false
					break
				}
			}
			if spread {
				selected = append(selected, c)
			}
		}

		mouseFade := 1 - toMouse/cfg.Reach
		for _, s := range selected {
			key := [2]int{min(i, s.id), max(i, s.id)}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, Pair{
				A:        i,
				B:        s.id,
				Strength: vmath.Clamp01((1 - s.dist/cfg.LinkRadius) * mouseFade),
			})
		}
	}
	return out
}

func toPercent(p vmath.Vec2, b vmath.Rect) vmath.Vec2 {
	return vmath.V(
		(p.X-b.Min.X)/b.W()*100,
		(p.Y-b.Min.Y)/b.H()*100,
	)
}

// DefaultMinAngle is the 45° spread used by the landing page
const DefaultMinAngle = math.Pi / 4
