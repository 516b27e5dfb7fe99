package linker

import (
	"github.com/lixenwraith/luna-scenes/field"
)

// Proximity returns every unordered pair closer than radius, strongest when coincident
func Proximity(points []field.Point, radius float64, falloff Falloff) []Pair {
	if len(points) < 2 || radius <= 0 {
		return nil
	}
	var out []Pair
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			d := points[i].Pos.Dist(points[j].Pos)
			if d >= radius {
				continue
			}
			out = append(out, Pair{A: i, B: j, Strength: Opacity(d, radius, falloff)})
		}
	}
	return out
}
