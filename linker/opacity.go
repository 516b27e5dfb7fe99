package linker

import (
	"math"

	"github.com/lixenwraith/luna-scenes/vmath"
)

// Falloff shapes opacity against distance
type Falloff uint8

const (
	FalloffLinear Falloff = iota
	FalloffSquared
)

// Opacity maps a distance to [0,1]: 1 at distance 0, 0 at or beyond threshold
// A threshold of zero or less disables distance gating
func Opacity(distance, threshold float64, falloff Falloff) float64 {
	if math.IsNaN(distance) {
		return 0
	}
	if threshold <= 0 {
		return 1
	}
	if distance < 0 {
		distance = 0
	}
	if distance >= threshold {
		return 0
	}
	o := 1 - distance/threshold
	if falloff == FalloffSquared {
		o *= o
	}
	return vmath.Clamp01(o)
}

// ShouldRender reports whether a pair is close enough to draw
func ShouldRender(a, b vmath.Vec2, threshold float64) bool {
	if threshold <= 0 {
		return true
	}
	return a.Dist(b) < threshold
}
