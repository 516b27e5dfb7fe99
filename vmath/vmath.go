// Package vmath provides float64 2D vector math for scene geometry
package vmath

import "math"

// Vec2 is a point or displacement in logical pixels
type Vec2 struct {
	X, Y float64
}

// V constructs a Vec2
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2       { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2       { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(f float64) Vec2  { return Vec2{v.X * f, v.Y * f} }
func (v Vec2) Dot(o Vec2) float64    { return v.X*o.X + v.Y*o.Y }
func (v Vec2) LenSq() float64        { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Len() float64          { return math.Sqrt(v.LenSq()) }
func (v Vec2) Dist(o Vec2) float64   { return math.Hypot(o.X-v.X, o.Y-v.Y) }
func (v Vec2) DistSq(o Vec2) float64 { return o.Sub(v).LenSq() }
func (v Vec2) Angle() float64        { return math.Atan2(v.Y, v.X) }
func (v Vec2) IsFinite() bool        { return IsFinite(v.X) && IsFinite(v.Y) }
func (v Vec2) Eq(o Vec2, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}

// Polar returns the point at radius r and angle a (radians) around c
func Polar(c Vec2, r, a float64) Vec2 {
	return Vec2{c.X + math.Cos(a)*r, c.Y + math.Sin(a)*r}
}

// Lerp interpolates a→b by t without clamping t
func Lerp(a, b Vec2, t float64) Vec2 {
	return Vec2{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// ClampMagnitude limits v to max length preserving direction
func ClampMagnitude(v Vec2, max float64) Vec2 {
	l := v.Len()
	if l <= max || l == 0 {
		return v
	}
	return v.Scale(max / l)
}

// Clamp limits x to [lo, hi]; an inverted range collapses to its midpoint
func Clamp(x, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Clamp01 limits x to [0,1], NaN maps to 0
func Clamp01(x float64) float64 {
	if x != x {
		return 0
	}
	return Clamp(x, 0, 1)
}

// IsFinite reports whether f is neither NaN nor ±Inf
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// AngleDiff returns the absolute smallest difference between two angles in radians
func AngleDiff(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 2*math.Pi)
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}
