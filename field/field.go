package field

import (
	"math"
	"math/rand"

	"github.com/lixenwraith/luna-scenes/palette"
	"github.com/lixenwraith/luna-scenes/vmath"
)

// Field is the point set of one scene
type Field struct {
	Points []Point
	Bounds vmath.Rect
	// Time accumulates one unit per tick and keys orbital oscillation
	Time float64

	cfg Config
	rng *rand.Rand
}

// Initialize creates count points laid out inside bounds
func Initialize(count int, bounds vmath.Rect, cfg Config, rng *rand.Rand) *Field {
	f := &Field{
		Points: make([]Point, 0, count+1),
		Bounds: bounds,
		cfg:    cfg,
		rng:    rng,
	}
	for i := 0; i < count; i++ {
		p := f.NewPoint(KindOrdinary)
		p.Pos = f.layoutPosition(i, count)
		f.Add(p)
	}
	return f
}

// Config returns the configuration snapshot the field was built with
func (f *Field) Config() Config {
	return f.cfg
}

// Center returns the middle of the bounds
func (f *Field) Center() vmath.Vec2 {
	return f.Bounds.Center()
}

// NewPoint samples a detached point from the configuration at a uniform position
func (f *Field) NewPoint(kind Kind) Point {
	cfg := &f.cfg
	p := Point{
		Kind:   kind,
		Motion: cfg.Motion,
		Radius: cfg.Radius.Sample(f.rng),
		Pos:    f.uniformPosition(),
	}

	switch cfg.Motion {
	case MotionLinear:
		p.Vel = vmath.V(cfg.Velocity.Sample(f.rng), cfg.Velocity.Sample(f.rng))
	case MotionHeading, MotionBounce:
		p.Heading = f.rng.Float64() * 2 * math.Pi
		p.Speed = cfg.Speed.Sample(f.rng)
		p.Spin = cfg.Spin.Sample(f.rng)
	case MotionOrbital:
		p.Orbit.AngularSpeed = cfg.AngularSpeed.Sample(f.rng)
		p.Orbit.Frequency = cfg.OrbitFrequency.Sample(f.rng)
		p.Orbit.Phase = f.rng.Float64() * 2 * math.Pi
	}

	p.Base = cfg.Palette.Pick(f.rng)
	p.Color = p.Base
	p.Activity = cfg.Activity.Sample(f.rng)

	if len(cfg.Classes) > 0 {
		i := palette.WeightedIndex(f.rng, len(cfg.Classes), func(i int) float64 { return cfg.Classes[i].Weight })
		p.Class = cfg.Classes[i].Class
	}
	return p
}

// Add appends p, assigns its ID and returns it
func (f *Field) Add(p Point) int {
	p.ID = len(f.Points)
	if p.Motion == MotionOrbital {
		f.syncOrbit(&p)
	}
	f.Points = append(f.Points, p)
	return p.ID
}

// Get returns the live point for id, false when id is stale
func (f *Field) Get(id int) (*Point, bool) {
	if id < 0 || id >= len(f.Points) {
		return nil, false
	}
	return &f.Points[id], true
}

// Len returns the number of points
func (f *Field) Len() int {
	return len(f.Points)
}

// Rand exposes the field's random source so scene behaviours share one seed
func (f *Field) Rand() *rand.Rand {
	return f.rng
}

// SetBounds changes the drawing area without moving points
// The next tick brings stragglers back inside
func (f *Field) SetBounds(b vmath.Rect) {
	f.Bounds = b
}

// Follow points a follower at target; the target is clamped to the bounds
func (f *Field) Follow(id int, target vmath.Vec2) {
	p, ok := f.Get(id)
	if !ok || p.Motion != MotionFollow {
		return
	}
	p.Target = f.Bounds.ClampPoint(target)
	p.Following = true
}

func (f *Field) uniformPosition() vmath.Vec2 {
	return vmath.V(
		f.Bounds.Min.X+f.rng.Float64()*f.Bounds.W(),
		f.Bounds.Min.Y+f.rng.Float64()*f.Bounds.H(),
	)
}

func (f *Field) layoutPosition(i, n int) vmath.Vec2 {
	switch f.cfg.Layout {
	case LayoutRing:
		angle := float64(i) / float64(n) * 2 * math.Pi
		dist := f.cfg.RingDistance.Sample(f.rng)
		return f.Bounds.ClampPoint(vmath.Polar(f.Center(), dist, angle))
	case LayoutFixed:
		if i < len(f.cfg.Anchors) {
			a := f.cfg.Anchors[i]
			return vmath.V(f.Bounds.Min.X+a.X*f.Bounds.W(), f.Bounds.Min.Y+a.Y*f.Bounds.H())
		}
	}
	return f.uniformPosition()
}

// syncOrbit derives polar parameters from the current position
func (f *Field) syncOrbit(p *Point) {
	if p.Motion != MotionOrbital {
		return
	}
	d := p.Pos.Sub(f.Center())
	p.Orbit.Angle = d.Angle()
	p.Orbit.Radius = d.Len()
}
