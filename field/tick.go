package field

import (
	"math"

	"github.com/lixenwraith/luna-scenes/vmath"
)

// Tick advances every point by one frame
// Positions are inside Bounds when Tick returns
func (f *Field) Tick() {
	f.Time++
	decay := f.cfg.ActivityDecay
	for i := range f.Points {
		p := &f.Points[i]
		switch p.Motion {
		case MotionLinear:
			f.stepLinear(p)
		case MotionHeading:
			f.stepHeading(p, f.Bounds)
		case MotionBounce:
			f.stepHeading(p, f.Bounds.Inset(p.Radius))
		case MotionOrbital:
			f.stepOrbital(p)
		case MotionFollow:
			f.stepFollow(p)
		}
		p.Pos = f.Bounds.ClampPoint(p.Pos)

		if decay > 0 && decay < 1 {
			p.Activity *= decay
		}
	}
}

func (f *Field) stepLinear(p *Point) {
	p.Pos = f.Bounds.WrapPoint(p.Pos.Add(p.Vel))

	if f.cfg.PerturbChance > 0 && f.rng.Float64() < f.cfg.PerturbChance {
		amt := f.cfg.PerturbAmount
		p.Vel.X += (f.rng.Float64() - 0.5) * amt
		p.Vel.Y += (f.rng.Float64() - 0.5) * amt
		if f.cfg.MaxSpeed > 0 {
			p.Vel = vmath.ClampMagnitude(p.Vel, f.cfg.MaxSpeed)
		}
	}
}

// stepHeading moves along the heading and mirrors it when leaving box
func (f *Field) stepHeading(p *Point, box vmath.Rect) {
	p.Heading += p.Spin
	p.Pos.X += math.Cos(p.Heading) * p.Speed
	p.Pos.Y += math.Sin(p.Heading) * p.Speed

	if p.Pos.X < box.Min.X || p.Pos.X > box.Max.X {
		p.Heading = math.Pi - p.Heading
	}
	if p.Pos.Y < box.Min.Y || p.Pos.Y > box.Max.Y {
		p.Heading = -p.Heading
	}
	p.Pos = box.ClampPoint(p.Pos)
}

func (f *Field) stepOrbital(p *Point) {
	o := &p.Orbit
	o.Angle += o.AngularSpeed
	r := o.Radius + f.cfg.OrbitAmplitude*math.Sin(f.Time*o.Frequency+o.Phase)
	if r < 0 {
		r = 0
	}
	p.Pos = vmath.Polar(f.Center(), r, o.Angle)
}

// stepFollow closes a fixed fraction of the remaining distance
func (f *Field) stepFollow(p *Point) {
	if !p.Following {
		return
	}
	d := p.Target.Sub(p.Pos)
	ease := f.cfg.FollowEase
	if ease <= 0 {
		ease = 0.05
	}
	p.Pos = p.Pos.Add(d.Scale(ease))

	eps := f.cfg.FollowEpsilon
	if eps <= 0 {
		eps = 0.5
	}
	if math.Abs(d.X) <= eps && math.Abs(d.Y) <= eps {
		p.Following = false
	}
}
