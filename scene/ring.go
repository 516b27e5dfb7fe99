package scene

import (
	"math"

	"github.com/lixenwraith/luna-scenes/field"
	"github.com/lixenwraith/luna-scenes/linker"
	"github.com/lixenwraith/luna-scenes/palette"
	"github.com/lixenwraith/luna-scenes/parameter"
	"github.com/lixenwraith/luna-scenes/render"
	"github.com/lixenwraith/luna-scenes/vmath"
)

// ringTick converts field ticks to the seconds-like clock the shimmer runs on
const ringTick = 0.016

// ring orbits points around the access form: most on a ring, the rest on a right-hand arc
// Nearby points link by proximity and the pointer pulls points within reach
type ring struct{}

func (ring) build(s *Scene) {
	f := s.field
	f.Points = f.Points[:0]

	b := f.Bounds
	base := parameter.RingBaseFraction * math.Min(b.W(), b.H())
	n := s.cfg.Count
	onRing := int(math.Ceil(float64(n) * (1 - parameter.RingArcShare)))
	spread := parameter.RingArcSpread * math.Pi

	for i := 0; i < n; i++ {
		var angle, radius float64
		if i < onRing {
			angle = float64(i) / float64(onRing) * 2 * math.Pi
			radius = base + s.rng.Float64()*parameter.RingJitter
		} else {
			angle = s.rng.Float64()*spread - spread/2
			radius = base * (0.7 + s.rng.Float64()*0.6)
		}
		p := f.NewPoint(field.KindOrdinary)
		p.Pos = vmath.Polar(f.Center(), radius, angle)
		f.Add(p)
	}
}

func (ring) step(s *Scene) {
	f := s.field
	if s.hasPointer && f.Bounds.Contains(s.pointer) {
		for i := range f.Points {
			p := &f.Points[i]
			d := s.pointer.Sub(p.Pos)
			dist := d.Len()
			if dist > 0 && dist < parameter.RingPointerReach {
				p.Pos = f.Bounds.ClampPoint(p.Pos.Add(d.Scale(parameter.RingPointerPull / dist)))
			}
		}
	}
	s.pairs = linker.Proximity(f.Points, s.cfg.Threshold, s.cfg.Falloff)
}

func (ring) style(s *Scene) render.Style {
	st := s.baseStyle()
	t := s.field.Time * ringTick
	shimmer := 1 + math.Sin(t*2)*0.2

	st.PairStroke = func(p linker.Pair) (palette.Color, float64) {
		a, ok := s.field.Get(p.A)
		width := 0.5
		if ok {
			width += math.Sin(t+a.Orbit.Phase) * 0.2
		}
		return palette.LightBlue.WithAlpha(p.Strength * parameter.RingConnectStrength * shimmer), width
	}
	if s.cfg.Glow {
		glow := render.NewGradient(
			render.Stop{Offset: 0, Color: palette.LightBlue.WithAlpha(0.4)},
			render.Stop{Offset: 0.5, Color: palette.LightBlue.WithAlpha(0.1)},
			render.Stop{Offset: 1, Color: palette.LightBlue.WithAlpha(0)},
		)
		st.Adorn = func(c *render.Canvas, p *field.Point) {
			size := p.Radius * (parameter.RingGlowScale + math.Sin(t+p.Orbit.Phase)*0.5)
			c.RadialGradient(p.Pos, size, glow)
		}
	}
	if s.cfg.AmbientRadius > 0 {
		st.Ambient = &render.Ambient{
			Center: s.field.Center(),
			Radius: s.cfg.AmbientRadius,
			Gradient: render.NewGradient(
				render.Stop{Offset: 0, Color: palette.LightBlue.WithAlpha(0.12)},
				render.Stop{Offset: 0.5, Color: palette.LightBlue.WithAlpha(0.06)},
				render.Stop{Offset: 1, Color: palette.LightBlue.WithAlpha(0)},
			),
		}
	}
	return st
}
