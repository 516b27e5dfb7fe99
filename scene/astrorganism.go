package scene

import (
	"github.com/lixenwraith/luna-scenes/field"
	"github.com/lixenwraith/luna-scenes/linker"
	"github.com/lixenwraith/luna-scenes/palette"
	"github.com/lixenwraith/luna-scenes/pulse"
	"github.com/lixenwraith/luna-scenes/render"
)

// astrorganism rings organic and digital elements around a soft centre glow
// Pulses between different classes may integrate their target
type astrorganism struct{}

// classTint colours a connection or pulse by the classes of its ends
func classTint(a, b field.Class) palette.RGB {
	if a != b {
		return palette.Lavender
	}
	if a == field.ClassOrganic {
		return palette.Teal
	}
	return palette.Gold
}

func (astrorganism) build(s *Scene) {
	linker.AssignInitial(s.field, s.graph, s.cfg.Links, s.rng)
}

func (astrorganism) step(s *Scene) {
	for i := range s.field.Points {
		p := &s.field.Points[i]
		if !s.chance(s.cfg.FireChance) {
			continue
		}
		p.Activity = s.cfg.Peak
		targets := s.shuffledLinks(p)
		if n := s.cfg.PulseCount.Sample(s.rng); n < len(targets) {
			targets = targets[:n]
		}
		for _, to := range targets {
			t, ok := s.field.Get(to)
			if !ok {
				continue
			}
			s.fire(i, to, classTint(p.Class, t.Class).WithAlpha(0.8))
		}
	}
}

func (astrorganism) arrive(s *Scene, p pulse.Pulse, target *field.Point) {
	if target == nil || !s.chance(s.cfg.Integrate) {
		return
	}
	src, ok := s.field.Get(p.From)
	if !ok || src.Class == target.Class {
		return
	}
	target.Class = field.ClassIntegrated
	target.Base = palette.Lavender.WithAlpha(0.8)
	target.Color = target.Base
}

func (astrorganism) style(s *Scene) render.Style {
	st := s.baseStyle()
	st.EdgeStroke = func(a, b *field.Point, e *linker.Edge, o float64) (palette.Color, float64) {
		return classTint(a.Class, b.Class).WithAlpha(e.Alpha * o), 1
	}
	if s.cfg.Glow {
		st.Adorn = func(c *render.Canvas, p *field.Point) {
			c.Disc(p.Pos, p.Radius*2, p.Color.RGB.WithAlpha(0.2))
		}
	}
	if s.cfg.AmbientRadius > 0 {
		st.Ambient = &render.Ambient{
			Center: s.field.Center(),
			Radius: s.cfg.AmbientRadius,
			Gradient: render.NewGradient(
				render.Stop{Offset: 0, Color: palette.White.WithAlpha(0.1)},
				render.Stop{Offset: 0.5, Color: palette.Lavender.WithAlpha(0.05)},
				render.Stop{Offset: 1, Color: palette.Black.WithAlpha(0)},
			),
		}
	}
	return st
}
