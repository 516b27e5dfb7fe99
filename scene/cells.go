package scene

import (
	"github.com/lixenwraith/luna-scenes/field"
	"github.com/lixenwraith/luna-scenes/palette"
	"github.com/lixenwraith/luna-scenes/render"
)

// cells bounce around and occasionally emit a signal disc
// Cells the disc edge passes over flash gold
type cells struct{}

func (cells) build(*Scene) {}

func (cells) step(s *Scene) {
	sc := s.cfg.Signal
	pts := s.field.Points
	for i := range pts {
		p := &pts[i]
		if !p.Signal.Active {
			if s.chance(s.cfg.FireChance) {
				p.Signal = field.Signal{Active: true, Radius: p.Radius, Strength: sc.Start}
			}
			continue
		}
		if !expand(&p.Signal, sc) {
			continue
		}
		for j := range pts {
			if j != i && reached(p.Signal, p.Pos, pts[j].Pos, sc) {
				s.flash(j, palette.Gold.WithAlpha(0.3+s.rng.Float64()*0.3), s.cfg.Flash)
			}
		}
	}
}

func (cells) style(s *Scene) render.Style {
	st := s.baseStyle()
	sc := s.cfg.Signal
	st.Adorn = func(c *render.Canvas, p *field.Point) {
		if p.Signal.Active {
			c.Disc(p.Pos, p.Signal.Radius, sc.Color.WithAlpha(p.Signal.Strength))
		}
	}
	return st
}
