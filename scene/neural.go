package scene

import (
	"github.com/lixenwraith/luna-scenes/field"
	"github.com/lixenwraith/luna-scenes/linker"
	"github.com/lixenwraith/luna-scenes/palette"
	"github.com/lixenwraith/luna-scenes/pulse"
	"github.com/lixenwraith/luna-scenes/render"
)

// neural fires one pulse at a time along a random link; both ends flash
type neural struct{}

var pulseGold = palette.Gold.WithAlpha(0.8)

func (neural) build(s *Scene) {
	linker.AssignInitial(s.field, s.graph, s.cfg.Links, s.rng)
}

func (neural) step(s *Scene) {
	for i := range s.field.Points {
		p := &s.field.Points[i]
		if len(p.Links) == 0 || !s.chance(s.cfg.FireChance) {
			continue
		}
		to := p.Links[s.rng.Intn(len(p.Links))]
		if s.fire(i, to, pulseGold) != 0 {
			s.flash(i, pulseGold, s.cfg.Flash)
		}
	}
}

func (neural) arrive(s *Scene, _ pulse.Pulse, target *field.Point) {
	if target != nil {
		s.flash(target.ID, pulseGold, s.cfg.Flash)
	}
}

func (neural) style(s *Scene) render.Style {
	st := s.baseStyle()
	st.EdgeStroke = func(_, _ *field.Point, e *linker.Edge, o float64) (palette.Color, float64) {
		return palette.Teal.WithAlpha(e.Alpha * o), 1
	}
	return st
}
