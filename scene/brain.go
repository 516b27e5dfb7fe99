package scene

import (
	"github.com/lixenwraith/luna-scenes/field"
	"github.com/lixenwraith/luna-scenes/linker"
	"github.com/lixenwraith/luna-scenes/palette"
	"github.com/lixenwraith/luna-scenes/parameter"
	"github.com/lixenwraith/luna-scenes/render"
)

// brain is five fixed regions in a mesh; a firing region floods its links with pulses
type brain struct{}

func (brain) build(s *Scene) {
	linker.FullMesh(s.field, s.graph, s.cfg.MeshGap, s.cfg.Links.Alpha.Min)
}

func (brain) step(s *Scene) {
	for i := range s.field.Points {
		p := &s.field.Points[i]
		if !s.chance(s.cfg.FireChance) {
			continue
		}
		p.Activity = s.cfg.Peak
		targets := s.shuffledLinks(p)
		if m := s.cfg.PulseCount.Max; m > 0 && m < len(targets) {
			targets = targets[:m]
		}
		for _, to := range targets {
			s.fire(i, to, pulseGold)
		}
	}
}

func (brain) style(s *Scene) render.Style {
	st := s.baseStyle()
	st.EdgeStroke = func(_, _ *field.Point, e *linker.Edge, o float64) (palette.Color, float64) {
		return palette.Teal.WithAlpha(e.Alpha * o), 1
	}
	st.Body = func(p *field.Point) palette.Color {
		if p.Activity > parameter.BrainActiveThreshold {
			return palette.Gold.WithAlpha(p.Activity)
		}
		return palette.Teal.WithAlpha(0.5 + p.Activity*0.5)
	}
	return st
}
