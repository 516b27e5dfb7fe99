package scene

import (
	"time"

	"github.com/lixenwraith/luna-scenes/field"
	"github.com/lixenwraith/luna-scenes/linker"
	"github.com/lixenwraith/luna-scenes/palette"
	"github.com/lixenwraith/luna-scenes/parameter"
	"github.com/lixenwraith/luna-scenes/render"
)

// network is a gold hub broadcasting rings to a surrounding ring of nodes
type network struct {
	hub int
}

func (n *network) build(s *Scene) {
	h := s.field.NewPoint(field.KindHub)
	h.Motion = field.MotionStatic
	h.Pos = s.field.Center()
	h.Radius = parameter.NetworkHubRadius
	h.Base = palette.Gold.WithAlpha(0.8)
	h.Color = h.Base
	n.hub = s.field.Add(h)

	linker.Star(s.field, s.graph, n.hub, s.cfg.Links.Alpha.Min)
}

func (n *network) step(s *Scene) {
	hub, ok := s.field.Get(n.hub)
	if !ok {
		return
	}
	sc := s.cfg.Signal
	if !hub.Signal.Active {
		if s.chance(s.cfg.FireChance) {
			hub.Signal = field.Signal{Active: true, Radius: hub.Radius, Strength: sc.Start}
			s.flash(n.hub, palette.Gold.WithAlpha(1), s.cfg.HubFlash)
		}
		return
	}

	if !expand(&hub.Signal, sc) {
		return
	}
	for i := range s.field.Points {
		if i == n.hub || !reached(hub.Signal, hub.Pos, s.field.Points[i].Pos, sc) {
			continue
		}
		d := s.cfg.Flash
		if s.cfg.FlashJitter > 0 {
			d += time.Duration(s.rng.Int63n(int64(s.cfg.FlashJitter)))
		}
		s.flash(i, pulseGold, d)
	}
}

func (n *network) style(s *Scene) render.Style {
	st := s.baseStyle()
	sc := s.cfg.Signal
	st.EdgeStroke = func(_, _ *field.Point, e *linker.Edge, o float64) (palette.Color, float64) {
		return palette.Teal.WithAlpha(e.Alpha * o), 1
	}
	st.Adorn = func(c *render.Canvas, p *field.Point) {
		if p.Kind == field.KindHub && p.Signal.Active {
			c.Ring(p.Pos, p.Signal.Radius, sc.Width, sc.Color.WithAlpha(p.Signal.Strength))
		}
	}
	return st
}
