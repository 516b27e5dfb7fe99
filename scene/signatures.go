package scene

import (
	"math"

	"github.com/lixenwraith/luna-scenes/field"
	"github.com/lixenwraith/luna-scenes/linker"
	"github.com/lixenwraith/luna-scenes/palette"
	"github.com/lixenwraith/luna-scenes/parameter"
	"github.com/lixenwraith/luna-scenes/render"
	"github.com/lixenwraith/luna-scenes/signature"
)

// signatures drifts white dust and one coloured particle per contributor
// Contributor particles form runtime links that start with a pulse already on them
type signatures struct {
	burst      field.Signal
	burstColor palette.RGB
}

func (g *signatures) build(s *Scene) {
	if s.env.signatures != nil {
		for _, sig := range s.env.signatures() {
			g.add(s, sig)
		}
	}
	linker.AssignInitial(s.field, s.graph, s.cfg.Links, s.rng)
}

// add places a contributor particle without wiring it
func (g *signatures) add(s *Scene, sig signature.Signature) int {
	p := s.field.NewPoint(field.KindSignature)
	p.Label = sig.Name
	p.Radius = parameter.SignatureRadiusMin + s.rng.Float64()*(parameter.SignatureRadiusMax-parameter.SignatureRadiusMin)
	p.Speed = parameter.SignatureSpeedMin + s.rng.Float64()*(parameter.SignatureSpeedMax-parameter.SignatureSpeedMin)
	p.Spin = (s.rng.Float64()*2 - 1) * parameter.SignatureSpin
	p.Base = sig.Color.WithAlpha(0.6 + s.rng.Float64()*0.4)
	p.Color = p.Base
	return s.field.Add(p)
}

func (g *signatures) sign(s *Scene, sig signature.Signature, effects bool) {
	id := g.add(s, sig)
	linker.AssignFor(s.field, s.graph, id, s.cfg.Links, s.rng)
	if !effects {
		return
	}

	g.burst = field.Signal{Active: true, Radius: parameter.SignatureBurstStart, Strength: s.cfg.Signal.Start}
	g.burstColor = sig.Color
	for i := range s.graph.Edges {
		if s.chance(parameter.SignatureBurstPulseFrac) {
			g.pulseEdge(s, i)
		}
	}
}

// pulseEdge rides a fading pulse along edge idx, tinted by its contributor end
func (g *signatures) pulseEdge(s *Scene, idx int) {
	e := &s.graph.Edges[idx]
	a, okA := s.field.Get(e.From)
	b, okB := s.field.Get(e.To)
	if !okA || !okB {
		return
	}
	s.pulses.SpawnOnEdge(s.field, s.graph, idx, s.pulseSpec(edgeTint(a, b).WithAlpha(1)))
}

func (g *signatures) step(s *Scene) {
	for i := range s.graph.Edges {
		e := &s.graph.Edges[i]
		if e.Pulse != 0 {
			continue
		}
		a, okA := s.field.Get(e.From)
		b, okB := s.field.Get(e.To)
		if okA && okB && linker.ShouldRender(a.Pos, b.Pos, s.cfg.Threshold) && s.chance(s.cfg.FireChance) {
			g.pulseEdge(s, i)
		}
	}

	for i := range s.field.Points {
		if s.field.Points[i].Kind != field.KindSignature {
			continue
		}
		if idx, ok := s.runtime.MaybeLink(s.field, s.graph, i, s.now, s.rng); ok {
			s.runtimeLinks++
			g.pulseEdge(s, idx)
		}
	}

	expand(&g.burst, s.cfg.Signal)
}

// edgeTint picks the contributor colour of an edge, white between dust
func edgeTint(a, b *field.Point) palette.RGB {
	switch {
	case a.Kind == field.KindSignature:
		return a.Base.RGB
	case b.Kind == field.KindSignature:
		return b.Base.RGB
	}
	return palette.White
}

func (g *signatures) style(s *Scene) render.Style {
	st := s.baseStyle()
	st.EdgeStroke = func(a, b *field.Point, e *linker.Edge, o float64) (palette.Color, float64) {
		alpha := e.Alpha * o
		if a.Kind != field.KindSignature && b.Kind != field.KindSignature {
			alpha *= 0.5
		}
		return edgeTint(a, b).WithAlpha(alpha), 1
	}
	if s.cfg.Glow {
		st.Adorn = func(c *render.Canvas, p *field.Point) {
			if p.Kind == field.KindSignature {
				c.Disc(p.Pos, p.Radius*2, p.Color.Scale(0.3))
			}
		}
	}
	st.Effects = func(c *render.Canvas) {
		if g.burst.Active {
			c.Disc(s.field.Center(), g.burst.Radius, g.burstColor.WithAlpha(math.Min(g.burst.Strength, 1)))
		}
	}
	return st
}
