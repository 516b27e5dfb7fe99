package scene

import (
	"math"

	"github.com/lixenwraith/luna-scenes/field"
	"github.com/lixenwraith/luna-scenes/linker"
	"github.com/lixenwraith/luna-scenes/palette"
	"github.com/lixenwraith/luna-scenes/parameter"
	"github.com/lixenwraith/luna-scenes/render"
)

// twinkle is a star's brightness cycle in ticks
type twinkle struct {
	phase float64
	rate  float64
}

// constellation is a static star field; stars near the pointer link to spread-out neighbours
type constellation struct {
	twinkles []twinkle
}

func (c *constellation) build(s *Scene) {
	c.twinkles = make([]twinkle, s.field.Len())
	for i := range c.twinkles {
		// one to three seconds per cycle at sixty ticks a second
		period := 60 + s.rng.Float64()*120
		c.twinkles[i] = twinkle{phase: s.rng.Float64() * 2 * math.Pi, rate: 2 * math.Pi / period}
	}
}

func (c *constellation) step(s *Scene) {
	if !s.hasPointer {
		s.pairs = nil
		return
	}
	s.pairs = linker.Constellation(s.field.Points, s.field.Bounds, s.pointer, s.cfg.Stars)
}

func (c *constellation) style(s *Scene) render.Style {
	st := s.baseStyle()
	st.PairStroke = func(p linker.Pair) (palette.Color, float64) {
		return palette.White.WithAlpha(p.Strength * parameter.StarStrokeStrength), 0.2
	}
	st.Body = func(p *field.Point) palette.Color {
		if p.ID >= len(c.twinkles) {
			return p.Color
		}
		tw := c.twinkles[p.ID]
		return p.Color.Scale(0.6 + 0.4*math.Sin(s.field.Time*tw.rate+tw.phase))
	}
	return st
}
