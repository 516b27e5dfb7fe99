package scene

import (
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/luna-scenes/field"
	"github.com/lixenwraith/luna-scenes/linker"
	"github.com/lixenwraith/luna-scenes/palette"
	"github.com/lixenwraith/luna-scenes/parameter"
	"github.com/lixenwraith/luna-scenes/render"
	"github.com/lixenwraith/luna-scenes/vmath"
)

// mote is a decorative particle rising from the bottom edge
type mote struct {
	x     float64
	size  float64
	born  time.Time
	life  time.Duration
	color palette.Color
}

// backdrop is the full-screen organism behind the landing page
// One gold user cell follows the pointer and gathers links as it moves
type backdrop struct {
	user     int
	motes    []mote
	nextMote time.Time
	burst    field.Signal
	burstCfg SignalConfig
}

func (b *backdrop) build(s *Scene) {
	u := s.field.NewPoint(field.KindUser)
	u.Motion = field.MotionFollow
	u.Pos = s.field.Center()
	u.Vel = vmath.Vec2{}
	u.Radius = parameter.BackdropUserRadius
	u.Base = palette.Gold.WithAlpha(0.8)
	u.Color = u.Base
	b.user = s.field.Add(u)

	linker.AssignInitial(s.field, s.graph, s.cfg.Links, s.rng)

	b.burstCfg = SignalConfig{
		Start:  0.8,
		Growth: parameter.BackdropBurstGrowth,
		Decay:  parameter.BackdropBurstFade,
		End:    0.01,
		Width:  parameter.PixelSize,
		Color:  palette.Gold,
	}
}

func (b *backdrop) step(s *Scene) {
	for i := range s.graph.Edges {
		e := &s.graph.Edges[i]
		a, okA := s.field.Get(e.From)
		c, okB := s.field.Get(e.To)
		if !okA || !okB || !linker.ShouldRender(a.Pos, c.Pos, s.cfg.Threshold) {
			continue
		}
		chance := s.cfg.FireChance
		if a.Kind == field.KindUser {
			chance += s.cfg.FireBoost
		}
		if s.chance(chance) {
			s.fire(e.From, e.To, b.pulseColor(a, c))
		}
	}

	expand(&b.burst, b.burstCfg)
	if s.cfg.Glow {
		b.stepMotes(s)
	}
}

func (b *backdrop) pulseColor(a, c *field.Point) palette.Color {
	if a.Kind == field.KindUser || c.Kind == field.KindUser {
		return palette.Gold.WithAlpha(0.8)
	}
	return palette.Teal.WithAlpha(0.8)
}

// stepMotes spawns on a fixed cadence and drops expired motes
func (b *backdrop) stepMotes(s *Scene) {
	if !s.now.Before(b.nextMote) && len(b.motes) < parameter.BackdropMoteMax {
		b.nextMote = s.now.Add(parameter.BackdropMoteInterval)
		bounds := s.field.Bounds
		hue := parameter.BackdropMoteHueMin + s.rng.Float64()*(parameter.BackdropMoteHueMax-parameter.BackdropMoteHueMin)
		r, g, bl := colorful.Hsl(hue, 0.7+s.rng.Float64()*0.3, 0.6+s.rng.Float64()*0.2).Clamped().RGB255()
		life := parameter.BackdropMoteLifeMin + time.Duration(s.rng.Int63n(int64(parameter.BackdropMoteLifeMax-parameter.BackdropMoteLifeMin)))
		b.motes = append(b.motes, mote{
			x:     bounds.Min.X + s.rng.Float64()*bounds.W(),
			size:  parameter.BackdropMoteSizeMin + s.rng.Float64()*(parameter.BackdropMoteSizeMax-parameter.BackdropMoteSizeMin),
			born:  s.now,
			life:  life,
			color: palette.RGB{R: r, G: g, B: bl}.WithAlpha(0.3 + s.rng.Float64()*0.4),
		})
	}

	kept := b.motes[:0]
	for _, m := range b.motes {
		if s.now.Sub(m.born) < m.life {
			kept = append(kept, m)
		}
	}
	b.motes = kept
}

func (b *backdrop) pointer(s *Scene, pos vmath.Vec2) {
	s.field.Follow(b.user, pos)
	idx, ok := s.runtime.MaybeLink(s.field, s.graph, b.user, s.now, s.rng)
	if !ok {
		return
	}
	s.runtimeLinks++
	e := s.graph.Edges[idx]
	s.fire(e.From, e.To, palette.Gold.WithAlpha(0.8))
}

func (b *backdrop) style(s *Scene) render.Style {
	st := s.baseStyle()
	st.EdgeStroke = func(a, c *field.Point, _ *linker.Edge, o float64) (palette.Color, float64) {
		if a.Kind == field.KindUser || c.Kind == field.KindUser {
			return palette.Gold.WithAlpha(o * 0.5), o * 1.5
		}
		return palette.Teal.WithAlpha(o * 0.3), o * 1.5
	}
	st.Adorn = func(c *render.Canvas, p *field.Point) {
		if p.Kind != field.KindUser {
			return
		}
		c.Disc(p.Pos, p.Radius+5, palette.Gold.WithAlpha(0.2))
		c.Disc(p.Pos, p.Radius+10, palette.Gold.WithAlpha(0.1))
	}
	st.Effects = func(c *render.Canvas) {
		bounds := s.field.Bounds
		for _, m := range b.motes {
			t := float64(s.now.Sub(m.born)) / float64(m.life)
			pos := vmath.V(m.x, bounds.Max.Y-t*bounds.H())
			c.Disc(pos, m.size, m.color.Scale(math.Sin(math.Pi*vmath.Clamp01(t))))
		}
		if b.burst.Active {
			c.Ring(s.field.Center(), b.burst.Radius, b.burstCfg.Width, b.burstCfg.Color.WithAlpha(b.burst.Strength))
		}
	}
	return st
}

// flare starts the expanding ring shown when the access form is submitted
func (b *backdrop) flare() {
	b.burst = field.Signal{Active: true, Radius: 10, Strength: b.burstCfg.Start}
}
