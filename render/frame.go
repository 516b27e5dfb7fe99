package render

import (
	"github.com/lixenwraith/luna-scenes/field"
	"github.com/lixenwraith/luna-scenes/linker"
	"github.com/lixenwraith/luna-scenes/palette"
	"github.com/lixenwraith/luna-scenes/pulse"
	"github.com/lixenwraith/luna-scenes/vmath"
)

// Frame is the post-advance state of one scene
type Frame struct {
	Field  *field.Field
	Graph  *linker.Graph
	Pulses []pulse.Pulse
	// Pairs are per-frame undirected links drawn with the graph edges
	Pairs []linker.Pair
}

// Ambient is a radial glow painted last
type Ambient struct {
	Center   vmath.Vec2
	Radius   float64
	Gradient Gradient
}

// Style is the per-variant look of a scene
type Style struct {
	Background RGB
	Threshold  float64
	Falloff    linker.Falloff

	// EdgeStroke returns the stroke of an edge at opacity o; zero alpha skips it
	EdgeStroke func(a, b *field.Point, e *linker.Edge, o float64) (palette.Color, float64)
	// PairStroke strokes a per-frame pair
	PairStroke func(p linker.Pair) (palette.Color, float64)
	// Decorate draws haloes and rings under a point body
	Decorate func(c *Canvas, p *field.Point)
	// Body overrides the point colour, nil uses Point.Color
	Body func(p *field.Point) palette.Color
	// Adorn draws over a point body, signal discs and glows
	Adorn func(c *Canvas, p *field.Point)
	// Effects draws scene-wide effects after pulses
	Effects func(c *Canvas)
	Ambient *Ambient
}

// Stats counts what a frame drew
type Stats struct {
	Edges  int
	Points int
	Pulses int
}

// FrameRenderer paints frames in a fixed order
// clear, connections, points, pulses, effects, ambient gradient
type FrameRenderer struct {
	Stats Stats
}

// Render draws f onto c
func (r *FrameRenderer) Render(c *Canvas, f Frame, st Style) {
	r.Stats = Stats{}
	c.Clear(st.Background)
	if c.Empty() || f.Field == nil {
		return
	}

	c.Mode = BlendAlpha
	r.connections(c, f, st)
	r.points(c, f, st)

	c.Mode = BlendAdd
	for i := range f.Pulses {
		p := &f.Pulses[i]
		size := p.Size
		if size <= 0 {
			size = 2
		}
		c.Disc(p.Position(), size, p.Color)
		r.Stats.Pulses++
	}

	c.Mode = BlendAlpha
	if st.Effects != nil {
		st.Effects(c)
	}
	if a := st.Ambient; a != nil {
		c.RadialGradient(a.Center, a.Radius, a.Gradient)
	}
}

func (r *FrameRenderer) connections(c *Canvas, f Frame, st Style) {
	if f.Graph != nil && st.EdgeStroke != nil {
		for i := range f.Graph.Edges {
			e := &f.Graph.Edges[i]
			a, okA := f.Field.Get(e.From)
			b, okB := f.Field.Get(e.To)
			if !okA || !okB {
				continue
			}
			o := linker.Opacity(a.Pos.Dist(b.Pos), st.Threshold, st.Falloff)
			if o <= 0 {
				continue
			}
			col, w := st.EdgeStroke(a, b, e, o)
			if col.A <= 0 {
				continue
			}
			c.Line(a.Pos, b.Pos, col, w)
			r.Stats.Edges++
		}
	}
	if st.PairStroke != nil {
		for _, p := range f.Pairs {
			a, okA := f.Field.Get(p.A)
			b, okB := f.Field.Get(p.B)
			if !okA || !okB {
				continue
			}
			col, w := st.PairStroke(p)
			if col.A <= 0 {
				continue
			}
			c.Line(a.Pos, b.Pos, col, w)
			r.Stats.Edges++
		}
	}
}

func (r *FrameRenderer) points(c *Canvas, f Frame, st Style) {
	for i := range f.Field.Points {
		p := &f.Field.Points[i]
		if st.Decorate != nil {
			st.Decorate(c, p)
		}
		col := p.Color
		if st.Body != nil {
			col = st.Body(p)
		}
		c.Disc(p.Pos, p.Radius, col)
		if st.Adorn != nil {
			st.Adorn(c, p)
		}
		r.Stats.Points++
	}
}
