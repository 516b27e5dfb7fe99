package render

import (
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/luna-scenes/palette"
	"github.com/lixenwraith/luna-scenes/vmath"
)

// Stop is one colour stop of a radial gradient, Offset in [0,1]
type Stop struct {
	Offset float64
	Color  palette.Color
}

// Gradient is a sorted list of stops interpolated in RGB space
type Gradient []Stop

// NewGradient sorts stops by offset
func NewGradient(stops ...Stop) Gradient {
	g := append(Gradient(nil), stops...)
	sort.SliceStable(g, func(i, j int) bool { return g[i].Offset < g[j].Offset })
	return g
}

func toColorful(c RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// At samples the gradient at t; outside the stop range the end stops hold
func (g Gradient) At(t float64) palette.Color {
	switch {
	case len(g) == 0:
		return palette.Color{}
	case t <= g[0].Offset:
		return g[0].Color
	case t >= g[len(g)-1].Offset:
		return g[len(g)-1].Color
	}
	for i := 1; i < len(g); i++ {
		hi := g[i]
		if t > hi.Offset {
			continue
		}
		if t == hi.Offset {
			return hi.Color
		}
		lo := g[i-1]
		span := hi.Offset - lo.Offset
		if span <= 0 {
			return hi.Color
		}
		k := (t - lo.Offset) / span
		mixed := toColorful(lo.Color.RGB).BlendRgb(toColorful(hi.Color.RGB), k)
		return palette.Color{RGB: fromColorful(mixed), A: lo.Color.A + (hi.Color.A-lo.Color.A)*k}
	}
	return g[len(g)-1].Color
}

// RadialGradient paints g outward from center over radius logical units
func (c *Canvas) RadialGradient(center vmath.Vec2, radius float64, g Gradient) {
	if !center.IsFinite() || radius <= 0 || len(g) == 0 {
		return
	}
	pc := c.toPixel(center)
	r := radius / c.PixelSize
	x0 := max(int(pc.X-r), 0)
	x1 := min(int(pc.X+r)+1, c.W-1)
	y0 := max(int(pc.Y-r), 0)
	y1 := min(int(pc.Y+r)+1, c.H-1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			d := vmath.V(float64(x)+0.5, float64(y)+0.5).Dist(pc)
			if d > r {
				continue
			}
			c.Plot(x, y, g.At(d/r))
		}
	}
}

// Mix interpolates two colours through go-colorful
func Mix(a, b RGB, t float64) RGB {
	return fromColorful(toColorful(a).BlendRgb(toColorful(b), vmath.Clamp01(t)))
}
