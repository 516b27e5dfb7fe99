// Package render rasterises scenes onto pixel canvases and composites them onto a terminal screen
package render

import (
	"math"

	"github.com/lixenwraith/luna-scenes/palette"
	"github.com/lixenwraith/luna-scenes/vmath"
)

// Canvas is a scene's drawing surface
// Drawing calls take logical coordinates; PixelSize logical units map to one pixel
type Canvas struct {
	Pix       []RGB
	W, H      int
	PixelSize float64
	Mode      BlendMode
}

// NewCanvas creates a w×h pixel canvas
func NewCanvas(w, h int, pixelSize float64) *Canvas {
	c := &Canvas{PixelSize: pixelSize}
	if c.PixelSize <= 0 {
		c.PixelSize = 1
	}
	c.Resize(w, h)
	return c
}

// Resize changes dimensions, reallocating only when capacity is short
func (c *Canvas) Resize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	size := w * h
	if cap(c.Pix) < size {
		c.Pix = make([]RGB, size)
	} else {
		c.Pix = c.Pix[:size]
	}
	c.W, c.H = w, h
	c.Clear(palette.Black)
}

// Empty reports a zero-area canvas, which is never drawn
func (c *Canvas) Empty() bool {
	return c.W == 0 || c.H == 0
}

// Bounds returns the logical drawing area
func (c *Canvas) Bounds() vmath.Rect {
	return vmath.R(0, 0, float64(c.W)*c.PixelSize, float64(c.H)*c.PixelSize)
}

// Clear fills the canvas using exponential copy
func (c *Canvas) Clear(bg RGB) {
	if len(c.Pix) == 0 {
		return
	}
	c.Pix[0] = bg
	for filled := 1; filled < len(c.Pix); filled *= 2 {
		copy(c.Pix[filled:], c.Pix[:filled])
	}
}

// At returns the pixel at x,y, black outside
func (c *Canvas) At(x, y int) RGB {
	if x < 0 || y < 0 || x >= c.W || y >= c.H {
		return palette.Black
	}
	return c.Pix[y*c.W+x]
}

// Plot blends col into pixel x,y using the canvas mode
func (c *Canvas) Plot(x, y int, col palette.Color) {
	if x < 0 || y < 0 || x >= c.W || y >= c.H || col.A <= 0 {
		return
	}
	i := y*c.W + x
	c.Pix[i] = Apply(c.Mode, c.Pix[i], col.RGB, col.A)
}

// toPixel maps a logical coordinate to fractional pixel space
func (c *Canvas) toPixel(p vmath.Vec2) vmath.Vec2 {
	return p.Scale(1 / c.PixelSize)
}

// Line draws a segment; widths below one pixel fade the stroke instead of thinning it
func (c *Canvas) Line(a, b vmath.Vec2, col palette.Color, width float64) {
	if !a.IsFinite() || !b.IsFinite() || col.A <= 0 {
		return
	}
	pa, pb := c.toPixel(a), c.toPixel(b)
	wpx := width / c.PixelSize
	if wpx < 1 {
		col = col.Scale(math.Max(wpx, 0.25))
	}
	half := int(wpx / 2)

	d := pb.Sub(pa)
	steps := int(math.Ceil(math.Max(math.Abs(d.X), math.Abs(d.Y))))
	if steps == 0 {
		c.Plot(int(pa.X), int(pa.Y), col)
		return
	}
	step := d.Scale(1 / float64(steps))
	lastX, lastY := math.MinInt, math.MinInt
	p := pa
	for i := 0; i <= steps; i++ {
		x, y := int(math.Floor(p.X)), int(math.Floor(p.Y))
		if x != lastX || y != lastY {
			for oy := -half; oy <= half; oy++ {
				for ox := -half; ox <= half; ox++ {
					c.Plot(x+ox, y+oy, col)
				}
			}
			lastX, lastY = x, y
		}
		p = p.Add(step)
	}
}

// Disc fills a circle; discs smaller than a pixel blend by covered area
func (c *Canvas) Disc(center vmath.Vec2, radius float64, col palette.Color) {
	if !center.IsFinite() || radius <= 0 || col.A <= 0 {
		return
	}
	pc := c.toPixel(center)
	r := radius / c.PixelSize
	if r < 0.5 {
		coverage := math.Pi * r * r
		c.Plot(int(math.Floor(pc.X)), int(math.Floor(pc.Y)), col.Scale(math.Min(coverage*1.5, 1)))
		return
	}
	c.span(pc, r, func(dist float64) float64 {
		if dist <= r {
			return 1
		}
		return 0
	}, col)
}

// Ring strokes a circle outline of the given width
func (c *Canvas) Ring(center vmath.Vec2, radius, width float64, col palette.Color) {
	if !center.IsFinite() || radius < 0 || col.A <= 0 {
		return
	}
	pc := c.toPixel(center)
	r := radius / c.PixelSize
	half := math.Max(width/c.PixelSize, 1) / 2
	c.span(pc, r+half, func(dist float64) float64 {
		if math.Abs(dist-r) <= half {
			return 1
		}
		return 0
	}, col)
}

// span visits pixels whose centre lies within r of pc and plots col scaled by cover
func (c *Canvas) span(pc vmath.Vec2, r float64, cover func(dist float64) float64, col palette.Color) {
	x0 := max(int(math.Floor(pc.X-r)), 0)
	x1 := min(int(math.Ceil(pc.X+r)), c.W-1)
	y0 := max(int(math.Floor(pc.Y-r)), 0)
	y1 := min(int(math.Ceil(pc.Y+r)), c.H-1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			d := vmath.V(float64(x)+0.5, float64(y)+0.5).Dist(pc)
			if k := cover(d); k > 0 {
				c.Plot(x, y, col.Scale(k))
			}
		}
	}
}
