package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/luna-scenes/palette"
)

// HalfBlock renders two vertical pixels per cell: foreground on top, background below
const HalfBlock = '▀'

// Compositor layers scene canvases into one screen-sized pixel plane
// Canvas pixels are one cell wide and half a cell tall
type Compositor struct {
	plane      *Canvas
	cols, rows int
}

// NewCompositor creates a compositor for a cols×rows screen
func NewCompositor(cols, rows int) *Compositor {
	c := &Compositor{plane: NewCanvas(0, 0, 1)}
	c.Resize(cols, rows)
	return c
}

// Resize follows the terminal size
func (c *Compositor) Resize(cols, rows int) {
	c.cols, c.rows = max(cols, 0), max(rows, 0)
	c.plane.Resize(c.cols, c.rows*2)
}

// Size returns the screen size in cells
func (c *Compositor) Size() (int, int) {
	return c.cols, c.rows
}

// Begin clears the plane for a new frame
func (c *Compositor) Begin(bg RGB) {
	c.plane.Clear(bg)
}

// Draw blends src at cell offset with the given opacity
// Black source pixels are transparent so stacked scenes show through each other
func (c *Compositor) Draw(src *Canvas, cellX, cellY int, opacity float64) {
	if src == nil || src.Empty() || opacity <= 0 {
		return
	}
	c.plane.Mode = BlendScreen
	oy := cellY * 2
	for y := 0; y < src.H; y++ {
		for x := 0; x < src.W; x++ {
			px := src.Pix[y*src.W+x]
			if px == palette.Black {
				continue
			}
			c.plane.Plot(cellX+x, oy+y, px.WithAlpha(opacity))
		}
	}
}

// Pixel returns the composited pixel at plane coordinates
func (c *Compositor) Pixel(x, y int) RGB {
	return c.plane.At(x, y)
}

// Flush writes the plane to s; the caller shows the screen
func (c *Compositor) Flush(s tcell.Screen) {
	for y := 0; y < c.rows; y++ {
		for x := 0; x < c.cols; x++ {
			top := c.plane.At(x, y*2)
			bottom := c.plane.At(x, y*2+1)
			style := tcell.StyleDefault.Foreground(Color(top)).Background(Color(bottom))
			s.SetContent(x, y, HalfBlock, nil, style)
		}
	}
}

// Color converts to a tcell true colour
func Color(c RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
