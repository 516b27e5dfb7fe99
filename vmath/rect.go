package vmath

// Rect is an axis-aligned box, Min inclusive and Max inclusive
type Rect struct {
	Min, Max Vec2
}

// R builds a rect from origin and size
func R(x, y, w, h float64) Rect {
	return Rect{Min: Vec2{x, y}, Max: Vec2{x + w, y + h}}
}

func (r Rect) W() float64   { return r.Max.X - r.Min.X }
func (r Rect) H() float64   { return r.Max.Y - r.Min.Y }
func (r Rect) Center() Vec2 { return Lerp(r.Min, r.Max, 0.5) }
func (r Rect) Empty() bool  { return r.W() <= 0 || r.H() <= 0 }
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Inset shrinks the rect by d on all sides; it may become inverted
func (r Rect) Inset(d float64) Rect {
	return Rect{Min: Vec2{r.Min.X + d, r.Min.Y + d}, Max: Vec2{r.Max.X - d, r.Max.Y - d}}
}

// Intersects reports whether two rects overlap, touching edges count
func (r Rect) Intersects(o Rect) bool {
	return r.Min.X <= o.Max.X && r.Max.X >= o.Min.X && r.Min.Y <= o.Max.Y && r.Max.Y >= o.Min.Y
}

// ClampPoint moves p inside r
func (r Rect) ClampPoint(p Vec2) Vec2 {
	return Vec2{Clamp(p.X, r.Min.X, r.Max.X), Clamp(p.Y, r.Min.Y, r.Max.Y)}
}

// Wrap teleports a coordinate that left [lo,hi] to the opposite edge
func Wrap(x, lo, hi float64) float64 {
	if x < lo {
		return hi
	}
	if x > hi {
		return lo
	}
	return x
}

// WrapPoint applies Wrap on both axes
func (r Rect) WrapPoint(p Vec2) Vec2 {
	return Vec2{Wrap(p.X, r.Min.X, r.Max.X), Wrap(p.Y, r.Min.Y, r.Max.Y)}
}
