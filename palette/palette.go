// Package palette holds the colour vocabulary shared by scenes and the renderer
package palette

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// RGB is a 24-bit colour
type RGB struct {
	R, G, B uint8
}

// Color is an RGB colour with straight alpha in [0,1]
type Color struct {
	RGB
	A float64
}

// WithAlpha returns c with alpha replaced
func (c RGB) WithAlpha(a float64) Color {
	return Color{RGB: c, A: clamp01(a)}
}

// Scale returns c with alpha multiplied by f
func (c Color) Scale(f float64) Color {
	return Color{RGB: c.RGB, A: clamp01(c.A * f)}
}

// String renders the colour as "r, g, b", the form signatures are stored in
func (c RGB) String() string {
	return fmt.Sprintf("%d, %d, %d", c.R, c.G, c.B)
}

// ParseRGB parses "r, g, b" or "#rrggbb"
func ParseRGB(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") && len(s) == 7 {
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err != nil {
			return RGB{}, fmt.Errorf("parse colour %q: %w", s, err)
		}
		return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return RGB{}, fmt.Errorf("parse colour %q: want 3 components, got %d", s, len(parts))
	}
	var out [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("parse colour %q: %w", s, err)
		}
		out[i] = uint8(v)
	}
	return RGB{R: out[0], G: out[1], B: out[2]}, nil
}

// Named colours of the Luna site
var (
	Teal      = RGB{126, 230, 210}
	Gold      = RGB{212, 175, 55}
	Violet    = RGB{180, 130, 230}
	Rose      = RGB{230, 126, 170}
	Sky       = RGB{126, 180, 230}
	Lavender  = RGB{180, 180, 255}
	LightBlue = RGB{173, 216, 230}
	White     = RGB{255, 255, 255}
	Black     = RGB{0, 0, 0}
)

// SignatureColors are the choices offered when adding a signature
var SignatureColors = []RGB{Teal, Gold, Violet, Rose, Sky}

// Entry is one weighted palette choice with an alpha range
type Entry struct {
	Color    RGB     `toml:"color"`
	Weight   float64 `toml:"weight"`
	AlphaMin float64 `toml:"alpha_min"`
	AlphaMax float64 `toml:"alpha_max"`
	// Jitter adds up to this much per channel, the backdrop cells use it for variety
	Jitter RGB `toml:"jitter"`
}

// Palette is a weighted set of entries
type Palette []Entry

// Pick draws an entry by weight and samples its alpha and jitter
// Empty palettes yield opaque white
func (p Palette) Pick(rng *rand.Rand) Color {
	if len(p) == 0 {
		return White.WithAlpha(1)
	}
	e := p[WeightedIndex(rng, len(p), func(i int) float64 { return p[i].Weight })]

	c := e.Color
	if e.Jitter != (RGB{}) {
		c.R = addJitter(c.R, e.Jitter.R, rng)
		c.G = addJitter(c.G, e.Jitter.G, rng)
		c.B = addJitter(c.B, e.Jitter.B, rng)
	}
	a := e.AlphaMin
	if e.AlphaMax > e.AlphaMin {
		a += rng.Float64() * (e.AlphaMax - e.AlphaMin)
	}
	return c.WithAlpha(a)
}

// WeightedIndex returns an index in [0,n) drawn by weight
// Non-positive total weight falls back to uniform choice
func WeightedIndex(rng *rand.Rand, n int, weight func(int) float64) int {
	if n <= 1 {
		return 0
	}
	total := 0.0
	for i := 0; i < n; i++ {
		if w := weight(i); w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return rng.Intn(n)
	}
	r := rng.Float64() * total
	for i := 0; i < n; i++ {
		w := weight(i)
		if w <= 0 {
			continue
		}
		if r < w {
			return i
		}
		r -= w
	}
	return n - 1
}

func addJitter(base, span uint8, rng *rand.Rand) uint8 {
	if span == 0 {
		return base
	}
	v := int(base) + rng.Intn(int(span)+1)
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

func clamp01(v float64) float64 {
	if v != v || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// MarshalText stores the colour in its "r, g, b" form
func (c RGB) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText accepts any form ParseRGB does
func (c *RGB) UnmarshalText(b []byte) error {
	v, err := ParseRGB(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
