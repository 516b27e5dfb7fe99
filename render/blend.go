package render

import (
	"github.com/lixenwraith/luna-scenes/palette"
)

// RGB aliases palette.RGB so render helpers read naturally
type RGB = palette.RGB

// BlendMode selects how a source pixel combines with the canvas
type BlendMode uint8

const (
	// BlendAlpha is straight source-over
	BlendAlpha BlendMode = iota
	// BlendAdd brightens, used for glows and pulses
	BlendAdd
	// BlendScreen lightens without saturating as quickly as add
	BlendScreen
	// BlendMax keeps the brighter channel
	BlendMax
)

// channelOp combines one destination and one source channel, both in [0,1]
type channelOp func(d, s float64) float64

var blendOps = [...]channelOp{
	BlendAlpha:  func(_, s float64) float64 { return s },
	BlendAdd:    func(d, s float64) float64 { return d + s },
	BlendScreen: func(d, s float64) float64 { return 1 - (1-d)*(1-s) },
	BlendMax:    func(d, s float64) float64 { return max(d, s) },
}

func toByte(v float64) uint8 {
	switch {
	case v >= 1:
		return 255
	case v <= 0:
		return 0
	}
	return uint8(v*255 + 0.5)
}

// combine applies op per channel, then mixes the result over c by alpha
func combine(op channelOp, c, src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return c
	}
	alpha = min(alpha, 1)
	ch := func(d, s uint8) uint8 {
		df := float64(d) / 255
		return toByte(df + (op(df, float64(s)/255)-df)*alpha)
	}
	return RGB{R: ch(c.R, src.R), G: ch(c.G, src.G), B: ch(c.B, src.B)}
}

// Blend is source-over with alpha in [0,1]
func Blend(c, src RGB, alpha float64) RGB {
	return combine(blendOps[BlendAlpha], c, src, alpha)
}

// Add is additive blending scaled by alpha
func Add(c, src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return c
	}
	return combine(blendOps[BlendAdd], c, Scale(src, min(alpha, 1)), 1)
}

// Screen lightens c by src
func Screen(c, src RGB, alpha float64) RGB {
	return combine(blendOps[BlendScreen], c, src, alpha)
}

// Max keeps the brighter channel
func Max(c, src RGB, alpha float64) RGB {
	return combine(blendOps[BlendMax], c, src, alpha)
}

// Scale multiplies all channels by factor
func Scale(c RGB, factor float64) RGB {
	return RGB{
		R: toByte(float64(c.R) / 255 * factor),
		G: toByte(float64(c.G) / 255 * factor),
		B: toByte(float64(c.B) / 255 * factor),
	}
}

// Apply combines src into c with the given mode
func Apply(mode BlendMode, c, src RGB, alpha float64) RGB {
	if mode == BlendAdd {
		return Add(c, src, alpha)
	}
	if int(mode) >= len(blendOps) {
		mode = BlendAlpha
	}
	return combine(blendOps[mode], c, src, alpha)
}
