package quarkgl

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Color is an RGBA color in 8-bit channels (not premultiplied).
type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color     { return Color{R: r, G: g, B: b, A: 0xFF} }
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

func (c Color) WithAlpha(a uint8) Color { c.A = a; return c }

// MulScalar scales the color channels by s in [0,1]; alpha is kept.
func (c Color) MulScalar(s float32) Color {
	if s < 0 || s != s {
		s = 0
	}
	if s > 1 {
		s = 1
	}
	mul := func(ch uint8) uint8 { return uint8(float32(ch)*s + 0.5) }
	return Color{R: mul(c.R), G: mul(c.G), B: mul(c.B), A: c.A}
}

// FromVec3 converts a linear 0..1 color plus alpha to 8-bit channels.
// Non-finite inputs map to 0.
func FromVec3(c mgl32.Vec3, a float32) Color {
	return Color{R: unit8(c[0]), G: unit8(c[1]), B: unit8(c[2]), A: unit8(a)}
}

func unit8(v float32) uint8 {
	f := float64(v)
	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	if math.IsInf(f, 1) || f >= 1 {
		return 0xFF
	}
	return uint8(f*255 + 0.5)
}

// BlendMode selects how a source color combines with the target.
type BlendMode uint8

const (
	// BlendNormal is source-over using the source alpha.
	BlendNormal BlendMode = iota
	// BlendAdditive adds the alpha-weighted source onto the target (glow).
	BlendAdditive
	// BlendReplace writes the source unchanged.
	BlendReplace
)

func (m BlendMode) String() string {
	switch m {
	case BlendNormal:
		return "normal"
	case BlendAdditive:
		return "additive"
	case BlendReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Blend combines src over dst with mode m.
func Blend(dst, src Color, m BlendMode) Color {
	switch m {
	case BlendReplace:
		return src
	case BlendAdditive:
		a := uint32(src.A)
		add := func(d, s uint8) uint8 {
			v := uint32(d) + (uint32(s)*a+127)/255
			if v > 0xFF {
				v = 0xFF
			}
			return uint8(v)
		}
		return Color{R: add(dst.R, src.R), G: add(dst.G, src.G), B: add(dst.B, src.B), A: add(dst.A, src.A)}
	default:
		a := uint32(src.A)
		if a == 0xFF {
			return src
		}
		if a == 0 {
			return dst
		}
		ia := 0xFF - a
		mix := func(d, s uint8) uint8 {
			return uint8((uint32(s)*a + uint32(d)*ia + 127) / 255)
		}
		outA := a + (uint32(dst.A)*ia+127)/255
		if outA > 0xFF {
			outA = 0xFF
		}
		return Color{R: mix(dst.R, src.R), G: mix(dst.G, src.G), B: mix(dst.B, src.B), A: uint8(outA)}
	}
}
