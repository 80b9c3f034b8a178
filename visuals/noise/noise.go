// Package noise provides the value-noise and fractal-sum primitives shared by
// the procedural shader scenes.
//
// Everything here is a pure function of its inputs and is evaluated in float32,
// matching the precision a fragment shader would use.
package noise

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Hash maps a lattice coordinate to a pseudo-random value in [0,1).
type Hash func(p mgl32.Vec2) float32

// HashSin is the classic sine hash used by the event-horizon scene.
func HashSin(p mgl32.Vec2) float32 {
	d := p.Dot(mgl32.Vec2{12.9898, 78.233})
	return Fract(math32.Sin(d) * 43758.5453123)
}

// HashFract is the sine-free hash used by the galaxy scene. It stays stable
// for large coordinates where the sine hash loses precision.
func HashFract(p mgl32.Vec2) float32 {
	p = mgl32.Vec2{Fract(p[0] * 123.34), Fract(p[1] * 456.21)}
	d := p.Dot(p.Add(mgl32.Vec2{45.32, 45.32}))
	p = p.Add(mgl32.Vec2{d, d})
	return Fract(p[0] * p[1])
}

// Noise is bilinear value noise with cubic Hermite easing of the fractional
// part, so lattice edges do not show.
func Noise(h Hash, p mgl32.Vec2) float32 {
	ix, iy := math32.Floor(p[0]), math32.Floor(p[1])
	fx, fy := p[0]-ix, p[1]-iy

	a := h(mgl32.Vec2{ix, iy})
	b := h(mgl32.Vec2{ix + 1, iy})
	c := h(mgl32.Vec2{ix, iy + 1})
	d := h(mgl32.Vec2{ix + 1, iy + 1})

	ux := fx * fx * (3 - 2*fx)
	uy := fy * fy * (3 - 2*fy)
	return Mix(Mix(a, b, ux), Mix(c, d, ux), uy)
}

// Octaves configures a fractal sum.
type Octaves struct {
	Count int

	// Rotation is applied to the coordinate between octaves (radians).
	// Zero disables it.
	Rotation float32

	// Shift is added to the coordinate after each doubling.
	Shift mgl32.Vec2
}

// FBM accumulates Count octaves of Noise. Each octave doubles the frequency
// and halves the amplitude, starting at 0.5. The sum is not renormalized: it
// lies in [0, 1-2^-Count).
func FBM(h Hash, p mgl32.Vec2, o Octaves) float32 {
	var c, s float32 = 1, 0
	rotate := o.Rotation != 0
	if rotate {
		c, s = math32.Cos(o.Rotation), math32.Sin(o.Rotation)
	}

	var v float32
	amp := float32(0.5)
	for i := 0; i < o.Count; i++ {
		v += amp * Noise(h, p)
		if rotate {
			p = mgl32.Vec2{c*p[0] - s*p[1], s*p[0] + c*p[1]}
		}
		p = p.Mul(2).Add(o.Shift)
		amp *= 0.5
	}
	return v
}

// Fract returns x - floor(x), kept strictly below 1.
func Fract(x float32) float32 {
	f := x - math32.Floor(x)
	if f >= 1 {
		return 0
	}
	return f
}

// Mix linearly interpolates between a and b.
func Mix(a, b, t float32) float32 {
	return a + (b-a)*t
}

// MixVec3 linearly interpolates between two colors.
func MixVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Smoothstep follows GLSL semantics, including reversed edges (edge0 > edge1)
// which produce a falling ramp.
func Smoothstep(edge0, edge1, x float32) float32 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}
