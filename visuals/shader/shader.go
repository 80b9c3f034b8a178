// Package shader holds the per-pixel color functions of the procedural
// backdrops. A Scene is a stateless function of (coord, time, resolution);
// the surface adapter owns the uniforms and evaluates it over the frame.
package shader

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"orrery/visuals/quarkgl"
)

// Uniforms are the per-frame inputs shared by every pixel of a scene.
type Uniforms struct {
	Time       float32
	Resolution mgl32.Vec2
}

// Aspect returns width/height, or 1 while the viewport is not measured.
func (u Uniforms) Aspect() float32 {
	w, h := u.Resolution[0], u.Resolution[1]
	if !(h > 0) || !(w > 0) || math32.IsInf(w, 0) || math32.IsInf(h, 0) {
		return 1
	}
	return w / h
}

// Scene is a procedural color function.
//
// coord is the surface coordinate in 0..1 with the origin at the bottom-left.
type Scene interface {
	Shade(coord mgl32.Vec2, u Uniforms) quarkgl.Color
	Blend() quarkgl.BlendMode
}

// Sanitize replaces non-finite channels with 0.
func Sanitize(c mgl32.Vec4) mgl32.Vec4 {
	for i, v := range c {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			c[i] = 0
		}
	}
	return c
}

func output(c mgl32.Vec4) quarkgl.Color {
	c = Sanitize(c)
	return quarkgl.FromVec3(c.Vec3(), c[3])
}

// centered recenters coord to a signed range and widens x by the aspect.
func centered(coord mgl32.Vec2, u Uniforms) mgl32.Vec2 {
	p := coord.Sub(mgl32.Vec2{0.5, 0.5})
	p[0] *= u.Aspect()
	return p
}

// rotate applies the column-major mat2(c, -s, s, c) used by both scenes.
func rotate(p mgl32.Vec2, angle float32) mgl32.Vec2 {
	s, c := math32.Sincos(angle)
	return mgl32.Vec2{c*p[0] + s*p[1], -s*p[0] + c*p[1]}
}

func length(v mgl32.Vec2) float32 { return math32.Hypot(v[0], v[1]) }

// twinkle is the star brightness oscillation in [0,1].
func twinkle(t, seed float32) float32 {
	return math32.Sin(t+seed*100)*0.5 + 0.5
}
