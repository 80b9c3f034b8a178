package shader

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"orrery/visuals/noise"
	"orrery/visuals/quarkgl"
)

// Galaxy renders a spiral nebula meant to be added over a dark backdrop.
type Galaxy struct{}

const (
	galZoom     = 2.0
	galTilt     = 0.45
	galSquash   = 1.6
	galArmWind  = 4.0
	galStarGrid = 90
	galStarCut  = 0.98
)

var galOctaves = noise.Octaves{Count: 6, Rotation: 0.5, Shift: mgl32.Vec2{2, 2}}

var (
	galBlack  = mgl32.Vec3{0, 0, 0}
	galBlue   = mgl32.Vec3{0.05, 0.1, 0.4}
	galPurple = mgl32.Vec3{0.2, 0, 0.3}
	galGold   = mgl32.Vec3{1, 0.8, 0.4}
)

func (Galaxy) Blend() quarkgl.BlendMode { return quarkgl.BlendAdditive }

func (g Galaxy) Shade(coord mgl32.Vec2, u Uniforms) quarkgl.Color {
	return output(g.shade(coord, u))
}

func (Galaxy) shade(coord mgl32.Vec2, u Uniforms) mgl32.Vec4 {
	uv := rotate(centered(coord, u).Mul(galZoom), galTilt)
	disk := mgl32.Vec2{uv[0], uv[1] * galSquash}
	t := u.Time * 0.1

	l := length(disk)
	angle := math32.Atan2(disk[1], disk[0])
	swirl := angle + t*0.5 + 0.5/(l+0.1)
	s, c := math32.Sincos(swirl)
	p := mgl32.Vec2{c, s}.Mul(l)

	gas := noise.FBM(noise.HashFract, p.Mul(3).Add(mgl32.Vec2{t * 0.2, t * 0.2}), galOctaves)
	col := noise.MixVec3(galBlack, galBlue, noise.Smoothstep(0.2, 0.6, gas))
	col = noise.MixVec3(col, galPurple, noise.Smoothstep(0.4, 0.8, gas))

	// Two logarithmic arms.
	phase := 2*swirl - galArmWind*math32.Log(l+0.05)
	arms := noise.Smoothstep(0.35, 1, 0.5+0.5*math32.Cos(phase)) * noise.Smoothstep(1.4, 0.15, l)
	col = col.Add(galGold.Mul(arms * gas * 0.45))

	dust := noise.Smoothstep(0.5, 0.75, noise.FBM(noise.HashFract, p.Mul(6).Sub(mgl32.Vec2{t * 0.3, 0}), galOctaves))
	col = col.Mul(1 - 0.6*dust*arms)

	core := 1 / (l*2 + 0.1)
	col = col.Add(galGold.Mul(core * 0.1))

	cell := mgl32.Vec2{math32.Floor(uv[0] * galStarGrid), math32.Floor(uv[1] * galStarGrid)}
	if star := noise.HashFract(cell); star > galStarCut {
		v := twinkle(u.Time*2, star) * 0.6
		col = col.Add(mgl32.Vec3{v, v, v})
	}

	mask := noise.Smoothstep(1.5, 0.5, l)
	return col.Vec4(mask * 0.6)
}
