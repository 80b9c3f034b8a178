package shader

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"orrery/visuals/noise"
	"orrery/visuals/quarkgl"
)

// BlackHole renders an event horizon with a tilted accretion disk and a
// lensing halo. It is opaque.
type BlackHole struct{}

const (
	bhZoom       = 1.35
	bhTiltAngle  = -0.5
	bhRadius     = 0.15
	bhDiskInner  = 0.22
	bhDiskOuter  = 0.55
	bhHaloRadius = bhRadius * 1.5
	bhHaloWidth  = 0.06
	bhDiskTilt   = 3.0
	bhDiskOffset = 0.02
	bhPhotoWidth = 0.012
	bhStarCut    = 0.993
)

var bhOctaves = noise.Octaves{Count: 3}

func (BlackHole) Blend() quarkgl.BlendMode { return quarkgl.BlendNormal }

func (b BlackHole) Shade(coord mgl32.Vec2, u Uniforms) quarkgl.Color {
	return output(b.shade(coord, u))
}

func (BlackHole) shade(coord mgl32.Vec2, u Uniforms) mgl32.Vec4 {
	uv := blackHoleUV(coord, u)
	col := blackHoleBody(uv, u.Time*0.2)

	if col.Len() < 0.1 {
		s := noise.HashSin(uv.Mul(4))
		if s > bhStarCut {
			v := twinkle(u.Time, s) * 0.5
			col = col.Add(mgl32.Vec3{v, v, v})
		}
	}

	col = col.Mul(vignette(coord))
	return col.Vec4(1)
}

func blackHoleUV(coord mgl32.Vec2, u Uniforms) mgl32.Vec2 {
	uv := centered(coord, u).Mul(bhZoom)
	return rotate(uv, bhTiltAngle)
}

// blackHoleBody composites disk, halo, shadow and photosphere at uv. The
// shadow does not cover the near half of the disk.
func blackHoleBody(uv mgl32.Vec2, t float32) mgl32.Vec3 {
	var col mgl32.Vec3
	r := length(uv)

	diskUV := mgl32.Vec2{uv[0], (uv[1] - bhDiskOffset) * bhDiskTilt}
	diskR := length(diskUV)
	diskMask := noise.Smoothstep(bhDiskInner, bhDiskInner+0.05, diskR) *
		noise.Smoothstep(bhDiskOuter, bhDiskOuter-0.1, diskR)

	if diskMask > 0.01 {
		diskAngle := math32.Atan2(diskUV[1], diskUV[0])
		rot := diskAngle - t*2/(diskR+0.1)
		s, c := math32.Sincos(rot)
		p := mgl32.Vec2{c, s}.Mul(diskR * 10).Add(mgl32.Vec2{t, 0})

		gas := noise.FBM(noise.HashSin, p, bhOctaves)
		rings := math32.Sin(diskR*60)*0.1 + 0.9
		doppler := noise.Smoothstep(-1.2, 1.2, -uv[0]*1.5)
		intensity := diskMask * gas * rings * (0.6 + 0.4*doppler)

		dc := noise.MixVec3(mgl32.Vec3{0.7, 0.2, 0.05}, mgl32.Vec3{1.0, 0.9, 0.5}, intensity)
		dc = dc.Add(mgl32.Vec3{0.2, 0.1, 0}.Mul(noise.Smoothstep(0.5, 1, gas)))
		col = col.Add(dc.Mul(intensity * 1.5))
	}

	if hd := math32.Abs(r - bhHaloRadius); hd < bhHaloWidth {
		alpha := noise.Smoothstep(bhHaloWidth, 0, hd)
		s, c := math32.Sincos(math32.Atan2(uv[1], uv[0]))
		p := mgl32.Vec2{c, s}.Mul(r * 20).Sub(mgl32.Vec2{t * 0.5, t * 0.5})
		gas := noise.FBM(noise.HashSin, p, bhOctaves)
		arch := noise.Smoothstep(0.1, 1, math32.Abs(uv[1])*2.5)

		hc := noise.MixVec3(mgl32.Vec3{0.6, 0.1, 0}, mgl32.Vec3{1.0, 0.8, 0.4}, gas)
		col = col.Add(hc.Mul(alpha * gas * arch))
	}

	front := diskUV[1] < 0 && diskMask > 0.01
	if r < bhRadius && !front {
		col = mgl32.Vec3{}
	}

	if pd := math32.Abs(r - bhRadius); pd < bhPhotoWidth && !front {
		col = col.Add(mgl32.Vec3{1, 0.95, 0.8}.Mul(noise.Smoothstep(bhPhotoWidth, 0, pd)))
	}
	return col
}

// vignette darkens the outer corners of the frame.
func vignette(coord mgl32.Vec2) float32 {
	d := length(coord.Sub(mgl32.Vec2{0.5, 0.5})) * 2
	return noise.Mix(0.55, 1, noise.Smoothstep(1.45, 0.75, d))
}
