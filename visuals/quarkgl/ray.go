package quarkgl

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrEmptyViewport is returned when a ray is requested for a zero-sized target.
var ErrEmptyViewport = errors.New("quarkgl: empty viewport")

// Ray is a half-line in world space. Dir is unit length.
type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 { return r.Origin.Add(r.Dir.Mul(t)) }

// ScreenRay converts a target-space point (origin top-left, y down) into a
// world ray through the camera.
func ScreenRay(cam Camera, x, y float32, w, h int) (Ray, error) {
	if w <= 0 || h <= 0 {
		return Ray{}, ErrEmptyViewport
	}
	view := cam.View()
	proj := cam.Projection(float32(w) / float32(h))
	winY := float32(h) - y

	near, err := mgl32.UnProject(mgl32.Vec3{x, winY, 0}, view, proj, 0, 0, w, h)
	if err != nil {
		return Ray{}, err
	}
	far, err := mgl32.UnProject(mgl32.Vec3{x, winY, 1}, view, proj, 0, 0, w, h)
	if err != nil {
		return Ray{}, err
	}
	dir := far.Sub(near)
	if dir.Len() == 0 {
		return Ray{}, ErrEmptyViewport
	}
	return Ray{Origin: near, Dir: dir.Normalize()}, nil
}

// IntersectQuad tests the ray against q's plane and bounds. u and v are the
// hit's coordinates along Right and Up in [-1,1].
func (r Ray) IntersectQuad(q Quad) (t, u, v float32, ok bool) {
	n := q.Right.Cross(q.Up)
	denom := n.Dot(r.Dir)
	if denom > -1e-7 && denom < 1e-7 {
		return 0, 0, 0, false
	}
	t = n.Dot(q.Center.Sub(r.Origin)) / denom
	if t < 0 {
		return 0, 0, 0, false
	}
	d := r.At(t).Sub(q.Center)
	rl := q.Right.Dot(q.Right)
	ul := q.Up.Dot(q.Up)
	if rl == 0 || ul == 0 {
		return 0, 0, 0, false
	}
	u = d.Dot(q.Right) / rl
	v = d.Dot(q.Up) / ul
	if u < -1 || u > 1 || v < -1 || v > 1 {
		return 0, 0, 0, false
	}
	return t, u, v, true
}

// Pick returns the id of the nearest enabled billboard hit by the ray.
func (s *Scene) Pick(r Ray) (id int, ok bool) {
	if s == nil {
		return -1, false
	}
	best := float32(-1)
	id = -1
	s.eachBillboard(func(i int, b *Billboard) {
		if !b.Enabled {
			return
		}
		t, _, _, hit := r.IntersectQuad(s.quadFor(*b))
		if !hit {
			return
		}
		if best < 0 || t < best {
			best = t
			id = i
		}
	})
	return id, id >= 0
}
