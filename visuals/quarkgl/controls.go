package quarkgl

import "github.com/go-gl/mathgl/mgl32"

// OrbitController drives a camera around a target from yaw/pitch/radius.
//
// Zoom and Pan only act when enabled; the gallery keeps both off so the
// framing never changes.
type OrbitController struct {
	Target mgl32.Vec3
	Yaw    float32
	Pitch  float32
	Radius float32

	MinRadius float32
	MaxRadius float32

	// MaxPitch limits |Pitch|. Zero means ±1.4 rad.
	MaxPitch float32

	EnableZoom bool
	EnablePan  bool
}

func (c *OrbitController) Apply(cam *Camera) {
	if cam == nil {
		return
	}
	r := c.Radius
	if r == 0 {
		r = 8
	}
	if c.MinRadius != 0 && r < c.MinRadius {
		r = c.MinRadius
	}
	if c.MaxRadius != 0 && r > c.MaxRadius {
		r = c.MaxRadius
	}

	m := mgl32.HomogRotate3DY(c.Yaw).Mul4(mgl32.HomogRotate3DX(-c.Pitch))
	p := m.Mul4x1(mgl32.Vec4{0, 0, r, 1})

	cam.Position = c.Target.Add(p.Vec3())
	cam.Target = c.Target
	if cam.Up == (mgl32.Vec3{}) {
		cam.Up = mgl32.Vec3{0, 1, 0}
	}
}

func (c *OrbitController) Rotate(deltaYaw, deltaPitch float32) {
	c.Yaw += deltaYaw
	c.Pitch += deltaPitch
	limit := c.MaxPitch
	if limit <= 0 {
		limit = 1.4
	}
	if c.Pitch > limit {
		c.Pitch = limit
	}
	if c.Pitch < -limit {
		c.Pitch = -limit
	}
}

func (c *OrbitController) Zoom(delta float32) {
	if !c.EnableZoom {
		return
	}
	c.Radius += delta
	if c.MinRadius != 0 && c.Radius < c.MinRadius {
		c.Radius = c.MinRadius
	}
	if c.MaxRadius != 0 && c.Radius > c.MaxRadius {
		c.Radius = c.MaxRadius
	}
}

// Pan moves the orbit target in the camera's screen plane.
func (c *OrbitController) Pan(cam Camera, dx, dy float32) {
	if !c.EnablePan {
		return
	}
	right, up, _ := cam.Basis()
	c.Target = c.Target.Add(right.Mul(dx)).Add(up.Mul(dy))
}
