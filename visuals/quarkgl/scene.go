package quarkgl

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera describes a perspective viewing transform.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	FOVYRad float32
	Near    float32
	Far     float32
}

func (c Camera) up() mgl32.Vec3 {
	if c.Up == (mgl32.Vec3{}) {
		return mgl32.Vec3{0, 1, 0}
	}
	return c.Up
}

// View returns the camera view matrix.
func (c Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.up())
}

// Projection returns the projection matrix for a target aspect. A missing or
// non-finite aspect falls back to 1.
func (c Camera) Projection(aspect float32) mgl32.Mat4 {
	if !(aspect > 0) || aspect > 1e6 {
		aspect = 1
	}
	fov := c.FOVYRad
	if fov <= 0 {
		fov = 1.0
	}
	near, far := c.Near, c.Far
	if near <= 0 {
		near = 0.05
	}
	if far <= near {
		far = near + 100
	}
	return mgl32.Perspective(fov, aspect, near, far)
}

// Basis returns the camera's world-space right, up and forward unit vectors.
func (c Camera) Basis() (right, up, forward mgl32.Vec3) {
	forward = c.Target.Sub(c.Position)
	if forward.Len() == 0 {
		forward = mgl32.Vec3{0, 0, -1}
	}
	forward = forward.Normalize()
	right = forward.Cross(c.up())
	if right.Len() == 0 {
		right = mgl32.Vec3{1, 0, 0}
	}
	right = right.Normalize()
	up = right.Cross(forward)
	return right, up, forward
}

// Point is a soft round sprite. Size is its world-space diameter.
type Point struct {
	Pos   mgl32.Vec3
	Size  float32
	Color Color
}

// Billboard is a camera-facing textured rectangle. Center is in group space;
// Width and Height are world units.
type Billboard struct {
	Enabled bool

	Center  mgl32.Vec3
	Width   float32
	Height  float32
	Texture *image.RGBA

	// Tint is used where there is no texture, and as a one-pixel frame.
	Tint Color
}

// Quad is a world-space rectangle given by its center and half-extent axes.
type Quad struct {
	Center mgl32.Vec3
	Right  mgl32.Vec3
	Up     mgl32.Vec3
}

// Corners returns the corners counter-clockwise from bottom-left.
func (q Quad) Corners() [4]mgl32.Vec3 {
	return [4]mgl32.Vec3{
		q.Center.Sub(q.Right).Sub(q.Up),
		q.Center.Add(q.Right).Sub(q.Up),
		q.Center.Add(q.Right).Add(q.Up),
		q.Center.Sub(q.Right).Add(q.Up),
	}
}

// Scene is the set of primitives to render.
type Scene struct {
	Camera Camera

	// Group transforms points and billboard centers (the spinning sphere).
	Group mgl32.Mat4

	points     []Point
	billboards []Billboard
	alive      []bool
}

// CreateScene allocates a scene with a fixed billboard capacity.
func CreateScene(maxBillboards int) *Scene {
	if maxBillboards < 0 {
		maxBillboards = 0
	}
	return &Scene{
		Camera: Camera{
			Position: mgl32.Vec3{0, 0, 8},
			Target:   mgl32.Vec3{0, 0, 0},
			Up:       mgl32.Vec3{0, 1, 0},
			FOVYRad:  mgl32.DegToRad(50),
			Near:     0.1,
			Far:      100,
		},
		Group:      mgl32.Ident4(),
		billboards: make([]Billboard, maxBillboards),
		alive:      make([]bool, maxBillboards),
	}
}

// SetPoints replaces the point set. The slice is kept, not copied.
func (s *Scene) SetPoints(pts []Point) {
	if s == nil {
		return
	}
	s.points = pts
}

// Points returns the current point set.
func (s *Scene) Points() []Point {
	if s == nil {
		return nil
	}
	return s.points
}

// AddBillboard adds a billboard and returns its id or -1 if full.
func (s *Scene) AddBillboard(b Billboard) int {
	if s == nil {
		return -1
	}
	for i := range s.billboards {
		if s.alive[i] {
			continue
		}
		if b.Tint == (Color{}) {
			b.Tint = RGB(0x40, 0x40, 0x48)
		}
		b.Enabled = true
		s.billboards[i] = b
		s.alive[i] = true
		return i
	}
	return -1
}

// SetBillboardEnabled enables/disables a billboard by id.
func (s *Scene) SetBillboardEnabled(id int, enabled bool) {
	if s == nil || id < 0 || id >= len(s.billboards) || !s.alive[id] {
		return
	}
	s.billboards[id].Enabled = enabled
}

// SetBillboardTexture swaps the texture of a billboard.
func (s *Scene) SetBillboardTexture(id int, img *image.RGBA) {
	if s == nil || id < 0 || id >= len(s.billboards) || !s.alive[id] {
		return
	}
	s.billboards[id].Texture = img
}

// Billboard returns a copy of the billboard with the given id.
func (s *Scene) Billboard(id int) (Billboard, bool) {
	if s == nil || id < 0 || id >= len(s.billboards) || !s.alive[id] {
		return Billboard{}, false
	}
	return s.billboards[id], true
}

// BillboardQuad returns the world-space quad of a billboard for the current
// camera and group transform. The quad's axes are the camera's right and up
// vectors, so group rotation moves the center but never turns the panel.
func (s *Scene) BillboardQuad(id int) (Quad, bool) {
	b, ok := s.Billboard(id)
	if !ok {
		return Quad{}, false
	}
	return s.quadFor(b), true
}

func (s *Scene) quadFor(b Billboard) Quad {
	right, up, _ := s.Camera.Basis()
	c := s.Group.Mul4x1(b.Center.Vec4(1)).Vec3()
	return Quad{
		Center: c,
		Right:  right.Mul(b.Width / 2),
		Up:     up.Mul(b.Height / 2),
	}
}

func (s *Scene) eachBillboard(fn func(id int, b *Billboard)) {
	for i := range s.billboards {
		if !s.alive[i] {
			continue
		}
		fn(i, &s.billboards[i])
	}
}
