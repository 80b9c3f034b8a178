// Package sphere is the orbit gallery scene: a Fibonacci particle sphere
// with one camera-facing panel per gallery item, spinning slowly until the
// pointer rests on it.
package sphere

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"

	"orrery/hal"
	"orrery/visuals/gallery"
	"orrery/visuals/quarkgl"
)

// Config sizes the scene.
type Config struct {
	Particles int
	Radius    float32
	Jitter    float32
	Seed      int64

	PanelRadius float32
	PanelWidth  float32
	PanelHeight float32

	// RotationStep is the group yaw added per frame while not hovering.
	RotationStep float32
	// DragSpeed is radians of orbit per pixel of drag.
	DragSpeed float32

	CameraRadius float32
}

func DefaultConfig() Config {
	return Config{
		Particles:    1200,
		Radius:       5,
		Jitter:       0.25,
		Seed:         7,
		PanelRadius:  3.2,
		PanelWidth:   1.6,
		PanelHeight:  1.0,
		RotationStep: 0.002,
		DragSpeed:    0.008,
		CameraRadius: 9,
	}
}

// Hoverer reports whether the pointer rests on the scene.
type Hoverer interface {
	Hovering() bool
}

// Scene is not safe for concurrent use; it lives on the frame loop.
type Scene struct {
	cfg Config

	gl       *quarkgl.Scene
	renderer *quarkgl.Renderer
	orbit    quarkgl.OrbitController

	particles []Particle
	panels    []int

	yaw      float32
	hovered  int
	dragging bool
	lastX    float32
	lastY    float32
}

var (
	panelTint     = quarkgl.RGB(0x7A, 0x4F, 0x06)
	panelTintLock = quarkgl.RGB(0x80, 0x22, 0x22)
)

const (
	defaultPitch  float32 = 0.12
	maxOrbitPitch float32 = 1.2
	noPanel               = -1
)

// New builds the scene for items. tex may be nil; panels then show their
// tint only.
func New(cfg Config, items []gallery.Item, tex *gallery.Textures) *Scene {
	s := &Scene{
		cfg:      cfg,
		gl:       quarkgl.CreateScene(len(items)),
		renderer: quarkgl.NewRenderer(0, 0, true),
		orbit: quarkgl.OrbitController{
			Radius:     cfg.CameraRadius,
			Pitch:      defaultPitch,
			MaxPitch:   maxOrbitPitch,
			EnableZoom: false,
			EnablePan:  false,
		},
		hovered: noPanel,
	}
	s.renderer.PointGlow = 0.9

	s.particles = Fibonacci(cfg.Particles, cfg.Radius, cfg.Jitter, cfg.Seed)
	pts := make([]quarkgl.Point, len(s.particles))
	for i, p := range s.particles {
		pts[i] = quarkgl.Point{Pos: p.Position, Size: p.Size, Color: p.Color}
	}
	s.gl.SetPoints(pts)

	s.panels = make([]int, len(items))
	for i, it := range items {
		tint := panelTint
		if it.Restricted {
			tint = panelTintLock
		}
		s.panels[i] = s.gl.AddBillboard(quarkgl.Billboard{
			Center:  gallery.SlotPosition(i, len(items), cfg.PanelRadius),
			Width:   cfg.PanelWidth,
			Height:  cfg.PanelHeight,
			Texture: tex.At(i),
			Tint:    tint,
		})
	}

	s.orbit.Apply(&s.gl.Camera)
	return s
}

// Particles returns the generated layout.
func (s *Scene) Particles() []Particle { return s.particles }

// Yaw returns the group rotation.
func (s *Scene) Yaw() float32 { return s.yaw }

func (s *Scene) Camera() quarkgl.Camera { return s.gl.Camera }

// Advance spins the group by one step unless h reports hovering, and
// returns the yaw actually applied.
func (s *Scene) Advance(h Hoverer) float32 {
	if h != nil && h.Hovering() {
		return 0
	}
	s.setYaw(s.yaw + s.cfg.RotationStep)
	return s.cfg.RotationStep
}

func (s *Scene) setYaw(y float32) {
	s.yaw = y
	s.gl.Group = mgl32.HomogRotate3DY(y)
}

// PanelCenter returns panel i's current world-space center.
func (s *Scene) PanelCenter(i int) (mgl32.Vec3, bool) {
	if i < 0 || i >= len(s.panels) {
		return mgl32.Vec3{}, false
	}
	q, ok := s.gl.BillboardQuad(s.panels[i])
	return q.Center, ok
}

// HitTest returns the index of the nearest panel under the surface point
// (x, y) of a w×h frame.
func (s *Scene) HitTest(x, y float32, w, h int) (int, bool) {
	ray, err := quarkgl.ScreenRay(s.gl.Camera, x, y, w, h)
	if err != nil {
		return noPanel, false
	}
	id, ok := s.gl.Pick(ray)
	if !ok {
		return noPanel, false
	}
	for i, pid := range s.panels {
		if pid == id {
			return i, true
		}
	}
	return noPanel, false
}

// Pointer feeds one frame of pointer input. A press on a panel returns
// that panel's index and is consumed: no drag starts. A press elsewhere
// starts an orbit drag.
func (s *Scene) Pointer(in hal.InputState, w, h int) (int, bool) {
	s.hovered = noPanel
	if in.Inside && !s.dragging {
		if i, ok := s.HitTest(in.X, in.Y, w, h); ok {
			s.hovered = i
		}
	}

	if in.Pressed && in.Inside {
		if s.hovered >= 0 {
			return s.hovered, true
		}
		s.dragging = true
		s.lastX, s.lastY = in.X, in.Y
		return noPanel, false
	}

	if s.dragging {
		if !in.Down || in.Released {
			s.dragging = false
			return noPanel, false
		}
		dx, dy := in.X-s.lastX, in.Y-s.lastY
		s.lastX, s.lastY = in.X, in.Y
		s.orbit.Rotate(-dx*s.cfg.DragSpeed, dy*s.cfg.DragSpeed)
		s.orbit.Apply(&s.gl.Camera)
	}
	return noPanel, false
}

// ClearPointer drops hover and drag state, e.g. while an overlay owns the
// pointer.
func (s *Scene) ClearPointer() {
	s.hovered = noPanel
	s.dragging = false
}

// Hovered returns the panel under the pointer, or -1.
func (s *Scene) Hovered() int { return s.hovered }

// Cursor is the pointer icon for the current hover.
func (s *Scene) Cursor() hal.CursorShape {
	if s.hovered >= 0 {
		return hal.CursorPointer
	}
	return hal.CursorDefault
}

// Render draws the particles and panels over img's existing content.
func (s *Scene) Render(img *image.RGBA) {
	if img == nil {
		return
	}
	s.renderer.Render(quarkgl.NewRGBATarget(img), s.gl)
}

// Release drops panel textures and the depth buffer.
func (s *Scene) Release() {
	for _, id := range s.panels {
		s.gl.SetBillboardTexture(id, nil)
	}
	s.renderer.Release()
}
