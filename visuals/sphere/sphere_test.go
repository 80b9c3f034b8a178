package sphere

import (
	"image"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"orrery/hal"
	"orrery/visuals/gallery"
)

type hover bool

func (h hover) Hovering() bool { return bool(h) }

func newTestScene(t *testing.T) (*Scene, []gallery.Item) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Particles = 200
	items := gallery.Default()
	return New(cfg, items, nil), items
}

func TestFibonacciRadiusBound(t *testing.T) {
	const n, r, j = 800, 5, 0.3
	pts := Fibonacci(n, r, j, 42)
	if len(pts) != n {
		t.Fatalf("expected %d particles, got %d", n, len(pts))
	}
	for i, p := range pts {
		d := p.Position.Len()
		if d < r-j-1e-4 || d > r+j+1e-4 {
			t.Fatalf("particle %d at distance %v outside %v±%v", i, d, r, j)
		}
	}
}

func TestFibonacciMinimumSeparation(t *testing.T) {
	const n = 600
	pts := Fibonacci(n, 5, 0.3, 42)
	dirs := make([]mgl32.Vec3, n)
	for i, p := range pts {
		dirs[i] = p.Position.Normalize()
	}
	bound := 1.5 / math.Sqrt(n)
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			dot := float64(dirs[a].Dot(dirs[b]))
			if dot > 1 {
				dot = 1
			}
			if ang := math.Acos(dot); ang < bound {
				t.Fatalf("particles %d and %d only %v rad apart (bound %v)", a, b, ang, bound)
			}
		}
	}
}

func TestFibonacciDeterministic(t *testing.T) {
	a := Fibonacci(100, 5, 0.3, 9)
	b := Fibonacci(100, 5, 0.3, 9)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("particle %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
	if Fibonacci(0, 5, 0.3, 9) != nil {
		t.Fatal("zero particles should yield nil")
	}
}

func TestHoverFreezesRotation(t *testing.T) {
	s, _ := newTestScene(t)
	step := s.cfg.RotationStep

	if d := s.Advance(hover(false)); d != step {
		t.Fatalf("not hovering: delta %v, want %v", d, step)
	}
	yaw := s.Yaw()
	if d := s.Advance(hover(true)); d != 0 {
		t.Fatalf("hovering: delta %v, want 0", d)
	}
	if s.Yaw() != yaw {
		t.Fatalf("yaw moved while hovering: %v -> %v", yaw, s.Yaw())
	}
	if d := s.Advance(hover(false)); d != step {
		t.Fatalf("after hover: delta %v, want %v", d, step)
	}
}

// frontYaw spins the group so slot i of n faces the camera.
func frontYaw(i, n int) float32 {
	return float32(gallery.SlotAngle(i, n) - math.Pi/2)
}

func screenPoint(s *Scene, p mgl32.Vec3, w, h int) (float32, float32) {
	cam := s.Camera()
	win := mgl32.Project(p, cam.View(), cam.Projection(float32(w)/float32(h)), 0, 0, w, h)
	return win[0], float32(h) - win[1]
}

func TestHitThroughPanelCenterSelectsItem(t *testing.T) {
	s, items := newTestScene(t)
	const w, h = 320, 240
	for i := range items {
		s.setYaw(frontYaw(i, len(items)))
		c, ok := s.PanelCenter(i)
		if !ok {
			t.Fatalf("panel %d missing", i)
		}
		x, y := screenPoint(s, c, w, h)
		got, ok := s.HitTest(x, y, w, h)
		if !ok || got != i {
			t.Fatalf("ray through panel %d center hit %d (ok=%v)", i, got, ok)
		}
	}
}

func TestPanelsFaceCameraWhileSpinning(t *testing.T) {
	s, items := newTestScene(t)
	_, _, fwd := s.Camera().Basis()
	for k := 0; k < 50; k++ {
		s.Advance(hover(false))
		for i := range items {
			q, _ := s.gl.BillboardQuad(s.panels[i])
			n := q.Right.Cross(q.Up).Normalize()
			if d := math.Abs(float64(n.Dot(fwd))); d < 0.9999 {
				t.Fatalf("panel %d turned away from camera: |n·f| = %v", i, d)
			}
		}
	}
}

func TestMissLeavesNoSelection(t *testing.T) {
	s, _ := newTestScene(t)
	if i, ok := s.HitTest(1, 1, 320, 240); ok {
		t.Fatalf("corner should miss, hit %d", i)
	}
	if i, ok := s.Pointer(hal.InputState{X: 1, Y: 1, Inside: true, Pressed: true, Down: true}, 320, 240); ok {
		t.Fatalf("press on empty space selected %d", i)
	}
}

func TestPanelPressIsConsumed(t *testing.T) {
	s, items := newTestScene(t)
	const w, h = 320, 240
	s.setYaw(frontYaw(2, len(items)))
	c, _ := s.PanelCenter(2)
	x, y := screenPoint(s, c, w, h)

	cam := s.Camera()
	got, ok := s.Pointer(hal.InputState{X: x, Y: y, Inside: true, Pressed: true, Down: true}, w, h)
	if !ok || got != 2 {
		t.Fatalf("press on panel 2 returned %d, %v", got, ok)
	}
	if s.Cursor() != hal.CursorPointer {
		t.Fatal("expected pointer cursor over panel")
	}

	// Holding and moving must not orbit the camera.
	s.Pointer(hal.InputState{X: x + 40, Y: y, Inside: true, Down: true}, w, h)
	if s.Camera() != cam {
		t.Fatal("camera moved after a consumed press")
	}
}

func TestDragOrbitsCamera(t *testing.T) {
	s, _ := newTestScene(t)
	const w, h = 320, 240
	before := s.Camera().Position

	s.Pointer(hal.InputState{X: 5, Y: 5, Inside: true, Pressed: true, Down: true}, w, h)
	s.Pointer(hal.InputState{X: 45, Y: 5, Inside: true, Down: true}, w, h)
	after := s.Camera().Position
	if after == before {
		t.Fatal("drag should orbit the camera")
	}
	if d := after.Len(); math.Abs(float64(d-s.cfg.CameraRadius)) > 1e-3 {
		t.Fatalf("orbit changed camera distance to %v", d)
	}
	if s.Cursor() != hal.CursorDefault {
		t.Fatal("cursor should stay default while dragging")
	}

	s.Pointer(hal.InputState{X: 45, Y: 5, Inside: true, Released: true}, w, h)
	s.Pointer(hal.InputState{X: 90, Y: 5, Inside: true}, w, h)
	if s.Camera().Position != after {
		t.Fatal("camera moved after release")
	}
}

func TestRenderDrawsSomething(t *testing.T) {
	s, _ := newTestScene(t)
	img := image.NewRGBA(image.Rect(0, 0, 96, 64))
	s.Render(img)
	lit := 0
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 || img.Pix[i+1] != 0 || img.Pix[i+2] != 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Fatal("render left the frame empty")
	}
	s.Release()
}
