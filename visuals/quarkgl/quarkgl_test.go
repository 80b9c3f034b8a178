package quarkgl

import (
	"image"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func approx(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) <= eps
}

func TestBlendModes(t *testing.T) {
	dst := RGB(100, 100, 100)
	if got := Blend(dst, RGBA(200, 0, 0, 0xFF), BlendNormal); got != RGB(200, 0, 0) {
		t.Fatalf("opaque normal blend = %+v", got)
	}
	if got := Blend(dst, RGBA(200, 0, 0, 0), BlendNormal); got != dst {
		t.Fatalf("transparent normal blend changed dst: %+v", got)
	}
	got := Blend(dst, RGBA(200, 200, 200, 0xFF), BlendAdditive)
	if got.R != 0xFF || got.G != 0xFF {
		t.Fatalf("additive blend should saturate, got %+v", got)
	}
	half := Blend(RGB(0, 0, 0), RGBA(200, 0, 0, 128), BlendAdditive)
	if half.R < 99 || half.R > 101 {
		t.Fatalf("additive blend should weight by alpha, got %+v", half)
	}
}

func TestFromVec3NonFinite(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))
	c := FromVec3(mgl32.Vec3{nan, inf, -inf}, nan)
	if c != (Color{R: 0, G: 0xFF, B: 0, A: 0}) {
		t.Fatalf("unexpected conversion of non-finite values: %+v", c)
	}
}

func TestProjectionGuardsAspect(t *testing.T) {
	cam := CreateScene(0).Camera
	for _, aspect := range []float32{0, -1, float32(math.NaN()), float32(math.Inf(1))} {
		m := cam.Projection(aspect)
		for i, v := range m {
			if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
				t.Fatalf("aspect %v produced non-finite projection[%d]=%v", aspect, i, v)
			}
		}
	}
}

func TestOrbitControllerZoomDisabled(t *testing.T) {
	c := OrbitController{Radius: 8}
	c.Zoom(-3)
	if c.Radius != 8 {
		t.Fatalf("zoom changed radius while disabled: %v", c.Radius)
	}
	c.EnableZoom = true
	c.Zoom(-3)
	if c.Radius != 5 {
		t.Fatalf("expected radius 5 after zoom, got %v", c.Radius)
	}
}

func TestOrbitControllerPitchClamp(t *testing.T) {
	c := OrbitController{Radius: 8, MaxPitch: 0.5}
	c.Rotate(0.2, 3)
	if c.Pitch != 0.5 {
		t.Fatalf("pitch not clamped: %v", c.Pitch)
	}
	var cam Camera
	c.Apply(&cam)
	if d := cam.Position.Sub(cam.Target).Len(); !approx(d, 8, 1e-4) {
		t.Fatalf("camera distance %v, want 8", d)
	}
	if cam.Position.Y() <= 0 {
		t.Fatalf("positive pitch should lift the camera, got %v", cam.Position)
	}
}

func TestOrbitControllerPanDisabled(t *testing.T) {
	c := OrbitController{Radius: 8}
	c.Pan(CreateScene(0).Camera, 1, 1)
	if c.Target != (mgl32.Vec3{}) {
		t.Fatalf("pan moved target while disabled: %v", c.Target)
	}
}

func TestBillboardFacesCameraIndependentOfGroup(t *testing.T) {
	s := CreateScene(1)
	id := s.AddBillboard(Billboard{Center: mgl32.Vec3{3, 0, 0}, Width: 1, Height: 0.6})
	if id < 0 {
		t.Fatal("expected billboard slot")
	}
	_, _, forward := s.Camera.Basis()

	for _, yaw := range []float32{0, 0.7, 2.1, 4} {
		s.Group = mgl32.HomogRotate3DY(yaw)
		q, ok := s.BillboardQuad(id)
		if !ok {
			t.Fatal("expected quad")
		}
		n := q.Right.Cross(q.Up).Normalize()
		if d := n.Dot(forward); !approx(float32(math.Abs(float64(d))), 1, 1e-5) {
			t.Fatalf("yaw %v: billboard normal %v not parallel to view %v", yaw, n, forward)
		}
		if l := q.Center.Len(); !approx(l, 3, 1e-4) {
			t.Fatalf("yaw %v: group rotation changed center distance to %v", yaw, l)
		}
	}
}

func TestScreenRayThroughCenterHitsBillboard(t *testing.T) {
	s := CreateScene(2)
	front := s.AddBillboard(Billboard{Center: mgl32.Vec3{0, 0, 2}, Width: 1, Height: 1})
	back := s.AddBillboard(Billboard{Center: mgl32.Vec3{0, 0, -2}, Width: 1, Height: 1})

	ray, err := ScreenRay(s.Camera, 160, 120, 320, 240)
	if err != nil {
		t.Fatalf("ScreenRay: %v", err)
	}
	id, ok := s.Pick(ray)
	if !ok || id != front {
		t.Fatalf("expected front billboard %d, got %d (ok=%v)", front, id, ok)
	}

	s.SetBillboardEnabled(front, false)
	id, ok = s.Pick(ray)
	if !ok || id != back {
		t.Fatalf("expected back billboard %d after disabling front, got %d", back, id)
	}

	miss, err := ScreenRay(s.Camera, 2, 2, 320, 240)
	if err != nil {
		t.Fatalf("ScreenRay: %v", err)
	}
	if id, ok := s.Pick(miss); ok {
		t.Fatalf("corner ray should miss, hit %d", id)
	}
}

func TestScreenRayEmptyViewport(t *testing.T) {
	if _, err := ScreenRay(CreateScene(0).Camera, 0, 0, 0, 10); err != ErrEmptyViewport {
		t.Fatalf("expected ErrEmptyViewport, got %v", err)
	}
}

func TestRenderBillboardTexture(t *testing.T) {
	tex := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < len(tex.Pix); i += 4 {
		tex.Pix[i], tex.Pix[i+1], tex.Pix[i+2], tex.Pix[i+3] = 0x10, 0xC0, 0x20, 0xFF
	}
	s := CreateScene(1)
	s.AddBillboard(Billboard{Center: mgl32.Vec3{0, 0, 0}, Width: 2, Height: 2, Texture: tex})

	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	target := NewRGBATarget(img)
	r := NewRenderer(64, 48, true)
	r.Clear = true
	r.Render(target, s)

	if c := target.Pixel(32, 24); c != RGB(0x10, 0xC0, 0x20) {
		t.Fatalf("center pixel = %+v, want texture color", c)
	}
	if c := target.Pixel(0, 0); c != r.ClearColor {
		t.Fatalf("corner pixel = %+v, want clear color", c)
	}
}

func TestRenderPointsBehindBillboardAreHidden(t *testing.T) {
	s := CreateScene(1)
	s.AddBillboard(Billboard{Center: mgl32.Vec3{0, 0, 1}, Width: 3, Height: 3, Tint: RGB(0, 0, 0xFF)})
	s.SetPoints([]Point{{Pos: mgl32.Vec3{0, 0, -1}, Size: 0.5, Color: RGB(0xFF, 0, 0)}})

	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	target := NewRGBATarget(img)
	r := NewRenderer(64, 48, true)
	r.Clear = true
	r.Render(target, s)

	if c := target.Pixel(32, 24); c.R != 0 {
		t.Fatalf("point behind billboard leaked through: %+v", c)
	}
}

func TestRGBATargetClips(t *testing.T) {
	target := NewRGBATarget(image.NewRGBA(image.Rect(0, 0, 4, 4)))
	target.SetPixel(-1, 0, RGB(1, 2, 3))
	target.SetPixel(4, 4, RGB(1, 2, 3))
	FillRect(target, image.Rect(-5, -5, 2, 2), RGB(9, 9, 9), BlendReplace)
	if c := target.Pixel(1, 1); c != RGB(9, 9, 9) {
		t.Fatalf("fill did not reach (1,1): %+v", c)
	}
	if c := target.Pixel(2, 2); c != (Color{}) {
		t.Fatalf("fill leaked past rect: %+v", c)
	}
}
