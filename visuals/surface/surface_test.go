package surface

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"orrery/hal"
	"orrery/visuals/frameloop"
	"orrery/visuals/quarkgl"
	"orrery/visuals/shader"
)

// upper paints the top half of the frame white, so the origin convention
// is observable.
type upper struct{}

func (upper) Blend() quarkgl.BlendMode { return quarkgl.BlendReplace }

func (upper) Shade(c mgl32.Vec2, _ shader.Uniforms) quarkgl.Color {
	if c[1] > 0.5 {
		return quarkgl.RGB(0xFF, 0xFF, 0xFF)
	}
	return quarkgl.RGB(0, 0, 0)
}

// aspectCode encodes the aspect it was shaded with in the red channel.
type aspectCode struct{}

func (aspectCode) Blend() quarkgl.BlendMode { return quarkgl.BlendReplace }

func (aspectCode) Shade(_ mgl32.Vec2, u shader.Uniforms) quarkgl.Color {
	return quarkgl.RGB(uint8(u.Aspect()*10), 0, 0)
}

// broken panics on every pixel below the middle of the frame.
type broken struct{}

func (broken) Blend() quarkgl.BlendMode { return quarkgl.BlendReplace }

func (broken) Shade(c mgl32.Vec2, _ shader.Uniforms) quarkgl.Color {
	if c[1] < 0.5 {
		var m map[string]int
		m["x"] = 1
	}
	return quarkgl.RGB(0, 0, 0)
}

func step(t *testing.T, l *frameloop.Loop, now float64, img *image.RGBA) {
	t.Helper()
	l.Step(now, img, hal.InputState{})
}

func TestResolutionChangeVisibleNextFrame(t *testing.T) {
	l := frameloop.New()
	a := New(aspectCode{}, 2, 1)
	l.Subscribe("aspect", a)

	wide := image.NewRGBA(image.Rect(0, 0, 20, 10))
	step(t, l, 0, wide)
	if got := wide.RGBAAt(3, 3).R; got != 20 {
		t.Fatalf("wide frame aspect code = %d, want 20", got)
	}

	square := image.NewRGBA(image.Rect(0, 0, 12, 12))
	step(t, l, 1.0/60, square)
	if got := square.RGBAAt(3, 3).R; got != 10 {
		t.Fatalf("first frame after resize used stale aspect: %d", got)
	}
	if u := a.Uniforms(); u.Resolution != (mgl32.Vec2{12, 12}) {
		t.Fatalf("resolution = %v", u.Resolution)
	}
	if q := a.Quad(); q.Scale != (mgl32.Vec2{12, 12}) {
		t.Fatalf("quad scale = %v", q.Scale)
	}
}

func TestTimeUniformTracksElapsed(t *testing.T) {
	l := frameloop.New()
	step(t, l, 5, nil)
	a := New(upper{}, 1, 1)
	l.Subscribe("t", a)
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	step(t, l, 7.25, img)
	if got := a.Uniforms().Time; got != 2.25 {
		t.Fatalf("time = %v, want 2.25", got)
	}
}

func TestZeroSizeFrameIsSkipped(t *testing.T) {
	l := frameloop.New()
	a := New(upper{}, 1, 1)
	l.Subscribe("t", a)

	step(t, l, 0, image.NewRGBA(image.Rect(0, 0, 8, 4)))
	before := a.Uniforms()
	step(t, l, 1, image.NewRGBA(image.Rect(0, 0, 8, 0)))
	step(t, l, 2, nil)
	if a.Uniforms() != before {
		t.Fatalf("uniforms changed on empty frame: %+v -> %+v", before, a.Uniforms())
	}
}

func TestOriginIsBottomLeft(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 6, 6))
	a := New(upper{}, 3, 1)
	a.uniforms.Resolution = mgl32.Vec2{6, 6}
	if err := a.Render(context.Background(), img); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if img.RGBAAt(2, 0).R != 0xFF {
		t.Fatal("top row should be the upper half")
	}
	if img.RGBAAt(2, 5).R != 0 {
		t.Fatal("bottom row should be the lower half")
	}
}

func TestDetailFillsBlocks(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 7, 7))
	a := New(upper{}, 2, 4)
	if err := a.Render(context.Background(), img); err != nil {
		t.Fatalf("Render: %v", err)
	}
	for y := 0; y < 7; y++ {
		for x := 0; x < 7; x++ {
			if img.RGBAAt(x, y).A != 0xFF {
				t.Fatalf("pixel (%d,%d) not covered", x, y)
			}
		}
	}
	// Every pixel of the first 4×4 block carries the same sample.
	first := img.RGBAAt(0, 0)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if img.RGBAAt(x, y) != first {
				t.Fatalf("block pixel (%d,%d) differs", x, y)
			}
		}
	}
}

func TestRenderHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	if err := New(upper{}, 2, 1).Render(ctx, img); err == nil {
		t.Fatal("expected context error")
	}
}

func TestRealScenesFillFrame(t *testing.T) {
	for _, sc := range []shader.Scene{shader.BlackHole{}, shader.Galaxy{}} {
		l := frameloop.New()
		l.Subscribe("scene", New(sc, 4, 2))
		img := image.NewRGBA(image.Rect(0, 0, 32, 18))
		step(t, l, 0.5, img)
		if _, ok := sc.(shader.BlackHole); ok {
			for i := 3; i < len(img.Pix); i += 4 {
				if img.Pix[i] != 0xFF {
					t.Fatalf("black hole left a transparent pixel at %d", i/4)
				}
			}
		}
	}
}

func TestRenderReturnsScenePanic(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	err := New(broken{}, 2, 1).Render(context.Background(), img)
	var pe *PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("Render error = %v, want *PanicError", err)
	}
	if pe.Value == nil {
		t.Fatal("panic value lost")
	}
}

func TestScenePanicIsolatedFromSiblings(t *testing.T) {
	l := frameloop.New()
	var infos []frameloop.PanicInfo
	l.SetPanicHandler(func(p frameloop.PanicInfo) { infos = append(infos, p) })

	sub := l.Subscribe("broken", New(broken{}, 2, 1))
	var steps int
	l.Subscribe("sibling", frameloop.TaskFunc(func(*frameloop.Frame) { steps++ }))

	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	step(t, l, 0, img)
	step(t, l, 1.0/60, img)

	if !sub.Failed() {
		t.Fatal("panicking scene not marked failed")
	}
	if len(infos) != 1 || infos[0].Task != "broken" {
		t.Fatalf("panic reports = %+v", infos)
	}
	if _, ok := infos[0].Value.(*PanicError); !ok {
		t.Fatalf("panic value = %T, want *PanicError", infos[0].Value)
	}
	if steps != 2 {
		t.Fatalf("sibling steps = %d, want 2", steps)
	}
}
