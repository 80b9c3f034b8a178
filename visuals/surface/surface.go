// Package surface drives a shader scene over a full-screen quad.
package surface

import (
	"context"
	"fmt"
	"image"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/sync/errgroup"

	"orrery/visuals/frameloop"
	"orrery/visuals/quarkgl"
	"orrery/visuals/shader"
)

// Quad is the full-screen quad. Rasterizing every surface pixel is the quad,
// so Scale only records the viewport it was last stretched to.
type Quad struct {
	Scale mgl32.Vec2
}

// PanicError carries a panic raised by a scene on a shading goroutine.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("surface: scene panic: %v", e.Value)
}

// Adapter owns one quad and the uniforms of one scene.
type Adapter struct {
	scene shader.Scene

	// Workers bounds the goroutines shading row bands; <=0 uses GOMAXPROCS.
	Workers int
	// Detail is the pixel step: 1 shades every pixel, N one sample per N×N block.
	Detail int

	quad     Quad
	uniforms shader.Uniforms
}

// New creates an adapter for scene.
func New(scene shader.Scene, workers, detail int) *Adapter {
	return &Adapter{scene: scene, Workers: workers, Detail: detail}
}

func (a *Adapter) Quad() Quad                { return a.quad }
func (a *Adapter) Uniforms() shader.Uniforms { return a.uniforms }

// Step implements frameloop.Task. Uniforms are written before the frame is
// rasterized; empty frames are skipped untouched. A render error is raised
// as a panic on the loop's goroutine, where the loop recovers it.
func (a *Adapter) Step(f *frameloop.Frame) {
	w, h := f.Size()
	if w <= 0 || h <= 0 {
		return
	}
	a.uniforms.Time = float32(f.Elapsed)
	a.uniforms.Resolution = mgl32.Vec2{float32(w), float32(h)}
	a.quad.Scale = mgl32.Vec2{float32(w), float32(h)}

	if err := a.Render(context.Background(), f.Surface); err != nil {
		panic(err)
	}
}

// Render shades img with the current uniforms, blending with the scene's
// mode. It returns when every band is done or ctx is cancelled. A panic in
// the scene stops the frame and is returned as a *PanicError.
func (a *Adapter) Render(ctx context.Context, img *image.RGBA) error {
	if a.scene == nil || img == nil {
		return nil
	}
	target := quarkgl.NewRGBATarget(img)
	w, h := target.Size()
	if w <= 0 || h <= 0 {
		return nil
	}

	step := a.Detail
	if step < 1 {
		step = 1
	}
	workers := a.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	rows := (h + step - 1) / step
	bands := workers * 4
	if bands > rows {
		bands = rows
	}
	per := (rows + bands - 1) / bands

	u := a.uniforms
	mode := a.scene.Blend()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for b := 0; b < bands; b++ {
		r0, r1 := b*per, (b+1)*per
		if r1 > rows {
			r1 = rows
		}
		g.Go(func() (err error) {
			defer func() {
				if v := recover(); v != nil {
					err = &PanicError{Value: v}
				}
			}()
			for r := r0; r < r1; r++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				a.shadeRow(target, r*step, step, w, h, u, mode)
			}
			return nil
		})
	}
	return g.Wait()
}

func (a *Adapter) shadeRow(t *quarkgl.RGBATarget, y0, step, w, h int, u shader.Uniforms, mode quarkgl.BlendMode) {
	y1 := y0 + step
	if y1 > h {
		y1 = h
	}
	// Sample at the block center; coord origin is bottom-left.
	cy := 1 - (float32(y0)+float32(y1-y0)/2)/float32(h)
	for x0 := 0; x0 < w; x0 += step {
		x1 := x0 + step
		if x1 > w {
			x1 = w
		}
		cx := (float32(x0) + float32(x1-x0)/2) / float32(w)
		c := a.scene.Shade(mgl32.Vec2{cx, cy}, u)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				t.BlendPixel(x, y, c, mode)
			}
		}
	}
}
