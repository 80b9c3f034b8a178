package quarkgl

import "github.com/go-gl/mathgl/mgl32"

// Renderer is a fixed-pipeline software renderer.
//
// Create it once and reuse it to avoid allocations.
type Renderer struct {
	// Clear makes Render clear the target to ClearColor first. Layers drawn
	// over a shader backdrop leave it off.
	Clear      bool
	ClearColor Color
	Depth      bool

	// PointGlow scales the additive intensity of point sprites.
	PointGlow float32

	depthBuf []float32
}

// NewRenderer creates a renderer for a given maximum target size.
//
// If enableDepth is true, a depth buffer of size w*h is allocated.
func NewRenderer(w, h int, enableDepth bool) *Renderer {
	r := &Renderer{
		ClearColor: RGB(0, 0, 0),
		Depth:      enableDepth,
		PointGlow:  1,
	}
	if enableDepth && w > 0 && h > 0 {
		r.depthBuf = make([]float32, w*h)
	}
	return r
}

func (r *Renderer) EnableDepth(on bool, w, h int) {
	r.Depth = on
	if !on {
		r.depthBuf = nil
		return
	}
	if w <= 0 || h <= 0 {
		r.depthBuf = nil
		return
	}
	if cap(r.depthBuf) < w*h {
		r.depthBuf = make([]float32, w*h)
	} else {
		r.depthBuf = r.depthBuf[:w*h]
	}
}

// Release drops the depth buffer.
func (r *Renderer) Release() {
	r.depthBuf = nil
}

func (r *Renderer) clearDepth() {
	for i := range r.depthBuf {
		r.depthBuf[i] = 1e9
	}
}

// Render renders a scene into the target: billboards first (depth writing),
// then points (depth tested, additive).
func (r *Renderer) Render(t Target, s *Scene) {
	if r == nil || t == nil || s == nil {
		return
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return
	}
	if r.Clear {
		t.Clear(r.ClearColor)
	}
	if r.Depth {
		r.EnableDepth(true, w, h)
		r.clearDepth()
	}

	proj := s.Camera.Projection(float32(w) / float32(h))
	vp := proj.Mul4(s.Camera.View())

	s.eachBillboard(func(_ int, b *Billboard) {
		if !b.Enabled {
			return
		}
		r.renderBillboard(t, w, h, vp, s.quadFor(*b), *b)
	})

	focal := proj.At(1, 1)
	for i := range s.points {
		r.renderPoint(t, w, h, vp, focal, s.Group, s.points[i])
	}
}

type screenPoint struct {
	X, Y float32
	Z    float32 // NDC depth
	W    float32 // clip w
}

func project(vp mgl32.Mat4, p mgl32.Vec3, w, h int) (screenPoint, bool) {
	c := vp.Mul4x1(p.Vec4(1))
	if c[3] <= 1e-6 {
		return screenPoint{}, false
	}
	inv := 1 / c[3]
	nx, ny, nz := c[0]*inv, c[1]*inv, c[2]*inv
	return screenPoint{
		X: (nx*0.5 + 0.5) * float32(w),
		Y: (1 - (ny*0.5 + 0.5)) * float32(h),
		Z: nz,
		W: c[3],
	}, true
}

func (r *Renderer) renderPoint(t Target, w, h int, vp mgl32.Mat4, focal float32, group mgl32.Mat4, p Point) {
	world := group.Mul4x1(p.Pos.Vec4(1)).Vec3()
	sp, ok := project(vp, world, w, h)
	if !ok || sp.Z < -1 || sp.Z > 1 {
		return
	}
	radius := p.Size * focal / sp.W * float32(h) / 4
	if radius < 0.5 {
		radius = 0.5
	}
	if radius > 8 {
		radius = 8
	}

	minX, maxX := int(sp.X-radius), int(sp.X+radius+1)
	minY, maxY := int(sp.Y-radius), int(sp.Y+radius+1)
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= w {
		maxX = w - 1
	}
	if maxY >= h {
		maxY = h - 1
	}
	r2 := radius * radius
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			dx := float32(x) + 0.5 - sp.X
			dy := float32(y) + 0.5 - sp.Y
			d2 := dx*dx + dy*dy
			if d2 > r2 {
				continue
			}
			if !r.depthPass(w, x, y, sp.Z, false) {
				continue
			}
			falloff := 1 - d2/r2
			a := float32(p.Color.A) * falloff * r.PointGlow
			if a > 255 {
				a = 255
			}
			t.BlendPixel(x, y, p.Color.WithAlpha(uint8(a)), BlendAdditive)
		}
	}
}

func (r *Renderer) renderBillboard(t Target, w, h int, vp mgl32.Mat4, q Quad, b Billboard) {
	corners := q.Corners()
	var sp [4]screenPoint
	for i, c := range corners {
		p, ok := project(vp, c, w, h)
		if !ok {
			return
		}
		sp[i] = p
	}
	uv := [4][2]float32{{0, 1}, {1, 1}, {1, 0}, {0, 0}}
	r.fillTexturedTriangle(t, w, h, sp[0], sp[1], sp[2], uv[0], uv[1], uv[2], b)
	r.fillTexturedTriangle(t, w, h, sp[0], sp[2], sp[3], uv[0], uv[2], uv[3], b)
}

func (r *Renderer) depthPass(w int, x, y int, z float32, write bool) bool {
	if !r.Depth || r.depthBuf == nil {
		return true
	}
	if x < 0 || y < 0 || x >= w {
		return false
	}
	idx := y*w + x
	if idx < 0 || idx >= len(r.depthBuf) {
		return false
	}
	// NDC z is in [-1,1]. Map to [0,1].
	d := z*0.5 + 0.5
	if d < 0 {
		d = 0
	}
	if d > 1 {
		d = 1
	}
	if d >= r.depthBuf[idx] {
		return false
	}
	if write {
		r.depthBuf[idx] = d
	}
	return true
}

func (r *Renderer) fillTexturedTriangle(t Target, w, h int, p0, p1, p2 screenPoint, uv0, uv1, uv2 [2]float32, b Billboard) {
	minX, maxX := int(min3f(p0.X, p1.X, p2.X)), int(max3f(p0.X, p1.X, p2.X)+1)
	minY, maxY := int(min3f(p0.Y, p1.Y, p2.Y)), int(max3f(p0.Y, p1.Y, p2.Y)+1)
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= w {
		maxX = w - 1
	}
	if maxY >= h {
		maxY = h - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	area := edgeFn(p0.X, p0.Y, p1.X, p1.Y, p2.X, p2.Y)
	if area == 0 {
		return
	}
	invArea := 1 / area

	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5
			a0 := edgeFn(p1.X, p1.Y, p2.X, p2.Y, px, py) * invArea
			a1 := edgeFn(p2.X, p2.Y, p0.X, p0.Y, px, py) * invArea
			a2 := edgeFn(p0.X, p0.Y, p1.X, p1.Y, px, py) * invArea
			if a0 < 0 || a1 < 0 || a2 < 0 {
				continue
			}
			z := a0*p0.Z + a1*p1.Z + a2*p2.Z
			if !r.depthPass(w, x, y, z, true) {
				continue
			}
			u := a0*uv0[0] + a1*uv1[0] + a2*uv2[0]
			v := a0*uv0[1] + a1*uv1[1] + a2*uv2[1]
			t.BlendPixel(x, y, sampleTexture(b, u, v), BlendNormal)
		}
	}
}

func sampleTexture(b Billboard, u, v float32) Color {
	const frame = 0.02
	if u < frame || v < frame || u > 1-frame || v > 1-frame {
		return b.Tint
	}
	img := b.Texture
	if img == nil {
		return b.Tint
	}
	bounds := img.Bounds()
	tw, th := bounds.Dx(), bounds.Dy()
	if tw <= 0 || th <= 0 {
		return b.Tint
	}
	tx := int(u * float32(tw))
	ty := int(v * float32(th))
	if tx >= tw {
		tx = tw - 1
	}
	if ty >= th {
		ty = th - 1
	}
	c := img.RGBAAt(bounds.Min.X+tx, bounds.Min.Y+ty)
	return Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

func edgeFn(x0, y0, x1, y1, x, y float32) float32 {
	return (x-x0)*(y1-y0) - (y-y0)*(x1-x0)
}

func min3f(a, b, c float32) float32 {
	if a > b {
		a = b
	}
	if a > c {
		a = c
	}
	return a
}

func max3f(a, b, c float32) float32 {
	if a < b {
		a = b
	}
	if a < c {
		a = c
	}
	return a
}
