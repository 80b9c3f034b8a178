package quarkgl

import "image"

// Target is a minimal pixel target for software rendering.
//
// Implementations clip out-of-bounds coordinates.
type Target interface {
	Size() (w, h int)
	Pixel(x, y int) Color
	SetPixel(x, y int, c Color)
	BlendPixel(x, y int, c Color, m BlendMode)
	Clear(c Color)
}

// RGBATarget renders into an *image.RGBA. Coordinates are relative to the
// image bounds' origin.
type RGBATarget struct {
	Img *image.RGBA
}

func NewRGBATarget(img *image.RGBA) *RGBATarget { return &RGBATarget{Img: img} }

func (t *RGBATarget) Size() (w, h int) {
	if t == nil || t.Img == nil {
		return 0, 0
	}
	b := t.Img.Bounds()
	return b.Dx(), b.Dy()
}

func (t *RGBATarget) offset(x, y int) int {
	if t == nil || t.Img == nil {
		return -1
	}
	b := t.Img.Bounds()
	if x < 0 || y < 0 || x >= b.Dx() || y >= b.Dy() {
		return -1
	}
	off := t.Img.PixOffset(b.Min.X+x, b.Min.Y+y)
	if off < 0 || off+3 >= len(t.Img.Pix) {
		return -1
	}
	return off
}

func (t *RGBATarget) Pixel(x, y int) Color {
	off := t.offset(x, y)
	if off < 0 {
		return Color{}
	}
	p := t.Img.Pix[off : off+4 : off+4]
	return Color{R: p[0], G: p[1], B: p[2], A: p[3]}
}

func (t *RGBATarget) SetPixel(x, y int, c Color) {
	off := t.offset(x, y)
	if off < 0 {
		return
	}
	p := t.Img.Pix[off : off+4 : off+4]
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
}

func (t *RGBATarget) BlendPixel(x, y int, c Color, m BlendMode) {
	off := t.offset(x, y)
	if off < 0 {
		return
	}
	p := t.Img.Pix[off : off+4 : off+4]
	out := Blend(Color{R: p[0], G: p[1], B: p[2], A: p[3]}, c, m)
	p[0], p[1], p[2], p[3] = out.R, out.G, out.B, out.A
}

func (t *RGBATarget) Clear(c Color) {
	if t == nil || t.Img == nil {
		return
	}
	w, h := t.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t.SetPixel(x, y, c)
		}
	}
}

// FillRect blends c over every pixel of r (clipped to the target).
func FillRect(t Target, r image.Rectangle, c Color, m BlendMode) {
	if t == nil {
		return
	}
	w, h := t.Size()
	r = r.Intersect(image.Rect(0, 0, w, h))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			t.BlendPixel(x, y, c, m)
		}
	}
}

// StrokeRect draws a one-pixel outline along the inside of r.
func StrokeRect(t Target, r image.Rectangle, c Color) {
	if t == nil || r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		t.BlendPixel(x, r.Min.Y, c, BlendNormal)
		t.BlendPixel(x, r.Max.Y-1, c, BlendNormal)
	}
	for y := r.Min.Y + 1; y < r.Max.Y-1; y++ {
		t.BlendPixel(r.Min.X, y, c, BlendNormal)
		t.BlendPixel(r.Max.X-1, y, c, BlendNormal)
	}
}
