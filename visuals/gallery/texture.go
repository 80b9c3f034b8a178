package gallery

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"

	"orrery/hal"
)

var ErrNotImage = errors.New("gallery: not an image")

// Textures holds one panel texture per item, in item order. A slot whose
// image failed to load holds a placeholder, so indices always line up.
type Textures struct {
	imgs   []*image.RGBA
	failed []bool
}

// LoadTextures decodes each item's image from root and resizes it to w×h.
// Failures are logged once per item and replaced by a placeholder.
func LoadTextures(items []Item, root string, w, h int, log hal.Logger) *Textures {
	t := &Textures{
		imgs:   make([]*image.RGBA, len(items)),
		failed: make([]bool, len(items)),
	}
	for i, it := range items {
		img, err := loadImage(resolve(root, it.Image), w, h)
		if err != nil {
			if log != nil {
				log.WriteLineString(fmt.Sprintf("gallery: texture %s: %v (placeholder)", it.ID, err))
			}
			img = Placeholder(it, i, w, h)
			t.failed[i] = true
		}
		t.imgs[i] = img
	}
	return t
}

func (t *Textures) Len() int {
	if t == nil {
		return 0
	}
	return len(t.imgs)
}

// At returns texture i, or nil after Release or out of range.
func (t *Textures) At(i int) *image.RGBA {
	if t == nil || i < 0 || i >= len(t.imgs) {
		return nil
	}
	return t.imgs[i]
}

// Placeholder reports whether slot i holds a placeholder.
func (t *Textures) Placeholder(i int) bool {
	if t == nil || i < 0 || i >= len(t.failed) {
		return false
	}
	return t.failed[i]
}

// Release drops every texture.
func (t *Textures) Release() {
	if t == nil {
		return
	}
	for i := range t.imgs {
		t.imgs[i] = nil
	}
	t.imgs = nil
	t.failed = nil
}

// resolve maps a site path like "/images/x.png" under root.
func resolve(root, path string) string {
	path = strings.TrimPrefix(filepath.FromSlash(path), string(filepath.Separator))
	if root == "" {
		return path
	}
	return filepath.Join(root, path)
}

func loadImage(path string, w, h int) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid texture size %dx%d", w, h)
	}
	kind, err := filetype.MatchFile(path)
	if err != nil {
		return nil, err
	}
	if kind == filetype.Unknown || kind.MIME.Type != "image" {
		return nil, fmt.Errorf("%s: %w", path, ErrNotImage)
	}
	src, err := imgio.Open(path)
	if err != nil {
		return nil, err
	}
	return transform.Resize(src, w, h, transform.Linear), nil
}

var (
	accent     = color.RGBA{0xF5, 0x9E, 0x0B, 0xFF}
	accentLock = color.RGBA{0xEF, 0x44, 0x44, 0xFF}
)

// Placeholder draws a dark gradient card with a diagonal accent stripe
// whose position depends on the slot index.
func Placeholder(it Item, index, w, h int) *image.RGBA {
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	ac := accent
	if it.Restricted {
		ac = accentLock
	}
	stripe := (index*7 + 3) % 10
	for y := 0; y < h; y++ {
		shade := uint8(0x10 + 0x20*y/h)
		for x := 0; x < w; x++ {
			c := color.RGBA{shade, shade, shade + 4, 0xFF}
			d := (x + y + stripe*w/10) % (w + h)
			if d < (w+h)/24+1 {
				c = color.RGBA{ac.R / 2, ac.G / 2, ac.B / 2, 0xFF}
			}
			img.SetRGBA(x, y, c)
		}
	}
	// Accent bar along the bottom edge.
	for y := h - h/16 - 1; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, ac)
		}
	}
	return img
}
