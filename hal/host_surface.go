package hal

import (
	"image"
	"sync"
)

type hostSurface struct {
	mu  sync.Mutex
	img *image.RGBA
}

func newHostSurface(width, height int) *hostSurface {
	s := &hostSurface{}
	s.resize(width, height)
	return s
}

func (s *hostSurface) Size() (w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *hostSurface) Image() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.img
}

// resize reallocates the frame when the size changes. Negative sizes clamp
// to an empty frame.
func (s *hostSurface) resize(width, height int) bool {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.img != nil && s.img.Bounds().Dx() == width && s.img.Bounds().Dy() == height {
		return false
	}
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	return true
}

// snapshot copies the current pixels into dst, growing it if needed.
func (s *hostSurface) snapshot(dst []byte) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cap(dst) < len(s.img.Pix) {
		dst = make([]byte, len(s.img.Pix))
	}
	dst = dst[:len(s.img.Pix)]
	copy(dst, s.img.Pix)
	return dst
}

// layoutSize is the screen dimension reported to the window for a surface
// dimension. The window needs at least one pixel; an empty surface still
// stays empty and is skipped by the visuals.
func layoutSize(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
