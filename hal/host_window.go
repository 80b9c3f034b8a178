//go:build cgo

package hal

import (
	"orrery/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// WindowConfig controls the desktop window.
type WindowConfig struct {
	Title  string
	Width  int
	Height int

	// Scale is the window pixels per surface pixel. Rendering cost falls
	// with the square of it.
	Scale int
	TPS   int
}

// RunWindow starts a desktop window that displays the surface and forwards
// pointer and keyboard input. It blocks until the window closes.
func RunWindow(cfg WindowConfig, newApp func(HAL) func() error) error {
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}
	if cfg.Title == "" {
		cfg.Title = "orrery"
	}

	h := newHost(cfg.Width/cfg.Scale, cfg.Height/cfg.Scale, newHostClock(), nil)
	in := newEbitenInput(cfg.Scale)
	h.cursor = ebitenCursor{}
	step := newApp(h)

	g := &hostGame{h: h, in: in, step: step, scale: cfg.Scale}
	g.pendingW, g.pendingH = h.fb.Size()

	ebiten.SetWindowTitle(cfg.Title + " (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h     *hostHAL
	in    *ebitenInput
	step  func() error
	scale int

	pendingW, pendingH int

	fbImg   *ebiten.Image
	scratch []byte
	face    text.Face
}

func (g *hostGame) Update() error {
	// Resize lands before the step so no frame renders with a stale aspect.
	g.h.fb.resize(g.pendingW, g.pendingH)
	w, h := g.h.fb.Size()
	g.h.in.set(g.in.poll(w, h))
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	w, h := g.h.fb.Size()
	if w <= 0 || h <= 0 {
		return
	}
	if g.fbImg == nil || g.fbImg.Bounds().Dx() != w || g.fbImg.Bounds().Dy() != h {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(w, h)
	}

	g.scratch = g.h.fb.snapshot(g.scratch)
	if len(g.scratch) != 4*w*h {
		return
	}
	g.fbImg.WritePixels(g.scratch)
	screen.DrawImage(g.fbImg, nil)

	if s := g.h.statusLine(); s != "" {
		if g.face == nil {
			g.face = text.NewGoXFace(basicfont.Face7x13)
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(4, 2)
		op.ColorScale.ScaleAlpha(0.7)
		text.Draw(screen, s, g.face, op)
	}
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.pendingW = outsideWidth / g.scale
	g.pendingH = outsideHeight / g.scale
	return layoutSize(g.pendingW), layoutSize(g.pendingH)
}
