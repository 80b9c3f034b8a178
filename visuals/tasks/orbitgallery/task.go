// Package orbitgallery mounts the orbiting project gallery: the particle
// sphere, its panels and the detail overlay.
package orbitgallery

import (
	"orrery/hal"
	"orrery/visuals/frameloop"
	"orrery/visuals/gallery"
	"orrery/visuals/interact"
	"orrery/visuals/mount"
	"orrery/visuals/quarkgl"
	"orrery/visuals/sphere"
)

type Options struct {
	Items     []gallery.Item
	AssetRoot string

	TextureWidth  int
	TextureHeight int

	Sphere sphere.Config
}

type Task struct {
	opts Options
	host mount.Host

	tex     *gallery.Textures
	scene   *sphere.Scene
	state   *interact.State
	overlay *interact.Overlay
	sub     *frameloop.Subscription

	cursor hal.CursorShape
}

func New(opts Options) *Task {
	if opts.TextureWidth <= 0 {
		opts.TextureWidth = 160
	}
	if opts.TextureHeight <= 0 {
		opts.TextureHeight = 100
	}
	return &Task{opts: opts}
}

func (t *Task) Mount(h mount.Host) error {
	if t.sub != nil {
		return nil
	}
	if len(t.opts.Items) == 0 {
		return gallery.ErrEmptyManifest
	}
	t.host = h
	t.tex = gallery.LoadTextures(t.opts.Items, t.opts.AssetRoot, t.opts.TextureWidth, t.opts.TextureHeight, h.Log)
	t.scene = sphere.New(t.opts.Sphere, t.opts.Items, t.tex)
	t.state = interact.NewState(t.opts.Items)
	t.overlay = interact.NewOverlay()
	t.cursor = hal.CursorDefault
	t.sub = h.Loop.Subscribe("orbitgallery", t)
	h.Logf("orbitgallery: mounted %d items, %d particles", len(t.opts.Items), len(t.scene.Particles()))
	return nil
}

func (t *Task) Unmount() {
	if t.sub == nil {
		return
	}
	t.sub.Cancel()
	t.sub = nil
	t.scene.Release()
	t.tex.Release()
	t.setCursor(hal.CursorDefault)
	t.scene, t.tex, t.state, t.overlay = nil, nil, nil, nil
}

// State exposes the interaction state, mainly for the host's status line.
func (t *Task) State() *interact.State { return t.state }

func (t *Task) Step(f *frameloop.Frame) {
	w, h := f.Size()
	if w <= 0 || h <= 0 {
		return
	}
	in := f.Input

	if t.state.OverlayVisible() {
		t.scene.ClearPointer()
		t.state.SetHovering(false)
		for _, k := range in.Keys {
			if _, err := t.state.HandleKey(k, t.host.Navigator); err != nil {
				t.host.Logf("orbitgallery: %v", err)
			}
		}
		if in.Pressed {
			if _, err := t.state.HandleClick(in.X, in.Y, w, h, t.host.Navigator); err != nil {
				t.host.Logf("orbitgallery: %v", err)
			}
		}
	} else {
		t.state.SetHovering(in.Inside)
		if i, ok := t.scene.Pointer(in, w, h); ok && t.state.Select(i) {
			it, _, _ := t.state.Selected()
			t.host.Logf("orbitgallery: selected %s %q", it.ID, it.Title)
		}
	}

	t.setCursor(t.scene.Cursor())
	t.scene.Advance(t.state)
	t.scene.Render(f.Surface)
	t.overlay.Draw(quarkgl.NewRGBATarget(f.Surface), t.state)
}

func (t *Task) setCursor(c hal.CursorShape) {
	if c == t.cursor || t.host.Cursor == nil {
		t.cursor = c
		return
	}
	t.cursor = c
	t.host.Cursor.SetCursor(c)
}
