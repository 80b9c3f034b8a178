// Package galaxy mounts the additive nebula backdrop.
package galaxy

import (
	"orrery/visuals/frameloop"
	"orrery/visuals/mount"
	"orrery/visuals/shader"
	"orrery/visuals/surface"
)

type Options struct {
	Workers int
	Detail  int
}

type Task struct {
	opts Options

	adapter *surface.Adapter
	sub     *frameloop.Subscription
}

func New(opts Options) *Task {
	return &Task{opts: opts}
}

func (t *Task) Mount(h mount.Host) error {
	if t.sub != nil {
		return nil
	}
	detail := t.opts.Detail
	// The nebula is soft; half resolution is indistinguishable.
	if detail < 2 {
		detail = 2
	}
	t.adapter = surface.New(shader.Galaxy{}, t.opts.Workers, detail)
	t.sub = h.Loop.Subscribe("galaxy", t.adapter)
	h.Logf("galaxy: mounted (detail %d)", detail)
	return nil
}

func (t *Task) Unmount() {
	if t.sub == nil {
		return
	}
	t.sub.Cancel()
	t.sub = nil
	t.adapter = nil
}
