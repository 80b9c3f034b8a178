// Package blackhole mounts the event-horizon backdrop.
package blackhole

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
	t.adapter = surface.New(shader.BlackHole{}, t.opts.Workers, t.opts.Detail)
	t.sub = h.Loop.Subscribe("blackhole", t.adapter)
	h.Logf("blackhole: mounted (detail %d)", t.opts.Detail)
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
