package galaxy

import (
	"image"
	"testing"

	"orrery/hal"
	"orrery/visuals/frameloop"
	"orrery/visuals/mount"
)

func TestMountUsesReducedDetail(t *testing.T) {
	l := frameloop.New()
	task := New(Options{Workers: 1, Detail: 1})
	if err := task.Mount(mount.Host{Loop: l}); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if task.adapter.Detail != 2 {
		t.Fatalf("detail = %d, want 2", task.adapter.Detail)
	}
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	l.Step(0, img, hal.InputState{})

	task.Unmount()
	if l.Len() != 0 {
		t.Fatalf("expected no tasks after unmount, got %d", l.Len())
	}
}
