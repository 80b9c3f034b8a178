// Package frameloop is the per-frame callback registry the visuals run on.
//
// The host calls Step once per rendered frame; subscribed tasks run in
// subscription order on the caller's goroutine. A task that panics is
// stopped and reported; its siblings keep running.
package frameloop

import (
	"fmt"
	"image"
	"runtime/debug"

	"orrery/hal"
)

// Frame is what a task sees during one step.
type Frame struct {
	// Elapsed is seconds since the task subscribed.
	Elapsed float64
	// Delta is seconds since the previous step (0 on the first).
	Delta float64

	Surface *image.RGBA
	Input   hal.InputState
}

// Size returns the surface dimensions, or 0,0 without a surface.
func (f *Frame) Size() (w, h int) {
	if f == nil || f.Surface == nil {
		return 0, 0
	}
	b := f.Surface.Bounds()
	return b.Dx(), b.Dy()
}

// Task is a cooperative per-frame unit of work.
type Task interface {
	Step(*Frame)
}

// TaskFunc adapts a function to Task.
type TaskFunc func(*Frame)

func (fn TaskFunc) Step(f *Frame) { fn(f) }

// PanicInfo contains details about a recovered task panic.
type PanicInfo struct {
	Task  string
	Value any
	Stack []byte
}

func (p PanicInfo) String() string {
	return fmt.Sprintf("task %s panicked: %v", p.Task, p.Value)
}

type entry struct {
	name      string
	task      Task
	start     float64
	cancelled bool
	failed    bool
}

// Loop is the frame scheduler. It is not safe for concurrent use.
type Loop struct {
	entries []*entry
	now     float64
	stepped bool
	dirty   bool

	onPanic func(PanicInfo)
}

// New creates an empty loop.
func New() *Loop {
	return &Loop{}
}

// SetPanicHandler installs the handler called for every recovered task
// panic. It must not panic.
func (l *Loop) SetPanicHandler(fn func(PanicInfo)) {
	l.onPanic = fn
}

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	l *Loop
	e *entry
}

// Cancel deregisters the task. It is idempotent and safe to call from
// within a step.
func (s *Subscription) Cancel() {
	if s == nil || s.e == nil || s.e.cancelled {
		return
	}
	s.e.cancelled = true
	s.l.dirty = true
}

// Failed reports whether the task was stopped by a panic.
func (s *Subscription) Failed() bool {
	return s != nil && s.e != nil && s.e.failed
}

// Subscribe registers t to run every frame from the next Step on. Its
// Elapsed counts from the loop's current time.
func (l *Loop) Subscribe(name string, t Task) *Subscription {
	e := &entry{name: name, task: t, start: l.now}
	l.entries = append(l.entries, e)
	return &Subscription{l: l, e: e}
}

// Len returns the number of live subscriptions.
func (l *Loop) Len() int {
	n := 0
	for _, e := range l.entries {
		if !e.cancelled {
			n++
		}
	}
	return n
}

// Now returns the last clock reading seen by Step.
func (l *Loop) Now() float64 { return l.now }

// Step runs one frame. now is the host clock in seconds; a reading earlier
// than the previous one is clamped so time never runs backwards.
func (l *Loop) Step(now float64, surface *image.RGBA, in hal.InputState) {
	if now < l.now || now != now {
		now = l.now
	}
	delta := 0.0
	if l.stepped {
		delta = now - l.now
	}
	l.now = now
	l.stepped = true

	// Tasks subscribed during this step start next frame.
	n := len(l.entries)
	for i := 0; i < n; i++ {
		e := l.entries[i]
		if e.cancelled || e.failed {
			continue
		}
		f := Frame{
			Elapsed: now - e.start,
			Delta:   delta,
			Surface: surface,
			Input:   in,
		}
		l.run(e, &f)
	}

	if l.dirty {
		l.compact()
	}
}

func (l *Loop) run(e *entry, f *Frame) {
	defer func() {
		if r := recover(); r != nil {
			e.failed = true
			if l.onPanic != nil {
				l.onPanic(PanicInfo{Task: e.name, Value: r, Stack: debug.Stack()})
			}
		}
	}()
	e.task.Step(f)
}

func (l *Loop) compact() {
	kept := l.entries[:0]
	for _, e := range l.entries {
		if !e.cancelled {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(l.entries); i++ {
		l.entries[i] = nil
	}
	l.entries = kept
	l.dirty = false
}
