package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
)

type hostHAL struct {
	logger *hostLogger
	fb     *hostSurface
	clock  *hostClock
	in     *hostInput
	cursor Cursor
	nav    Navigator

	mu     sync.Mutex
	status string
}

// newHost returns a host HAL with a w×h surface. The window runner swaps in
// its ebiten-backed input and cursor.
func newHost(w, h int, clock *hostClock, nav Navigator) *hostHAL {
	logger := &hostLogger{w: os.Stdout}
	if nav == nil {
		nav = newHostNavigator(logger, false)
	}
	return &hostHAL{
		logger: logger,
		fb:     newHostSurface(w, h),
		clock:  clock,
		in:     &hostInput{},
		cursor: &nullCursor{},
		nav:    nav,
	}
}

func (h *hostHAL) Logger() Logger       { return h.logger }
func (h *hostHAL) Surface() Surface     { return h.fb }
func (h *hostHAL) Clock() Clock         { return h.clock }
func (h *hostHAL) Input() Input         { return h.in }
func (h *hostHAL) Cursor() Cursor       { return h.cursor }
func (h *hostHAL) Navigator() Navigator { return h.nav }

func (h *hostHAL) SetStatus(s string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.status = s
}

func (h *hostHAL) statusLine() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status
}

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

// hostInput holds the state sampled by the runner for the current frame.
type hostInput struct {
	mu    sync.Mutex
	state InputState
}

func (in *hostInput) State() InputState {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.state
}

func (in *hostInput) set(s InputState) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.state = s
}

type nullCursor struct {
	shape CursorShape
}

func (c *nullCursor) SetCursor(s CursorShape) { c.shape = s }
