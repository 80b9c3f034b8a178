package hal

import (
	"errors"
	"image"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// Surface is the RGBA frame the visuals render into.
//
// Its size follows the host viewport and may change between frames, never
// during one.
type Surface interface {
	Size() (w, h int)
	Image() *image.RGBA
}

// Clock reports monotonic seconds since the host started.
type Clock interface {
	Now() float64
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyTab
	KeySpace
)

// InputState is the pointer and keyboard state sampled once per frame.
// Coordinates are surface pixels, origin top-left.
type InputState struct {
	X, Y   float32
	Inside bool

	// Down is the held state of the primary button. Pressed and Released
	// are edges observed this frame.
	Down     bool
	Pressed  bool
	Released bool

	// Keys lists keys that went down this frame.
	Keys []KeyCode
}

// KeyPressed reports whether k went down this frame.
func (s InputState) KeyPressed(k KeyCode) bool {
	for _, c := range s.Keys {
		if c == k {
			return true
		}
	}
	return false
}

// Input provides the current frame's input state.
type Input interface {
	State() InputState
}

// CursorShape selects the pointer icon.
type CursorShape uint8

const (
	CursorDefault CursorShape = iota
	CursorPointer
)

func (c CursorShape) String() string {
	switch c {
	case CursorDefault:
		return "default"
	case CursorPointer:
		return "pointer"
	default:
		return "unknown"
	}
}

// Cursor sets the pointer icon (best-effort on each platform).
type Cursor interface {
	SetCursor(CursorShape)
}

// Navigator opens an external link.
type Navigator interface {
	Open(url string) error
}

// HAL provides the only contact point between the visuals and the outside world.
type HAL interface {
	Logger() Logger
	Surface() Surface
	Clock() Clock
	Input() Input
	Cursor() Cursor
	Navigator() Navigator

	// SetStatus sets the one-line status shown by hosts that have a HUD.
	SetStatus(s string)
}
