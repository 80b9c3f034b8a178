// Package mount is the contract between the host and a mountable visual.
package mount

import (
	"fmt"

	"orrery/hal"
	"orrery/visuals/frameloop"
)

// Host is everything a visual may touch while mounted.
type Host struct {
	Loop      *frameloop.Loop
	Log       hal.Logger
	Cursor    hal.Cursor
	Navigator hal.Navigator
}

// Logf writes a formatted line when a logger is present.
func (h Host) Logf(format string, args ...any) {
	if h.Log == nil {
		return
	}
	h.Log.WriteLineString(fmt.Sprintf(format, args...))
}

// Visual renders continuously from Mount until Unmount. Unmount must cancel
// every frame subscription and release what Mount allocated; it is called
// at most once per successful Mount.
type Visual interface {
	Mount(Host) error
	Unmount()
}
