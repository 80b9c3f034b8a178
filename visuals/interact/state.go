// Package interact is the selection layer of the orbit gallery: which item
// is open, whether the pointer rests on the scene, and the modal overlay
// that shows an item's details.
package interact

import (
	"fmt"

	"orrery/hal"
	"orrery/visuals/gallery"
)

// Mode is the overlay state.
type Mode uint8

const (
	// Browsing shows no overlay.
	Browsing Mode = iota
	// Detail shows the selected item's card.
	Detail
	// Restricted shows the access notice for a restricted item.
	Restricted
)

func (m Mode) String() string {
	switch m {
	case Browsing:
		return "browsing"
	case Detail:
		return "detail"
	case Restricted:
		return "restricted"
	default:
		return "unknown"
	}
}

// Snapshot is a comparable copy of State.
type Snapshot struct {
	Hovering bool
	Selected int
	Mode     Mode
}

// State is touched only from the frame loop, so it has no locks.
type State struct {
	items    []gallery.Item
	hovering bool
	selected int
	mode     Mode
}

func NewState(items []gallery.Item) *State {
	return &State{items: items, selected: -1}
}

func (s *State) SetHovering(v bool) { s.hovering = v }
func (s *State) Hovering() bool     { return s.hovering }
func (s *State) Mode() Mode         { return s.mode }

// OverlayVisible reports whether a card is shown.
func (s *State) OverlayVisible() bool { return s.mode != Browsing }

// Selected returns the open item.
func (s *State) Selected() (gallery.Item, int, bool) {
	if s.selected < 0 || s.selected >= len(s.items) {
		return gallery.Item{}, -1, false
	}
	return s.items[s.selected], s.selected, true
}

func (s *State) Snapshot() Snapshot {
	return Snapshot{Hovering: s.hovering, Selected: s.selected, Mode: s.mode}
}

// Select opens item i. It is ignored while an overlay is shown or when i
// is out of range.
func (s *State) Select(i int) bool {
	if s.mode != Browsing || i < 0 || i >= len(s.items) {
		return false
	}
	s.selected = i
	s.mode = Detail
	return true
}

// Dismiss closes any overlay and clears the selection.
func (s *State) Dismiss() {
	s.selected = -1
	s.mode = Browsing
}

// Activate runs the primary action of the open card. A restricted item
// switches to the access notice and never reaches nav.
func (s *State) Activate(nav hal.Navigator) error {
	if s.mode != Detail {
		return nil
	}
	it, _, ok := s.Selected()
	if !ok {
		return nil
	}
	if it.Restricted {
		s.mode = Restricted
		return nil
	}
	if it.Link == "" || nav == nil {
		return nil
	}
	if err := nav.Open(it.Link); err != nil {
		return fmt.Errorf("open %s: %w", it.ID, err)
	}
	return nil
}

// HandleKey maps Escape to Dismiss and Enter to Activate. It reports
// whether the key was used.
func (s *State) HandleKey(k hal.KeyCode, nav hal.Navigator) (bool, error) {
	if !s.OverlayVisible() {
		return false, nil
	}
	switch k {
	case hal.KeyEscape:
		s.Dismiss()
		return true, nil
	case hal.KeyEnter:
		return true, s.Activate(nav)
	}
	return false, nil
}

// HandleClick routes a press at (x, y) on a w×h frame to the overlay. The
// overlay is modal: every click is consumed while it is visible.
func (s *State) HandleClick(x, y float32, w, h int, nav hal.Navigator) (bool, error) {
	if !s.OverlayVisible() {
		return false, nil
	}
	l := NewLayout(w, h)
	switch l.Hit(x, y, s.mode) {
	case PartClose, PartBackdrop:
		s.Dismiss()
	case PartAction:
		if s.mode == Restricted {
			s.Dismiss()
			return true, nil
		}
		return true, s.Activate(nav)
	}
	return true, nil
}
