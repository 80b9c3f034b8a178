package interact

import (
	"image"
	"image/color"
	"strings"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"orrery/visuals/quarkgl"
)

// Part is a region of the overlay.
type Part uint8

const (
	PartNone Part = iota
	PartBackdrop
	PartCard
	PartClose
	PartAction
)

// Layout positions the overlay on a w×h frame.
type Layout struct {
	Frame  image.Rectangle
	Card   image.Rectangle
	Close  image.Rectangle
	Action image.Rectangle
}

const (
	cardMaxW = 380
	cardMaxH = 230
	cardPad  = 12
	lineH    = 12
)

func NewLayout(w, h int) Layout {
	l := Layout{Frame: image.Rect(0, 0, w, h)}
	cw, ch := minInt(cardMaxW, w-16), minInt(cardMaxH, h-16)
	if cw <= 0 || ch <= 0 {
		return l
	}
	x0, y0 := (w-cw)/2, (h-ch)/2
	l.Card = image.Rect(x0, y0, x0+cw, y0+ch)
	l.Close = image.Rect(l.Card.Max.X-cardPad-12, l.Card.Min.Y+6, l.Card.Max.X-6, l.Card.Min.Y+cardPad+6)
	l.Action = image.Rect(l.Card.Min.X+cardPad, l.Card.Max.Y-cardPad-18, l.Card.Min.X+cardPad+136, l.Card.Max.Y-cardPad)
	return l
}

// Hit classifies the point (x, y).
func (l Layout) Hit(x, y float32, m Mode) Part {
	if m == Browsing {
		return PartNone
	}
	p := image.Pt(int(x), int(y))
	switch {
	case !p.In(l.Frame):
		return PartNone
	case p.In(l.Close):
		return PartClose
	case p.In(l.Action):
		return PartAction
	case p.In(l.Card):
		return PartCard
	default:
		return PartBackdrop
	}
}

var (
	colBackdrop = quarkgl.RGBA(0, 0, 0, 0xE0)
	colCard     = quarkgl.RGB(0x05, 0x05, 0x05)
	colAmber    = color.RGBA{0xF5, 0x9E, 0x0B, 0xFF}
	colAmberDim = color.RGBA{0xB4, 0x78, 0x10, 0xFF}
	colRed      = color.RGBA{0xEF, 0x44, 0x44, 0xFF}
	colText     = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
	colMuted    = color.RGBA{0x99, 0x99, 0x99, 0xFF}
	colFaint    = color.RGBA{0x66, 0x66, 0x66, 0xFF}
)

// Overlay draws the modal card. Not safe for concurrent use.
type Overlay struct {
	font tinyfont.Fonter
	d    targetDisplay
}

func NewOverlay() *Overlay {
	return &Overlay{font: &proggy.TinySZ8pt7b}
}

// textLine is one run of text at a baseline position.
type textLine struct {
	X, Y int
	Text string
	C    color.RGBA
}

// Draw renders the overlay for st onto t. Nothing is drawn while browsing.
func (o *Overlay) Draw(t quarkgl.Target, st *State) {
	if t == nil || st == nil || !st.OverlayVisible() {
		return
	}
	w, h := t.Size()
	l := NewLayout(w, h)
	if l.Card.Empty() {
		return
	}

	quarkgl.FillRect(t, l.Frame, colBackdrop, quarkgl.BlendNormal)
	quarkgl.FillRect(t, l.Card, colCard, quarkgl.BlendReplace)

	edge := colAmberDim
	if st.Mode() == Restricted {
		edge = colRed
		// Alert bar along the top edge.
		bar := image.Rect(l.Card.Min.X, l.Card.Min.Y, l.Card.Max.X, l.Card.Min.Y+2)
		quarkgl.FillRect(t, bar, rgba(colRed), quarkgl.BlendReplace)
	}
	quarkgl.StrokeRect(t, l.Card, rgba(edge).WithAlpha(0x80))
	quarkgl.StrokeRect(t, l.Close, rgba(colFaint))
	quarkgl.StrokeRect(t, l.Action, rgba(edge))

	o.d.t = t
	for _, ln := range o.content(st, l) {
		tinyfont.WriteLine(&o.d, o.font, int16(ln.X), int16(ln.Y), ln.Text, ln.C)
	}
	o.d.t = nil
}

// content lays out the card's text. Restricted items never show a link.
func (o *Overlay) content(st *State, l Layout) []textLine {
	it, _, ok := st.Selected()
	if !ok {
		return nil
	}
	x := l.Card.Min.X + cardPad
	y := l.Card.Min.Y + cardPad + lineH
	maxW := l.Card.Dx() - 2*cardPad - 16

	var out []textLine
	add := func(s string, c color.RGBA) {
		out = append(out, textLine{X: x, Y: y, Text: s, C: c})
		y += lineH
	}
	out = append(out, textLine{X: l.Close.Min.X + 3, Y: l.Close.Max.Y - 3, Text: "x", C: colMuted})

	actionX, actionY := l.Action.Min.X+8, l.Action.Max.Y-5

	if st.Mode() == Restricted {
		add("CLASSIFIED ASSET", colRed)
		y += lineH / 2
		add(it.Title, colText)
		for _, s := range wrapText(o.font, "Repository hosted securely on AWS CodeCommit.", maxW) {
			add(s, colMuted)
		}
		for _, s := range wrapText(o.font, "Restricted access due to TIAA/Fintech IP Protection Protocols.", maxW) {
			add(s, colFaint)
		}
		out = append(out, textLine{X: actionX, Y: actionY, Text: "CLOSE PROTOCOL", C: colRed})
		return out
	}

	if label, text, ok := it.Badge(); ok {
		add(label+" | "+text, colAmber)
	}
	add(strings.ToUpper(it.Title), colText)
	add(strings.ToUpper(it.Subtitle)+"  "+it.Year, colAmberDim)
	y += lineH / 2
	for _, s := range wrapText(o.font, it.Description, maxW) {
		if y > l.Action.Min.Y-2*lineH {
			break
		}
		add(s, colMuted)
	}
	if len(it.Tags) > 0 {
		add(strings.ToUpper(strings.Join(it.Tags, " / ")), colFaint)
	}

	action := "OPEN REPOSITORY >"
	if it.Restricted {
		action = "LOCKED"
	}
	c := colText
	if it.Restricted {
		c = colRed
	}
	out = append(out, textLine{X: actionX, Y: actionY, Text: action, C: c})
	return out
}

func rgba(c color.RGBA) quarkgl.Color { return quarkgl.RGBA(c.R, c.G, c.B, c.A) }

// targetDisplay adapts a quarkgl.Target to the tinyfont display interface.
type targetDisplay struct {
	t quarkgl.Target
}

var _ drivers.Displayer = (*targetDisplay)(nil)

func (d *targetDisplay) Size() (x, y int16) {
	if d.t == nil {
		return 0, 0
	}
	w, h := d.t.Size()
	return int16(w), int16(h)
}

func (d *targetDisplay) SetPixel(x, y int16, c color.RGBA) {
	if d.t == nil {
		return
	}
	d.t.BlendPixel(int(x), int(y), rgba(c), quarkgl.BlendNormal)
}

func (d *targetDisplay) Display() error { return nil }

func wrapText(f tinyfont.Fonter, s string, maxW int) []string {
	s = strings.TrimSpace(s)
	if s == "" || maxW <= 0 {
		return nil
	}
	if textWidth(f, s) <= maxW {
		return []string{s}
	}

	var out []string
	cur := ""
	for _, word := range strings.Fields(s) {
		next := word
		if cur != "" {
			next = cur + " " + word
		}
		if textWidth(f, next) <= maxW {
			cur = next
			continue
		}
		if cur != "" {
			out = append(out, cur)
			cur = ""
		}
		if textWidth(f, word) <= maxW {
			cur = word
			continue
		}

		// Hard-wrap long words.
		r := []rune(word)
		for len(r) > 0 {
			n := len(r)
			for n > 1 && textWidth(f, string(r[:n])) > maxW {
				n--
			}
			out = append(out, string(r[:n]))
			r = r[n:]
		}
	}
	if cur != "" {
		out = append(out, cur)
	}
	return out
}

func textWidth(f tinyfont.Fonter, s string) int {
	_, w := tinyfont.LineWidth(f, s)
	return int(w)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
