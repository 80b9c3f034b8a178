package interact

import (
	"errors"
	"image"
	"strings"
	"testing"

	"orrery/hal"
	"orrery/visuals/gallery"
	"orrery/visuals/quarkgl"
)

type recordingNav struct {
	opened []string
	err    error
}

func (n *recordingNav) Open(url string) error {
	n.opened = append(n.opened, url)
	return n.err
}

func restrictedIndex(t *testing.T, items []gallery.Item) int {
	t.Helper()
	for i, it := range items {
		if it.Restricted {
			return i
		}
	}
	t.Fatal("no restricted item in default list")
	return -1
}

func TestRestrictedActivationNeverNavigates(t *testing.T) {
	items := gallery.Default()
	st := NewState(items)
	nav := &recordingNav{}
	i := restrictedIndex(t, items)

	if !st.Select(i) {
		t.Fatal("select failed")
	}
	if err := st.Activate(nav); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if st.Mode() != Restricted {
		t.Fatalf("mode = %v, want restricted", st.Mode())
	}
	if _, err := st.HandleKey(hal.KeyEnter, nav); err != nil {
		t.Fatalf("HandleKey: %v", err)
	}
	if len(nav.opened) != 0 {
		t.Fatalf("restricted item navigated to %q", nav.opened)
	}
}

func TestActivateOpensLink(t *testing.T) {
	items := gallery.Default()
	st := NewState(items)
	nav := &recordingNav{}
	st.Select(0)
	if _, err := st.HandleKey(hal.KeyEnter, nav); err != nil {
		t.Fatalf("HandleKey: %v", err)
	}
	if len(nav.opened) != 1 || nav.opened[0] != items[0].Link {
		t.Fatalf("opened %q, want %q", nav.opened, items[0].Link)
	}
	if st.Mode() != Detail {
		t.Fatalf("mode after open = %v", st.Mode())
	}
}

func TestActivateWrapsNavigatorError(t *testing.T) {
	boom := errors.New("boom")
	st := NewState(gallery.Default())
	st.Select(1)
	if err := st.Activate(&recordingNav{err: boom}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestRoundTripRestoresState(t *testing.T) {
	st := NewState(gallery.Default())
	st.SetHovering(true)
	before := st.Snapshot()

	st.Select(2)
	if st.Mode() != Detail || !st.OverlayVisible() {
		t.Fatalf("expected detail overlay, got %v", st.Mode())
	}
	if used, _ := st.HandleKey(hal.KeyEscape, nil); !used {
		t.Fatal("escape should be used while overlay is shown")
	}
	if got := st.Snapshot(); got != before {
		t.Fatalf("state after round trip = %+v, want %+v", got, before)
	}
	if _, _, ok := st.Selected(); ok {
		t.Fatal("selection leaked")
	}
}

func TestSelectIgnoredWhileOverlayShown(t *testing.T) {
	st := NewState(gallery.Default())
	st.Select(0)
	if st.Select(1) {
		t.Fatal("select should be ignored while an overlay is shown")
	}
	if _, i, _ := st.Selected(); i != 0 {
		t.Fatalf("selected = %d", i)
	}
	if st.Select(-1) || st.Select(99) {
		t.Fatal("out of range select accepted")
	}
}

func TestClickRouting(t *testing.T) {
	const w, h = 640, 400
	l := NewLayout(w, h)
	center := func(r image.Rectangle) (float32, float32) {
		c := r.Min.Add(r.Max).Div(2)
		return float32(c.X), float32(c.Y)
	}
	items := gallery.Default()
	nav := &recordingNav{}

	st := NewState(items)
	if used, _ := st.HandleClick(5, 5, w, h, nav); used {
		t.Fatal("click while browsing must reach the scene")
	}

	st.Select(0)
	x, y := center(l.Card)
	if used, _ := st.HandleClick(x, y, w, h, nav); !used || st.Mode() != Detail {
		t.Fatal("click on card body should be consumed and keep the card")
	}
	if used, _ := st.HandleClick(2, 2, w, h, nav); !used || st.Mode() != Browsing {
		t.Fatal("backdrop click should dismiss")
	}

	st.Select(0)
	x, y = center(l.Close)
	st.HandleClick(x, y, w, h, nav)
	if st.Mode() != Browsing {
		t.Fatal("close control should dismiss")
	}

	st.Select(restrictedIndex(t, items))
	x, y = center(l.Action)
	st.HandleClick(x, y, w, h, nav)
	if st.Mode() != Restricted {
		t.Fatalf("action on restricted item: mode %v", st.Mode())
	}
	st.HandleClick(x, y, w, h, nav)
	if st.Mode() != Browsing {
		t.Fatal("action on the notice should close it")
	}
	if len(nav.opened) != 0 {
		t.Fatalf("unexpected navigation %q", nav.opened)
	}
}

func TestRestrictedNoticeContent(t *testing.T) {
	items := gallery.Default()
	i := restrictedIndex(t, items)
	items[i].Link = "https://should-never-show.example"

	st := NewState(items)
	st.Select(i)
	o := NewOverlay()
	l := NewLayout(640, 400)

	check := func(mode Mode) string {
		var all []string
		for _, ln := range o.content(st, l) {
			all = append(all, ln.Text)
		}
		text := strings.Join(all, "\n")
		if strings.Contains(text, "http") || strings.Contains(text, "example") {
			t.Fatalf("%v card leaked a link:\n%s", mode, text)
		}
		return text
	}

	if text := check(Detail); !strings.Contains(text, "LOCKED") {
		t.Fatalf("detail card of restricted item should show a lock:\n%s", text)
	}
	st.Activate(nil)
	if text := check(Restricted); !strings.Contains(text, "CLASSIFIED ASSET") {
		t.Fatalf("notice missing header:\n%s", text)
	}
}

func TestOverlayDrawsOnlyWhenVisible(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 320, 200))
	target := quarkgl.NewRGBATarget(img)
	st := NewState(gallery.Default())
	o := NewOverlay()

	o.Draw(target, st)
	for _, b := range img.Pix {
		if b != 0 {
			t.Fatal("overlay drew while browsing")
		}
	}

	st.Select(0)
	o.Draw(target, st)
	if c := target.Pixel(1, 1); c.A == 0 {
		t.Fatal("backdrop not drawn")
	}
}

func TestWrapText(t *testing.T) {
	o := NewOverlay()
	lines := wrapText(o.font, "one two three four five six seven eight nine ten", 60)
	if len(lines) < 2 {
		t.Fatalf("expected wrapping, got %q", lines)
	}
	for _, ln := range lines {
		if w := textWidth(o.font, ln); w > 60 && strings.Contains(ln, " ") {
			t.Fatalf("line %q is %dpx wide", ln, w)
		}
	}
	if wrapText(o.font, "   ", 60) != nil {
		t.Fatal("blank text should produce no lines")
	}
}
