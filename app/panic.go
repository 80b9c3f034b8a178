package app

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"unicode/utf8"

	"orrery/visuals/frameloop"
	"orrery/visuals/quarkgl"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// failure is a visual that panicked and was dropped from the loop.
type failure struct {
	task  string
	value string
}

const maxFailures = 4

var (
	noticeBG = quarkgl.RGBA(0x40, 0x08, 0x08, 0xD0)
	noticeFG = color.RGBA{R: 0xFF, G: 0xC0, B: 0xC0, A: 0xFF}
)

// installPanicHandler logs a failed visual with its stack and keeps a
// notice that Step draws over the surviving visuals.
func (a *App) installPanicHandler() {
	a.loop.SetPanicHandler(func(info frameloop.PanicInfo) {
		a.logf("orrery panic: task=%s panic=%v", info.Task, info.Value)
		for _, line := range strings.Split(string(info.Stack), "\n") {
			if line == "" {
				continue
			}
			a.logf("%s", line)
		}
		if len(a.failures) < maxFailures {
			a.failures = append(a.failures, failure{task: info.Task, value: fmt.Sprint(info.Value)})
		}
	})
}

func (a *App) drawFailures(t quarkgl.Target) {
	if len(a.failures) == 0 {
		return
	}
	font := &proggy.TinySZ8pt7b
	_, outbox := tinyfont.LineWidth(font, "0")
	fontWidth := int(outbox)
	const fontHeight, fontOffset = 10, 8
	if fontWidth <= 0 {
		return
	}

	w, h := t.Size()
	cols := (w - 8) / fontWidth
	if cols <= 0 {
		return
	}

	var lines []string
	for _, f := range a.failures {
		line := fmt.Sprintf("visual %s failed: %s", f.task, f.value)
		for len(line) > 0 {
			chunk, rest := takeRunes(line, cols)
			lines = append(lines, chunk)
			line = strings.TrimLeft(rest, " ")
		}
	}
	if limit := (h - 8) / fontHeight; len(lines) > limit {
		lines = lines[:limit]
	}
	if len(lines) == 0 {
		return
	}

	quarkgl.FillRect(t, image.Rect(0, 0, w, 8+len(lines)*fontHeight), noticeBG, quarkgl.BlendNormal)
	d := noticeDisplay{t: t}
	y := 4
	for _, line := range lines {
		drawTextLine(d, font, int16(fontWidth), fontOffset, 4, int16(y), line, noticeFG)
		y += fontHeight
	}
}

func takeRunes(s string, n int) (chunk, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	i := 0
	for idx := range s {
		if i == n {
			return s[:idx], s[idx:]
		}
		i++
	}
	return s, ""
}

func drawTextLine(
	d noticeDisplay,
	font tinyfont.Fonter,
	fontWidth, fontOffset int16,
	x0, y0 int16,
	s string,
	fg color.RGBA,
) {
	drawX := x0
	for _, r := range s {
		if r == utf8.RuneError {
			r = '?'
		}
		tinyfont.DrawChar(d, font, drawX, y0+fontOffset, r, fg)
		drawX += fontWidth
	}
}

type noticeDisplay struct {
	t quarkgl.Target
}

var _ drivers.Displayer = noticeDisplay{}

func (d noticeDisplay) Size() (x, y int16) {
	if d.t == nil {
		return 0, 0
	}
	w, h := d.t.Size()
	return int16(w), int16(h)
}

func (d noticeDisplay) SetPixel(x, y int16, c color.RGBA) {
	if d.t == nil {
		return
	}
	d.t.SetPixel(int(x), int(y), quarkgl.RGBA(c.R, c.G, c.B, c.A))
}

func (d noticeDisplay) Display() error { return nil }
