//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type ebitenInput struct {
	scale int
	keys  []KeyCode
}

func newEbitenInput(scale int) *ebitenInput {
	if scale <= 0 {
		scale = 1
	}
	return &ebitenInput{scale: scale, keys: make([]KeyCode, 0, 8)}
}

var keyMap = [...]struct {
	key  ebiten.Key
	code KeyCode
}{
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyArrowLeft, KeyLeft},
	{ebiten.KeyArrowRight, KeyRight},
	{ebiten.KeyEnter, KeyEnter},
	{ebiten.KeyNumpadEnter, KeyEnter},
	{ebiten.KeyEscape, KeyEscape},
	{ebiten.KeyTab, KeyTab},
	{ebiten.KeySpace, KeySpace},
}

// poll samples ebiten's input for a w×h surface. Cursor coordinates from
// ebiten are already in layout (surface) space.
func (in *ebitenInput) poll(w, h int) InputState {
	x, y := ebiten.CursorPosition()

	s := InputState{
		X:        float32(x) + 0.5,
		Y:        float32(y) + 0.5,
		Inside:   x >= 0 && y >= 0 && x < w && y < h && ebiten.IsFocused(),
		Down:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Pressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Released: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}

	in.keys = in.keys[:0]
	for _, k := range keyMap {
		if inpututil.IsKeyJustPressed(k.key) {
			in.keys = append(in.keys, k.code)
		}
	}
	if len(in.keys) > 0 {
		s.Keys = append([]KeyCode(nil), in.keys...)
	}
	return s
}

type ebitenCursor struct{}

func (ebitenCursor) SetCursor(c CursorShape) {
	switch c {
	case CursorPointer:
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	default:
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}
