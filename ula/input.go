//go:build !headless

package ula

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	keyF8  = ebiten.KeyF8
	keyF9  = ebiten.KeyF9
	keyF12 = ebiten.KeyF12
)

func ebitenKeyJustPressed(k ebiten.Key) bool { return inpututil.IsKeyJustPressed(k) }

// matrixKey names one of the 40 keys on the 48K keyboard by its matrix
// coordinate: row is selected by address line A8+row, bit is the data
// bit within that row (0-4).
type matrixKey struct {
	row, bit int
	ebKey    ebiten.Key
}

// keymap pairs matrix keys with the host keys that drive them, per the
// standard 48K keyboard layout. Symbol Shift (row 7, bit 1) is not in
// this table; handleKeyboard drives it and Caps Shift separately.
var keymap = []matrixKey{
	{3, 0, ebiten.Key1}, {3, 1, ebiten.Key2}, {3, 2, ebiten.Key3}, {3, 3, ebiten.Key4}, {3, 4, ebiten.Key5},
	{4, 0, ebiten.Key0}, {4, 1, ebiten.Key9}, {4, 2, ebiten.Key8}, {4, 3, ebiten.Key7}, {4, 4, ebiten.Key6},
	{2, 0, ebiten.KeyQ}, {2, 1, ebiten.KeyW}, {2, 2, ebiten.KeyE}, {2, 3, ebiten.KeyR}, {2, 4, ebiten.KeyT},
	{5, 0, ebiten.KeyP}, {5, 1, ebiten.KeyO}, {5, 2, ebiten.KeyI}, {5, 3, ebiten.KeyU}, {5, 4, ebiten.KeyY},
	{1, 0, ebiten.KeyA}, {1, 1, ebiten.KeyS}, {1, 2, ebiten.KeyD}, {1, 3, ebiten.KeyF}, {1, 4, ebiten.KeyG},
	{6, 0, ebiten.KeyEnter}, {6, 1, ebiten.KeyL}, {6, 2, ebiten.KeyK}, {6, 3, ebiten.KeyJ}, {6, 4, ebiten.KeyH},
	{0, 0, ebiten.KeyCapsLock}, {0, 1, ebiten.KeyZ}, {0, 2, ebiten.KeyX}, {0, 3, ebiten.KeyC}, {0, 4, ebiten.KeyV},
	{7, 0, ebiten.KeySpace}, {7, 2, ebiten.KeyM}, {7, 3, ebiten.KeyN}, {7, 4, ebiten.KeyB},
}

var shiftKey = matrixKey{row: 0, bit: 0}
var symShiftKey = matrixKey{row: 7, bit: 1}

// asciiMatrix maps a printable rune to its unshifted matrix key, for
// clipboard paste and scripted input that bypass ebiten key events.
var asciiMatrix = map[rune]matrixKey{
	'0': {4, 0, 0}, '1': {3, 0, 0}, '2': {3, 1, 0}, '3': {3, 2, 0}, '4': {3, 3, 0}, '5': {3, 4, 0},
	'6': {4, 4, 0}, '7': {4, 3, 0}, '8': {4, 2, 0}, '9': {4, 1, 0},
	'q': {2, 0, 0}, 'w': {2, 1, 0}, 'e': {2, 2, 0}, 'r': {2, 3, 0}, 't': {2, 4, 0},
	'p': {5, 0, 0}, 'o': {5, 1, 0}, 'i': {5, 2, 0}, 'u': {5, 3, 0}, 'y': {5, 4, 0},
	'a': {1, 0, 0}, 's': {1, 1, 0}, 'd': {1, 2, 0}, 'f': {1, 3, 0}, 'g': {1, 4, 0},
	'l': {6, 1, 0}, 'k': {6, 2, 0}, 'j': {6, 3, 0}, 'h': {6, 4, 0}, '\n': {6, 0, 0},
	'z': {0, 1, 0}, 'x': {0, 2, 0}, 'c': {0, 3, 0}, 'v': {0, 4, 0},
	'm': {7, 2, 0}, 'n': {7, 3, 0}, 'b': {7, 4, 0}, ' ': {7, 0, 0},
}

// RuneToMatrix resolves a printable rune to the matrix key that would
// produce it if typed directly, for clipboard paste and scripted input.
// Shifted symbols are not decomposed into SHIFT+key combinations here;
// callers needing that should drive Bus.SetKey for both keys themselves.
func RuneToMatrix(r rune) (row, bit int, ok bool) {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	k, found := asciiMatrix[r]
	if !found {
		return 0, 0, false
	}
	return k.row, k.bit, true
}

// handleKeyboard polls ebiten's key state every Update and forwards the
// current state of every mapped matrix key to keyHandler.
func (d *Display) handleKeyboard() {
	if d.keyHandler == nil {
		return
	}
	for _, k := range keymap {
		d.keyHandler(k.row, k.bit, ebiten.IsKeyPressed(k.ebKey))
	}
	shiftDown := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
	d.keyHandler(shiftKey.row, shiftKey.bit, shiftDown)
	symShiftDown := ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) ||
		ebiten.IsKeyPressed(ebiten.KeyControlLeft)
	d.keyHandler(symShiftKey.row, symShiftKey.bit, symShiftDown)
}
