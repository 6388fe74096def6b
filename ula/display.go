//go:build !headless

package ula

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"

	"github.com/zxgo/speccycore/z80core"
)

const (
	screenW, screenH = 256, 192
	borderPx         = 32
	frameW           = screenW + 2*borderPx
	frameH           = screenH + 2*borderPx
	flashFrames      = 16 // ~1.6Hz at 50 frames/s
)

// Display is an ebiten.Game that renders a 48K Spectrum screen straight
// out of z80core.Memory: the 6144-byte bitmap at 0x4000-0x57FF (the
// famous non-linear row addressing) and the 768-byte attribute block at
// 0x5800-0x5AFF, plus the border colour reported by a Bus.
type Display struct {
	mem *z80core.Memory
	bus *Bus

	frame [frameW * frameH * 4]byte
	img   *ebiten.Image

	flashCounter int
	flashOn      bool

	// keyHandler, when set, is invoked on every Update with the current
	// pressed/released state of each mapped matrix key (and with a press
	// then a release per pasted rune), so a host can drive Bus.SetKey
	// without Display depending on it directly.
	keyHandler func(row, bit int, down bool)

	showOSD    bool
	osdMessage string

	clipboardOK   bool
	clipboardInit bool

	onClose func()

	// snapshotHandler, when set, is asked for the current register state
	// on F8 so it can be copied to the clipboard for a bug report.
	snapshotHandler func() z80core.RegisterSnapshot
}

// NewDisplay constructs a Display bound to the memory it reads and the
// bus it asks for the current border colour.
func NewDisplay(mem *z80core.Memory, bus *Bus) *Display {
	return &Display{mem: mem, bus: bus}
}

// SetKeyHandler installs the callback that receives matrix key states.
func (d *Display) SetKeyHandler(fn func(row, bit int, down bool)) { d.keyHandler = fn }

// SetOnClose installs the callback invoked when the window closes.
func (d *Display) SetOnClose(fn func()) { d.onClose = fn }

// SetSnapshotHandler installs the callback consulted when the user asks
// to copy the current register state to the clipboard (F8).
func (d *Display) SetSnapshotHandler(fn func() z80core.RegisterSnapshot) {
	d.snapshotHandler = fn
}

// Tick advances the flash-attribute timer; call once per emulated frame
// (every 69888 t-states on a 48K machine).
func (d *Display) Tick() {
	d.flashCounter++
	if d.flashCounter >= flashFrames {
		d.flashCounter = 0
		d.flashOn = !d.flashOn
	}
}

func (d *Display) Update() error {
	if ebiten.IsWindowBeingClosed() {
		if d.onClose != nil {
			d.onClose()
		}
		return ebiten.Termination
	}
	d.handleKeyboard()
	if ebitenKeyJustPressed(keyF12) {
		d.showOSD = !d.showOSD
	}
	if ebitenKeyJustPressed(keyF9) {
		d.pasteFromClipboard()
	}
	if ebitenKeyJustPressed(keyF8) && d.snapshotHandler != nil {
		d.osdMessage = "snapshot copy failed"
		if err := CopySnapshotToClipboard(d.snapshotHandler()); err == nil {
			d.osdMessage = "register snapshot copied"
		}
		d.showOSD = true
	}
	return nil
}

func (d *Display) Draw(screen *ebiten.Image) {
	d.render()
	if d.img == nil {
		d.img = ebiten.NewImage(frameW, frameH)
	}
	d.img.WritePixels(d.frame[:])
	screen.DrawImage(d.img, nil)
	if d.showOSD {
		drawOSD(screen, d.osdMessage)
	}
}

func (d *Display) Layout(_, _ int) (int, int) { return frameW, frameH }

// render paints the border and the 256x192 attribute-based display area
// directly from memory, following the ZX Spectrum's non-linear bitmap
// addressing: addr = 0x4000 | (y&0xC0)<<5 | (y&0x07)<<8 | (y&0x38)<<2 | x>>3.
func (d *Display) render() {
	br, bg, bb := rgb(d.bus.Border(), false)
	for i := 0; i < len(d.frame); i += 4 {
		d.frame[i+0], d.frame[i+1], d.frame[i+2], d.frame[i+3] = br, bg, bb, 0xff
	}

	for y := 0; y < screenH; y++ {
		rowAddr := uint16(0x4000 | (y&0xc0)<<5 | (y&0x07)<<8 | (y&0x38)<<2)
		cellY := y >> 3
		attrBase := 0x5800 + cellY*32
		frameRow := (borderPx + y) * frameW * 4

		for cellX := 0; cellX < 32; cellX++ {
			bitmap := d.mem.ReadByte(rowAddr + uint16(cellX))
			attr := d.mem.ReadByte(uint16(attrBase + cellX))

			ink := attr & 0x07
			paper := (attr >> 3) & 0x07
			bright := attr&0x40 != 0
			flash := attr&0x80 != 0
			if flash && d.flashOn {
				ink, paper = paper, ink
			}
			fr, fg, fb := rgb(ink, bright)
			pr, pg, pb := rgb(paper, bright)

			pixelBase := frameRow + (borderPx+cellX*8)*4
			for bit := 7; bit >= 0; bit-- {
				idx := pixelBase + (7-bit)*4
				if (bitmap>>bit)&1 != 0 {
					d.frame[idx], d.frame[idx+1], d.frame[idx+2], d.frame[idx+3] = fr, fg, fb, 0xff
				} else {
					d.frame[idx], d.frame[idx+1], d.frame[idx+2], d.frame[idx+3] = pr, pg, pb, 0xff
				}
			}
		}
	}
}

func drawOSD(screen *ebiten.Image, msg string) {
	if msg == "" {
		msg = "speccycore"
	}
	text.Draw(screen, msg, basicfont.Face7x13, 4, frameH-6, color.White)
}

func (d *Display) pasteFromClipboard() {
	if !d.clipboardInit {
		d.clipboardInit = true
		d.clipboardOK = clipboard.Init() == nil
	}
	if !d.clipboardOK || d.keyHandler == nil {
		return
	}
	// Clipboard paste is surfaced to the host as a sequence of key edges
	// through the same handler real keypresses use; the host's keymap
	// (input.go) owns the byte->matrix translation.
	data := clipboard.Read(clipboard.FmtText)
	for _, r := range data {
		row, bit, ok := RuneToMatrix(rune(r))
		if !ok {
			continue
		}
		d.keyHandler(row, bit, true)
		d.keyHandler(row, bit, false)
	}
}
