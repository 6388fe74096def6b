// Package ula is a reference z80core.Bus and screen renderer for a
// 48K ZX Spectrum: port 0xFE decode (border/speaker/mic/keyboard),
// Kempston joystick at 0x1F, and an ebiten-backed display that renders
// the attribute-based screen straight out of z80core.Memory.
package ula

// normalColor and brightColor are the eight 3-bit INK/PAPER indices as
// RGB triples, matching the standard Spectrum palette at normal and bright
// intensity.
var normalColor = [8][3]byte{
	{0x00, 0x00, 0x00}, // black
	{0x00, 0x00, 0xcd}, // blue
	{0xcd, 0x00, 0x00}, // red
	{0xcd, 0x00, 0xcd}, // magenta
	{0x00, 0xcd, 0x00}, // green
	{0x00, 0xcd, 0xcd}, // cyan
	{0xcd, 0xcd, 0x00}, // yellow
	{0xcd, 0xcd, 0xcd}, // white
}

var brightColor = [8][3]byte{
	{0x00, 0x00, 0x00},
	{0x00, 0x00, 0xff},
	{0xff, 0x00, 0x00},
	{0xff, 0x00, 0xff},
	{0x00, 0xff, 0x00},
	{0x00, 0xff, 0xff},
	{0xff, 0xff, 0x00},
	{0xff, 0xff, 0xff},
}

func rgb(idx byte, bright bool) (r, g, b byte) {
	idx &= 0x07
	if bright {
		c := brightColor[idx]
		return c[0], c[1], c[2]
	}
	c := normalColor[idx]
	return c[0], c[1], c[2]
}
