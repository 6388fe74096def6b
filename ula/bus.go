package ula

import "github.com/zxgo/speccycore/z80core"

// Beeper receives the EAR output bit every time the ULA's speaker latch
// changes, timestamped in t-states since the start of the current frame.
// See audio.go for the oto-backed implementation.
type Beeper interface {
	SetLevel(level bool, t z80core.TState)
}

// Bus is a reference z80core.Bus wiring the classic 48K port map: 0xFE
// (border/MIC/speaker out, keyboard in, decoded on A0==0; the EAR input
// bit always reads high) and 0x1F (Kempston joystick in, decoded on the
// low byte only).
type Bus struct {
	mem *z80core.Memory

	border byte
	micOn  bool
	earOut bool

	// keyRows[n] has a 0 bit for every key currently held down on half-row
	// n (A8+n on the address bus selects it), matching the real matrix's
	// active-low wiring; idle is 0xFF.
	keyRows [8]byte

	// kempston holds the four direction bits and fire, 1 = active.
	kempston byte

	beeper Beeper

	frameT z80core.TState // current frame's running t-state, for the beeper

	// AY-3-8912 register latch: the 128K/+3 sound chip is decoded on the
	// full 16-bit port (0xFFFD select, 0xBFFD data) so it doesn't clash
	// with the 48K ULA's partial decode. PSG waveform synthesis is out of
	// scope; this only stores what a host would read back.
	aySelected byte
	ayRegs     [16]byte
}

// NewBus constructs a Bus with no keys held and the Kempston interface
// idle. beeper may be nil for a silent run.
func NewBus(mem *z80core.Memory, beeper Beeper) *Bus {
	b := &Bus{mem: mem, beeper: beeper}
	for i := range b.keyRows {
		b.keyRows[i] = 0xff
	}
	return b
}

// SetFrameTState lets the host tell the bus what t-state the current
// frame is at, so beeper edges land at the right point in the audio
// stream even though In/Out only see the t-state delta of their own
// access.
func (b *Bus) SetFrameTState(t z80core.TState) { b.frameT = t }

// In implements z80core.Bus.
func (b *Bus) In(port uint16, t *z80core.TState) byte {
	b.ioContend(port, t)

	switch {
	case port == 0xfffd:
		return b.ayRegs[b.aySelected]
	case port&0x0001 == 0:
		return b.readULA(port)
	case port&0x00ff == 0x1f:
		return b.kempston
	default:
		return 0xff // floating bus: no device decodes this port
	}
}

// Out implements z80core.Bus.
func (b *Bus) Out(port uint16, value byte, t *z80core.TState) {
	b.ioContend(port, t)

	switch port {
	case 0xfffd:
		b.aySelected = value & 0x0f
		return
	case 0xbffd:
		b.ayRegs[b.aySelected] = value
		return
	}

	if port&0x0001 != 0 {
		return
	}
	b.border = value & 0x07
	b.micOn = value&0x08 != 0
	earOut := value&0x10 != 0
	if earOut != b.earOut {
		b.earOut = earOut
		if b.beeper != nil {
			b.beeper.SetLevel(earOut, b.frameT+*t)
		}
	}
}

func (b *Bus) readULA(port uint16) byte {
	rows := byte(0x1f)
	highByte := byte(port >> 8)
	for row := 0; row < 8; row++ {
		if highByte&(1<<row) == 0 {
			rows &= b.keyRows[row] & 0x1f
		}
	}
	return rows | 0xe0 // bits 5-7 float high with no tape connected
}

// ioContend applies the standard ULA IO-contention rule: a contended
// address paired with an even (ULA-decoded) port contends four single
// t-state cycles; a contended address with an odd port contends once
// then runs the remaining three uncontended; an address outside
// contended RAM never contends regardless of the port.
func (b *Bus) ioContend(port uint16, t *z80core.TState) {
	addr := port
	if !isContendedPort(addr) {
		*t += 4
		return
	}
	if port&1 == 0 {
		b.mem.Contend(addr, 1, 4, t)
	} else {
		b.mem.Contend(addr, 1, 1, t)
		*t += 3
	}
}

func isContendedPort(addr uint16) bool {
	return addr >= 0x4000 && addr < 0x8000
}

// SetKey sets or clears one key in the 8x5 matrix. row is 0-7 (selected
// by address bit 8+row), bit is 0-4 within that row.
func (b *Bus) SetKey(row, bit int, down bool) {
	if row < 0 || row >= 8 || bit < 0 || bit >= 5 {
		return
	}
	mask := byte(1) << bit
	if down {
		b.keyRows[row] &^= mask
	} else {
		b.keyRows[row] |= mask
	}
}

// SetKempston sets the Kempston joystick state: bit 0 right, 1 left, 2
// down, 3 up, 4 fire, matching the de facto standard layout.
func (b *Bus) SetKempston(state byte) { b.kempston = state & 0x1f }

// Border reports the most recently written border colour (0-7).
func (b *Bus) Border() byte { return b.border }

// AYRegister reports the current value latched in AY-3-8912 register n.
func (b *Bus) AYRegister(n byte) byte { return b.ayRegs[n&0x0f] }
