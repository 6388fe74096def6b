// memory.go - the 64KiB contended memory subsystem.
//
// Memory knows nothing of instructions: it exposes byte/word peek/poke,
// bulk load and contention accounting, driven by a t-state counter the
// caller owns. The contention table reproduces the Spectrum 48K ULA
// pattern: starting at t-state 14335, 192 display lines each contribute
// [6,5,4,3,2,1,0,0] repeated 16 times (128 t-states) followed by 96
// t-states of zero delay.

package z80core

import "math/rand"

const (
	memSize = 0x10000

	screenLow  = 0x4000
	screenHigh = 0x8000 // exclusive

	contentionStart = 14335
	contentionLines = 192
	lineTStates     = 224
	contentionTableSize = contentionStart + contentionLines*lineTStates
)

// TState is the caller-owned cycle counter threaded through every
// operation that advances time. It is a plain alias, not a type the core
// mutates except through the pointer passed to it.
type TState = int64

// Memory is a 64KiB linear address space with a per-address read-only
// flag (the ROM region) and a precomputed contention table.
type Memory struct {
	data     [memSize]byte
	readOnly [memSize]bool

	contention [contentionTableSize]byte

	// trace, when non-nil, observes every access. See trace.go.
	trace func(event TraceEvent)
}

// NewMemory constructs a Memory with randomised contents and the ROM
// region (0x0000-0x3FFF) marked read-only. Any deterministic seed is
// acceptable; production and test callers that need reproducibility
// should reseed via NewMemorySeeded.
func NewMemory() *Memory {
	return NewMemorySeeded(1)
}

// NewMemorySeeded is like NewMemory but takes an explicit RNG seed, for
// reproducible tests.
func NewMemorySeeded(seed int64) *Memory {
	m := &Memory{}
	rng := rand.New(rand.NewSource(seed))
	for i := range m.data {
		m.data[i] = byte(rng.Intn(256))
	}
	for a := 0; a < 0x4000; a++ {
		m.readOnly[a] = true
	}
	m.buildContentionTable()
	return m
}

func (m *Memory) buildContentionTable() {
	t := contentionStart
	end := contentionStart + contentionLines*lineTStates
	for t < end {
		for i := 0; i < 128; i += 8 {
			m.contention[t+0] = 6
			m.contention[t+1] = 5
			m.contention[t+2] = 4
			m.contention[t+3] = 3
			m.contention[t+4] = 2
			m.contention[t+5] = 1
			t += 8
		}
		t += lineTStates - 128
	}
}

func isContendedAddr(addr uint16) bool {
	return addr >= screenLow && addr < screenHigh
}

// contentionDelay returns the contention delay for addr at cycle t; zero when
// addr is outside contended RAM or t is outside the table window.
func (m *Memory) contentionDelay(addr uint16, t TState) byte {
	if !isContendedAddr(addr) {
		return 0
	}
	if t < 0 || int(t) >= len(m.contention) {
		return 0
	}
	return m.contention[t]
}

// Contend applies n successive contention cycles to addr, advancing t on
// each iteration by delay plus, when addr is contended, table[t].
func (m *Memory) Contend(addr uint16, delay byte, n int, t *TState) {
	contended := isContendedAddr(addr)
	for i := 0; i < n; i++ {
		if contended {
			*t += TState(m.contentionDelay(addr, *t)) + TState(delay)
		} else {
			*t += TState(delay)
		}
	}
}

// Peek contends the address for 3 t-states and returns the byte there.
func (m *Memory) Peek(addr uint16, t *TState) byte {
	m.Contend(addr, 3, 1, t)
	v := m.data[addr]
	if m.trace != nil {
		m.trace(TraceEvent{TState: *t, Kind: TraceRead, Addr: addr, Value: v})
	}
	return v
}

// Poke contends the address for 3 t-states and writes the byte if the
// address is writable (RAM).
func (m *Memory) Poke(addr uint16, b byte, t *TState) {
	m.Contend(addr, 3, 1, t)
	if !m.readOnly[addr] {
		m.data[addr] = b
	}
	if m.trace != nil {
		m.trace(TraceEvent{TState: *t, Kind: TraceWrite, Addr: addr, Value: b})
	}
}

// Peek16 reads a little-endian word with two contended Peeks. The second
// address wraps mod 65536.
func (m *Memory) Peek16(addr uint16, t *TState) uint16 {
	lo := m.Peek(addr, t)
	hi := m.Peek(addr+1, t)
	return uint16(lo) | uint16(hi)<<8
}

// Poke16 writes a little-endian word with two contended Pokes, low byte
// first.
func (m *Memory) Poke16(addr uint16, w uint16, t *TState) {
	m.Poke(addr, byte(w), t)
	m.Poke(addr+1, byte(w>>8), t)
}

// ReadByte and WriteByte are uncontended, untimed accessors for hosts
// (debuggers, disassemblers, snapshot loaders) that need to look at
// memory without advancing a t-state counter. WriteByte still honours
// the ROM read-only flag.
func (m *Memory) ReadByte(addr uint16) byte { return m.data[addr] }

func (m *Memory) WriteByte(addr uint16, b byte) {
	if !m.readOnly[addr] {
		m.data[addr] = b
	}
}

// Load bulk-loads bytes at addr, bypassing ROM protection, clamped to
// the 64KiB bound.
func (m *Memory) Load(addr uint16, bytes []byte) {
	for i, b := range bytes {
		a := int(addr) + i
		if a >= memSize {
			break
		}
		m.data[a] = b
	}
}

// SetReadOnly marks the half-open range [start, end) as ROM (true) or
// RAM (false). Used to carve out the ROM region, or to lift it for
// loaders that want to patch ROM contents and then reseal it.
func (m *Memory) SetReadOnly(start, end int, readOnly bool) {
	if start < 0 {
		start = 0
	}
	if end > memSize {
		end = memSize
	}
	for a := start; a < end; a++ {
		m.readOnly[a] = readOnly
	}
}

// Reset zeroes RAM, leaving ROM contents and the read-only map untouched.
func (m *Memory) Reset() {
	for a := 0; a < memSize; a++ {
		if !m.readOnly[a] {
			m.data[a] = 0
		}
	}
}

// SetTrace installs (or clears, with nil) the observer hook invoked on
// every Peek/Poke. See trace.go.
func (m *Memory) SetTrace(fn func(TraceEvent)) { m.trace = fn }
