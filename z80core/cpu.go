// cpu.go - the Z80 interpreter: register file, interrupt state, the
// single Step entry point, and interrupt acknowledgement.
//
// The CPU holds exclusive mutable access to Memory and Bus for the
// duration of a Step call; there is no internal scheduler and no
// suspension. The t-state counter is owned by the caller and passed by
// pointer into every operation that advances time.

package z80core

// index-prefix mode, valid only for the duration of a single
// instruction's decode/execute.
type idxMode byte

const (
	idxNone idxMode = 0
	idxIX   idxMode = 1
	idxIY   idxMode = 2
)

// CPU is a single-threaded Z80 interpreter bound to a Memory and a Bus.
type CPU struct {
	regs Registers

	im   byte // interrupt mode: 0, 1 or 2
	iff1 bool
	iff2 bool
	halt bool

	// eiShadow suppresses interrupt acceptance on the instruction
	// immediately following EI.
	eiShadow bool

	mem *Memory
	bus Bus

	// idxMode and dispAddr are valid only while executing a single
	// DD/FD (or DDCB/FDCB) prefixed instruction.
	idxMode  idxMode
	dispAddr uint16
	dispSet  bool

	trace func(event TraceEvent)
}

// Option configures a CPU at construction time.
type Option func(*CPU)

// WithTrace installs an observer invoked after every M1 opcode fetch
// (see trace.go); equivalent to calling SetTrace.
func WithTrace(fn func(TraceEvent)) Option {
	return func(c *CPU) { c.SetTrace(fn) }
}

// WithIM selects the initial interrupt mode for CPUs built directly
// from a known register state without calling Reset (fuse test
// fixtures, mainly) - Reset always returns to IM 0, matching hardware.
// Out-of-range modes are clamped to 2.
func WithIM(im byte) Option {
	return func(c *CPU) {
		if im > 2 {
			im = 2
		}
		c.im = im
	}
}

// NewCPU constructs a CPU bound to the given Memory and Bus. Registers
// are left indeterminate; call Reset to bring the CPU to a known state.
func NewCPU(mem *Memory, bus Bus, opts ...Option) *CPU {
	c := &CPU{mem: mem, bus: bus}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Reset zeroes PC, I and R, disables interrupts, selects IM 0, and
// unhalts. hard and soft are treated identically; other registers are
// left indeterminate, matching real Z80 power-on/reset behaviour - test
// suites must set them explicitly.
func (c *CPU) Reset(hard bool) {
	c.regs.SetPC(0)
	c.regs.SetI(0)
	c.regs.SetR(0)
	c.iff1 = false
	c.iff2 = false
	c.im = 0
	c.halt = false
	c.eiShadow = false
}

// Registers exposes the register file for snapshot save/load and
// debugger display.
func (c *CPU) Registers() *Registers { return &c.regs }

func (c *CPU) IFF1() bool   { return c.iff1 }
func (c *CPU) IFF2() bool   { return c.iff2 }
func (c *CPU) IM() byte     { return c.im }
func (c *CPU) Halted() bool { return c.halt }

// SetTrace installs (or clears, with nil) the observer hook invoked by
// the CPU itself on every M1 opcode fetch. Memory has its own SetTrace
// for its Peek/Poke accesses; fuse.Run installs observers on both that
// append to one event slice, merging the two streams.
func (c *CPU) SetTrace(fn func(TraceEvent)) { c.trace = fn }

// Step decodes and executes one instruction, updating t.
func (c *CPU) Step(t *TState) {
	c.idxMode = idxNone
	c.dispSet = false
	// Any EI shadow pending from the previous instruction has now gated
	// the one Interrupt() check it owed; clear it before this fetch. If
	// this instruction is itself EI, execBaseX3 sets it again below.
	c.eiShadow = false

	op := c.fetchM1(t)
	c.execOpcode(op, t)
}

// fetchM1 performs one M1 (opcode fetch) machine cycle: increment R,
// contend PC for 4 t-states, read the byte, increment PC.
func (c *CPU) fetchM1(t *TState) byte {
	c.regs.incR()
	pc := c.regs.PC()
	c.mem.Contend(pc, 4, 1, t)
	b := c.mem.ReadByte(pc)
	if c.trace != nil {
		c.trace(TraceEvent{TState: *t, Kind: TraceRead, Addr: pc, Value: b})
	}
	c.regs.SetPC(pc + 1)
	return b
}

// fetchByte reads an immediate/displacement byte following the opcode:
// a normal contended 3-t-state memory read, not an M1 fetch.
func (c *CPU) fetchByte(t *TState) byte {
	pc := c.regs.PC()
	b := c.mem.Peek(pc, t)
	c.regs.SetPC(pc + 1)
	return b
}

func (c *CPU) fetchWord(t *TState) uint16 {
	lo := c.fetchByte(t)
	hi := c.fetchByte(t)
	return uint16(lo) | uint16(hi)<<8
}

// contendIR models an internal cycle with the conventional IR address
// on the bus.
func (c *CPU) contendIR(n int, t *TState) {
	addr := uint16(c.regs.I())<<8 | uint16(c.regs.R())
	c.mem.Contend(addr, 1, n, t)
}

func (c *CPU) push(v uint16, t *TState) {
	sp := c.regs.SP() - 1
	c.mem.Poke(sp, byte(v>>8), t)
	sp--
	c.mem.Poke(sp, byte(v), t)
	c.regs.SetSP(sp)
}

func (c *CPU) pop(t *TState) uint16 {
	sp := c.regs.SP()
	lo := c.mem.Peek(sp, t)
	sp++
	hi := c.mem.Peek(sp, t)
	sp++
	c.regs.SetSP(sp)
	return uint16(lo) | uint16(hi)<<8
}

// execOpcode dispatches a base (unprefixed, or DD/FD-prefixed) opcode
// byte. CB and ED are full prefixes handled by their own fetch.
func (c *CPU) execOpcode(op byte, t *TState) {
	switch op {
	case 0xCB:
		if c.idxMode == idxNone {
			c.execCB(t)
		} else {
			c.execIndexedCB(t)
		}
		return
	case 0xED:
		c.idxMode = idxNone // ED cancels any pending DD/FD (undocumented but standard)
		c.execED(t)
		return
	case 0xDD:
		c.idxMode = idxIX
		c.dispSet = false
		next := c.fetchM1(t)
		c.execOpcode(next, t)
		return
	case 0xFD:
		c.idxMode = idxIY
		c.dispSet = false
		next := c.fetchM1(t)
		c.execOpcode(next, t)
		return
	}
	c.execBase(op, t)
}

// hlAddr returns the effective address for the (HL)/(IX+d)/(IY+d)
// operand slot, fetching and caching the displacement byte (and its
// MEMPTR/contention side effects) at most once per instruction.
func (c *CPU) hlAddr(t *TState) uint16 {
	if c.idxMode == idxNone {
		return c.regs.HL()
	}
	if c.dispSet {
		return c.dispAddr
	}
	d := c.fetchByte(t)
	c.contendIR(5, t)
	base := c.indexedHLValue()
	addr := base + uint16(int16(int8(d)))
	c.regs.SetWZ(addr)
	c.dispAddr = addr
	c.dispSet = true
	return addr
}

// readR8/writeR8 resolve an 8-bit register-index operand, substituting
// IXH/IXL/IYH/IYL for H/L and (IX+d)/(IY+d) for (HL) when a DD/FD prefix
// is active.
func (c *CPU) readR8(code byte, t *TState) byte {
	switch code {
	case r8B:
		return c.regs.B()
	case r8C:
		return c.regs.C()
	case r8D:
		return c.regs.D()
	case r8E:
		return c.regs.E()
	case r8H:
		switch c.idxMode {
		case idxIX:
			return c.regs.IXH()
		case idxIY:
			return c.regs.IYH()
		default:
			return c.regs.H()
		}
	case r8L:
		switch c.idxMode {
		case idxIX:
			return c.regs.IXL()
		case idxIY:
			return c.regs.IYL()
		default:
			return c.regs.L()
		}
	case r8M:
		return c.mem.Peek(c.hlAddr(t), t)
	case r8A:
		return c.regs.A()
	}
	panic("unreachable register code")
}

func (c *CPU) writeR8(code byte, v byte, t *TState) {
	switch code {
	case r8B:
		c.regs.SetB(v)
	case r8C:
		c.regs.SetC(v)
	case r8D:
		c.regs.SetD(v)
	case r8E:
		c.regs.SetE(v)
	case r8H:
		switch c.idxMode {
		case idxIX:
			c.regs.SetIXH(v)
		case idxIY:
			c.regs.SetIYH(v)
		default:
			c.regs.SetH(v)
		}
	case r8L:
		switch c.idxMode {
		case idxIX:
			c.regs.SetIXL(v)
		case idxIY:
			c.regs.SetIYL(v)
		default:
			c.regs.SetL(v)
		}
	case r8M:
		c.mem.Poke(c.hlAddr(t), v, t)
	case r8A:
		c.regs.SetA(v)
	}
}

// Interrupt attempts to accept a maskable interrupt, returning whether
// it was accepted. A pending EI shadow defers acceptance by exactly one
// instruction.
func (c *CPU) Interrupt(t *TState) bool {
	if c.eiShadow {
		return false
	}
	if !c.iff1 {
		return false
	}

	if c.halt {
		c.halt = false
		c.regs.SetPC(c.regs.PC() + 1)
	}

	c.iff1 = false
	c.iff2 = false
	c.regs.incR()

	switch c.im {
	case 2:
		*t += 7
		c.push(c.regs.PC(), t)
		// The vector address is I<<8|0xFF; the high byte comes from a
		// plain 16-bit increment of that address, which carries into the
		// I+1 page when the low byte is 0xFF - the reason standard
		// Spectrum IM2 tables are 257 bytes with the vector duplicated at
		// (I+1)<<8|0x00.
		addr := uint16(c.regs.I())<<8 | 0x00FF
		lo := c.mem.Peek(addr, t)
		hi := c.mem.Peek(addr+1, t)
		vector := uint16(lo) | uint16(hi)<<8
		c.regs.SetPC(vector)
		c.regs.SetWZ(vector)
	default: // IM 0 and IM 1 both treated as IM 1 on the Spectrum
		*t += 7
		c.push(c.regs.PC(), t)
		c.regs.SetPC(0x0038)
		c.regs.SetWZ(0x0038)
	}
	return true
}

// NMI services a non-maskable interrupt: push PC, clear IFF1 only,
// jump to 0x0066, 11 t-states.
func (c *CPU) NMI(t *TState) {
	if c.halt {
		c.halt = false
		c.regs.SetPC(c.regs.PC() + 1)
	}
	c.regs.incR()
	c.iff1 = false
	*t += 5
	c.push(c.regs.PC(), t)
	c.regs.SetPC(0x0066)
	c.regs.SetWZ(0x0066)
}
