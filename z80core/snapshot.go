// snapshot.go - the register-file view needed to express the standard
// .SNA/.Z80 layouts. The core does not parse those file formats; it
// only guarantees every field a loader/saver would need.

package z80core

// RegisterSnapshot is a flat, serialisation-friendly copy of the
// register file and interrupt state, shaped after the field set used by
// paulhankin-z80asm's Machine type.
type RegisterSnapshot struct {
	AF, BC, DE, HL         uint16
	AF2, BC2, DE2, HL2     uint16
	IX, IY                 uint16
	SP, PC                 uint16
	I, R                   byte
	IFF1, IFF2             bool
	IM                     byte
	Halted                 bool
}

// Snapshot captures the current register file and interrupt state.
func (c *CPU) Snapshot() RegisterSnapshot {
	r := &c.regs
	return RegisterSnapshot{
		AF: r.AF(), BC: r.BC(), DE: r.DE(), HL: r.HL(),
		AF2: r.AF2(), BC2: r.BC2(), DE2: r.DE2(), HL2: r.HL2(),
		IX: r.IX(), IY: r.IY(),
		SP: r.SP(), PC: r.PC(),
		I: r.I(), R: r.R(),
		IFF1: c.iff1, IFF2: c.iff2,
		IM:     c.im,
		Halted: c.halt,
	}
}

// Restore loads a previously captured RegisterSnapshot, for snapshot-file
// loaders (which live outside this core).
func (c *CPU) Restore(s RegisterSnapshot) {
	r := &c.regs
	r.SetAF(s.AF)
	r.SetBC(s.BC)
	r.SetDE(s.DE)
	r.SetHL(s.HL)
	r.SetAF2(s.AF2)
	r.SetBC2(s.BC2)
	r.SetDE2(s.DE2)
	r.SetHL2(s.HL2)
	r.SetIX(s.IX)
	r.SetIY(s.IY)
	r.SetSP(s.SP)
	r.SetPC(s.PC)
	r.SetI(s.I)
	r.SetR(s.R)
	c.iff1 = s.IFF1
	c.iff2 = s.IFF2
	c.im = s.IM
	c.halt = s.Halted
}
