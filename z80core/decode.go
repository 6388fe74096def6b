// decode.go - the octal decomposition of a fetched opcode byte and the
// canonical Z80 lookup tables keyed on it.

package z80core

// decodeOp splits a byte into the six standard decode fields:
// x = bits 7-6, y = bits 5-3, z = bits 2-0, p = y>>1, q = y&1.
func decodeOp(op byte) (x, y, z, p, q byte) {
	x = op >> 6
	y = (op >> 3) & 7
	z = op & 7
	p = y >> 1
	q = y & 1
	return
}

// reg8 index: 0=B 1=C 2=D 3=E 4=H 5=L 6=(HL) 7=A.
const (
	r8B = 0
	r8C = 1
	r8D = 2
	r8E = 3
	r8H = 4
	r8L = 5
	r8M = 6 // (HL), or (IX+d)/(IY+d) under a DD/FD prefix
	r8A = 7
)

// condTrue tests condition index y: 0=NZ 1=Z 2=NC 3=C 4=PO 5=PE 6=P 7=M.
func (c *CPU) condTrue(y byte) bool {
	switch y {
	case 0:
		return !c.regs.Flag(FlagZ)
	case 1:
		return c.regs.Flag(FlagZ)
	case 2:
		return !c.regs.Flag(FlagC)
	case 3:
		return c.regs.Flag(FlagC)
	case 4:
		return !c.regs.Flag(FlagPV)
	case 5:
		return c.regs.Flag(FlagPV)
	case 6:
		return !c.regs.Flag(FlagS)
	case 7:
		return c.regs.Flag(FlagS)
	}
	panic("unreachable condition index")
}

// rp table 1 (with SP): 0=BC 1=DE 2=HL 3=SP.
func (c *CPU) readRP1(p byte) uint16 {
	switch p {
	case 0:
		return c.regs.BC()
	case 1:
		return c.regs.DE()
	case 2:
		return c.indexedHLValue()
	case 3:
		return c.regs.SP()
	}
	panic("unreachable rp index")
}

func (c *CPU) writeRP1(p byte, v uint16) {
	switch p {
	case 0:
		c.regs.SetBC(v)
	case 1:
		c.regs.SetDE(v)
	case 2:
		c.setIndexedHLValue(v)
	case 3:
		c.regs.SetSP(v)
	}
}

// rp table 2 (with AF): 0=BC 1=DE 2=HL 3=AF.
func (c *CPU) readRP2(p byte) uint16 {
	if p == 3 {
		return c.regs.AF()
	}
	return c.readRP1(p)
}

func (c *CPU) writeRP2(p byte, v uint16) {
	if p == 3 {
		c.regs.SetAF(v)
		return
	}
	c.writeRP1(p, v)
}

// indexedHLValue/setIndexedHLValue read/write HL, or IX/IY when a DD/FD
// prefix is active - used by the rp-table-1 slot that is "HL" in the
// unprefixed table but becomes the index register under a prefix.
func (c *CPU) indexedHLValue() uint16 {
	switch c.idxMode {
	case idxIX:
		return c.regs.IX()
	case idxIY:
		return c.regs.IY()
	default:
		return c.regs.HL()
	}
}

func (c *CPU) setIndexedHLValue(v uint16) {
	switch c.idxMode {
	case idxIX:
		c.regs.SetIX(v)
	case idxIY:
		c.regs.SetIY(v)
	default:
		c.regs.SetHL(v)
	}
}
