// opcodes_base.go - the unprefixed (and DD/FD-substituted) opcode
// dispatch table, keyed on the (x,y,z)/(x,p,q) decomposition from
// decode.go.

package z80core

func (c *CPU) execBase(op byte, t *TState) {
	x, y, z, p, q := decodeOp(op)

	switch x {
	case 0:
		c.execBaseX0(y, z, p, q, t)
	case 1:
		c.execBaseX1(y, z, t)
	case 2:
		c.execBaseX2(y, z, t)
	case 3:
		c.execBaseX3(y, z, p, q, t)
	}
}

func (c *CPU) execBaseX0(y, z, p, q byte, t *TState) {
	switch z {
	case 0:
		switch {
		case y == 0:
			// NOP
		case y == 1:
			c.regs.ExAF()
		case y == 2:
			c.opDJNZ(t)
		case y == 3:
			c.opJR(t)
		default: // 4..7: JR cc,d
			c.opJRCond(y-4, t)
		}
	case 1:
		if q == 0 {
			v := c.fetchWord(t)
			c.writeRP1(p, v)
		} else {
			c.add16HL(c.readRP1(p), t)
		}
	case 2:
		c.opIndirectLoad(p, q, t)
	case 3:
		v := c.readRP1(p)
		c.contendIR(2, t)
		if q == 0 {
			c.writeRP1(p, v+1)
		} else {
			c.writeRP1(p, v-1)
		}
	case 4:
		v := c.readR8(y, t)
		c.writeR8(y, c.inc8(v), t)
	case 5:
		v := c.readR8(y, t)
		c.writeR8(y, c.dec8(v), t)
	case 6:
		n := c.fetchByte(t)
		c.writeR8(y, n, t)
	case 7:
		c.opAccumulatorOp(y)
	}
}

func (c *CPU) execBaseX1(y, z byte, t *TState) {
	if y == 6 && z == 6 {
		c.opHALT()
		return
	}
	v := c.readR8(z, t)
	c.writeR8(y, v, t)
}

func (c *CPU) execBaseX2(y, z byte, t *TState) {
	v := c.readR8(z, t)
	c.alu8(aluOp(y), v)
}

func (c *CPU) execBaseX3(y, z, p, q byte, t *TState) {
	switch z {
	case 0:
		c.opRETCond(y, t)
	case 1:
		switch {
		case q == 0:
			v := c.pop(t)
			c.writeRP2(p, v)
		case p == 0:
			c.regs.SetPC(c.pop(t))
			c.regs.SetWZ(c.regs.PC())
		case p == 1:
			c.regs.Exx()
		case p == 2:
			c.regs.SetPC(c.indexedHLValue())
		case p == 3:
			c.regs.SetSP(c.indexedHLValue())
			c.contendIR(2, t)
		}
	case 2:
		nn := c.fetchWord(t)
		c.regs.SetWZ(nn)
		if c.condTrue(y) {
			c.regs.SetPC(nn)
		}
	case 3:
		switch y {
		case 0:
			nn := c.fetchWord(t)
			c.regs.SetPC(nn)
			c.regs.SetWZ(nn)
		case 2:
			n := c.fetchByte(t)
			port := uint16(c.regs.A())<<8 | uint16(n)
			c.bus.Out(port, c.regs.A(), t)
			c.regs.SetWZ((port & 0xff00) + uint16(n) + 1)
		case 3:
			n := c.fetchByte(t)
			port := uint16(c.regs.A())<<8 | uint16(n)
			c.regs.SetA(c.bus.In(port, t))
			c.regs.SetWZ(port + 1)
		case 4:
			c.opEXSPHL(t)
		case 5:
			de, hl := c.regs.DE(), c.regs.HL()
			c.regs.SetDE(hl)
			c.regs.SetHL(de)
		case 6:
			c.iff1 = false
			c.iff2 = false
		case 7:
			c.iff1 = true
			c.iff2 = true
			c.eiShadow = true
		}
	case 4:
		nn := c.fetchWord(t)
		c.regs.SetWZ(nn)
		if c.condTrue(y) {
			c.push(c.regs.PC(), t)
			c.regs.SetPC(nn)
		}
	case 5:
		if q == 0 {
			c.contendIR(1, t)
			c.push(c.readRP2(p), t)
		} else if p == 0 {
			nn := c.fetchWord(t)
			c.regs.SetWZ(nn)
			c.push(c.regs.PC(), t)
			c.regs.SetPC(nn)
		}
		// p==1,2,3 (DD/ED/FD) are intercepted before reaching execBase.
	case 6:
		n := c.fetchByte(t)
		c.alu8(aluOp(y), n)
	case 7:
		c.push(c.regs.PC(), t)
		c.regs.SetPC(uint16(y) * 8)
		c.regs.SetWZ(c.regs.PC())
	}
}

func (c *CPU) add16HL(rhs uint16, t *TState) {
	hl := c.indexedHLValue()
	c.contendIR(7, t)
	c.setIndexedHLValue(c.add16(hl, rhs))
}

func (c *CPU) opIndirectLoad(p, q byte, t *TState) {
	switch {
	case q == 0 && p == 0:
		c.mem.Poke(c.regs.BC(), c.regs.A(), t)
		c.regs.SetWZ((c.regs.BC() + 1) & 0x00ff | uint16(c.regs.A())<<8)
	case q == 0 && p == 1:
		c.mem.Poke(c.regs.DE(), c.regs.A(), t)
		c.regs.SetWZ((c.regs.DE() + 1) & 0x00ff | uint16(c.regs.A())<<8)
	case q == 0 && p == 2:
		nn := c.fetchWord(t)
		c.mem.Poke16(nn, c.indexedHLValue(), t)
		c.regs.SetWZ(nn + 1)
	case q == 0 && p == 3:
		nn := c.fetchWord(t)
		c.mem.Poke(nn, c.regs.A(), t)
		c.regs.SetWZ((nn+1)&0x00ff | uint16(c.regs.A())<<8)
	case q == 1 && p == 0:
		c.regs.SetA(c.mem.Peek(c.regs.BC(), t))
		c.regs.SetWZ(c.regs.BC() + 1)
	case q == 1 && p == 1:
		c.regs.SetA(c.mem.Peek(c.regs.DE(), t))
		c.regs.SetWZ(c.regs.DE() + 1)
	case q == 1 && p == 2:
		nn := c.fetchWord(t)
		c.setIndexedHLValue(c.mem.Peek16(nn, t))
		c.regs.SetWZ(nn + 1)
	case q == 1 && p == 3:
		nn := c.fetchWord(t)
		c.regs.SetA(c.mem.Peek(nn, t))
		c.regs.SetWZ(nn + 1)
	}
}

func (c *CPU) opAccumulatorOp(y byte) {
	switch y {
	case 0:
		c.rlca()
	case 1:
		c.rrca()
	case 2:
		c.rla()
	case 3:
		c.rra()
	case 4:
		c.daa()
	case 5:
		c.cpl()
	case 6:
		c.scf()
	case 7:
		c.ccf()
	}
}

func (c *CPU) rlca() {
	a := c.regs.A()
	carry := a&0x80 != 0
	r := a << 1
	if carry {
		r |= 1
	}
	c.regs.SetA(r)
	f := c.regs.F() & (FlagS | FlagZ | FlagPV)
	f |= r & (FlagX | FlagY)
	if carry {
		f |= FlagC
	}
	c.regs.SetF(f)
}

func (c *CPU) rrca() {
	a := c.regs.A()
	carry := a&0x01 != 0
	r := a >> 1
	if carry {
		r |= 0x80
	}
	c.regs.SetA(r)
	f := c.regs.F() & (FlagS | FlagZ | FlagPV)
	f |= r & (FlagX | FlagY)
	if carry {
		f |= FlagC
	}
	c.regs.SetF(f)
}

func (c *CPU) rla() {
	a := c.regs.A()
	oldCarry := c.regs.Flag(FlagC)
	carry := a&0x80 != 0
	r := a << 1
	if oldCarry {
		r |= 1
	}
	c.regs.SetA(r)
	f := c.regs.F() & (FlagS | FlagZ | FlagPV)
	f |= r & (FlagX | FlagY)
	if carry {
		f |= FlagC
	}
	c.regs.SetF(f)
}

func (c *CPU) rra() {
	a := c.regs.A()
	oldCarry := c.regs.Flag(FlagC)
	carry := a&0x01 != 0
	r := a >> 1
	if oldCarry {
		r |= 0x80
	}
	c.regs.SetA(r)
	f := c.regs.F() & (FlagS | FlagZ | FlagPV)
	f |= r & (FlagX | FlagY)
	if carry {
		f |= FlagC
	}
	c.regs.SetF(f)
}

func (c *CPU) opDJNZ(t *TState) {
	c.contendIR(1, t)
	b := c.regs.B() - 1
	c.regs.SetB(b)
	d := c.fetchByte(t)
	if b != 0 {
		c.jumpRelative(d, t)
	}
}

func (c *CPU) opJR(t *TState) {
	d := c.fetchByte(t)
	c.jumpRelative(d, t)
}

func (c *CPU) opJRCond(y byte, t *TState) {
	d := c.fetchByte(t)
	if c.condTrue(y) {
		c.jumpRelative(d, t)
	}
}

func (c *CPU) jumpRelative(d byte, t *TState) {
	c.contendIR(5, t)
	pc := c.regs.PC() + uint16(int16(int8(d)))
	c.regs.SetPC(pc)
	c.regs.SetWZ(pc)
}

func (c *CPU) opRETCond(y byte, t *TState) {
	c.contendIR(1, t)
	if c.condTrue(y) {
		pc := c.pop(t)
		c.regs.SetPC(pc)
		c.regs.SetWZ(pc)
	}
}

func (c *CPU) opHALT() {
	c.halt = true
	c.regs.SetPC(c.regs.PC() - 1)
}

func (c *CPU) opEXSPHL(t *TState) {
	sp := c.regs.SP()
	v := c.mem.Peek16(sp, t)
	c.contendIR(1, t)
	c.mem.Poke16(sp, c.indexedHLValue(), t)
	c.contendIR(2, t)
	c.setIndexedHLValue(v)
	c.regs.SetWZ(v)
}
