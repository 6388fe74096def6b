// opcodes_cb.go - the CB-prefixed bit/rotate/shift family and its
// DD/FD-indexed counterpart (DDCB/FDCB).

package z80core

// shiftOp identifies one of the eight CB rotate/shift operations
// selected by y: 0 RLC, 1 RRC, 2 RL, 3 RR, 4 SLA, 5 SRA, 6 SLL
// (undocumented), 7 SRL.
func (c *CPU) shiftOp(y byte, v byte) byte {
	carryIn := c.regs.Flag(FlagC)
	var r byte
	var carryOut bool

	switch y {
	case 0: // RLC
		carryOut = v&0x80 != 0
		r = v << 1
		if carryOut {
			r |= 1
		}
	case 1: // RRC
		carryOut = v&0x01 != 0
		r = v >> 1
		if carryOut {
			r |= 0x80
		}
	case 2: // RL
		carryOut = v&0x80 != 0
		r = v << 1
		if carryIn {
			r |= 1
		}
	case 3: // RR
		carryOut = v&0x01 != 0
		r = v >> 1
		if carryIn {
			r |= 0x80
		}
	case 4: // SLA
		carryOut = v&0x80 != 0
		r = v << 1
	case 5: // SRA
		carryOut = v&0x01 != 0
		r = (v >> 1) | (v & 0x80)
	case 6: // SLL (undocumented): shifts in a 1 at bit 0
		carryOut = v&0x80 != 0
		r = (v << 1) | 0x01
	case 7: // SRL
		carryOut = v&0x01 != 0
		r = v >> 1
	}

	f := sz53pTable[r]
	if carryOut {
		f |= FlagC
	}
	c.regs.SetF(f)
	return r
}

// bitTest implements BIT n,r: Z=not-bit, P=Z, H set, N reset, C
// preserved, S set only for n==7 with the bit set, X/Y copied from r
// except for the (HL)/(IX+d)/(IY+d) forms, where they come from MEMPTR's
// high byte.
func (c *CPU) bitTest(n, v byte, xyFromMEMPTR bool) {
	bit := v & (1 << n)
	f := c.regs.F() & FlagC
	f |= FlagH
	if bit == 0 {
		f |= FlagZ | FlagPV
	}
	if n == 7 && bit != 0 {
		f |= FlagS
	}
	if xyFromMEMPTR {
		f |= byte(c.regs.WZ()>>8) & (FlagX | FlagY)
	} else {
		f |= v & (FlagX | FlagY)
	}
	c.regs.SetF(f)
}

// execCB handles a plain (unindexed) CB-prefixed opcode.
func (c *CPU) execCB(t *TState) {
	op := c.fetchM1(t)
	x, y, z, _, _ := decodeOp(op)

	switch x {
	case 0:
		v := c.readR8(z, t)
		c.writeR8(z, c.shiftOp(y, v), t)
	case 1:
		v := c.readR8(z, t)
		c.bitTest(y, v, z == r8M)
	case 2:
		v := c.readR8(z, t)
		c.writeR8(z, v&^(1<<y), t)
	case 3:
		v := c.readR8(z, t)
		c.writeR8(z, v|(1<<y), t)
	}
}

// execIndexedCB handles DDCB/FDCB: displacement byte first, then opcode
// byte (3+1x5 contention for the displacement, 3+1x2 for the opcode
// byte; R is not incremented for this opcode byte). The effective
// address is always (IX+d)/(IY+d); when z does not select (HL)
// (z != 6), the undocumented "register copy" side effect also stores
// the result in the plain 8-bit register named by z.
func (c *CPU) execIndexedCB(t *TState) {
	d := c.fetchByte(t)
	c.contendIR(5, t)

	op := c.mem.Peek(c.regs.PC(), t)
	c.contendIR(2, t)
	c.regs.SetPC(c.regs.PC() + 1)

	base := c.indexedHLValue()
	addr := base + uint16(int16(int8(d)))
	c.regs.SetWZ(addr)

	x, y, z, _, _ := decodeOp(op)
	v := c.mem.Peek(addr, t)

	switch x {
	case 0:
		r := c.shiftOp(y, v)
		c.mem.Poke(addr, r, t)
		if z != r8M {
			c.writeR8Plain(z, r)
		}
	case 1:
		c.bitTest(y, v, true)
	case 2:
		r := v &^ (1 << y)
		c.mem.Poke(addr, r, t)
		if z != r8M {
			c.writeR8Plain(z, r)
		}
	case 3:
		r := v | (1 << y)
		c.mem.Poke(addr, r, t)
		if z != r8M {
			c.writeR8Plain(z, r)
		}
	}
}

// writeR8Plain writes B/C/D/E/H/L/A without index substitution, for the
// DDCB/FDCB undocumented register-copy side effect (which always
// targets the real H/L, never IXH/IYL).
func (c *CPU) writeR8Plain(code byte, v byte) {
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
		c.regs.SetH(v)
	case r8L:
		c.regs.SetL(v)
	case r8A:
		c.regs.SetA(v)
	}
}
