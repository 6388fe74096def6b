// block.go - the repeating block instructions: LDI/LDD/LDIR/LDDR,
// CPI/CPD/CPIR/CPDR, INI/IND/INIR/INDR, OUTI/OUTD/OTIR/OTDR. Each
// iteration performs its transfer, updates BC/B, and sets flags; the
// repeating variants re-enter at the same opcode when the loop
// continues, decrementing PC by 2 and adding 5 extra contention
// t-states on the instruction's own working address (DE for LDxR, HL
// for CPxR/INxR, BC for OTxR).

package z80core

// execBlock dispatches the x==2 block instructions by (y,z):
// y: 4=single, 5=single-decrementing, 6=repeat, 7=repeat-decrementing
// z: 0=LD family, 1=CP family, 2=IN family, 3=OUT family.
func (c *CPU) execBlock(y, z byte, t *TState) {
	decrement := y == 5 || y == 7
	repeat := y == 6 || y == 7

	switch z {
	case 0:
		c.blockLD(decrement, repeat, t)
	case 1:
		c.blockCP(decrement, repeat, t)
	case 2:
		c.blockIN(decrement, repeat, t)
	case 3:
		c.blockOUT(decrement, repeat, t)
	}
}

func (c *CPU) blockLD(decrement, repeat bool, t *TState) {
	hl := c.regs.HL()
	de := c.regs.DE()
	v := c.mem.Peek(hl, t)
	c.mem.Poke(de, v, t)
	c.mem.Contend(de, 1, 2, t)

	if decrement {
		hl--
		de--
	} else {
		hl++
		de++
	}
	c.regs.SetHL(hl)
	c.regs.SetDE(de)

	bc := c.regs.BC() - 1
	c.regs.SetBC(bc)

	n := v + c.regs.A()
	f := c.regs.F() & (FlagS | FlagZ | FlagC)
	f |= n & FlagX
	if n&0x02 != 0 {
		f |= FlagY
	}
	if bc != 0 {
		f |= FlagPV
	}
	c.regs.SetF(f)

	if repeat && bc != 0 {
		c.mem.Contend(de, 1, 5, t)
		c.regs.SetPC(c.regs.PC() - 2)
		c.regs.SetWZ(c.regs.PC() + 1)
	}
}

func (c *CPU) blockCP(decrement, repeat bool, t *TState) {
	hl := c.regs.HL()
	v := c.mem.Peek(hl, t)
	c.mem.Contend(hl, 1, 5, t)

	a := c.regs.A()
	result := a - v
	halfBorrow := (a & 0x0f) < (v & 0x0f)

	if decrement {
		hl--
	} else {
		hl++
	}
	c.regs.SetHL(hl)

	bc := c.regs.BC() - 1
	c.regs.SetBC(bc)

	f := FlagN | (c.regs.F() & FlagC)
	f |= sz53Table[result] &^ (FlagX | FlagY)
	if halfBorrow {
		f |= FlagH
	}
	n := result
	if halfBorrow {
		n--
	}
	f |= n & FlagX
	if n&0x02 != 0 {
		f |= FlagY
	}
	if bc != 0 {
		f |= FlagPV
	}
	c.regs.SetF(f)

	if decrement {
		c.regs.SetWZ(c.regs.WZ() - 1)
	} else {
		c.regs.SetWZ(c.regs.WZ() + 1)
	}

	if repeat && bc != 0 && result != 0 {
		c.mem.Contend(hl, 1, 5, t)
		c.regs.SetPC(c.regs.PC() - 2)
		c.regs.SetWZ(c.regs.PC() + 1)
	}
}

func (c *CPU) blockIN(decrement, repeat bool, t *TState) {
	bc := c.regs.BC()
	c.contendIR(1, t)
	v := c.bus.In(bc, t)
	c.mem.Poke(c.regs.HL(), v, t)

	hl := c.regs.HL()
	if decrement {
		hl--
		c.regs.SetWZ(bc - 1)
	} else {
		hl++
		c.regs.SetWZ(bc + 1)
	}
	c.regs.SetHL(hl)

	b := c.regs.B() - 1
	c.regs.SetB(b)

	f := byte(0)
	if b&0x80 != 0 {
		f |= FlagS
	}
	if b == 0 {
		f |= FlagZ
	}
	f |= b & (FlagX | FlagY)
	if v&0x80 != 0 {
		f |= FlagN
	}
	var carrySum int
	if decrement {
		carrySum = int(v) + int(c.regs.C()) - 1
	} else {
		carrySum = int(v) + int(c.regs.C()) + 1
	}
	if carrySum > 0xff {
		f |= FlagH | FlagC
	}
	if parityTable[byte(carrySum)&0x07^b] != 0 {
		f |= FlagPV
	}
	c.regs.SetF(f)

	if repeat && b != 0 {
		c.mem.Contend(c.regs.HL(), 1, 5, t)
		c.regs.SetPC(c.regs.PC() - 2)
		c.regs.SetWZ(c.regs.PC() + 1)
	}
}

func (c *CPU) blockOUT(decrement, repeat bool, t *TState) {
	hl := c.regs.HL()
	v := c.mem.Peek(hl, t)

	b := c.regs.B() - 1
	c.regs.SetB(b)

	c.contendIR(1, t)
	c.bus.Out(c.regs.BC(), v, t)

	if decrement {
		hl--
	} else {
		hl++
	}
	c.regs.SetHL(hl)

	if decrement {
		c.regs.SetWZ(c.regs.BC() - 1)
	} else {
		c.regs.SetWZ(c.regs.BC() + 1)
	}

	f := byte(0)
	if b&0x80 != 0 {
		f |= FlagS
	}
	if b == 0 {
		f |= FlagZ
	}
	f |= b & (FlagX | FlagY)
	if v&0x80 != 0 {
		f |= FlagN
	}
	carrySum := int(v) + int(hl&0x00ff)
	if carrySum > 0xff {
		f |= FlagH | FlagC
	}
	if parityTable[byte(carrySum)&0x07^b] != 0 {
		f |= FlagPV
	}
	c.regs.SetF(f)

	if repeat && b != 0 {
		c.mem.Contend(c.regs.BC(), 1, 5, t)
		c.regs.SetPC(c.regs.PC() - 2)
		c.regs.SetWZ(c.regs.PC() + 1)
	}
}
