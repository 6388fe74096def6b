package z80core

import "testing"

func TestRegisterPairHalves(t *testing.T) {
	var r Registers
	r.SetHL(0x1234)
	if r.H() != 0x12 || r.L() != 0x34 {
		t.Fatalf("H/L = %#02x/%#02x, want 0x12/0x34", r.H(), r.L())
	}
	r.SetL(0xff)
	if r.HL() != 0x12ff {
		t.Fatalf("HL = %#04x, want 0x12ff", r.HL())
	}
}

func TestIncRWrapsLow7Bits(t *testing.T) {
	var r Registers
	r.SetR(0x7f)
	r.incR()
	if r.R() != 0x00 {
		t.Fatalf("R = %#02x, want 0x00", r.R())
	}

	r.SetR(0xff) // bit 7 set, low 7 bits at max
	r.incR()
	if r.R() != 0x80 {
		t.Fatalf("R = %#02x, want 0x80 (bit 7 preserved)", r.R())
	}
}

func TestExAFAndExx(t *testing.T) {
	var r Registers
	r.SetAF(0x1111)
	r.SetAF2(0x2222)
	r.ExAF()
	if r.AF() != 0x2222 || r.AF2() != 0x1111 {
		t.Fatalf("ExAF did not swap: AF=%#04x AF2=%#04x", r.AF(), r.AF2())
	}

	r.SetBC(0x0001)
	r.SetBC2(0x0002)
	r.SetDE(0x0003)
	r.SetDE2(0x0004)
	r.SetHL(0x0005)
	r.SetHL2(0x0006)
	r.Exx()
	if r.BC() != 0x0002 || r.DE() != 0x0004 || r.HL() != 0x0006 {
		t.Fatalf("Exx did not swap all three pairs")
	}
}

func TestFlagHelpers(t *testing.T) {
	var r Registers
	r.SetF(0x00)
	r.SetFlag(FlagC, true)
	if !r.Flag(FlagC) {
		t.Fatal("FlagC not set after SetFlag(true)")
	}
	r.SetFlag(FlagC, false)
	if r.Flag(FlagC) {
		t.Fatal("FlagC still set after SetFlag(false)")
	}
}

func TestIndexRegisterHalves(t *testing.T) {
	var r Registers
	r.SetIX(0xabcd)
	if r.IXH() != 0xab || r.IXL() != 0xcd {
		t.Fatalf("IXH/IXL = %#02x/%#02x, want 0xab/0xcd", r.IXH(), r.IXL())
	}
	r.SetIYL(0x11)
	if r.IY()&0x00ff != 0x11 {
		t.Fatalf("IYL write did not stick")
	}
}
