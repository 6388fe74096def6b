package z80core

import "testing"

func TestNewMemoryMarksROMReadOnly(t *testing.T) {
	m := NewMemorySeeded(42)
	m.WriteByte(0x0000, 0xaa)
	if m.ReadByte(0x0000) == 0xaa {
		t.Fatal("write to ROM region stuck")
	}
	m.WriteByte(0x4000, 0xaa)
	if m.ReadByte(0x4000) != 0xaa {
		t.Fatal("write to RAM region did not stick")
	}
}

func TestPeekPokeContend(t *testing.T) {
	m := NewMemorySeeded(1)
	var tstate TState
	m.Poke(0x8000, 0x42, &tstate)
	if tstate != 3 {
		t.Fatalf("t-state after one uncontended Poke = %d, want 3", tstate)
	}
	v := m.Peek(0x8000, &tstate)
	if v != 0x42 {
		t.Fatalf("Peek = %#02x, want 0x42", v)
	}
	if tstate != 6 {
		t.Fatalf("t-state after uncontended Poke then Peek = %d, want 6", tstate)
	}
}

func TestContentionOutsideScreenIsZero(t *testing.T) {
	m := NewMemorySeeded(1)
	var tstate TState = contentionStart
	m.Contend(0x8000, 1, 1, &tstate)
	if tstate != contentionStart+1 {
		t.Fatalf("contention applied outside [0x4000,0x8000): t=%d", tstate)
	}
}

func TestContentionInsideScreenAtKnownTState(t *testing.T) {
	m := NewMemorySeeded(1)
	var tstate TState = contentionStart
	m.Contend(0x4000, 1, 1, &tstate)
	if tstate != contentionStart+6+1 {
		t.Fatalf("t-state = %d, want %d (delay 6 at the first contended slot)", tstate, contentionStart+6+1)
	}
}

func TestPoke16Wraparound(t *testing.T) {
	m := NewMemorySeeded(1)
	before := m.ReadByte(0x0000)
	var tstate TState
	m.Poke16(0xffff, 0xabcd, &tstate)
	if m.ReadByte(0xffff) != 0xcd {
		t.Fatalf("low byte at 0xffff = %#02x, want 0xcd", m.ReadByte(0xffff))
	}
	if m.ReadByte(0x0000) != before {
		// address 0x0000 wraps from 0xffff+1 and is ROM: the high byte
		// write must be dropped, leaving the original contents.
		t.Fatalf("ROM at 0x0000 changed by wraparound write")
	}
}

func TestLoadBulkIgnoresROMProtection(t *testing.T) {
	m := NewMemorySeeded(1)
	m.Load(0x0000, []byte{1, 2, 3})
	if m.ReadByte(0x0000) != 1 || m.ReadByte(0x0002) != 3 {
		t.Fatal("Load did not bypass ROM protection")
	}
}

func TestResetPreservesROM(t *testing.T) {
	m := NewMemorySeeded(1)
	m.Load(0x0000, []byte{0x99})
	m.WriteByte(0x4000, 0x55)
	m.Reset()
	if m.ReadByte(0x0000) != 0x99 {
		t.Fatal("Reset touched ROM contents")
	}
	if m.ReadByte(0x4000) != 0x00 {
		t.Fatal("Reset did not zero RAM")
	}
}

func TestSetTraceObservesAccess(t *testing.T) {
	m := NewMemorySeeded(1)
	var got []TraceEvent
	m.SetTrace(func(ev TraceEvent) { got = append(got, ev) })
	var tstate TState
	m.Poke(0x8000, 0x7, &tstate)
	if len(got) != 1 || got[0].Kind != TraceWrite || got[0].Addr != 0x8000 || got[0].Value != 0x7 {
		t.Fatalf("trace event = %+v", got)
	}
}
