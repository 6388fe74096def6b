package fuse

import (
	"fmt"

	"github.com/zxgo/speccycore/z80core"
)

// nullBus answers every IN with 0xff and discards every OUT, matching an
// open Spectrum data bus with nothing attached. Callers that need a real
// I/O trace during a run should supply their own z80core.Bus instead.
type nullBus struct{}

func (nullBus) In(port uint16, t *z80core.TState) byte    { return 0xff }
func (nullBus) Out(port uint16, value byte, t *z80core.TState) {}

// Result is the observed end state of running one Case to completion.
type Result struct {
	Events  []z80core.TraceEvent
	Regs    Registers
	TStates int64
}

// Run loads a Case's initial register and memory state into a fresh
// Memory+CPU pair, executes exactly one instruction, and reports the
// resulting register state and the memory trace recorded along the way -
// mirroring how the FUSE harness compares a tests.expected event log
// against the core under test.
func Run(c Case, bus z80core.Bus) (Result, error) {
	if bus == nil {
		bus = nullBus{}
	}
	mem := z80core.NewMemory()
	for _, block := range c.Memory {
		for i, b := range block.Bytes {
			mem.Poke(block.Address+uint16(i), b, new(z80core.TState))
		}
	}

	var events []z80core.TraceEvent
	mem.SetTrace(func(ev z80core.TraceEvent) { events = append(events, ev) })

	cpu := z80core.NewCPU(mem, bus, z80core.WithTrace(func(ev z80core.TraceEvent) { events = append(events, ev) }))
	loadRegisters(cpu, c.Regs)

	var t z80core.TState
	if cpu.Halted() {
		return Result{}, fmt.Errorf("fuse: %s: starting halted is not supported by Run", c.Name)
	}
	cpu.Step(&t)

	return Result{
		Events:  events,
		Regs:    snapshotToRegisters(cpu, int64(t)),
		TStates: int64(t),
	}, nil
}

// RunToCompletion drives a repeating block instruction (LDIR, CPDR, ...)
// to its end by calling Step repeatedly as long as PC keeps landing back
// on the instruction's own opcode byte - the same thing a frame loop
// does naturally by calling Step once per available t-state. maxSteps
// bounds runaway cases where the instruction never un-repeats.
func RunToCompletion(c Case, bus z80core.Bus, maxSteps int) (Result, error) {
	if bus == nil {
		bus = nullBus{}
	}
	mem := z80core.NewMemory()
	for _, block := range c.Memory {
		for i, b := range block.Bytes {
			mem.Poke(block.Address+uint16(i), b, new(z80core.TState))
		}
	}

	var events []z80core.TraceEvent
	mem.SetTrace(func(ev z80core.TraceEvent) { events = append(events, ev) })

	cpu := z80core.NewCPU(mem, bus, z80core.WithTrace(func(ev z80core.TraceEvent) { events = append(events, ev) }))
	loadRegisters(cpu, c.Regs)

	var t z80core.TState
	start := c.Regs.PC
	cpu.Step(&t)
	for i := 0; i < maxSteps && cpu.Registers().PC() == start; i++ {
		cpu.Step(&t)
	}

	return Result{
		Events:  events,
		Regs:    snapshotToRegisters(cpu, int64(t)),
		TStates: int64(t),
	}, nil
}

func loadRegisters(cpu *z80core.CPU, r Registers) {
	s := z80core.RegisterSnapshot{
		AF: r.AF, BC: r.BC, DE: r.DE, HL: r.HL,
		AF2: r.AF2, BC2: r.BC2, DE2: r.DE2, HL2: r.HL2,
		IX: r.IX, IY: r.IY,
		SP: r.SP, PC: r.PC,
		I: r.I, R: r.R,
		IFF1: r.IFF1, IFF2: r.IFF2,
		IM:     r.IM,
		Halted: r.Halted,
	}
	cpu.Restore(s)
}

func snapshotToRegisters(cpu *z80core.CPU, tstates int64) Registers {
	s := cpu.Snapshot()
	return Registers{
		AF: s.AF, BC: s.BC, DE: s.DE, HL: s.HL,
		AF2: s.AF2, BC2: s.BC2, DE2: s.DE2, HL2: s.HL2,
		IX: s.IX, IY: s.IY,
		SP: s.SP, PC: s.PC,
		I: s.I, R: s.R,
		IFF1: s.IFF1, IFF2: s.IFF2,
		IM:      s.IM,
		Halted:  s.Halted,
		TStates: tstates,
	}
}
