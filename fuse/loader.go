// Package fuse loads and runs test cases in the FUSE Z80 test-suite
// format: a tests.in file gives the starting state, a tests.expected
// file gives the exact sequence of memory accesses (with their
// t-state) and the final register state.
package fuse

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Registers is the initial (or final) register block of a test case, in
// tests.in/tests.expected order.
type Registers struct {
	AF, BC, DE, HL     uint16
	AF2, BC2, DE2, HL2 uint16
	IX, IY             uint16
	SP, PC             uint16
	I, R               byte
	IFF1, IFF2         bool
	IM                 byte
	Halted             bool
	TStates            int64
}

// MemoryBlock is one "<address> <byte> <byte> ... -1" line from the
// memory section of a test case.
type MemoryBlock struct {
	Address uint16
	Bytes   []byte
}

// Case is a single parsed tests.in test case.
type Case struct {
	Name     string
	Regs     Registers
	Memory   []MemoryBlock
	PortsIn  map[uint16]byte // fixed-response ports for IN during replay, if provided out of band
}

// ParseCases reads every test case from a tests.in-formatted stream.
func ParseCases(r io.Reader) ([]Case, error) {
	sc := bufio.NewScanner(r)
	var cases []Case
	for sc.Scan() {
		name := strings.TrimSpace(sc.Text())
		if name == "" {
			continue
		}
		if !sc.Scan() {
			return nil, fmt.Errorf("fuse: %s: missing register line 1", name)
		}
		regs, err := parseRegLine1(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("fuse: %s: %w", name, err)
		}
		if !sc.Scan() {
			return nil, fmt.Errorf("fuse: %s: missing register line 2", name)
		}
		if err := parseRegLine2(sc.Text(), &regs); err != nil {
			return nil, fmt.Errorf("fuse: %s: %w", name, err)
		}

		var blocks []MemoryBlock
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" {
				break
			}
			if line == "-1" {
				break
			}
			block, err := parseMemoryLine(line)
			if err != nil {
				return nil, fmt.Errorf("fuse: %s: %w", name, err)
			}
			blocks = append(blocks, block)
		}

		cases = append(cases, Case{Name: name, Regs: regs, Memory: blocks})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return cases, nil
}

func parseRegLine1(line string) (Registers, error) {
	fields := strings.Fields(line)
	if len(fields) < 12 {
		return Registers{}, fmt.Errorf("register line 1 wants 12 fields, got %d", len(fields))
	}
	vals := make([]uint64, 12)
	for i, f := range fields[:12] {
		v, err := strconv.ParseUint(f, 16, 16)
		if err != nil {
			return Registers{}, fmt.Errorf("field %d (%q): %w", i, f, err)
		}
		vals[i] = v
	}
	return Registers{
		AF: uint16(vals[0]), BC: uint16(vals[1]), DE: uint16(vals[2]), HL: uint16(vals[3]),
		AF2: uint16(vals[4]), BC2: uint16(vals[5]), DE2: uint16(vals[6]), HL2: uint16(vals[7]),
		IX: uint16(vals[8]), IY: uint16(vals[9]),
		SP: uint16(vals[10]), PC: uint16(vals[11]),
	}, nil
}

func parseRegLine2(line string, r *Registers) error {
	fields := strings.Fields(line)
	if len(fields) < 7 {
		return fmt.Errorf("register line 2 wants 7 fields, got %d", len(fields))
	}
	i, err := strconv.ParseUint(fields[0], 16, 8)
	if err != nil {
		return err
	}
	rr, err := strconv.ParseUint(fields[1], 16, 8)
	if err != nil {
		return err
	}
	iff1, err := strconv.ParseUint(fields[2], 10, 8)
	if err != nil {
		return err
	}
	iff2, err := strconv.ParseUint(fields[3], 10, 8)
	if err != nil {
		return err
	}
	im, err := strconv.ParseUint(fields[4], 10, 8)
	if err != nil {
		return err
	}
	halted, err := strconv.ParseUint(fields[5], 10, 8)
	if err != nil {
		return err
	}
	tstates, err := strconv.ParseInt(fields[6], 10, 64)
	if err != nil {
		return err
	}
	r.I = byte(i)
	r.R = byte(rr)
	r.IFF1 = iff1 != 0
	r.IFF2 = iff2 != 0
	r.IM = byte(im)
	r.Halted = halted != 0
	r.TStates = tstates
	return nil
}

func parseMemoryLine(line string) (MemoryBlock, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return MemoryBlock{}, fmt.Errorf("malformed memory line %q", line)
	}
	addr, err := strconv.ParseUint(fields[0], 16, 16)
	if err != nil {
		return MemoryBlock{}, err
	}
	var bytes []byte
	for _, f := range fields[1:] {
		if f == "-1" {
			break
		}
		b, err := strconv.ParseUint(f, 16, 8)
		if err != nil {
			return MemoryBlock{}, err
		}
		bytes = append(bytes, byte(b))
	}
	return MemoryBlock{Address: uint16(addr), Bytes: bytes}, nil
}
