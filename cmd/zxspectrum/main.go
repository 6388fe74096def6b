// Command zxspectrum runs a 48K ZX Spectrum: it loads a ROM, then drives
// z80core.CPU and ula.Bus through the standard 69888 t-state/frame loop,
// servicing the one maskable interrupt the ULA raises at the top of
// every frame.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/zxgo/speccycore/ula"
	"github.com/zxgo/speccycore/z80core"
)

// tStatesPerFrame is the 48K Spectrum's full frame length: 312 lines of
// 224 t-states each.
const tStatesPerFrame = 312 * 224

func main() {
	romPath := flag.String("rom", "", "48K ROM image (16384 bytes)")
	frames := flag.Int("frames", 0, "stop after this many frames (0 = run until the window closes)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: zxspectrum -rom <path> [options]\n\nOptions:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *romPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	rom, err := os.ReadFile(*romPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	mem := z80core.NewMemory()
	mem.Load(0, rom)
	mem.SetReadOnly(0, len(rom), true)

	beeper, err := ula.NewOtoBeeper()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: audio init: %v\n", err)
		os.Exit(1)
	}
	bus := ula.NewBus(mem, beeper)
	cpu := z80core.NewCPU(mem, bus)
	cpu.Reset(true)

	beeper.Start()

	display := ula.NewDisplay(mem, bus)
	display.SetKeyHandler(func(row, bit int, down bool) { bus.SetKey(row, bit, down) })
	display.SetSnapshotHandler(cpu.Snapshot)

	m := &machine{cpu: cpu, mem: mem, bus: bus, beeper: beeper, display: display, maxFrames: *frames}
	display.SetOnClose(func() { m.stopped = true })

	m.run()
}

// machine owns the frame loop; the build-tagged host loop calls its
// runFrame once per host frame.
type machine struct {
	cpu     *z80core.CPU
	mem     *z80core.Memory
	bus     *ula.Bus
	beeper  *ula.OtoBeeper
	display *ula.Display

	maxFrames int
	frame     int
	stopped   bool
}

func (m *machine) run() {
	runHostLoop(m)
}

// runFrame advances the emulated machine by exactly one 69888 t-state
// frame, delivering the ULA's interrupt at the start, and is called once
// per host tick by the build-tagged driver in frame_ebiten.go or
// frame_headless.go.
func (m *machine) runFrame() {
	m.bus.SetFrameTState(0)
	var t z80core.TState
	m.cpu.Interrupt(&t)

	for t < tStatesPerFrame {
		m.cpu.Step(&t)
	}
	m.beeper.EndFrame(t)
	m.display.Tick()

	m.frame++
	if m.maxFrames > 0 && m.frame >= m.maxFrames {
		m.stopped = true
	}
}
