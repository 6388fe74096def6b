//go:build headless

package ula

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/zxgo/speccycore/z80core"
)

// Display is the headless stand-in for the ebiten-backed renderer: it
// keeps no pixels, just periodically prints a one-line status to the
// controlling terminal (if any) so a headless run is still observable.
type Display struct {
	mem *z80core.Memory
	bus *Bus

	isTerminal bool
	frames     int
}

func NewDisplay(mem *z80core.Memory, bus *Bus) *Display {
	return &Display{mem: mem, bus: bus, isTerminal: term.IsTerminal(int(os.Stdout.Fd()))}
}

func (d *Display) SetKeyHandler(func(row, bit int, down bool))          {}
func (d *Display) SetOnClose(func())                                   {}
func (d *Display) SetSnapshotHandler(func() z80core.RegisterSnapshot) {}

func (d *Display) Tick() {
	d.frames++
	if d.isTerminal && d.frames%50 == 0 {
		fmt.Fprintf(os.Stdout, "\rframe %d border=%d", d.frames, d.bus.Border())
	}
}

// OtoBeeper is the headless stand-in audio sink: it discards every edge.
type OtoBeeper struct{}

func NewOtoBeeper() (*OtoBeeper, error) { return &OtoBeeper{}, nil }

func (b *OtoBeeper) SetLevel(level bool, t z80core.TState) {}
func (b *OtoBeeper) EndFrame(frameTStates z80core.TState)  {}
func (b *OtoBeeper) Start()                                {}
func (b *OtoBeeper) Close() error                          { return nil }
