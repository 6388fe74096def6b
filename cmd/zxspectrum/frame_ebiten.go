//go:build !headless

package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// gameLoop wraps machine's Display so CPU stepping happens once per host
// Update tick, ahead of the Display's own input handling. ebiten.RunGame
// drives one goroutine, the window event loop, for the whole process
// lifetime.
type gameLoop struct {
	m *machine
}

func (g *gameLoop) Update() error {
	if g.m.stopped {
		return ebiten.Termination
	}
	g.m.runFrame()
	return g.m.display.Update()
}

func (g *gameLoop) Draw(screen *ebiten.Image) { g.m.display.Draw(screen) }

func (g *gameLoop) Layout(w, h int) (int, int) { return g.m.display.Layout(w, h) }

func runHostLoop(m *machine) {
	ebiten.SetWindowSize(640, 512)
	ebiten.SetWindowTitle("speccycore")
	if err := ebiten.RunGame(&gameLoop{m: m}); err != nil && err != ebiten.Termination {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
