//go:build headless

package main

func runHostLoop(m *machine) {
	for !m.stopped {
		m.runFrame()
	}
}
