//go:build !headless

package ula

import "testing"

func TestRuneToMatrixKnownKeys(t *testing.T) {
	row, bit, ok := RuneToMatrix('A')
	if !ok || row != 1 || bit != 0 {
		t.Fatalf("RuneToMatrix('A') = (%d,%d,%v), want (1,0,true)", row, bit, ok)
	}
	row, bit, ok = RuneToMatrix('\n')
	if !ok || row != 6 || bit != 0 {
		t.Fatalf("RuneToMatrix('\\n') = (%d,%d,%v), want (6,0,true)", row, bit, ok)
	}
}

func TestRuneToMatrixUnknownRune(t *testing.T) {
	if _, _, ok := RuneToMatrix('#'); ok {
		t.Fatal("RuneToMatrix('#') reported ok, want false (not in the unshifted matrix)")
	}
}
