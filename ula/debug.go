//go:build !headless

package ula

import (
	"fmt"

	"golang.design/x/clipboard"

	"github.com/zxgo/speccycore/z80core"
)

// CopySnapshotToClipboard formats a register snapshot the way a bug
// report would quote it and writes it to the system clipboard, so a
// user hitting a bad frame can paste state straight into an issue.
// This is a debugger convenience, not the debugger UI itself.
func CopySnapshotToClipboard(s z80core.RegisterSnapshot) error {
	if err := clipboard.Init(); err != nil {
		return fmt.Errorf("ula: clipboard unavailable: %w", err)
	}
	text := fmt.Sprintf(
		"AF=%04x BC=%04x DE=%04x HL=%04x\nAF'=%04x BC'=%04x DE'=%04x HL'=%04x\n"+
			"IX=%04x IY=%04x SP=%04x PC=%04x\nI=%02x R=%02x IM=%d IFF1=%v IFF2=%v halted=%v",
		s.AF, s.BC, s.DE, s.HL,
		s.AF2, s.BC2, s.DE2, s.HL2,
		s.IX, s.IY, s.SP, s.PC,
		s.I, s.R, s.IM, s.IFF1, s.IFF2, s.Halted,
	)
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}
