// flags.go - Z80 flag bits and the precomputed SZYXH/parity lookup tables.

package z80core

// Flag bit masks for the F register.
const (
	FlagC  byte = 0x01 // carry
	FlagN  byte = 0x02 // subtract
	FlagPV byte = 0x04 // parity/overflow
	FlagX  byte = 0x08 // undocumented, copy of result bit 3
	FlagH  byte = 0x10 // half carry
	FlagY  byte = 0x20 // undocumented, copy of result bit 5
	FlagZ  byte = 0x40 // zero
	FlagS  byte = 0x80 // sign
)

// parityTable, sz53Table and sz53pTable are initialised once and treated
// as process-wide immutable lookup tables, as the source's gParity/gSZ53/
// gSZ53P globals are.
var (
	parityTable [256]byte
	sz53Table   [256]byte
	sz53pTable  [256]byte
)

func init() {
	for i := 0; i < 256; i++ {
		b := byte(i)

		p := byte(0)
		for v := b; v != 0; v &= v - 1 {
			p++
		}
		if p&1 == 0 {
			parityTable[i] = FlagPV
		}

		sz53Table[i] = b & (FlagS | FlagY | FlagX)
		sz53pTable[i] = sz53Table[i] | parityTable[i]
	}
	sz53Table[0] |= FlagZ
	sz53pTable[0] |= FlagZ
}
