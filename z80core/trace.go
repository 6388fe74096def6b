// trace.go - the observer hook Memory invokes on every Peek/Poke and the
// CPU on every M1 opcode fetch.
//
// The source gated a test-only results file behind per-instruction
// conditional compilation. Here that becomes a plain function hook that
// production builds simply never install: SetTrace(nil) is the default
// state and costs a single nil check per access.

package z80core

// TraceKind identifies the kind of bus/memory event a TraceEvent records.
type TraceKind int

const (
	TraceRead TraceKind = iota
	TraceWrite
	TracePortIn
	TracePortOut
	TraceContend
)

func (k TraceKind) String() string {
	switch k {
	case TraceRead:
		return "R"
	case TraceWrite:
		return "W"
	case TracePortIn:
		return "PI"
	case TracePortOut:
		return "PO"
	case TraceContend:
		return "C"
	default:
		return "?"
	}
}

// TraceEvent is a single observed access: the t-state it occurred at,
// what kind of access it was, the address or port involved, and the
// byte value read or written.
type TraceEvent struct {
	TState TState
	Kind   TraceKind
	Addr   uint16
	Value  byte
}
