// Package rtrace defines the tagged-union trace entries produced by an
// instruction's pending writes and consumed by the golden-model checker.
// It replaces the source's ad hoc "changes()" string list with a small
// sealed interface, the idiomatic Go equivalent of the structured
// human-readable change list model.py builds.
package rtrace

import "fmt"

// Entry is a single observed state change: a register write, a PC update,
// or a memory write. The marker method seals the interface to this
// package's three concrete types.
type Entry interface {
	isEntry()
	String() string
}

// IntReg records an integer register write (index, value).
type IntReg struct {
	Index uint8
	Value uint64
}

func (IntReg) isEntry() {}
func (e IntReg) String() string {
	return fmt.Sprintf("x%d <- 0x%x", e.Index, e.Value)
}

// PC records a program-counter change away from the default next pc
// (pc plus the instruction's size).
type PC struct {
	NewPC uint64
}

func (PC) isEntry() {}
func (e PC) String() string {
	return fmt.Sprintf("pc <- 0x%x", e.NewPC)
}

// Granularity is the width of a buffered memory write.
type Granularity uint8

const (
	Byte Granularity = iota
	Half
	Word
)

func (g Granularity) String() string {
	switch g {
	case Byte:
		return "B"
	case Half:
		return "H"
	case Word:
		return "W"
	default:
		return "?"
	}
}

// Mem records a buffered memory write.
type Mem struct {
	Granularity Granularity
	Addr        uint32
	Data        uint32
}

func (Mem) isEntry() {}
func (e Mem) String() string {
	return fmt.Sprintf("mem[0x%x] <- 0x%x (%s)", e.Addr, e.Data, e.Granularity)
}

// Trace is the ordered list of pending changes produced by one
// instruction's execute step.
type Trace []Entry

// IntRegWrite returns the single IntReg entry in the trace, if any, and
// whether one was present. An instruction commits at most one integer
// register write.
func (t Trace) IntRegWrite() (IntReg, bool) {
	for _, e := range t {
		if r, ok := e.(IntReg); ok {
			return r, true
		}
	}
	return IntReg{}, false
}
