// Package state implements the architectural State and the
// fetch/execute/commit orchestration (Model) built on top of it,
// translating original_source/riscvmodel/model.py's State/Model classes:
// the copy-on-execute-then-commit discipline, the reservation set LR/SC
// need, and the pc/pc_next split that replaces the source's
// `__setattr__`-based "key is 'pc'" routing with an explicit SetPC.
package state

import (
	"github.com/wallento/riscvmodel/insts"
	"github.com/wallento/riscvmodel/memory"
	"github.com/wallento/riscvmodel/register"
	"github.com/wallento/riscvmodel/rtrace"
	"github.com/wallento/riscvmodel/variant"
)

// State is one hart's architectural state: the integer register file,
// memory, and program counter, plus the bookkeeping LR/SC needs. It
// implements insts.Machine so instruction Execute closures can operate
// on it directly.
type State struct {
	Regs *register.File
	Mem  *memory.Memory

	xlen int
	pc   uint64

	// pcNext is staged by SetPC (explicitly, never via attribute
	// interception) and by Model.Execute's default pc+size; it only
	// becomes the committed pc on Model.Commit.
	pcNext uint64

	reserved     bool
	reservedAddr uint32

	terminated bool
	exitCode   int

	// Env is the ECALL environment hook; nil makes ECALL a no-op.
	Env Environment
}

// New constructs a State sized for the given variant.
func New(v *variant.Variant, fill memory.FillPolicy) *State {
	return &State{
		Regs: register.New(v.XLen, v.IntRegs()),
		Mem:  memory.New(fill, nil),
		xlen: v.XLen,
	}
}

// Reset sets the pc (and pending pc) to pc and clears the LR/SC
// reservation and the termination status. Register and memory contents,
// including pending writes, are left unchanged.
func (s *State) Reset(pc uint64) {
	s.pc = pc
	s.pcNext = pc
	s.reserved = false
	s.terminated = false
	s.exitCode = 0
}

func (s *State) XLen() int { return s.xlen }

func (s *State) ReadReg(idx uint8) uint64   { return s.Regs.Read(idx) }
func (s *State) SignedReg(idx uint8) int64  { return s.Regs.Signed(idx) }
func (s *State) WriteReg(idx uint8, v uint64) { s.Regs.Write(idx, v) }

// PC returns the currently-committed program counter.
func (s *State) PC() uint64 { return s.pc }

// SetPC stages a program-counter change, the explicit replacement for
// the source's identity-comparison __setattr__ hack.
func (s *State) SetPC(pc uint64) { s.pcNext = pc }

func (s *State) LoadByte(addr uint32) uint8   { return s.Mem.LoadByte(addr) }
func (s *State) LoadHalf(addr uint32) uint16  { return s.Mem.LoadHalf(addr) }
func (s *State) LoadWord(addr uint32) uint32  { return s.Mem.LoadWord(addr) }
func (s *State) StoreByte(addr uint32, v uint8)  { s.Mem.StoreByte(addr, v) }
func (s *State) StoreHalf(addr uint32, v uint16) { s.Mem.StoreHalf(addr, v) }
func (s *State) StoreWord(addr uint32, v uint32) { s.Mem.StoreWord(addr, v) }

// Reserve records a load-reservation, the LR.W half of the LR/SC pair.
func (s *State) Reserve(addr uint32) {
	s.reserved = true
	s.reservedAddr = addr
}

// CheckAndClearReservation reports whether addr currently holds a valid
// reservation, clearing it unconditionally (SC.W always clears).
func (s *State) CheckAndClearReservation(addr uint32) bool {
	ok := s.reserved && s.reservedAddr == addr
	s.reserved = false
	return ok
}

// Terminate records program completion as state rather than a panic, so
// a caller can observe it after Model.Commit the way sim.Run does.
func (s *State) Terminate(code int) {
	s.terminated = true
	s.exitCode = code
}

// Terminated reports whether Terminate has been called and with what code.
func (s *State) Terminated() (bool, int) { return s.terminated, s.exitCode }

var _ insts.Machine = (*State)(nil)

// Check compares only the integer-register-write entries of expected and
// actual traces: PC and memory entries are informative but not part of
// the golden-model pass/fail contract, mirroring model.py's Model.check.
func Check(expected, actual rtrace.Trace) error {
	exp, expOk := expected.IntRegWrite()
	act, actOk := actual.IntRegWrite()
	if expOk != actOk {
		return &MismatchError{Expected: expected, Actual: actual}
	}
	if expOk && exp != act {
		return &MismatchError{Expected: expected, Actual: actual}
	}
	return nil
}

// MismatchError reports a golden-model trace mismatch.
type MismatchError struct {
	Expected, Actual rtrace.Trace
}

func (e *MismatchError) Error() string {
	return "trace mismatch: expected " + traceString(e.Expected) + ", actual " + traceString(e.Actual)
}

func traceString(t rtrace.Trace) string {
	if len(t) == 0 {
		return "(no changes)"
	}
	s := ""
	for i, e := range t {
		if i > 0 {
			s += "; "
		}
		s += e.String()
	}
	return s
}
