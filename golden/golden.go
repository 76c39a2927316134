// Package golden implements the reference-execution/RVFI bridge:
// GoldenUnbuffered tracks an oracle program's expected fetch order and
// checks committed traces from an external retire stream against what
// the model itself predicts, translating
// original_source/riscvmodel/golden.py's GoldenUnbuffered.fetch/commit.
package golden

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/wallento/riscvmodel/insts"
	"github.com/wallento/riscvmodel/memory"
	"github.com/wallento/riscvmodel/rtrace"
	"github.com/wallento/riscvmodel/state"
	"github.com/wallento/riscvmodel/variant"
)

// Error reports a golden-model/retire-stream disagreement: an
// unexpected fetch pc, a retiring instruction that doesn't match the
// oracle's expectation, or a trace mismatch.
type Error struct {
	Detail string
}

func (e *Error) Error() string { return "golden: " + e.Detail }

// EndError signals the oracle program has been exhausted: fetch walked
// past the end of the loaded program, or commit was called with nothing
// left in flight.
type EndError struct{}

func (e *EndError) Error() string { return "golden: program end" }

// GoldenUnbuffered is the single-hart, unbuffered (one instruction at a
// time) golden model: it does not itself receive a raw instruction
// stream, only an already-assembled oracle program and a caller's report
// of what an external core fetched and later committed.
type GoldenUnbuffered struct {
	Model   *state.Model
	Log     logr.Logger
	program []*insts.Instruction
	pc      uint64
	issued  []*insts.Instruction // FIFO, oldest at index 0
}

// NewGoldenUnbuffered constructs a GoldenUnbuffered scoped to variant v,
// reset to pc.
func NewGoldenUnbuffered(v *variant.Variant, fill memory.FillPolicy, pc uint64, log logr.Logger) *GoldenUnbuffered {
	g := &GoldenUnbuffered{Model: state.NewModel(v, fill), Log: log}
	g.Reset(pc)
	return g
}

// Reset rewinds the golden model and clears the in-flight fetch FIFO.
func (g *GoldenUnbuffered) Reset(pc uint64) {
	g.Model.Reset(pc)
	g.pc = pc
	g.issued = nil
}

// LoadProgram installs the oracle's already-decoded instruction stream.
func (g *GoldenUnbuffered) LoadProgram(program []*insts.Instruction) {
	g.program = program
}

// Fetch reports the instruction the oracle expects at pc, appends it to
// the in-flight FIFO awaiting a matching Commit, and advances the
// expected next fetch pc by 4 (the word stride; compact instructions
// still occupy one oracle program slot, matching golden.py's
// `program[pc >> 2]` indexing).
func (g *GoldenUnbuffered) Fetch(pc uint64) (*insts.Instruction, error) {
	if g.pc != pc {
		return nil, &Error{Detail: fmt.Sprintf("unexpected fetch pc: %d, expected %d", pc, g.pc)}
	}
	idx := pc >> 2
	if int(idx) >= len(g.program) {
		return nil, &EndError{}
	}
	insn := g.program[idx]
	g.issued = append(g.issued, insn)
	g.pc += 4
	return insn, nil
}

// Commit pops the oldest in-flight fetch, optionally checks it against
// the retiring instruction the caller observed, executes the oracle's
// expectation on the golden model, and compares the resulting trace
// against the caller's observed trace. insn may be nil when the caller
// only has a trace, not a decoded instruction, to offer.
func (g *GoldenUnbuffered) Commit(trace rtrace.Trace, insn *insts.Instruction) error {
	if len(g.issued) == 0 {
		return &EndError{}
	}
	exp := g.issued[0]
	g.issued = g.issued[1:]

	if insn != nil && insn.Mnemonic != exp.Mnemonic {
		return &Error{Detail: fmt.Sprintf("expected instruction %s, got %s", exp.Mnemonic, insn.Mnemonic)}
	}

	expTrace := g.Model.Execute(exp)
	g.Model.Commit()
	if err := state.Check(expTrace, trace); err != nil {
		return &Error{Detail: fmt.Sprintf("unexpected state change: %s", err.Error())}
	}
	return nil
}
