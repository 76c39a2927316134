package state

import (
	"github.com/wallento/riscvmodel/insts"
	"github.com/wallento/riscvmodel/memory"
	"github.com/wallento/riscvmodel/rtrace"
	"github.com/wallento/riscvmodel/variant"
)

// Model pairs a State with the Decoder scoped to the same variant,
// mirroring model.py's Model class: issue (fetch+execute+commit) and the
// lower-level execute/commit/discard steps as separate calls, so a caller
// can inspect the pending trace before committing or discarding it.
type Model struct {
	State   *State
	Decoder *insts.Decoder
	Variant *variant.Variant
}

// NewModel constructs a Model for the given variant and memory fill
// policy.
func NewModel(v *variant.Variant, fill memory.FillPolicy) *Model {
	return &Model{
		State:   New(v, fill),
		Decoder: insts.NewDecoder(v),
		Variant: v,
	}
}

// Reset resets the underlying State to pc.
func (m *Model) Reset(pc uint64) {
	m.State.Reset(pc)
}

// Decode decodes one instruction word without executing it.
func (m *Model) Decode(word uint32) (*insts.Instruction, error) {
	return m.Decoder.Decode(word)
}

// Execute stages inst's writes against m.State and returns the resulting
// trace, without committing. pc_next is seeded to pc+inst.Size before
// dispatch, so Execute bodies that don't touch control flow leave it
// untouched and a PC trace entry only appears when they do.
func (m *Model) Execute(inst *insts.Instruction) rtrace.Trace {
	s := m.State
	expectedNext := s.pc + uint64(inst.Size)
	s.pcNext = expectedNext

	inst.Execute(s)

	var t rtrace.Trace
	t = append(t, s.Regs.Changes()...)
	if s.pcNext != expectedNext {
		t = append(t, rtrace.PC{NewPC: s.pcNext})
	}
	t = append(t, s.Mem.Changes()...)
	return t
}

// Commit applies the pending register/memory/pc writes staged by the
// last Execute call.
func (m *Model) Commit() {
	m.State.Regs.Commit()
	m.State.Mem.Commit()
	m.State.pc = m.State.pcNext
}

// Discard drops the pending writes staged by the last Execute call
// without applying them.
func (m *Model) Discard() {
	m.State.Regs.Discard()
	m.State.Mem.Discard()
	m.State.pcNext = m.State.pc
}

// Issue fetches nothing itself (the caller already has the word): it
// decodes, executes, and commits in one step, the single-shot form
// model.py's Model.issue provides for the plain (non-golden) simulator.
func (m *Model) Issue(word uint32) (rtrace.Trace, error) {
	inst, err := m.Decode(word)
	if err != nil {
		return nil, err
	}
	t := m.Execute(inst)
	m.Commit()
	return t, nil
}
