package main

import (
	"fmt"
	"math/rand"

	"github.com/wallento/riscvmodel/insts"
	"github.com/wallento/riscvmodel/variant"
)

// usableSpecs returns the InstructionSpecs legal in v, restricted to
// allow if it is non-empty. Compact (RVC) mnemonics are excluded: their
// Encode falls back to replaying an already-decoded Word (see
// DESIGN.md), which can't synthesize a word for a freshly-built
// instruction the way the standard-format specs can.
func usableSpecs(v *variant.Variant, allow []string) ([]insts.InstructionSpec, error) {
	names := allow
	if len(names) == 0 {
		names = insts.Mnemonics()
	}
	var out []insts.InstructionSpec
	for _, name := range names {
		spec, ok := insts.Lookup(name)
		if !ok || spec.Compact {
			continue
		}
		if spec.Required != "" && !v.Has(spec.Required) {
			continue
		}
		out = append(out, spec)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no usable mnemonics for variant %s", v)
	}
	return out, nil
}

// randomInstruction builds a random operand assignment for a random spec
// from candidates, encodes it, then decodes the result back through
// decoder so the returned Instruction carries a resolved disassembly
// (same shape Decode would hand back from a live fetch).
func randomInstruction(rng *rand.Rand, decoder *insts.Decoder, v *variant.Variant, candidates []insts.InstructionSpec) (*insts.Instruction, error) {
	spec := candidates[rng.Intn(len(candidates))]
	regs := v.IntRegs()

	draft := &insts.Instruction{Mnemonic: spec.Mnemonic, Format: spec.Format}
	draft.Rd = uint8(rng.Intn(regs))
	draft.Rs1 = uint8(rng.Intn(regs))
	draft.Rs2 = uint8(rng.Intn(regs))
	draft.Shamt = uint8(rng.Intn(v.XLen))
	draft.Imm = int64(rng.Intn(1<<20)) - (1 << 19)

	word := spec.Encode(draft)
	return decoder.Decode(word)
}
