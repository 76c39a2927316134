package insts

import "fmt"

// Format names an instruction encoding shape.
type Format int

const (
	FormatR Format = iota
	FormatI
	FormatIL // I-type with load-style "imm(rs1)" disassembly
	FormatIS // I-type with a shift amount instead of a full immediate
	FormatS
	FormatB
	FormatU
	FormatJ
	FormatAMO
	FormatCR
	FormatCI
	FormatCB
	FormatCSS
	FormatCL
	FormatCS
	FormatCJ
	FormatCIW
)

// Instruction is the decoded, flat representation of one machine word (or
// compact half-word): every format's operand fields live on one struct,
// unused fields left zero, carrying a superset of operand fields and
// dispatching by Format instead of by Go type.
type Instruction struct {
	Mnemonic string
	Format   Format
	Word     uint32
	Size     int // 2 or 4 bytes

	Rd, Rs1, Rs2 uint8
	Imm          int64
	Shamt        uint8
	Funct3       uint8
	Funct7       uint8
	Aq, Rl       bool // AMO acquire/release bits

	spec *InstructionSpec
}

// Execute runs the instruction's semantics against m, staging register,
// PC, and memory writes for the caller to read back via Changes/Commit.
func (i *Instruction) Execute(m Machine) {
	i.spec.Execute(i, m)
}

// HasRd reports whether this instruction's format has a destination
// register operand at all, the Go replacement for the source's
// `"rd" in insn.__dict__` introspection (golden.traces_from_rvfi uses
// this to decide whether an rd write it observed is even architecturally
// possible for the retiring instruction).
func (i *Instruction) HasRd() bool {
	switch i.Format {
	case FormatR, FormatI, FormatIL, FormatIS, FormatU, FormatJ, FormatAMO,
		FormatCI, FormatCR, FormatCIW, FormatCL:
		return true
	default:
		return false
	}
}

func (i *Instruction) String() string {
	switch i.Format {
	case FormatR:
		return fmt.Sprintf("%s x%d, x%d, x%d", i.Mnemonic, i.Rd, i.Rs1, i.Rs2)
	case FormatI:
		return fmt.Sprintf("%s x%d, x%d, %d", i.Mnemonic, i.Rd, i.Rs1, i.Imm)
	case FormatIL:
		return fmt.Sprintf("%s x%d, %d(x%d)", i.Mnemonic, i.Rd, i.Imm, i.Rs1)
	case FormatIS:
		return fmt.Sprintf("%s x%d, x%d, %d", i.Mnemonic, i.Rd, i.Rs1, i.Shamt)
	case FormatS:
		return fmt.Sprintf("%s x%d, %d(x%d)", i.Mnemonic, i.Rs2, i.Imm, i.Rs1)
	case FormatB:
		return fmt.Sprintf("%s x%d, x%d, %d", i.Mnemonic, i.Rs1, i.Rs2, i.Imm)
	case FormatU:
		return fmt.Sprintf("%s x%d, %d", i.Mnemonic, i.Rd, i.Imm)
	case FormatJ:
		return fmt.Sprintf("%s x%d, %d", i.Mnemonic, i.Rd, i.Imm)
	case FormatAMO:
		return fmt.Sprintf("%s x%d, x%d, (x%d)", i.Mnemonic, i.Rd, i.Rs2, i.Rs1)
	default:
		return fmt.Sprintf("%s x%d, x%d, x%d", i.Mnemonic, i.Rd, i.Rs1, i.Rs2)
	}
}
