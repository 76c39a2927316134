package insts

import (
	"fmt"

	"github.com/wallento/riscvmodel/variant"
)

// ExecuteFunc is the per-mnemonic semantics body.
type ExecuteFunc func(i *Instruction, m Machine)

// InstructionSpec is the compile-time description of one mnemonic: how to
// recognize it, how to pull its operands out of a word, how to put them
// back, and what it does. This is a table-driven replacement for a
// subclass-per-instruction hierarchy; the Match/Decode split mirrors an
// isXxx/decodeXxx predicate-pair dispatch idiom.
type InstructionSpec struct {
	Mnemonic string
	Format   Format
	Required variant.Extension // "" if part of the I/E base
	Compact  bool
	Match    func(word uint32) bool
	Decode   func(word uint32) *Instruction
	Encode   func(i *Instruction) uint32
	Execute  ExecuteFunc
}

func opcode(word uint32) uint32 { return word & 0x7f }
func funct3(word uint32) uint32 { return (word >> 12) & 0x7 }
func funct7(word uint32) uint32 { return (word >> 25) & 0x7f }

func quadrant(w uint32) uint32  { return w & 0x3 }
func cFunct3(w uint32) uint32   { return (w >> 13) & 0x7 }

func rSpec(mnemonic string, f3, f7 uint32, required variant.Extension, ex ExecuteFunc) InstructionSpec {
	return InstructionSpec{
		Mnemonic: mnemonic, Format: FormatR, Required: required,
		Match: func(word uint32) bool {
			return opcode(word) == 0x33 && funct3(word) == f3 && funct7(word) == f7
		},
		Decode: func(word uint32) *Instruction {
			i := &Instruction{Mnemonic: mnemonic, Format: FormatR, Word: word, Size: 4}
			decodeR(word, i)
			return i
		},
		Encode:  func(i *Instruction) uint32 { return encodeR(i, 0x33) },
		Execute: ex,
	}
}

func iSpec(mnemonic string, f3 uint32, ex ExecuteFunc) InstructionSpec {
	return InstructionSpec{
		Mnemonic: mnemonic, Format: FormatI,
		Match: func(word uint32) bool { return opcode(word) == 0x13 && funct3(word) == f3 },
		Decode: func(word uint32) *Instruction {
			i := &Instruction{Mnemonic: mnemonic, Format: FormatI, Word: word, Size: 4}
			decodeI(word, i)
			return i
		},
		Encode:  func(i *Instruction) uint32 { return encodeI(i, 0x13) },
		Execute: ex,
	}
}

func isSpec(mnemonic string, f3, f7 uint32, ex ExecuteFunc) InstructionSpec {
	return InstructionSpec{
		Mnemonic: mnemonic, Format: FormatIS,
		Match: func(word uint32) bool { return opcode(word) == 0x13 && funct3(word) == f3 && funct7(word) == f7 },
		Decode: func(word uint32) *Instruction {
			i := &Instruction{Mnemonic: mnemonic, Format: FormatIS, Word: word, Size: 4}
			decodeIS(word, i)
			return i
		},
		Encode:  func(i *Instruction) uint32 { return encodeIS(i, 0x13) },
		Execute: ex,
	}
}

func ilSpec(mnemonic string, f3 uint32, ex ExecuteFunc) InstructionSpec {
	return InstructionSpec{
		Mnemonic: mnemonic, Format: FormatIL,
		Match: func(word uint32) bool { return opcode(word) == 0x03 && funct3(word) == f3 },
		Decode: func(word uint32) *Instruction {
			i := &Instruction{Mnemonic: mnemonic, Format: FormatIL, Word: word, Size: 4}
			decodeI(word, i)
			return i
		},
		Encode:  func(i *Instruction) uint32 { return encodeI(i, 0x03) },
		Execute: ex,
	}
}

func sSpec(mnemonic string, f3 uint32, ex ExecuteFunc) InstructionSpec {
	return InstructionSpec{
		Mnemonic: mnemonic, Format: FormatS,
		Match: func(word uint32) bool { return opcode(word) == 0x23 && funct3(word) == f3 },
		Decode: func(word uint32) *Instruction {
			i := &Instruction{Mnemonic: mnemonic, Format: FormatS, Word: word, Size: 4}
			decodeS(word, i)
			return i
		},
		Encode:  func(i *Instruction) uint32 { return encodeS(i, 0x23) },
		Execute: ex,
	}
}

func bSpec(mnemonic string, f3 uint32, ex ExecuteFunc) InstructionSpec {
	return InstructionSpec{
		Mnemonic: mnemonic, Format: FormatB,
		Match: func(word uint32) bool { return opcode(word) == 0x63 && funct3(word) == f3 },
		Decode: func(word uint32) *Instruction {
			i := &Instruction{Mnemonic: mnemonic, Format: FormatB, Word: word, Size: 4}
			decodeB(word, i)
			return i
		},
		Encode:  func(i *Instruction) uint32 { return encodeB(i, 0x63) },
		Execute: ex,
	}
}

func uSpec(mnemonic string, op uint32, ex ExecuteFunc) InstructionSpec {
	return InstructionSpec{
		Mnemonic: mnemonic, Format: FormatU,
		Match: func(word uint32) bool { return opcode(word) == op },
		Decode: func(word uint32) *Instruction {
			i := &Instruction{Mnemonic: mnemonic, Format: FormatU, Word: word, Size: 4}
			decodeU(word, i)
			return i
		},
		Encode:  func(i *Instruction) uint32 { return encodeU(i, uint8(op)) },
		Execute: ex,
	}
}

func jSpec(mnemonic string, ex ExecuteFunc) InstructionSpec {
	return InstructionSpec{
		Mnemonic: mnemonic, Format: FormatJ,
		Match: func(word uint32) bool { return opcode(word) == 0x6f },
		Decode: func(word uint32) *Instruction {
			i := &Instruction{Mnemonic: mnemonic, Format: FormatJ, Word: word, Size: 4}
			decodeJ(word, i)
			return i
		},
		Encode:  func(i *Instruction) uint32 { return encodeJ(i, 0x6f) },
		Execute: ex,
	}
}

func jalrSpec(mnemonic string, ex ExecuteFunc) InstructionSpec {
	return InstructionSpec{
		Mnemonic: mnemonic, Format: FormatI,
		Match: func(word uint32) bool { return opcode(word) == 0x67 && funct3(word) == 0 },
		Decode: func(word uint32) *Instruction {
			i := &Instruction{Mnemonic: mnemonic, Format: FormatI, Word: word, Size: 4}
			decodeI(word, i)
			return i
		},
		Encode:  func(i *Instruction) uint32 { return encodeI(i, 0x67) },
		Execute: ex,
	}
}

func amoSpec(mnemonic string, funct5 uint32, ex ExecuteFunc) InstructionSpec {
	return InstructionSpec{
		Mnemonic: mnemonic, Format: FormatAMO, Required: variant.ExtA,
		Match: func(word uint32) bool {
			return opcode(word) == 0x2f && funct3(word) == 2 && (funct7(word)>>2) == funct5
		},
		Decode: func(word uint32) *Instruction {
			i := &Instruction{Mnemonic: mnemonic, Format: FormatAMO, Word: word, Size: 4}
			decodeAMO(word, i)
			return i
		},
		Encode:  func(i *Instruction) uint32 { return encodeAMO(i, 0x2f) },
		Execute: ex,
	}
}

func compactSpec(mnemonic string, format Format, quad, f3 uint32, extra func(w uint32) bool, decode func(w uint16, i *Instruction), ex ExecuteFunc) InstructionSpec {
	return InstructionSpec{
		Mnemonic: mnemonic, Format: format, Required: variant.ExtC, Compact: true,
		Match: func(word uint32) bool {
			if quadrant(word) != quad || cFunct3(word) != f3 {
				return false
			}
			if extra != nil {
				return extra(word)
			}
			return true
		},
		Decode: func(word uint32) *Instruction {
			i := &Instruction{Mnemonic: mnemonic, Format: format, Word: word, Size: 2}
			decode(uint16(word), i)
			return i
		},
		// Compact encode falls back to replaying the word an instruction
		// was decoded from; a from-scratch field-packing encoder for
		// every RVC mnemonic is future work (see DESIGN.md).
		Encode:  func(i *Instruction) uint32 { return i.Word },
		Execute: ex,
	}
}

// specs is the full instruction table, in registration order: the I base,
// the fence/ecall/ebreak/CSR system instructions, then M, A, and C.
var specs = buildSpecs()

func buildSpecs() []InstructionSpec {
	var s []InstructionSpec

	// RV32I base
	s = append(s,
		uSpec("lui", 0x37, exLUI),
		uSpec("auipc", 0x17, exAUIPC),
		jSpec("jal", exJAL),
		jalrSpec("jalr", exJALR),
		bSpec("beq", 0, exBranch(func(a, b int64) bool { return a == b })),
		bSpec("bne", 1, exBranch(func(a, b int64) bool { return a != b })),
		bSpec("blt", 4, exBranch(func(a, b int64) bool { return a < b })),
		bSpec("bge", 5, exBranch(func(a, b int64) bool { return a >= b })),
		bSpec("bltu", 6, exBranchUnsigned(func(a, b uint64) bool { return a < b })),
		bSpec("bgeu", 7, exBranchUnsigned(func(a, b uint64) bool { return a >= b })),
		ilSpec("lb", 0, exLB),
		ilSpec("lh", 1, exLH),
		ilSpec("lw", 2, exLW),
		ilSpec("lbu", 4, exLBU),
		ilSpec("lhu", 5, exLHU),
		sSpec("sb", 0, exSB),
		sSpec("sh", 1, exSH),
		sSpec("sw", 2, exSW),
		iSpec("addi", 0, exADDI),
		iSpec("slti", 2, exSLTI),
		iSpec("sltiu", 3, exSLTIU),
		iSpec("xori", 4, exXORI),
		iSpec("ori", 6, exORI),
		iSpec("andi", 7, exANDI),
		isSpec("slli", 1, 0x00, exSLLI),
		isSpec("srli", 5, 0x00, exSRLI),
		isSpec("srai", 5, 0x20, exSRAI),
		rSpec("add", 0, 0x00, "", exADD),
		rSpec("sub", 0, 0x20, "", exSUB),
		rSpec("sll", 1, 0x00, "", exSLL),
		rSpec("slt", 2, 0x00, "", exSLT),
		rSpec("sltu", 3, 0x00, "", exSLTU),
		rSpec("xor", 4, 0x00, "", exXOR),
		rSpec("srl", 5, 0x00, "", exSRL),
		rSpec("sra", 5, 0x20, "", exSRA),
		rSpec("or", 6, 0x00, "", exOR),
		rSpec("and", 7, 0x00, "", exAND),
	)

	// fence, ebreak and the Zicsr CSR instructions: decode-only, no
	// architectural side effect in this model (CSR side effects are out of
	// scope). ecall is the exception: it calls the environment hook.
	s = append(s, InstructionSpec{
		Mnemonic: "fence", Format: FormatI,
		Match: func(word uint32) bool { return opcode(word) == 0x0f && funct3(word) == 0 },
		Decode: func(word uint32) *Instruction {
			i := &Instruction{Mnemonic: "fence", Format: FormatI, Word: word, Size: 4}
			decodeI(word, i)
			return i
		},
		Encode:  func(i *Instruction) uint32 { return encodeI(i, 0x0f) },
		Execute: exNoop,
	})
	for _, sys := range []struct {
		name string
		imm  uint32
		ex   ExecuteFunc
	}{{"ecall", 0, exECALL}, {"ebreak", 1, exNoop}} {
		imm := sys.imm
		s = append(s, InstructionSpec{
			Mnemonic: sys.name, Format: FormatI,
			Match: func(word uint32) bool {
				return opcode(word) == 0x73 && funct3(word) == 0 && ((word>>20)&0xfff) == imm
			},
			Decode: func(word uint32) *Instruction {
				i := &Instruction{Mnemonic: sys.name, Format: FormatI, Word: word, Size: 4}
				decodeI(word, i)
				return i
			},
			Encode:  func(i *Instruction) uint32 { return encodeI(i, 0x73) },
			Execute: sys.ex,
		})
	}
	for _, csr := range []struct {
		name string
		f3   uint32
	}{{"csrrw", 1}, {"csrrs", 2}, {"csrrc", 3}, {"csrrwi", 5}, {"csrrsi", 6}, {"csrrci", 7}} {
		f3 := csr.f3
		s = append(s, InstructionSpec{
			Mnemonic: csr.name, Format: FormatI, Required: variant.ExtZicsr,
			Match: func(word uint32) bool { return opcode(word) == 0x73 && funct3(word) == f3 },
			Decode: func(word uint32) *Instruction {
				i := &Instruction{Mnemonic: csr.name, Format: FormatI, Word: word, Size: 4}
				decodeI(word, i)
				return i
			},
			Encode:  func(i *Instruction) uint32 { return encodeI(i, 0x73) },
			Execute: exNoop,
		})
	}

	// RV32M
	s = append(s,
		rSpec("mul", 0, 0x01, variant.ExtM, exMUL),
		rSpec("mulh", 1, 0x01, variant.ExtM, exMULH),
		rSpec("mulhsu", 2, 0x01, variant.ExtM, exMULHSU),
		rSpec("mulhu", 3, 0x01, variant.ExtM, exMULHU),
		rSpec("div", 4, 0x01, variant.ExtM, exDIV),
		rSpec("divu", 5, 0x01, variant.ExtM, exDIVU),
		rSpec("rem", 6, 0x01, variant.ExtM, exREM),
		rSpec("remu", 7, 0x01, variant.ExtM, exREMU),
	)

	// RV32A
	s = append(s,
		InstructionSpec{
			Mnemonic: "lr.w", Format: FormatAMO, Required: variant.ExtA,
			Match: func(word uint32) bool { return opcode(word) == 0x2f && funct3(word) == 2 && (funct7(word)>>2) == 0x02 },
			Decode: func(word uint32) *Instruction {
				i := &Instruction{Mnemonic: "lr.w", Format: FormatAMO, Word: word, Size: 4}
				decodeAMO(word, i)
				return i
			},
			Encode:  func(i *Instruction) uint32 { return encodeAMO(i, 0x2f) },
			Execute: exLRW,
		},
		amoSpec("sc.w", 0x03, exSCW),
		amoSpec("amoswap.w", 0x01, exAMOSWAPW),
		amoSpec("amoadd.w", 0x00, exAMOADDW),
		amoSpec("amoxor.w", 0x04, exAMOXORW),
		amoSpec("amoand.w", 0x0c, exAMOANDW),
		amoSpec("amoor.w", 0x08, exAMOORW),
		amoSpec("amomin.w", 0x10, exAMOMINW),
		amoSpec("amomax.w", 0x14, exAMOMAXW),
		amoSpec("amominu.w", 0x18, exAMOMINUW),
		amoSpec("amomaxu.w", 0x1c, exAMOMAXUW),
	)

	// RV32C (representative core subset: arithmetic, loads/stores,
	// control flow — the codec pattern generalizes to the remaining
	// compact mnemonics the same way).
	s = append(s,
		compactSpec("c.addi4spn", FormatCIW, 0, 0, func(w uint32) bool { return (w>>5)&0xff != 0 }, decodeCADDI4SPN, exCADDI4SPN),
		compactSpec("c.lw", FormatCL, 0, 2, nil, decodeCLW, exCLW),
		compactSpec("c.sw", FormatCS, 0, 6, nil, decodeCSWord, exCSW),
		compactSpec("c.nop", FormatCI, 1, 0, func(w uint32) bool { return (w>>7)&0x1f == 0 }, func(uint16, *Instruction) {}, exCNOP),
		compactSpec("c.addi", FormatCI, 1, 0, func(w uint32) bool { return (w>>7)&0x1f != 0 }, decodeCAddi, exCADDI),
		compactSpec("c.jal", FormatCJ, 1, 1, nil, func(w uint16, i *Instruction) { i.Imm = decodeCJOffset(w) }, exCJAL),
		compactSpec("c.li", FormatCI, 1, 2, nil, decodeCLi, exCLI),
		compactSpec("c.addi16sp", FormatCI, 1, 3, func(w uint32) bool { return (w>>7)&0x1f == 2 }, decodeCAddi16sp, exCADDI16SP),
		compactSpec("c.lui", FormatCI, 1, 3, func(w uint32) bool { r := (w >> 7) & 0x1f; return r != 0 && r != 2 }, decodeCLui, exCLUI),
		compactSpec("c.srli", FormatCB, 1, 4, func(w uint32) bool { return (w>>10)&0x3 == 0 }, decodeCShift, exCSRLI),
		compactSpec("c.srai", FormatCB, 1, 4, func(w uint32) bool { return (w>>10)&0x3 == 1 }, decodeCShift, exCSRAI),
		compactSpec("c.andi", FormatCB, 1, 4, func(w uint32) bool { return (w>>10)&0x3 == 2 }, decodeCAndi, exCANDI),
		compactSpec("c.sub", FormatCS, 1, 4, func(w uint32) bool { return (w>>10)&0x3 == 3 && (w>>5)&0x3 == 0 && (w>>12)&1 == 0 }, decodeCA, exCSUB),
		compactSpec("c.xor", FormatCS, 1, 4, func(w uint32) bool { return (w>>10)&0x3 == 3 && (w>>5)&0x3 == 1 && (w>>12)&1 == 0 }, decodeCA, exCXOR),
		compactSpec("c.or", FormatCS, 1, 4, func(w uint32) bool { return (w>>10)&0x3 == 3 && (w>>5)&0x3 == 2 && (w>>12)&1 == 0 }, decodeCA, exCOR),
		compactSpec("c.and", FormatCS, 1, 4, func(w uint32) bool { return (w>>10)&0x3 == 3 && (w>>5)&0x3 == 3 && (w>>12)&1 == 0 }, decodeCA, exCAND),
		compactSpec("c.j", FormatCJ, 1, 5, nil, func(w uint16, i *Instruction) { i.Imm = decodeCJOffset(w) }, exCJ),
		compactSpec("c.beqz", FormatCB, 1, 6, nil, func(w uint16, i *Instruction) { decodeCB(w, i) }, exCBEQZ),
		compactSpec("c.bnez", FormatCB, 1, 7, nil, func(w uint16, i *Instruction) { decodeCB(w, i) }, exCBNEZ),
		compactSpec("c.slli", FormatCI, 2, 0, nil, decodeCSlli, exCSLLI),
		compactSpec("c.lwsp", FormatCI, 2, 2, nil, decodeCLwsp, exCLWSP),
		compactSpec("c.jr", FormatCR, 2, 4, func(w uint32) bool { return (w>>12)&1 == 0 && (w>>2)&0x1f == 0 && (w>>7)&0x1f != 0 }, decodeCR, exCJR),
		compactSpec("c.mv", FormatCR, 2, 4, func(w uint32) bool { return (w>>12)&1 == 0 && (w>>2)&0x1f != 0 }, decodeCR, exCMV),
		compactSpec("c.ebreak", FormatCR, 2, 4, func(w uint32) bool { return (w>>12)&1 == 1 && (w>>2)&0x1f == 0 && (w>>7)&0x1f == 0 }, decodeCR, exCEBREAK),
		compactSpec("c.jalr", FormatCR, 2, 4, func(w uint32) bool { return (w>>12)&1 == 1 && (w>>2)&0x1f == 0 && (w>>7)&0x1f != 0 }, decodeCR, exCJALR),
		compactSpec("c.add", FormatCR, 2, 4, func(w uint32) bool { return (w>>12)&1 == 1 && (w>>2)&0x1f != 0 }, decodeCR, exCADD),
		compactSpec("c.swsp", FormatCSS, 2, 6, nil, decodeCSwsp, exCSWSP),
	)

	return s
}

// Decoder decodes/encodes instruction words against a fixed variant,
// so that an extension not enabled in the target variant never matches.
type Decoder struct {
	v *variant.Variant
}

// NewDecoder constructs a Decoder scoped to v. A nil v behaves as if
// every extension defined in the registry is enabled.
func NewDecoder(v *variant.Variant) *Decoder {
	return &Decoder{v: v}
}

// UnknownInstructionError reports a word that matched no registered spec.
type UnknownInstructionError struct {
	Word uint32
}

func (e *UnknownInstructionError) Error() string {
	return fmt.Sprintf("unknown instruction word 0x%08x", e.Word)
}

func (d *Decoder) allowed(required variant.Extension) bool {
	if required == "" {
		return true
	}
	if d.v == nil {
		return true
	}
	return d.v.Has(required)
}

// Decode recognizes and decodes one instruction, compact or standard,
// from a little-endian machine word (compact instructions occupy only
// the low 16 bits of word). It returns *UnknownInstructionError if no
// registered spec matches.
func (d *Decoder) Decode(word uint32) (*Instruction, error) {
	compact := word&0x3 != 0x3
	for i := range specs {
		s := &specs[i]
		if s.Compact != compact {
			continue
		}
		if !d.allowed(s.Required) {
			continue
		}
		if s.Match(word) {
			inst := s.Decode(word)
			inst.spec = s
			return inst, nil
		}
	}
	return nil, &UnknownInstructionError{Word: word}
}

// Encode re-derives the machine word for an already-decoded instruction,
// the inverse of Decode.
func (d *Decoder) Encode(i *Instruction) (uint32, error) {
	if i.spec == nil || i.spec.Encode == nil {
		return 0, fmt.Errorf("instruction %q has no encoder", i.Mnemonic)
	}
	return i.spec.Encode(i), nil
}

// Lookup returns the InstructionSpec registered for mnemonic, for use by
// the random-instruction generator and the assembler round-trip checker.
func Lookup(mnemonic string) (InstructionSpec, bool) {
	for _, s := range specs {
		if s.Mnemonic == mnemonic {
			return s, true
		}
	}
	return InstructionSpec{}, false
}

// Mnemonics returns every registered mnemonic, in registration order.
func Mnemonics() []string {
	out := make([]string, len(specs))
	for i, s := range specs {
		out[i] = s.Mnemonic
	}
	return out
}
