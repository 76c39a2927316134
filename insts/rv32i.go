package insts

// Execute bodies for the RV32I base, translated from
// original_source/riscvmodel/isa.py's per-mnemonic execute() methods.
// Where the source's own history shows a discrepancy between iterations
// (JAL), the architecturally correct form is implemented here, not the
// literal source line.

func exLUI(i *Instruction, m Machine) {
	m.WriteReg(i.Rd, uint64(uint32(i.Imm<<12)))
}

func exAUIPC(i *Instruction, m Machine) {
	m.WriteReg(i.Rd, m.PC()+uint64(uint32(i.Imm<<12)))
}

// exJAL: pc <- pc + imm (spec-correct form; the source's "pc = self.imm"
// is flagged in REDESIGN FLAGS as wrong and not reproduced here).
func exJAL(i *Instruction, m Machine) {
	m.WriteReg(i.Rd, m.PC()+4)
	m.SetPC(uint64(int64(m.PC()) + i.Imm))
}

func exJALR(i *Instruction, m Machine) {
	linkPC := m.PC() + 4
	target := uint64(m.SignedReg(i.Rs1)+i.Imm) &^ 1
	m.WriteReg(i.Rd, linkPC)
	m.SetPC(target)
}

func exBranch(cond func(a, b int64) bool) func(*Instruction, Machine) {
	return func(i *Instruction, m Machine) {
		if cond(m.SignedReg(i.Rs1), m.SignedReg(i.Rs2)) {
			m.SetPC(uint64(int64(m.PC()) + i.Imm))
		}
	}
}

func exBranchUnsigned(cond func(a, b uint64) bool) func(*Instruction, Machine) {
	return func(i *Instruction, m Machine) {
		if cond(m.ReadReg(i.Rs1), m.ReadReg(i.Rs2)) {
			m.SetPC(uint64(int64(m.PC()) + i.Imm))
		}
	}
}

func effectiveAddr(i *Instruction, m Machine) uint32 {
	return uint32(m.SignedReg(i.Rs1) + i.Imm)
}

func exLB(i *Instruction, m Machine) {
	data := int64(int8(m.LoadByte(effectiveAddr(i, m))))
	m.WriteReg(i.Rd, uint64(data))
}

func exLH(i *Instruction, m Machine) {
	data := int64(int16(m.LoadHalf(effectiveAddr(i, m))))
	m.WriteReg(i.Rd, uint64(data))
}

func exLW(i *Instruction, m Machine) {
	data := int64(int32(m.LoadWord(effectiveAddr(i, m))))
	m.WriteReg(i.Rd, uint64(data))
}

func exLBU(i *Instruction, m Machine) {
	m.WriteReg(i.Rd, uint64(m.LoadByte(effectiveAddr(i, m))))
}

func exLHU(i *Instruction, m Machine) {
	m.WriteReg(i.Rd, uint64(m.LoadHalf(effectiveAddr(i, m))))
}

func exSB(i *Instruction, m Machine) {
	m.StoreByte(effectiveAddr(i, m), uint8(m.ReadReg(i.Rs2)))
}

func exSH(i *Instruction, m Machine) {
	m.StoreHalf(effectiveAddr(i, m), uint16(m.ReadReg(i.Rs2)))
}

func exSW(i *Instruction, m Machine) {
	m.StoreWord(effectiveAddr(i, m), uint32(m.ReadReg(i.Rs2)))
}

func exADDI(i *Instruction, m Machine) {
	m.WriteReg(i.Rd, uint64(m.SignedReg(i.Rs1)+i.Imm))
}

func exSLTI(i *Instruction, m Machine) {
	m.WriteReg(i.Rd, boolToReg(m.SignedReg(i.Rs1) < i.Imm))
}

func exSLTIU(i *Instruction, m Machine) {
	m.WriteReg(i.Rd, boolToReg(m.ReadReg(i.Rs1) < uint64(i.Imm)))
}

func exXORI(i *Instruction, m Machine) {
	m.WriteReg(i.Rd, uint64(m.SignedReg(i.Rs1)^i.Imm))
}

func exORI(i *Instruction, m Machine) {
	m.WriteReg(i.Rd, uint64(m.SignedReg(i.Rs1)|i.Imm))
}

func exANDI(i *Instruction, m Machine) {
	m.WriteReg(i.Rd, uint64(m.SignedReg(i.Rs1)&i.Imm))
}

func exSLLI(i *Instruction, m Machine) {
	m.WriteReg(i.Rd, m.ReadReg(i.Rs1)<<uint(i.Shamt))
}

func exSRLI(i *Instruction, m Machine) {
	m.WriteReg(i.Rd, logicalShiftRight(m.ReadReg(i.Rs1), uint(i.Shamt), m.XLen()))
}

func exSRAI(i *Instruction, m Machine) {
	m.WriteReg(i.Rd, arithmeticShiftRight(m.ReadReg(i.Rs1), uint(i.Shamt), m.XLen()))
}

func exADD(i *Instruction, m Machine) {
	m.WriteReg(i.Rd, uint64(m.SignedReg(i.Rs1)+m.SignedReg(i.Rs2)))
}

func exSUB(i *Instruction, m Machine) {
	m.WriteReg(i.Rd, uint64(m.SignedReg(i.Rs1)-m.SignedReg(i.Rs2)))
}

func exSLL(i *Instruction, m Machine) {
	shamt := uint(m.ReadReg(i.Rs2)) & uint(m.XLen()-1)
	m.WriteReg(i.Rd, m.ReadReg(i.Rs1)<<shamt)
}

func exSLT(i *Instruction, m Machine) {
	m.WriteReg(i.Rd, boolToReg(m.SignedReg(i.Rs1) < m.SignedReg(i.Rs2)))
}

func exSLTU(i *Instruction, m Machine) {
	m.WriteReg(i.Rd, boolToReg(m.ReadReg(i.Rs1) < m.ReadReg(i.Rs2)))
}

func exXOR(i *Instruction, m Machine) {
	m.WriteReg(i.Rd, m.ReadReg(i.Rs1)^m.ReadReg(i.Rs2))
}

func exSRL(i *Instruction, m Machine) {
	shamt := uint(m.ReadReg(i.Rs2)) & uint(m.XLen()-1)
	m.WriteReg(i.Rd, logicalShiftRight(m.ReadReg(i.Rs1), shamt, m.XLen()))
}

func exSRA(i *Instruction, m Machine) {
	shamt := uint(m.ReadReg(i.Rs2)) & uint(m.XLen()-1)
	m.WriteReg(i.Rd, arithmeticShiftRight(m.ReadReg(i.Rs1), shamt, m.XLen()))
}

func exOR(i *Instruction, m Machine) {
	m.WriteReg(i.Rd, m.ReadReg(i.Rs1)|m.ReadReg(i.Rs2))
}

func exAND(i *Instruction, m Machine) {
	m.WriteReg(i.Rd, m.ReadReg(i.Rs1)&m.ReadReg(i.Rs2))
}

// exNoop is the execute body of fence, ebreak, and the CSR instructions:
// privileged/CSR side effects are out of scope, and fences have no effect
// in a single-hart, non-reordering model.
func exNoop(i *Instruction, m Machine) {}

// exECALL hands off to the configured environment hook; unlike the other
// system instructions, ECALL is the one architecturally-defined way a
// program signals completion (the environment hook may call
// m.Terminate).
func exECALL(i *Instruction, m Machine) { m.Ecall() }

func boolToReg(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// arithmeticShiftRight and logicalShiftRight are thin indirections so
// this file doesn't need to import the register package just for two
// functions; they match register.ArithmeticShiftRight/LogicalShiftRight
// exactly and state.State's Machine implementation is expected to be
// backed by that package.
func arithmeticShiftRight(v uint64, shamt uint, xlen int) uint64 {
	signed := signExtend64(v, xlen)
	return maskTo(uint64(signed>>shamt), xlen)
}

func logicalShiftRight(v uint64, shamt uint, xlen int) uint64 {
	return maskTo(v, xlen) >> shamt
}

func maskTo(v uint64, xlen int) uint64 {
	if xlen >= 64 {
		return v
	}
	return v & ((uint64(1) << uint(xlen)) - 1)
}

func signExtend64(v uint64, xlen int) int64 {
	v = maskTo(v, xlen)
	sign := uint64(1) << uint(xlen-1)
	if v&sign != 0 {
		return int64(v) - int64(uint64(1)<<uint(xlen))
	}
	return int64(v)
}
