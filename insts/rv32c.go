package insts

// RV16C execute bodies. The registry's decode step expands a compact
// instruction into the same Rd/Rs1/Rs2/Imm shape its 32-bit equivalent
// uses, so most compact mnemonics simply reuse an RV32I/M exec function
// directly: expand to 32-bit semantics once at decode time, instead of
// synthesizing a second Instruction value at execute time.

var (
	exCADDI  = exADDI
	exCANDI  = exANDI
	exCSUB   = exSUB
	exCXOR   = exXOR
	exCOR    = exOR
	exCAND   = exAND
	exCSLLI  = exSLLI
	exCSRLI  = exSRLI
	exCSRAI  = exSRAI
	exCLW    = exLW
	exCSW    = exSW
	exCADD   = exADD
)

func exCNOP(i *Instruction, m Machine) {}

func exCLI(i *Instruction, m Machine) {
	m.WriteReg(i.Rd, uint64(i.Imm))
}

func exCLUI(i *Instruction, m Machine) {
	m.WriteReg(i.Rd, uint64(uint32(i.Imm<<12)))
}

func exCMV(i *Instruction, m Machine) {
	m.WriteReg(i.Rd, m.ReadReg(i.Rs2))
}

func exCJ(i *Instruction, m Machine) {
	m.SetPC(uint64(int64(m.PC()) + i.Imm))
}

func exCJAL(i *Instruction, m Machine) {
	m.WriteReg(1, m.PC()+2)
	m.SetPC(uint64(int64(m.PC()) + i.Imm))
}

func exCJR(i *Instruction, m Machine) {
	m.SetPC(m.ReadReg(i.Rs1) &^ 1)
}

func exCJALR(i *Instruction, m Machine) {
	target := m.ReadReg(i.Rs1) &^ 1
	m.WriteReg(1, m.PC()+2)
	m.SetPC(target)
}

func exCBEQZ(i *Instruction, m Machine) {
	if m.SignedReg(i.Rs1) == 0 {
		m.SetPC(uint64(int64(m.PC()) + i.Imm))
	}
}

func exCBNEZ(i *Instruction, m Machine) {
	if m.SignedReg(i.Rs1) != 0 {
		m.SetPC(uint64(int64(m.PC()) + i.Imm))
	}
}

func exCADDI4SPN(i *Instruction, m Machine) {
	m.WriteReg(i.Rd, m.ReadReg(2)+uint64(i.Imm))
}

func exCADDI16SP(i *Instruction, m Machine) {
	m.WriteReg(2, uint64(m.SignedReg(2)+i.Imm))
}

func exCLWSP(i *Instruction, m Machine) {
	addr := uint32(m.ReadReg(2)) + uint32(i.Imm)
	m.WriteReg(i.Rd, uint64(int64(int32(m.LoadWord(addr)))))
}

func exCSWSP(i *Instruction, m Machine) {
	addr := uint32(m.ReadReg(2)) + uint32(i.Imm)
	m.StoreWord(addr, uint32(m.ReadReg(i.Rs2)))
}

func exCEBREAK(i *Instruction, m Machine) {}
