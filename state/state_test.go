package state_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/wallento/riscvmodel/insts"
	"github.com/wallento/riscvmodel/memory"
	"github.com/wallento/riscvmodel/state"
	"github.com/wallento/riscvmodel/variant"
)

func encodeADDI(rd, rs1 uint8, imm int64) uint32 {
	return uint32(imm&0xfff)<<20 | uint32(rs1)<<15 | uint32(rd)<<7 | 0x13
}

func encodeR(mnemonic string, funct3, funct7 uint32, rd, rs1, rs2 uint8) uint32 {
	return funct7<<25 | uint32(rs2)<<20 | uint32(rs1)<<15 | funct3<<12 | uint32(rd)<<7 | 0x33
}

var _ = Describe("Model", func() {
	var m *state.Model

	BeforeEach(func() {
		m = state.NewModel(variant.MustParse("RV32IA"), memory.FillZero)
		m.Reset(0)
	})

	It("runs an ADDI chain and advances pc linearly", func() {
		_, err := m.Issue(encodeADDI(1, 0, 5))
		Expect(err).NotTo(HaveOccurred())
		Expect(m.State.ReadReg(1)).To(BeEquivalentTo(5))
		Expect(m.State.PC()).To(BeEquivalentTo(4))

		_, err = m.Issue(encodeADDI(1, 1, 10))
		Expect(err).NotTo(HaveOccurred())
		Expect(m.State.ReadReg(1)).To(BeEquivalentTo(15))
		Expect(m.State.PC()).To(BeEquivalentTo(8))
	})

	It("performs an arithmetic (sign-replicating) right shift for SRAI", func() {
		_, err := m.Issue(encodeADDI(1, 0, -8))
		Expect(err).NotTo(HaveOccurred())
		// srai x2, x1, 2 : opcode=0x13 funct3=5 funct7=0x20
		word := uint32(0x20)<<25 | 2<<20 | 1<<15 | 5<<12 | 2<<7 | 0x13
		_, err = m.Issue(word)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.State.SignedReg(2)).To(BeEquivalentTo(-2))
	})

	It("succeeds an SC.W that follows a matching LR.W reservation", func() {
		_, err := m.Issue(encodeADDI(1, 0, 0x100)) // x1 = address
		Expect(err).NotTo(HaveOccurred())

		lrw := uint32(0x02)<<27 | 0<<20 | 1<<15 | 2<<12 | 3<<7 | 0x2f
		_, err = m.Issue(lrw)
		Expect(err).NotTo(HaveOccurred())

		_, err = m.Issue(encodeADDI(4, 0, 99))
		Expect(err).NotTo(HaveOccurred())

		scw := uint32(0x03)<<27 | 0<<25 | 4<<20 | 1<<15 | 2<<12 | 5<<7 | 0x2f
		_, err = m.Issue(scw)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.State.ReadReg(5)).To(BeEquivalentTo(0), "SC.W should report success (0)")
	})

	It("fails an SC.W with no preceding reservation", func() {
		_, err := m.Issue(encodeADDI(1, 0, 0x100))
		Expect(err).NotTo(HaveOccurred())
		scw := uint32(0x03)<<27 | 0<<25 | 0<<20 | 1<<15 | 2<<12 | 5<<7 | 0x2f
		_, err = m.Issue(scw)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.State.ReadReg(5)).To(BeEquivalentTo(1), "SC.W should report failure (1)")
	})

	It("merges a byte store into only its memory lane", func() {
		m.State.Mem.WriteWordDirect(0, 0x11223344)
		_, err := m.Issue(encodeADDI(1, 0, 1)) // address register = 1
		Expect(err).NotTo(HaveOccurred())
		_, err = m.Issue(encodeADDI(2, 0, 0xFF&0x7f)) // small positive value to store
		Expect(err).NotTo(HaveOccurred())
		sb := uint32(0)<<25 | 2<<20 | 1<<15 | 0<<12 | 0<<7 | 0x23
		_, err = m.Issue(sb)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.State.Mem.LoadWord(0)).To(BeEquivalentTo(0x11227F44))
	})

	It("pins x0 across an attempted write", func() {
		word := encodeADDI(0, 0, 42)
		_, err := m.Issue(word)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.State.ReadReg(0)).To(BeEquivalentTo(0))
	})
})

var _ = Describe("RV32M high-multiply instructions", func() {
	var m *state.Model

	BeforeEach(func() {
		m = state.NewModel(variant.MustParse("RV32IM"), memory.FillZero)
		m.Reset(0)
	})

	encodeLUI := func(rd uint8, imm20 uint32) uint32 {
		return imm20<<12 | uint32(rd)<<7 | 0x37
	}

	It("computes MULH's high word for a product that doesn't overflow 64 bits", func() {
		// x1 = x2 = INT32_MIN (0x80000000); their signed product is 2^62,
		// whose high 32 bits are 0x40000000 even though the 64-bit product
		// itself never touches bit 64.
		_, err := m.Issue(encodeLUI(1, 0x80000))
		Expect(err).NotTo(HaveOccurred())
		_, err = m.Issue(encodeLUI(2, 0x80000))
		Expect(err).NotTo(HaveOccurred())
		_, err = m.Issue(encodeR("mulh", 1, 0x01, 3, 1, 2))
		Expect(err).NotTo(HaveOccurred())
		Expect(m.State.ReadReg(3)).To(BeEquivalentTo(0x40000000))
	})

	It("computes MULHU's high word for two all-ones operands", func() {
		_, err := m.Issue(encodeADDI(1, 0, -1)) // x1 = 0xFFFFFFFF
		Expect(err).NotTo(HaveOccurred())
		_, err = m.Issue(encodeR("mulhu", 3, 0x01, 2, 1, 1))
		Expect(err).NotTo(HaveOccurred())
		Expect(m.State.ReadReg(2)).To(BeEquivalentTo(0xFFFFFFFE))
	})

	It("computes MULHSU's high word for a negative signed operand", func() {
		_, err := m.Issue(encodeADDI(1, 0, -1)) // x1 = -1, signed
		Expect(err).NotTo(HaveOccurred())
		_, err = m.Issue(encodeADDI(2, 0, 2)) // x2 = 2, unsigned
		Expect(err).NotTo(HaveOccurred())
		_, err = m.Issue(encodeR("mulhsu", 2, 0x01, 3, 1, 2))
		Expect(err).NotTo(HaveOccurred())
		Expect(m.State.ReadReg(3)).To(BeEquivalentTo(0xFFFFFFFF))
	})
})

var _ = Describe("Check", func() {
	It("passes when expected and actual integer register writes match", func() {
		m := state.NewModel(variant.RV32I, memory.FillZero)
		m.Reset(0)
		trace := m.Execute(mustDecode(m, encodeADDI(1, 0, 7)))
		Expect(state.Check(trace, trace)).To(Succeed())
	})
})

func mustDecode(m *state.Model, word uint32) *insts.Instruction {
	inst, err := m.Decode(word)
	if err != nil {
		panic(err)
	}
	return inst
}
