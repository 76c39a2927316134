package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/wallento/riscvmodel/insts"
	"github.com/wallento/riscvmodel/variant"
)

var _ = Describe("Decoder", func() {
	var decoder *insts.Decoder

	BeforeEach(func() {
		decoder = insts.NewDecoder(variant.MustParse("RV32IMAC"))
	})

	Describe("RV32I", func() {
		It("decodes 0x00000013 as the canonical NOP (addi x0, x0, 0)", func() {
			inst, err := decoder.Decode(0x00000013)
			Expect(err).NotTo(HaveOccurred())
			Expect(inst.Mnemonic).To(Equal("addi"))
			Expect(inst.Rd).To(BeEquivalentTo(0))
			Expect(inst.Rs1).To(BeEquivalentTo(0))
			Expect(inst.Imm).To(BeEquivalentTo(0))
		})

		It("decodes addi x1, x2, 100", func() {
			// imm=100 rs1=2 funct3=0 rd=1 opcode=0x13
			word := uint32(100)<<20 | 2<<15 | 0<<12 | 1<<7 | 0x13
			inst, err := decoder.Decode(word)
			Expect(err).NotTo(HaveOccurred())
			Expect(inst.Mnemonic).To(Equal("addi"))
			Expect(inst.Rd).To(BeEquivalentTo(1))
			Expect(inst.Rs1).To(BeEquivalentTo(2))
			Expect(inst.Imm).To(BeEquivalentTo(100))
		})

		It("decodes lui x5, 0xFFFFF (boundary: full 20-bit field)", func() {
			word := uint32(0xFFFFF)<<12 | 5<<7 | 0x37
			inst, err := decoder.Decode(word)
			Expect(err).NotTo(HaveOccurred())
			Expect(inst.Mnemonic).To(Equal("lui"))
			Expect(inst.Imm).To(BeEquivalentTo(0xFFFFF))
		})

		It("decodes add x3, x1, x2", func() {
			word := uint32(0)<<25 | 2<<20 | 1<<15 | 0<<12 | 3<<7 | 0x33
			inst, err := decoder.Decode(word)
			Expect(err).NotTo(HaveOccurred())
			Expect(inst.Mnemonic).To(Equal("add"))
		})

		It("round-trips decode/encode for an R-type instruction", func() {
			word := uint32(0)<<25 | 2<<20 | 1<<15 | 0<<12 | 3<<7 | 0x33
			inst, err := decoder.Decode(word)
			Expect(err).NotTo(HaveOccurred())
			back, err := decoder.Encode(inst)
			Expect(err).NotTo(HaveOccurred())
			Expect(back).To(Equal(word))
		})

		It("round-trips an S-type negative-immediate store", func() {
			inst := &insts.Instruction{Mnemonic: "sw", Format: insts.FormatS, Rs1: 5, Rs2: 6, Imm: -4}
			spec, ok := insts.Lookup("sw")
			Expect(ok).To(BeTrue())
			word := spec.Encode(inst)
			redecoded, err := decoder.Decode(word)
			Expect(err).NotTo(HaveOccurred())
			Expect(redecoded.Imm).To(BeEquivalentTo(-4))
		})
	})

	Describe("RV32M", func() {
		It("decodes mul x1, x2, x3", func() {
			word := uint32(0x01)<<25 | 3<<20 | 2<<15 | 0<<12 | 1<<7 | 0x33
			inst, err := decoder.Decode(word)
			Expect(err).NotTo(HaveOccurred())
			Expect(inst.Mnemonic).To(Equal("mul"))
		})
	})

	Describe("RV32A", func() {
		It("decodes lr.w x1, (x2)", func() {
			word := uint32(0x02)<<27 | 0<<25 | 0<<20 | 2<<15 | 2<<12 | 1<<7 | 0x2f
			inst, err := decoder.Decode(word)
			Expect(err).NotTo(HaveOccurred())
			Expect(inst.Mnemonic).To(Equal("lr.w"))
		})
	})

	Describe("RV32C", func() {
		It("decodes c.addi x1, 5", func() {
			// quadrant=01 funct3=000 rd=1(!=0) imm5=5 imm[5]=0
			var word uint16
			word |= 0x01  // quadrant 01
			word |= 1 << 7
			word |= 5 << 2
			inst, err := decoder.Decode(uint32(word))
			Expect(err).NotTo(HaveOccurred())
			Expect(inst.Mnemonic).To(Equal("c.addi"))
			Expect(inst.Imm).To(BeEquivalentTo(5))
		})
	})

	It("rejects an all-ones word", func() {
		_, err := decoder.Decode(0xFFFFFFFF)
		Expect(err).To(HaveOccurred())
	})
})
