package golden_test

import (
	"github.com/go-logr/logr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/wallento/riscvmodel/golden"
	"github.com/wallento/riscvmodel/insts"
	"github.com/wallento/riscvmodel/memory"
	"github.com/wallento/riscvmodel/rtrace"
	"github.com/wallento/riscvmodel/variant"
)

func mustDecodeWord(v *variant.Variant, word uint32) *insts.Instruction {
	inst, err := insts.NewDecoder(v).Decode(word)
	if err != nil {
		panic(err)
	}
	return inst
}

func encodeADDI(rd, rs1 uint8, imm int64) uint32 {
	return uint32(imm&0xfff)<<20 | uint32(rs1)<<15 | uint32(rd)<<7 | 0x13
}

var _ = Describe("GoldenUnbuffered", func() {
	var v *variant.Variant
	var g *golden.GoldenUnbuffered

	BeforeEach(func() {
		v = variant.RV32I
		g = golden.NewGoldenUnbuffered(v, memory.FillZero, 0, logr.Discard())
		g.LoadProgram([]*insts.Instruction{
			mustDecodeWord(v, encodeADDI(1, 0, 5)),
			mustDecodeWord(v, encodeADDI(1, 1, 10)),
		})
	})

	It("accepts a fetch/commit pair that matches the oracle", func() {
		insn, err := g.Fetch(0)
		Expect(err).NotTo(HaveOccurred())
		Expect(insn.Mnemonic).To(Equal("addi"))

		actual := rtrace.Trace{rtrace.IntReg{Index: 1, Value: 5}}
		Expect(g.Commit(actual, insn)).To(Succeed())
	})

	It("rejects a fetch at the wrong pc", func() {
		_, err := g.Fetch(4)
		Expect(err).To(HaveOccurred())
	})

	It("rejects a commit whose trace diverges from the oracle's", func() {
		insn, err := g.Fetch(0)
		Expect(err).NotTo(HaveOccurred())
		wrong := rtrace.Trace{rtrace.IntReg{Index: 1, Value: 999}}
		Expect(g.Commit(wrong, insn)).To(HaveOccurred())
	})

	It("reports program end once the oracle program is exhausted", func() {
		_, _ = g.Fetch(0)
		_, _ = g.Fetch(4)
		_, err := g.Fetch(8)
		Expect(err).To(HaveOccurred())
		_, ok := err.(*golden.EndError)
		Expect(ok).To(BeTrue())
	})
})

var _ = Describe("TracesFromRVFI", func() {
	It("produces an IntReg entry for a nonzero rd write", func() {
		v := variant.RV32I
		decoder := insts.NewDecoder(v)
		word := encodeADDI(3, 0, 7)
		trace, err := golden.TracesFromRVFI(decoder, golden.RVFISignals{
			Valid: true, Insn: word, RdAddr: 3, RdWdata: 7,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(trace).To(HaveLen(1))
		reg, ok := trace.IntRegWrite()
		Expect(ok).To(BeTrue())
		Expect(reg.Index).To(BeEquivalentTo(3))
		Expect(reg.Value).To(BeEquivalentTo(7))
	})

	It("ignores an invalid retire cycle", func() {
		decoder := insts.NewDecoder(variant.RV32I)
		trace, err := golden.TracesFromRVFI(decoder, golden.RVFISignals{Valid: false})
		Expect(err).NotTo(HaveOccurred())
		Expect(trace).To(BeEmpty())
	})

	It("rejects a write to rd[0] reported as nonzero", func() {
		decoder := insts.NewDecoder(variant.RV32I)
		word := encodeADDI(0, 0, 7)
		_, err := golden.TracesFromRVFI(decoder, golden.RVFISignals{
			Valid: true, Insn: word, RdAddr: 0, RdWdata: 7,
		})
		Expect(err).To(HaveOccurred())
	})
})
