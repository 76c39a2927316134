package memory_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/wallento/riscvmodel/memory"
)

var _ = Describe("Memory", func() {
	var m *memory.Memory

	BeforeEach(func() {
		m = memory.New(memory.FillZero, nil)
	})

	It("fills an untouched word with zero under FillZero", func() {
		Expect(m.LoadWord(0x100)).To(BeEquivalentTo(0))
	})

	It("does not apply a staged write until Commit", func() {
		m.StoreWord(0x100, 0xCAFEBABE)
		Expect(m.LoadWord(0x100)).To(BeEquivalentTo(0))
		m.Commit()
		Expect(m.LoadWord(0x100)).To(BeEquivalentTo(0xCAFEBABE))
	})

	It("merges a byte write into only its lane", func() {
		m.WriteWordDirect(0x0, 0x11223344)
		m.StoreByte(0x1, 0xFF)
		m.Commit()
		Expect(m.LoadWord(0x0)).To(BeEquivalentTo(0x1122FF44))
	})

	It("merges a halfword write into only its lane", func() {
		m.WriteWordDirect(0x0, 0x11223344)
		m.StoreHalf(0x2, 0xBEEF)
		m.Commit()
		Expect(m.LoadWord(0x0)).To(BeEquivalentTo(0xBEEF3344))
	})

	It("remembers a randomly-filled word across reads", func() {
		rm := memory.New(memory.FillRandom, nil)
		first := rm.LoadWord(0x200)
		second := rm.LoadWord(0x200)
		Expect(second).To(Equal(first))
	})
})
