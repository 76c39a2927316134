package imm_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/wallento/riscvmodel/imm"
)

var _ = Describe("Immediate", func() {
	Describe("Set", func() {
		It("accepts values within range", func() {
			i := imm.New(12, true, false)
			Expect(i.Set(100)).To(Succeed())
			Expect(i.Int()).To(BeEquivalentTo(100))
		})

		It("rejects values above the signed max", func() {
			i := imm.New(12, true, false)
			Expect(i.Set(2048)).To(HaveOccurred())
		})

		It("rejects odd values for an lsb0 immediate", func() {
			i := imm.New(13, true, true)
			Expect(i.Set(3)).To(HaveOccurred())
			Expect(i.Set(4)).To(Succeed())
		})
	})

	Describe("SetFromBits", func() {
		It("sign-extends a negative 12-bit pattern", func() {
			i := imm.New(12, true, false)
			Expect(i.SetFromBits(0xFFF)).To(Succeed())
			Expect(i.Int()).To(BeEquivalentTo(-1))
		})

		It("round-trips through Bits", func() {
			i := imm.New(12, true, false)
			Expect(i.Set(-100)).To(Succeed())
			bits := i.Bits()
			j := imm.New(12, true, false)
			Expect(j.SetFromBits(bits)).To(Succeed())
			Expect(j.Int()).To(Equal(i.Int()))
		})

		It("treats an unsigned immediate as a plain mask", func() {
			i := imm.New(20, false, false)
			Expect(i.SetFromBits(0xFFFFF)).To(Succeed())
			Expect(i.Int()).To(BeEquivalentTo(0xFFFFF))
		})
	})

	Describe("Randomize", func() {
		It("always produces a value within [Min, Max]", func() {
			i := imm.New(13, true, true)
			rng := rand.New(rand.NewSource(1))
			for n := 0; n < 200; n++ {
				i.Randomize(rng)
				Expect(i.Int()).To(BeNumerically(">=", i.Min()))
				Expect(i.Int()).To(BeNumerically("<=", i.Max()))
				Expect(i.Int() & 1).To(BeEquivalentTo(0))
			}
		})
	})
})
