package register_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/wallento/riscvmodel/register"
)

var _ = Describe("File", func() {
	var f *register.File

	BeforeEach(func() {
		f = register.New(32, 32)
	})

	It("pins x0 to zero even after a staged write", func() {
		f.Write(0, 0xdeadbeef)
		f.Commit()
		Expect(f.Read(0)).To(BeEquivalentTo(0))
	})

	It("does not observe a write until Commit", func() {
		f.Write(5, 42)
		Expect(f.Read(5)).To(BeEquivalentTo(0))
		f.Commit()
		Expect(f.Read(5)).To(BeEquivalentTo(42))
	})

	It("excludes x0 from Changes", func() {
		f.Write(0, 1)
		f.Write(3, 2)
		changes := f.Changes()
		Expect(changes).To(HaveLen(1))
	})

	It("masks writes to the declared xlen", func() {
		f.Write(1, 0x1_0000_0001)
		f.Commit()
		Expect(f.Read(1)).To(BeEquivalentTo(1))
	})

	It("excludes a write that restates the committed value from Changes", func() {
		f.Write(4, 7)
		f.Commit()
		f.Write(4, 7)
		Expect(f.Changes()).To(BeEmpty())
	})

	It("still reports a write that changes a previously committed value", func() {
		f.Write(4, 7)
		f.Commit()
		f.Write(4, 8)
		Expect(f.Changes()).To(HaveLen(1))
	})
})

var _ = Describe("SignExtend", func() {
	It("sign-extends a negative 32-bit pattern", func() {
		Expect(register.SignExtend(0xFFFFFFFF, 32)).To(BeEquivalentTo(-1))
	})

	It("leaves a positive value unchanged", func() {
		Expect(register.SignExtend(0x7FFFFFFF, 32)).To(BeEquivalentTo(0x7FFFFFFF))
	})
})

var _ = Describe("ArithmeticShiftRight", func() {
	It("replicates the sign bit", func() {
		got := register.ArithmeticShiftRight(0x80000000, 4, 32)
		Expect(got).To(BeEquivalentTo(0xF8000000))
	})
})
