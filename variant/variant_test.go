package variant_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/wallento/riscvmodel/variant"
)

var _ = Describe("Parse", func() {
	It("parses a plain base variant", func() {
		v, err := variant.Parse("RV32I")
		Expect(err).NotTo(HaveOccurred())
		Expect(v.XLen).To(Equal(32))
		Expect(v.Base).To(Equal(variant.BaseI))
		Expect(v.IntRegs()).To(Equal(32))
	})

	It("parses the embedded base with 16 registers", func() {
		v, err := variant.Parse("RV32E")
		Expect(err).NotTo(HaveOccurred())
		Expect(v.IntRegs()).To(Equal(16))
	})

	It("parses a dense multi-extension string", func() {
		v, err := variant.Parse("RV64IMAFDC")
		Expect(err).NotTo(HaveOccurred())
		for _, e := range []variant.Extension{variant.ExtM, variant.ExtA, variant.ExtF, variant.ExtD, variant.ExtC} {
			Expect(v.Has(e)).To(BeTrue(), string(e))
		}
	})

	It("parses Z/X multi-letter extensions joined with +", func() {
		v, err := variant.Parse("RV32IMAC+Zicsr+Zifencei")
		Expect(err).NotTo(HaveOccurred())
		Expect(v.Has(variant.ExtZicsr)).To(BeTrue())
		Expect(v.Has(variant.ExtZifencei)).To(BeTrue())
	})

	It("resolves the D implies F closure", func() {
		v, err := variant.Parse("RV32ID")
		Expect(err).NotTo(HaveOccurred())
		Expect(v.Has(variant.ExtF)).To(BeTrue())
	})

	It("expands the G base alias into IMAFD+Zicsr+Zifencei", func() {
		v, err := variant.Parse("RV64GC")
		Expect(err).NotTo(HaveOccurred())
		Expect(v.Base).To(Equal(variant.BaseI))
		for _, e := range []variant.Extension{
			variant.ExtM, variant.ExtA, variant.ExtF, variant.ExtD,
			variant.ExtZicsr, variant.ExtZifencei, variant.ExtC,
		} {
			Expect(v.Has(e)).To(BeTrue(), string(e))
		}
	})

	It("rejects a missing base letter", func() {
		_, err := variant.Parse("RV32")
		Expect(err).To(HaveOccurred())
	})

	It("rejects an unsupported xlen", func() {
		_, err := variant.Parse("RV16I")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Subset", func() {
	It("orders RV32I beneath RV32IMAC", func() {
		base, _ := variant.Parse("RV32I")
		rich, _ := variant.Parse("RV32IMAC")
		Expect(base.Subset(rich)).To(BeTrue())
		Expect(rich.Subset(base)).To(BeFalse())
	})

	It("never orders across different xlen", func() {
		v32, _ := variant.Parse("RV32I")
		v64, _ := variant.Parse("RV64I")
		Expect(v32.Subset(v64)).To(BeFalse())
	})

	It("orders E beneath I at the same xlen with identical extensions", func() {
		e, _ := variant.Parse("RV32E")
		i, _ := variant.Parse("RV32I")
		Expect(e.Subset(i)).To(BeTrue())
		Expect(i.Subset(e)).To(BeFalse())
	})
})

var _ = Describe("Plus", func() {
	It("adds extensions without mutating the receiver", func() {
		base, _ := variant.Parse("RV32I")
		richer := base.Plus(variant.ExtM)
		Expect(base.Has(variant.ExtM)).To(BeFalse())
		Expect(richer.Has(variant.ExtM)).To(BeTrue())
	})
})
