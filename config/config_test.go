package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/wallento/riscvmodel/config"
	"github.com/wallento/riscvmodel/memory"
)

var _ = Describe("VariantProfile", func() {
	It("falls back to the default profile when no file exists", func() {
		p, err := config.LoadVariantProfile(filepath.Join(GinkgoT().TempDir(), "missing.toml"))
		Expect(err).NotTo(HaveOccurred())
		v, err := p.Resolve()
		Expect(err).NotTo(HaveOccurred())
		Expect(v.XLen).To(Equal(32))
		Expect(v.Has("M")).To(BeTrue())
		Expect(v.Has("C")).To(BeTrue())
	})

	It("loads an explicit TOML profile", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "profile.toml")
		contents := `
[variant]
xlen = 64
base = "I"
extensions = ["M", "A"]

[simulator]
fill_policy = "random"
entry_point = 4096
`
		Expect(os.WriteFile(path, []byte(contents), 0o600)).To(Succeed())

		p, err := config.LoadVariantProfile(path)
		Expect(err).NotTo(HaveOccurred())
		v, err := p.Resolve()
		Expect(err).NotTo(HaveOccurred())
		Expect(v.XLen).To(Equal(64))
		Expect(v.Has("A")).To(BeTrue())
		Expect(p.FillPolicy()).To(Equal(memory.FillRandom))
		Expect(p.Simulator.EntryPoint).To(BeEquivalentTo(4096))
	})
})
