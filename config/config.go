// Package config loads variant/simulator profiles from TOML, the struct-tag
// pattern lookbusy1344-arm_emulator/config/config.go uses for its own
// emulator settings, adapted to describe a RISC-V variant and the
// simulator knobs this model exposes (fill policy, entry point).
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/wallento/riscvmodel/memory"
	"github.com/wallento/riscvmodel/variant"
)

// VariantProfile describes an ISA variant and the simulator settings to
// run it with.
type VariantProfile struct {
	Variant struct {
		XLen       int      `toml:"xlen"`
		Base       string   `toml:"base"`
		Extensions []string `toml:"extensions"`
	} `toml:"variant"`

	Simulator struct {
		FillPolicy string `toml:"fill_policy"` // "zero" or "random"
		EntryPoint uint64 `toml:"entry_point"`
	} `toml:"simulator"`
}

// DefaultVariantProfile returns RV32IMAC with zero-fill memory, the
// simulator's baseline profile when no TOML file is given.
func DefaultVariantProfile() *VariantProfile {
	p := &VariantProfile{}
	p.Variant.XLen = 32
	p.Variant.Base = "I"
	p.Variant.Extensions = []string{"M", "A", "C"}
	p.Simulator.FillPolicy = "zero"
	p.Simulator.EntryPoint = 0
	return p
}

// LoadVariantProfile loads a profile from path, falling back to
// DefaultVariantProfile if path does not exist.
func LoadVariantProfile(path string) (*VariantProfile, error) {
	p := DefaultVariantProfile()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return p, nil
	}

	if _, err := toml.DecodeFile(path, p); err != nil {
		return nil, fmt.Errorf("parse variant profile: %w", err)
	}
	return p, nil
}

// Resolve turns the profile's variant fields into a *variant.Variant.
func (p *VariantProfile) Resolve() (*variant.Variant, error) {
	s := fmt.Sprintf("RV%d%s", p.Variant.XLen, p.Variant.Base)
	for _, e := range p.Variant.Extensions {
		s += e
	}
	return variant.Parse(s)
}

// FillPolicy turns the profile's textual fill_policy into a
// memory.FillPolicy, defaulting to FillZero for anything but "random".
func (p *VariantProfile) FillPolicy() memory.FillPolicy {
	if p.Simulator.FillPolicy == "random" {
		return memory.FillRandom
	}
	return memory.FillZero
}
