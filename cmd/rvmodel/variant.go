package main

import (
	"github.com/wallento/riscvmodel/config"
	"github.com/wallento/riscvmodel/variant"
)

// resolveVariant honors --profile over --variant, falling back to the
// default profile (RV32IMAC) if neither is given.
func resolveVariant() (*variant.Variant, error) {
	if profileFlag != "" {
		p, err := config.LoadVariantProfile(profileFlag)
		if err != nil {
			return nil, err
		}
		return p.Resolve()
	}
	return variant.Parse(variantFlag)
}
