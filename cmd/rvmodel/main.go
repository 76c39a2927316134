// Command rvmodel disassembles RISC-V machine words, generates random
// instructions for a given ISA variant, and round-trips them through an
// external toolchain to check the decoder against it.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// variantFlag and profileFlag are shared across subcommands: a bare
// variant string, or a TOML profile (config.LoadVariantProfile) that
// takes precedence when given.
var variantFlag string
var profileFlag string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rvmodel",
		Short: "RISC-V instruction set model: disassemble, generate, and check",
	}
	root.PersistentFlags().StringVar(&variantFlag, "variant", "RV32IMAC", "ISA variant string (e.g. RV32IMAC, RV64I)")
	root.PersistentFlags().StringVar(&profileFlag, "profile", "", "TOML variant profile path (overrides --variant)")
	root.AddCommand(newDisassembleCmd())
	root.AddCommand(newRandomAsmCmd())
	root.AddCommand(newRandomAsmCheckCmd())
	root.AddCommand(newVariantDescribeCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
