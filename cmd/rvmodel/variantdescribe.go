package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wallento/riscvmodel/variant"
)

func newVariantDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "variant-describe <name>",
		Short: "Print xlen, register count, and extension table for an ISA variant string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// --profile, when given, takes precedence over the name argument.
			var v *variant.Variant
			var err error
			if profileFlag != "" {
				v, err = resolveVariant()
			} else {
				v, err = variant.Parse(args[0])
			}
			if err != nil {
				return err
			}
			fmt.Printf("variant: %s\n", v)
			fmt.Printf("xlen: %d\n", v.XLen)
			fmt.Printf("registers: %d\n", v.IntRegs())
			fmt.Println("extensions:")
			for _, e := range v.Extensions() {
				fmt.Printf("  %s\n", e)
			}
			return nil
		},
	}
}
