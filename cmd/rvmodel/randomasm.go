package main

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wallento/riscvmodel/insts"
)

const toolVersion = "rvmodel 0.1.0"

func newRandomAsmCmd() *cobra.Command {
	var mnemonics []string
	var printVersion bool

	cmd := &cobra.Command{
		Use:   "random-asm [N]",
		Short: "Print N random assembly lines",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if printVersion {
				fmt.Println(toolVersion)
				return nil
			}

			n := 10
			if len(args) == 1 {
				parsed, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid count %q: %w", args[0], err)
				}
				n = parsed
			}

			v, err := resolveVariant()
			if err != nil {
				return err
			}
			candidates, err := usableSpecs(v, mnemonics)
			if err != nil {
				return err
			}

			decoder := insts.NewDecoder(v)
			rng := rand.New(rand.NewSource(1))
			for i := 0; i < n; i++ {
				inst, err := randomInstruction(rng, decoder, v, candidates)
				if err != nil {
					return err
				}
				fmt.Println(inst.String())
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&mnemonics, "instruction", "i", nil, "restrict generation to this mnemonic (repeatable)")
	cmd.Flags().BoolVar(&printVersion, "version", false, "print the tool version and exit")
	return cmd
}
