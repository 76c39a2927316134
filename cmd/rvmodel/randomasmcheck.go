package main

import (
	"encoding/binary"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wallento/riscvmodel/insts"
)

func newRandomAsmCheckCmd() *cobra.Command {
	var mnemonics []string
	var silent bool
	var ccPath string
	var objcopyPath string

	cmd := &cobra.Command{
		Use:   "random-asm-check [N]",
		Short: "Round-trip random assembly through the external toolchain and check each word decodes back to the same mnemonic",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			scoreboard := make([]*insts.Instruction, 0, n)
			dir, err := os.MkdirTemp("", "rvmodel-check-*")
			if err != nil {
				return fmt.Errorf("create temp dir: %w", err)
			}
			defer func() { _ = os.RemoveAll(dir) }()

			asmPath := filepath.Join(dir, "check.s")
			asmFile, err := os.Create(asmPath)
			if err != nil {
				return fmt.Errorf("create assembly file: %w", err)
			}
			for i := 0; i < n; i++ {
				inst, err := randomInstruction(rng, decoder, v, candidates)
				if err != nil {
					_ = asmFile.Close()
					return err
				}
				scoreboard = append(scoreboard, inst)
				if !silent {
					fmt.Println(inst.String())
				}
				fmt.Fprintln(asmFile, inst.String())
			}
			_ = asmFile.Close()

			objPath := filepath.Join(dir, "check.o")
			ccCmd := exec.Command(ccPath, "-c", asmPath, "-o", objPath)
			ccCmd.Stdout = os.Stdout
			ccCmd.Stderr = os.Stderr
			if err := ccCmd.Run(); err != nil {
				return fmt.Errorf("assemble via %s failed: %w", ccPath, err)
			}

			binPath := filepath.Join(dir, "check.bin")
			objcopyCmd := exec.Command(objcopyPath, "-O", "binary", "--only-section=.text", objPath, binPath)
			objcopyCmd.Stdout = os.Stdout
			objcopyCmd.Stderr = os.Stderr
			if err := objcopyCmd.Run(); err != nil {
				return fmt.Errorf("objcopy failed: %w", err)
			}

			data, err := os.ReadFile(binPath)
			if err != nil {
				return fmt.Errorf("read extracted binary: %w", err)
			}

			passed := checkScoreboard(decoder, data, scoreboard)
			if passed {
				fmt.Println("Check passed")
			} else {
				fmt.Println("Check failed")
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&mnemonics, "instruction", "i", nil, "restrict generation to this mnemonic (repeatable)")
	cmd.Flags().BoolVarP(&silent, "silent", "s", false, "suppress the generated assembly listing")
	cmd.Flags().StringVar(&ccPath, "cc", "cc", "path to the assembler/compiler driver")
	cmd.Flags().StringVar(&objcopyPath, "objcopy", "objcopy", "path to the objcopy binary")
	return cmd
}

// checkScoreboard decodes data word by word and compares each decoded
// mnemonic against the corresponding scoreboard entry generated before
// the round trip through the external toolchain.
func checkScoreboard(decoder *insts.Decoder, data []byte, scoreboard []*insts.Instruction) bool {
	if len(data) < len(scoreboard)*4 {
		return false
	}
	for i, want := range scoreboard {
		off := i * 4
		word := binary.LittleEndian.Uint32(data[off : off+4])
		got, err := decoder.Decode(word)
		if err != nil || got.Mnemonic != want.Mnemonic {
			return false
		}
	}
	return true
}
