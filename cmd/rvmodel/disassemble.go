package main

import (
	"encoding/binary"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wallento/riscvmodel/insts"
)

func newDisassembleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disassemble",
		Short: "Decode machine words into assembly",
	}
	cmd.AddCommand(newDisassembleHexstringCmd())
	cmd.AddCommand(newDisassembleObjfileCmd())
	return cmd
}

func newDisassembleHexstringCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hexstring <word>...",
		Short: "Decode one or more hex-encoded instruction words",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := resolveVariant()
			if err != nil {
				return err
			}
			decoder := insts.NewDecoder(v)
			for _, hex := range args {
				word, err := strconv.ParseUint(hex, 16, 32)
				if err != nil {
					fmt.Printf("Cannot decode %s, invalid instruction\n", hex)
					continue
				}
				inst, err := decoder.Decode(uint32(word))
				if err != nil {
					fmt.Printf("Cannot decode %s, invalid instruction\n", hex)
					continue
				}
				fmt.Println(inst.String())
			}
			return nil
		},
	}
}

func newDisassembleObjfileCmd() *cobra.Command {
	var objcopyPath string
	cmd := &cobra.Command{
		Use:   "objfile <path>",
		Short: "Extract and decode the .text section of an object file via objcopy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := resolveVariant()
			if err != nil {
				return err
			}

			tmp, err := os.CreateTemp("", "rvmodel-objcopy-*.bin")
			if err != nil {
				return fmt.Errorf("create temp file: %w", err)
			}
			tmpPath := tmp.Name()
			_ = tmp.Close()
			defer func() { _ = os.Remove(tmpPath) }()

			objcopyCmd := exec.Command(objcopyPath, "-O", "binary", "--only-section=.text", args[0], tmpPath)
			objcopyCmd.Stdout = os.Stdout
			objcopyCmd.Stderr = os.Stderr
			if err := objcopyCmd.Run(); err != nil {
				return fmt.Errorf("objcopy failed: %w", err)
			}

			data, err := os.ReadFile(tmpPath)
			if err != nil {
				return fmt.Errorf("read extracted binary: %w", err)
			}

			decoder := insts.NewDecoder(v)
			for off := 0; off+4 <= len(data); off += 4 {
				word := binary.LittleEndian.Uint32(data[off : off+4])
				inst, err := decoder.Decode(word)
				if err != nil {
					fmt.Printf("Cannot decode %08x, invalid instruction\n", word)
					continue
				}
				fmt.Println(inst.String())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&objcopyPath, "objcopy", "objcopy", "path to the objcopy binary")
	return cmd
}
