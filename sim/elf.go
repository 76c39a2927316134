package sim

import (
	"debug/elf"
	"fmt"
	"io"
)

// elfImage is a loaded RISC-V ELF, adapted from an ARM64 loader/elf.go:
// open, validate class/machine, walk PT_LOAD segments.
type elfImage struct {
	EntryPoint uint64
	Segments   []elfSegment
}

type elfSegment struct {
	VirtAddr uint64
	Data     []byte
	MemSize  uint64
}

func loadELFImage(path string) (*elfImage, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ELF file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if f.Machine != elf.EM_RISCV {
		return nil, fmt.Errorf("not a RISC-V ELF file (machine type: %v)", f.Machine)
	}

	img := &elfImage{EntryPoint: f.Entry}

	for _, phdr := range f.Progs {
		if phdr.Type != elf.PT_LOAD {
			continue
		}

		data := make([]byte, phdr.Filesz)
		if phdr.Filesz > 0 {
			n, err := phdr.ReadAt(data, 0)
			if err != nil && err != io.EOF {
				return nil, fmt.Errorf("read segment at 0x%x: %w", phdr.Vaddr, err)
			}
			if uint64(n) != phdr.Filesz {
				return nil, fmt.Errorf("short read for segment at 0x%x: got %d bytes, expected %d",
					phdr.Vaddr, n, phdr.Filesz)
			}
		}

		img.Segments = append(img.Segments, elfSegment{
			VirtAddr: phdr.Vaddr,
			Data:     data,
			MemSize:  phdr.Memsz,
		})
	}

	return img, nil
}

// LoadELF loads a RISC-V ELF executable's PT_LOAD segments into the
// simulator's memory and returns the entry point to pass to Run. Only each
// segment's file bytes are written; the rest of its MemSize (BSS) is left
// unwritten and reads per the configured fill policy, though it still
// extends the program extent Run executes within. This is a convenience on top of
// LoadProgram/LoadData for driving the simulator from a real toolchain
// binary instead of a raw word stream.
func (s *Simulator) LoadELF(path string) (uint64, error) {
	img, err := loadELFImage(path)
	if err != nil {
		return 0, err
	}

	for _, seg := range img.Segments {
		for off := 0; off < len(seg.Data); off += 4 {
			var buf [4]byte
			copy(buf[:], seg.Data[off:])
			word := uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24
			s.Model.State.Mem.WriteWordDirect(uint32(seg.VirtAddr)+uint32(off), word)
		}
		end := seg.VirtAddr + seg.MemSize
		if end > s.programEnd {
			s.programEnd = end
		}
	}

	return img.EntryPoint, nil
}
