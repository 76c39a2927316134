// Package sim implements the plain (non-golden) simulator: load a flat
// program/data image into memory and run it to completion, translating
// original_source/riscvmodel/sim.py's Simulator.load_program/load_data/run.
// Unlike the Python source's explicit program list indexed by pc>>2, this
// loads the program into the same word-addressable memory data uses
// (closer to how a real machine overlays .text and .data in one address
// space) and tracks the loaded extent to know when execution runs off
// the end.
package sim

import (
	"encoding/binary"

	"github.com/go-logr/logr"

	"github.com/wallento/riscvmodel/state"
)

// Simulator drives a Model to completion over a loaded program image.
type Simulator struct {
	Model *state.Model
	Log   logr.Logger

	programEnd uint64
}

// New constructs a Simulator around an already-configured Model, wiring
// its default ECALL environment (exit code from a0) unless the caller
// has already set one.
func New(m *state.Model, log logr.Logger) *Simulator {
	if m.State.Env == nil {
		m.State.Env = exitOnA0
	}
	return &Simulator{Model: m, Log: log}
}

// LoadProgram installs words as instruction memory starting at address,
// extending the simulator's known program extent so Run knows where
// execution ends.
func (s *Simulator) LoadProgram(words []uint32, address uint32) {
	for idx, w := range words {
		s.Model.State.Mem.WriteWordDirect(address+uint32(idx)*4, w)
	}
	end := uint64(address) + uint64(len(words))*4
	if end > s.programEnd {
		s.programEnd = end
	}
}

// LoadData installs a flat byte image at address, unpacked as
// little-endian words the way sim.py's load_data does; a trailing
// partial word is zero-padded.
func (s *Simulator) LoadData(data []byte, address uint32) {
	for off := 0; off < len(data); off += 4 {
		var buf [4]byte
		copy(buf[:], data[off:])
		s.Model.State.Mem.WriteWordDirect(address+uint32(off), binary.LittleEndian.Uint32(buf[:]))
	}
}

// DumpData reads size bytes back out of memory starting at address, the
// inverse of LoadData.
func (s *Simulator) DumpData(address uint32, size int) []byte {
	out := make([]byte, size)
	for i := 0; i < size; i++ {
		out[i] = s.Model.State.Mem.LoadByte(address + uint32(i))
	}
	return out
}

// Run resets the model to pc and issues instructions until the program
// counter runs past the loaded program extent or the program calls
// Terminate, returning the instruction count and the first decode/execute
// error encountered, if any.
func (s *Simulator) Run(pc uint64) (int64, error) {
	s.Model.Reset(pc)
	var count int64
	for s.Model.State.PC() < s.programEnd {
		word := s.Model.State.Mem.FetchWord(uint32(s.Model.State.PC()))
		_, err := s.Model.Issue(word)
		count++
		if err != nil {
			s.Log.Error(err, "instruction issue failed", "pc", s.Model.State.PC())
			return count, err
		}
		if done, code := s.Model.State.Terminated(); done {
			s.Log.Info("program terminated", "exitCode", code, "instructions", count)
			break
		}
	}
	return count, nil
}
