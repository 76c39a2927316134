// Package memory implements the sparse, word-indexed memory model:
// deterministic-or-random fill-on-first-read, and buffered
// granularity-tagged writes that only merge into the backing word store
// on Commit. Grounded on original_source/riscvmodel/model.py's
// State.memory/memory_update/commit and the byte/half/word split an
// emu/load_store.go used for its own memory.
package memory

import (
	"math/rand"

	"github.com/wallento/riscvmodel/rtrace"
)

// FillPolicy selects what a first read of an untouched word returns.
// This must be deterministic within one build: a test build fills with
// zero, a randomized build fills with a fresh random word (and remembers
// it, so a second read of the same address is stable).
type FillPolicy int

const (
	FillZero FillPolicy = iota
	FillRandom
)

// Memory is the flat byte-addressable store, backed by a sparse
// word-indexed map.
type Memory struct {
	words   map[uint32]uint32
	pending []rtrace.Mem
	policy  FillPolicy
	rng     *rand.Rand
}

// New constructs an empty memory with the given fill policy. rng is only
// consulted under FillRandom; pass nil to get a package-default source.
func New(policy FillPolicy, rng *rand.Rand) *Memory {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Memory{words: make(map[uint32]uint32), policy: policy, rng: rng}
}

func (m *Memory) wordAt(wordIdx uint32) uint32 {
	if w, ok := m.words[wordIdx]; ok {
		return w
	}
	var w uint32
	if m.policy == FillRandom {
		w = m.rng.Uint32()
	}
	m.words[wordIdx] = w
	return w
}

// LoadWord reads a 32-bit word at a word-aligned address.
func (m *Memory) LoadWord(addr uint32) uint32 {
	return m.wordAt(addr >> 2)
}

// LoadHalf reads an unsigned 16-bit halfword.
func (m *Memory) LoadHalf(addr uint32) uint16 {
	w := m.wordAt(addr >> 2)
	offset := (addr & 2)
	return uint16(w >> (offset * 8))
}

// LoadByte reads an unsigned byte.
func (m *Memory) LoadByte(addr uint32) uint8 {
	w := m.wordAt(addr >> 2)
	offset := addr & 3
	return uint8(w >> (offset * 8))
}

// StoreByte stages a byte write for the next Commit.
func (m *Memory) StoreByte(addr uint32, value uint8) {
	m.pending = append(m.pending, rtrace.Mem{Granularity: rtrace.Byte, Addr: addr, Data: uint32(value)})
}

// StoreHalf stages a halfword write for the next Commit.
func (m *Memory) StoreHalf(addr uint32, value uint16) {
	m.pending = append(m.pending, rtrace.Mem{Granularity: rtrace.Half, Addr: addr, Data: uint32(value)})
}

// StoreWord stages a word write for the next Commit.
func (m *Memory) StoreWord(addr uint32, value uint32) {
	m.pending = append(m.pending, rtrace.Mem{Granularity: rtrace.Word, Addr: addr, Data: value})
}

// Changes returns the pending writes as trace entries, in write order.
func (m *Memory) Changes() rtrace.Trace {
	t := make(rtrace.Trace, len(m.pending))
	for i, e := range m.pending {
		t[i] = e
	}
	return t
}

// Commit merges every pending write into the backing word store, lane by
// lane, and clears the buffer.
func (m *Memory) Commit() {
	for _, w := range m.pending {
		wordIdx := w.Addr >> 2
		offset := w.Addr & 3
		word := m.wordAt(wordIdx)
		switch w.Granularity {
		case rtrace.Byte:
			shift := offset * 8
			mask := uint32(0xFF) << shift
			word = (word &^ mask) | ((w.Data << shift) & mask)
		case rtrace.Half:
			shift := (offset &^ 1) * 8
			mask := uint32(0xFFFF) << shift
			word = (word &^ mask) | ((w.Data << shift) & mask)
		case rtrace.Word:
			word = w.Data
		}
		m.words[wordIdx] = word
	}
	m.pending = nil
}

// Discard drops pending writes without applying them.
func (m *Memory) Discard() {
	m.pending = nil
}

// FetchWord reads four bytes starting at addr regardless of word
// alignment, assembled little-endian. This is how the simulator fetches
// an instruction candidate word, since compact (2-byte) instructions
// need not be 4-byte aligned.
func (m *Memory) FetchWord(addr uint32) uint32 {
	b0 := uint32(m.LoadByte(addr))
	b1 := uint32(m.LoadByte(addr + 1))
	b2 := uint32(m.LoadByte(addr + 2))
	b3 := uint32(m.LoadByte(addr + 3))
	return b0 | b1<<8 | b2<<16 | b3<<24
}

// WriteWordDirect installs a word value without going through the
// pending-write protocol; used by program/data loading.
func (m *Memory) WriteWordDirect(addr uint32, value uint32) {
	m.words[addr>>2] = value
}

// ReadWordDirect reads a word without triggering fill-on-read
// materialization, returning ok=false if the word was never written.
func (m *Memory) ReadWordDirect(addr uint32) (uint32, bool) {
	w, ok := m.words[addr>>2]
	return w, ok
}
