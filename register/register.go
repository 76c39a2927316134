// Package register implements the fixed-width two's-complement integer
// register file: hard-wired x0, signed/unsigned reinterpretation, and the
// pending-write-then-commit discipline a copy-on-execute model requires.
// It generalizes a flat [32]uint64 RegFile (emu/regfile.go) from AArch64's
// single GPR bank to RISC-V's variant-sized (16 or 32 register) integer
// file with the extra signed arithmetic shift / unsigned comparison rules
// RISC-V needs.
package register

import "github.com/wallento/riscvmodel/rtrace"

// Mask truncates v to the low xlen bits.
func Mask(v uint64, xlen int) uint64 {
	if xlen >= 64 {
		return v
	}
	return v & ((uint64(1) << uint(xlen)) - 1)
}

// SignExtend reinterprets the low xlen bits of v as a two's-complement
// signed integer.
func SignExtend(v uint64, xlen int) int64 {
	v = Mask(v, xlen)
	sign := uint64(1) << uint(xlen-1)
	if v&sign != 0 {
		return int64(v) - int64(uint64(1)<<uint(xlen))
	}
	return int64(v)
}

// ArithmeticShiftRight performs a sign-replicating right shift, the
// semantics the source's Register.__rshift__ gives every Register
// regardless of call site (srl uses .unsigned() >> instead).
func ArithmeticShiftRight(v uint64, shamt uint, xlen int) uint64 {
	signed := SignExtend(v, xlen)
	return Mask(uint64(signed>>shamt), xlen)
}

// LogicalShiftRight performs a zero-filling right shift.
func LogicalShiftRight(v uint64, shamt uint, xlen int) uint64 {
	return Mask(v, xlen) >> shamt
}

// File is the integer register file for one hart: xlen-bit registers,
// x0 permanently wired to zero, and a pending-write buffer that only
// takes effect on Commit.
type File struct {
	xlen    int
	count   int
	regs    []uint64
	pending map[uint8]uint64
	order   []uint8
}

// New constructs a register file for the given xlen (32/64/128) and
// register count (16 for RV32E, 32 otherwise).
func New(xlen, count int) *File {
	return &File{
		xlen:    xlen,
		count:   count,
		regs:    make([]uint64, count),
		pending: make(map[uint8]uint64),
	}
}

// XLen reports the register width in bits.
func (f *File) XLen() int { return f.xlen }

// Read returns the committed value of register idx; x0 always reads zero.
func (f *File) Read(idx uint8) uint64 {
	if idx == 0 {
		return 0
	}
	return f.regs[idx]
}

// Signed returns the committed value of register idx reinterpreted as
// signed.
func (f *File) Signed(idx uint8) int64 {
	return SignExtend(f.Read(idx), f.xlen)
}

// Write stages a write to register idx, masked to xlen bits. A write to
// x0 is accepted (matching the source's hard-wired-zero RegisterFile,
// which simply discards it) but never becomes observable: x0 always
// reads zero and never appears in Changes.
func (f *File) Write(idx uint8, value uint64) {
	if idx == 0 {
		return
	}
	value = Mask(value, f.xlen)
	if _, already := f.pending[idx]; !already {
		f.order = append(f.order, idx)
	}
	f.pending[idx] = value
}

// Changes returns the pending writes that actually differ from the
// committed value, as trace entries, in write order. A write that
// restates the value a register already holds produces no trace entry.
func (f *File) Changes() rtrace.Trace {
	var t rtrace.Trace
	for _, idx := range f.order {
		if f.pending[idx] == f.Read(idx) {
			continue
		}
		t = append(t, rtrace.IntReg{Index: idx, Value: f.pending[idx]})
	}
	return t
}

// Commit applies all pending writes and clears the buffer.
func (f *File) Commit() {
	for _, idx := range f.order {
		f.regs[idx] = f.pending[idx]
	}
	f.pending = make(map[uint8]uint64)
	f.order = nil
}

// Discard clears the pending buffer without applying it (Model.Discard
// uses it to drop an executed instruction's writes).
func (f *File) Discard() {
	f.pending = make(map[uint8]uint64)
	f.order = nil
}
