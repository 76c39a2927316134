// Package imm implements the fixed-width Immediate value type used by
// every instruction format: a bit width, a signedness flag, and an lsb0
// flag (the value must be even, its bit 0 always zero, as used by the
// branch and jump offsets).
package imm

import (
	"fmt"
	"math/rand"
)

// InvalidImmediateError reports a value or bit pattern that does not fit
// the declared width/signedness/lsb0 contract.
type InvalidImmediateError struct {
	Bits   int
	Signed bool
	LSB0   bool
	Value  int64
	Reason string
}

func (e *InvalidImmediateError) Error() string {
	return fmt.Sprintf("invalid immediate (bits=%d signed=%v lsb0=%v value=%d): %s",
		e.Bits, e.Signed, e.LSB0, e.Value, e.Reason)
}

// Immediate is a fixed-width, sign-aware integer with optional LSB-0
// semantics. Its value is unexported: the only ways to change it are
// Set, SetFromBits, and Randomize, so a caller can never create an
// immediate that slipped past width/range validation.
type Immediate struct {
	bits   int
	signed bool
	lsb0   bool
	value  int64
}

// New constructs an Immediate with the given shape and initial value 0.
func New(bits int, signed, lsb0 bool) *Immediate {
	return &Immediate{bits: bits, signed: signed, lsb0: lsb0}
}

func (i *Immediate) tcmask() int64 { return int64(1) << uint(i.bits-1) }

// Max returns the largest representable value for this immediate's shape.
func (i *Immediate) Max() int64 {
	var m int64
	if i.signed {
		m = i.tcmask() - 1
	} else {
		m = (int64(1) << uint(i.bits)) - 1
	}
	if i.lsb0 {
		m &^= 1
	}
	return m
}

// Min returns the smallest representable value for this immediate's shape.
func (i *Immediate) Min() int64 {
	if !i.signed {
		return 0
	}
	return -i.tcmask()
}

// Set validates and stores value, the way the source's Immediate.set does:
// range-checked against Min/Max, and, when lsb0, required to have bit 0
// clear.
func (i *Immediate) Set(value int64) error {
	if i.lsb0 && value&1 != 0 {
		return &InvalidImmediateError{i.bits, i.signed, i.lsb0, value, "lsb0 immediate must have bit 0 clear"}
	}
	if value < i.Min() || value > i.Max() {
		return &InvalidImmediateError{i.bits, i.signed, i.lsb0, value, "value out of range"}
	}
	i.value = value
	return nil
}

// SetFromBits interprets a raw unsigned bit pattern of i.bits width,
// applying two's-complement sign extension when signed, then routes
// through Set for range/lsb0 validation — mirroring
// Immediate.set_from_bits's
// value = -(value & tcmask) + (value & ~tcmask) formula.
func (i *Immediate) SetFromBits(bits int64) error {
	mask := (int64(1) << uint(i.bits)) - 1
	v := bits & mask
	if i.signed {
		tc := i.tcmask()
		v = -(v & tc) + (v &^ tc)
	}
	return i.Set(v)
}

// Bits returns the raw unsigned bit pattern for i's current value, the
// inverse of SetFromBits.
func (i *Immediate) Bits() int64 {
	mask := (int64(1) << uint(i.bits)) - 1
	return i.value & mask
}

// Randomize draws a uniformly random legal value, clearing bit 0 first
// when lsb0, mirroring Immediate.randomize.
func (i *Immediate) Randomize(rng *rand.Rand) {
	lo, hi := i.Min(), i.Max()
	span := hi - lo + 1
	v := lo + rng.Int63n(span)
	if i.lsb0 {
		v &^= 1
	}
	i.value = v
}

// Int returns the immediate's current signed value.
func (i *Immediate) Int() int64 { return i.value }

// Width reports the declared bit width (named Width to avoid colliding
// with the Bits() method above).
func (i *Immediate) Width() int { return i.bits }

// Signed reports whether this immediate is sign-extended.
func (i *Immediate) Signed() bool { return i.signed }

// LSB0 reports whether bit 0 is implicitly zero.
func (i *Immediate) LSB0() bool { return i.lsb0 }

func (i *Immediate) String() string {
	return fmt.Sprintf("%d", i.value)
}
