package insts

import "math/bits"

// RV32M execute bodies. original_source/riscvmodel/isa.py only ever
// implemented MUL; the rest of the M extension is completed here rather
// than leaving MULH*/DIV*/REM* as decode-only stubs, so all eight are
// implemented.

func exMUL(i *Instruction, m Machine) {
	m.WriteReg(i.Rd, uint64(m.SignedReg(i.Rs1)*m.SignedReg(i.Rs2)))
}

func exMULH(i *Instruction, m Machine) {
	hi := mulHigh(m.SignedReg(i.Rs1), m.SignedReg(i.Rs2), m.XLen())
	m.WriteReg(i.Rd, hi)
}

func exMULHSU(i *Instruction, m Machine) {
	a := m.SignedReg(i.Rs1)
	b := m.ReadReg(i.Rs2)
	hi := mulHighSignedUnsigned(a, b, m.XLen())
	m.WriteReg(i.Rd, hi)
}

func exMULHU(i *Instruction, m Machine) {
	hi := mulHighUnsigned(m.ReadReg(i.Rs1), m.ReadReg(i.Rs2), m.XLen())
	m.WriteReg(i.Rd, hi)
}

func exDIV(i *Instruction, m Machine) {
	a, b := m.SignedReg(i.Rs1), m.SignedReg(i.Rs2)
	if b == 0 {
		m.WriteReg(i.Rd, ^uint64(0))
		return
	}
	if a == minInt64ForXLen(m.XLen()) && b == -1 {
		m.WriteReg(i.Rd, uint64(a))
		return
	}
	m.WriteReg(i.Rd, uint64(a/b))
}

func exDIVU(i *Instruction, m Machine) {
	a, b := m.ReadReg(i.Rs1), m.ReadReg(i.Rs2)
	if b == 0 {
		m.WriteReg(i.Rd, ^uint64(0))
		return
	}
	m.WriteReg(i.Rd, a/b)
}

func exREM(i *Instruction, m Machine) {
	a, b := m.SignedReg(i.Rs1), m.SignedReg(i.Rs2)
	if b == 0 {
		m.WriteReg(i.Rd, uint64(a))
		return
	}
	if a == minInt64ForXLen(m.XLen()) && b == -1 {
		m.WriteReg(i.Rd, 0)
		return
	}
	m.WriteReg(i.Rd, uint64(a%b))
}

func exREMU(i *Instruction, m Machine) {
	a, b := m.ReadReg(i.Rs1), m.ReadReg(i.Rs2)
	if b == 0 {
		m.WriteReg(i.Rd, a)
		return
	}
	m.WriteReg(i.Rd, a%b)
}

func minInt64ForXLen(xlen int) int64 {
	return -(int64(1) << uint(xlen-1))
}

// mulHigh returns the high xlen bits of the signed xlen*xlen -> 2*xlen
// product of a and b, the MULH contract. The 2*xlen-bit product is
// always computed in full via mul64 regardless of xlen; highBits then
// picks out its upper half at the xlen boundary, not at bit 64 the way
// a 64-bit MULH would. For xlen=32 that upper half lives entirely
// within mul64's low word, since a 32x32 product never exceeds 64 bits.
func mulHigh(a, b int64, xlen int) uint64 {
	neg := false
	ua, ub := uint64(a), uint64(b)
	if a < 0 {
		ua = uint64(-a)
		neg = !neg
	}
	if b < 0 {
		ub = uint64(-b)
		neg = !neg
	}
	hiU, loU := mul64(ua, ub)
	if neg {
		loU = ^loU + 1
		hiU = ^hiU
		if loU == 0 {
			hiU++
		}
	}
	return highBits(hiU, loU, xlen)
}

func mulHighUnsigned(a, b uint64, xlen int) uint64 {
	hiU, loU := mul64(a, b)
	return highBits(hiU, loU, xlen)
}

func mulHighSignedUnsigned(a int64, b uint64, xlen int) uint64 {
	neg := a < 0
	ua := uint64(a)
	if neg {
		ua = uint64(-a)
	}
	hiU, loU := mul64(ua, b)
	if neg {
		loU = ^loU + 1
		hiU = ^hiU
		if loU == 0 {
			hiU++
		}
	}
	return highBits(hiU, loU, xlen)
}

func mul64(a, b uint64) (hi, lo uint64) {
	return bits.Mul64(a, b)
}

// highBits extracts bits [2*xlen-1:xlen] of the 128-bit value hiU:loU,
// masked to xlen bits. For xlen=64 that's hiU outright; for xlen<64 the
// wanted bits straddle loU's upper half and hiU's low bits (for
// xlen<=32 the xlen*xlen product fits below bit 64, so hiU holds only
// its sign: zero, or all ones for a negative product).
func highBits(hiU, loU uint64, xlen int) uint64 {
	if xlen >= 64 {
		return hiU
	}
	shifted := loU>>uint(xlen) | hiU<<uint(64-xlen)
	return maskTo(shifted, xlen)
}
