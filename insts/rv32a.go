package insts

// RV32A execute bodies: load-reserved/store-conditional and the
// atomic-memory-operation family, all built on the Machine reservation
// primitives (Reserve/CheckAndClearReservation); a single-hart model
// needs no real memory-bus arbitration, only the reservation bookkeeping
// LR/SC depends on.

func exLRW(i *Instruction, m Machine) {
	addr := uint32(m.SignedReg(i.Rs1))
	m.Reserve(addr)
	data := int64(int32(m.LoadWord(addr)))
	m.WriteReg(i.Rd, uint64(data))
}

func exSCW(i *Instruction, m Machine) {
	addr := uint32(m.SignedReg(i.Rs1))
	if m.CheckAndClearReservation(addr) {
		m.StoreWord(addr, uint32(m.ReadReg(i.Rs2)))
		m.WriteReg(i.Rd, 0)
	} else {
		m.WriteReg(i.Rd, 1)
	}
}

func amoOp(combine func(old, val int32) int32) func(*Instruction, Machine) {
	return func(i *Instruction, m Machine) {
		addr := uint32(m.SignedReg(i.Rs1))
		old := int32(m.LoadWord(addr))
		val := int32(m.ReadReg(i.Rs2))
		m.StoreWord(addr, uint32(combine(old, val)))
		m.WriteReg(i.Rd, uint64(int64(old)))
	}
}

func amoOpUnsigned(combine func(old, val uint32) uint32) func(*Instruction, Machine) {
	return func(i *Instruction, m Machine) {
		addr := uint32(m.SignedReg(i.Rs1))
		old := m.LoadWord(addr)
		val := uint32(m.ReadReg(i.Rs2))
		m.StoreWord(addr, combine(old, val))
		m.WriteReg(i.Rd, uint64(int64(int32(old))))
	}
}

var (
	exAMOSWAPW = amoOp(func(old, val int32) int32 { return val })
	exAMOADDW  = amoOp(func(old, val int32) int32 { return old + val })
	exAMOXORW  = amoOp(func(old, val int32) int32 { return old ^ val })
	exAMOANDW  = amoOp(func(old, val int32) int32 { return old & val })
	exAMOORW   = amoOp(func(old, val int32) int32 { return old | val })
	exAMOMINW  = amoOp(func(old, val int32) int32 {
		if old < val {
			return old
		}
		return val
	})
	exAMOMAXW = amoOp(func(old, val int32) int32 {
		if old > val {
			return old
		}
		return val
	})
	exAMOMINUW = amoOpUnsigned(func(old, val uint32) uint32 {
		if old < val {
			return old
		}
		return val
	})
	exAMOMAXUW = amoOpUnsigned(func(old, val uint32) uint32 {
		if old > val {
			return old
		}
		return val
	})
)
