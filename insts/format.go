package insts

// Field extraction for the standard 32-bit formats, translated directly
// from original_source/riscvmodel/insn.py's InstructionRType /
// InstructionIType / InstructionILType / InstructionISType /
// InstructionSType / InstructionBType / InstructionUType /
// InstructionJType base classes into plain bit arithmetic, flattening
// the class hierarchy into a table-driven decode.

func decodeR(word uint32, i *Instruction) {
	i.Rd = uint8((word >> 7) & 0x1f)
	i.Funct3 = uint8((word >> 12) & 0x7)
	i.Rs1 = uint8((word >> 15) & 0x1f)
	i.Rs2 = uint8((word >> 20) & 0x1f)
	i.Funct7 = uint8((word >> 25) & 0x7f)
}

func encodeR(i *Instruction, opcode uint8) uint32 {
	return uint32(opcode) | uint32(i.Rd)<<7 | uint32(i.Funct3)<<12 |
		uint32(i.Rs1)<<15 | uint32(i.Rs2)<<20 | uint32(i.Funct7)<<25
}

func decodeITypeBits(word uint32) int64 {
	bits := int64((word >> 20) & 0xfff)
	return signExtend(bits, 12)
}

func decodeI(word uint32, i *Instruction) {
	i.Rd = uint8((word >> 7) & 0x1f)
	i.Funct3 = uint8((word >> 12) & 0x7)
	i.Rs1 = uint8((word >> 15) & 0x1f)
	i.Imm = decodeITypeBits(word)
}

func encodeI(i *Instruction, opcode uint8) uint32 {
	imm := uint32(i.Imm) & 0xfff
	return uint32(opcode) | uint32(i.Rd)<<7 | uint32(i.Funct3)<<12 |
		uint32(i.Rs1)<<15 | imm<<20
}

func decodeIS(word uint32, i *Instruction) {
	i.Rd = uint8((word >> 7) & 0x1f)
	i.Funct3 = uint8((word >> 12) & 0x7)
	i.Rs1 = uint8((word >> 15) & 0x1f)
	i.Shamt = uint8((word >> 20) & 0x1f)
	i.Funct7 = uint8((word >> 25) & 0x7f)
}

func encodeIS(i *Instruction, opcode uint8) uint32 {
	return uint32(opcode) | uint32(i.Rd)<<7 | uint32(i.Funct3)<<12 |
		uint32(i.Rs1)<<15 | uint32(i.Shamt)<<20 | uint32(i.Funct7)<<25
}

func decodeS(word uint32, i *Instruction) {
	i.Funct3 = uint8((word >> 12) & 0x7)
	i.Rs1 = uint8((word >> 15) & 0x1f)
	i.Rs2 = uint8((word >> 20) & 0x1f)
	imm5 := int64((word >> 7) & 0x1f)
	imm7 := int64((word >> 25) & 0x7f)
	i.Imm = signExtend((imm7<<5)|imm5, 12)
}

func encodeS(i *Instruction, opcode uint8) uint32 {
	imm := uint32(i.Imm) & 0xfff
	imm5 := imm & 0x1f
	imm7 := (imm >> 5) & 0x7f
	return uint32(opcode) | imm5<<7 | uint32(i.Funct3)<<12 |
		uint32(i.Rs1)<<15 | uint32(i.Rs2)<<20 | imm7<<25
}

func decodeB(word uint32, i *Instruction) {
	i.Funct3 = uint8((word >> 12) & 0x7)
	i.Rs1 = uint8((word >> 15) & 0x1f)
	i.Rs2 = uint8((word >> 20) & 0x1f)
	imm11 := int64((word >> 7) & 0x1)
	imm1to4 := int64((word >> 8) & 0xf)
	imm5to10 := int64((word >> 25) & 0x3f)
	imm12 := int64((word >> 31) & 0x1)
	bits := (imm12 << 12) | (imm11 << 11) | (imm5to10 << 5) | (imm1to4 << 1)
	i.Imm = signExtend(bits, 13)
}

func encodeB(i *Instruction, opcode uint8) uint32 {
	imm := uint32(i.Imm)
	imm11 := (imm >> 11) & 0x1
	imm1to4 := (imm >> 1) & 0xf
	imm5to10 := (imm >> 5) & 0x3f
	imm12 := (imm >> 12) & 0x1
	return uint32(opcode) | imm11<<7 | imm1to4<<8 | uint32(i.Funct3)<<12 |
		uint32(i.Rs1)<<15 | uint32(i.Rs2)<<20 | imm5to10<<25 | imm12<<31
}

func decodeU(word uint32, i *Instruction) {
	i.Rd = uint8((word >> 7) & 0x1f)
	i.Imm = int64((word >> 12) & 0xfffff)
}

func encodeU(i *Instruction, opcode uint8) uint32 {
	return uint32(opcode) | uint32(i.Rd)<<7 | (uint32(i.Imm)&0xfffff)<<12
}

func decodeJ(word uint32, i *Instruction) {
	i.Rd = uint8((word >> 7) & 0x1f)
	imm12to19 := int64((word >> 12) & 0xff)
	imm11 := int64((word >> 20) & 0x1)
	imm1to10 := int64((word >> 21) & 0x3ff)
	imm20 := int64((word >> 31) & 0x1)
	bits := (imm20 << 20) | (imm12to19 << 12) | (imm11 << 11) | (imm1to10 << 1)
	i.Imm = signExtend(bits, 21)
}

func encodeJ(i *Instruction, opcode uint8) uint32 {
	imm := uint32(i.Imm)
	imm12to19 := (imm >> 12) & 0xff
	imm11 := (imm >> 11) & 0x1
	imm1to10 := (imm >> 1) & 0x3ff
	imm20 := (imm >> 20) & 0x1
	return uint32(opcode) | uint32(i.Rd)<<7 | imm12to19<<12 | imm11<<20 |
		imm1to10<<21 | imm20<<31
}

func decodeAMO(word uint32, i *Instruction) {
	decodeR(word, i)
	i.Aq = (i.Funct7>>1)&1 != 0
	i.Rl = i.Funct7&1 != 0
}

func encodeAMO(i *Instruction, opcode uint8) uint32 {
	return encodeR(i, opcode)
}

// signExtend reinterprets the low `bits` bits of v as two's complement,
// the Go equivalent of Immediate.set_from_bits's
// value = -(value & tcmask) + (value & ~tcmask) formula.
func signExtend(v int64, bits int) int64 {
	mask := int64(1) << uint(bits)
	tc := int64(1) << uint(bits-1)
	v &= mask - 1
	return -(v & tc) + (v &^ tc)
}

// --- compact (16-bit) formats ---

func decodeCB(word uint16, i *Instruction) {
	i.Rs1 = 8 + uint8((word>>7)&0x7)
	i.Imm = decodeCBOffset(word)
}

// decodeCBOffset follows the RV32C manual's scattered layout for
// c.beqz/c.bnez: bits [8|4:3|7:6|2:1|5].
func decodeCBOffset(word uint16) int64 {
	b8 := (word >> 12) & 0x1
	b4_3 := (word >> 10) & 0x3
	b7_6 := (word >> 5) & 0x3
	b2_1 := (word >> 3) & 0x3
	b5 := (word >> 2) & 0x1
	bits := (int64(b8) << 8) | (int64(b4_3) << 3) | (int64(b7_6) << 6) | (int64(b2_1) << 1) | (int64(b5) << 5)
	return signExtend(bits, 9)
}

func decodeCJ(word uint16, i *Instruction) {
	i.Imm = decodeCJOffset(word)
}

// decodeCJOffset follows the manual's layout for c.j/c.jal:
// [11|4|9:8|10|6|7|3:1|5].
func decodeCJOffset(word uint16) int64 {
	b11 := (word >> 12) & 0x1
	b4 := (word >> 11) & 0x1
	b9_8 := (word >> 9) & 0x3
	b10 := (word >> 8) & 0x1
	b6 := (word >> 7) & 0x1
	b7 := (word >> 6) & 0x1
	b3_1 := (word >> 3) & 0x7
	b5 := (word >> 2) & 0x1
	bits := (int64(b11) << 11) | (int64(b4) << 4) | (int64(b9_8) << 8) |
		(int64(b10) << 10) | (int64(b6) << 6) | (int64(b7) << 7) |
		(int64(b3_1) << 1) | (int64(b5) << 5)
	return signExtend(bits, 12)
}
