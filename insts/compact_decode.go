package insts

// Field extraction specific to individual compact (RVC) instructions,
// where the generic CR/CI/CB/CSS helpers in format.go aren't precise
// enough (shift amounts are unsigned, C.LUI/C.ADDI16SP scale their
// immediate, memory-op immediates are scattered per-opcode). Bit
// positions follow the RVC chapter of the ISA manual.

func decodeCADDI4SPN(w uint16, i *Instruction) {
	i.Rd = 8 + uint8((w>>2)&0x7)
	b5_4 := uint32((w >> 11) & 0x3)
	b9_6 := uint32((w >> 7) & 0xf)
	b2 := uint32((w >> 6) & 0x1)
	b3 := uint32((w >> 5) & 0x1)
	i.Imm = int64((b9_6 << 6) | (b5_4 << 4) | (b3 << 3) | (b2 << 2))
}

func decodeCLW(w uint16, i *Instruction) {
	i.Rd = 8 + uint8((w>>2)&0x7)
	i.Rs1 = 8 + uint8((w>>7)&0x7)
	off5_3 := uint32((w >> 10) & 0x7)
	off6 := uint32((w >> 5) & 0x1)
	off2 := uint32((w >> 6) & 0x1)
	i.Imm = int64((off6 << 6) | (off5_3 << 3) | (off2 << 2))
}

func decodeCSWord(w uint16, i *Instruction) {
	i.Rs2 = 8 + uint8((w>>2)&0x7)
	i.Rs1 = 8 + uint8((w>>7)&0x7)
	off5_3 := uint32((w >> 10) & 0x7)
	off6 := uint32((w >> 5) & 0x1)
	off2 := uint32((w >> 6) & 0x1)
	i.Imm = int64((off6 << 6) | (off5_3 << 3) | (off2 << 2))
}

func decodeCAddi(w uint16, i *Instruction) {
	i.Rd = uint8((w >> 7) & 0x1f)
	i.Rs1 = i.Rd
	b5 := int64((w >> 12) & 0x1)
	b4_0 := int64((w >> 2) & 0x1f)
	i.Imm = signExtend((b5<<5)|b4_0, 6)
}

func decodeCLi(w uint16, i *Instruction) {
	i.Rd = uint8((w >> 7) & 0x1f)
	b5 := int64((w >> 12) & 0x1)
	b4_0 := int64((w >> 2) & 0x1f)
	i.Imm = signExtend((b5<<5)|b4_0, 6)
}

func decodeCSlli(w uint16, i *Instruction) {
	i.Rd = uint8((w >> 7) & 0x1f)
	i.Rs1 = i.Rd
	b5 := uint32((w >> 12) & 0x1)
	b4_0 := uint32((w >> 2) & 0x1f)
	i.Shamt = uint8((b5 << 5) | b4_0)
}

func decodeCLui(w uint16, i *Instruction) {
	i.Rd = uint8((w >> 7) & 0x1f)
	b5 := int64((w >> 12) & 0x1)
	b4_0 := int64((w >> 2) & 0x1f)
	i.Imm = signExtend((b5<<5)|b4_0, 6)
}

func decodeCAddi16sp(w uint16, i *Instruction) {
	i.Rd = 2
	i.Rs1 = 2
	b9 := int64((w >> 12) & 0x1)
	b4 := int64((w >> 6) & 0x1)
	b6 := int64((w >> 5) & 0x1)
	b8_7 := int64((w >> 3) & 0x3)
	b5 := int64((w >> 2) & 0x1)
	bits := (b9 << 9) | (b8_7 << 7) | (b6 << 6) | (b4 << 4) | (b5 << 5)
	i.Imm = signExtend(bits, 10)
}

func decodeCShift(w uint16, i *Instruction) {
	i.Rd = 8 + uint8((w>>7)&0x7)
	i.Rs1 = i.Rd
	b5 := uint32((w >> 12) & 0x1)
	b4_0 := uint32((w >> 2) & 0x1f)
	i.Shamt = uint8((b5 << 5) | b4_0)
}

func decodeCAndi(w uint16, i *Instruction) {
	i.Rd = 8 + uint8((w>>7)&0x7)
	i.Rs1 = i.Rd
	b5 := int64((w >> 12) & 0x1)
	b4_0 := int64((w >> 2) & 0x1f)
	i.Imm = signExtend((b5<<5)|b4_0, 6)
}

func decodeCA(w uint16, i *Instruction) {
	i.Rd = 8 + uint8((w>>7)&0x7)
	i.Rs1 = i.Rd
	i.Rs2 = 8 + uint8((w>>2)&0x7)
}

func decodeCR(w uint16, i *Instruction) {
	i.Rd = uint8((w >> 7) & 0x1f)
	i.Rs1 = i.Rd
	i.Rs2 = uint8((w >> 2) & 0x1f)
}

func decodeCLwsp(w uint16, i *Instruction) {
	i.Rd = uint8((w >> 7) & 0x1f)
	b5 := uint32((w >> 12) & 0x1)
	b4_2 := uint32((w >> 4) & 0x7)
	b7_6 := uint32((w >> 2) & 0x3)
	i.Imm = int64((b7_6 << 6) | (b5 << 5) | (b4_2 << 2))
}

func decodeCSwsp(w uint16, i *Instruction) {
	i.Rs2 = uint8((w >> 2) & 0x1f)
	b5_2 := uint32((w >> 9) & 0xf)
	b7_6 := uint32((w >> 7) & 0x3)
	i.Imm = int64((b7_6 << 6) | (b5_2 << 2))
}
