// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mips

// Instruction is a decoded MIPS32r2 word: the raw encoding plus every field
// a later executor step might need, decoded once up front rather than
// re-extracted per instruction family.
type Instruction struct {
	Raw    uint32
	Op     string // mnemonic, resolved by opcode/funct/rt-field dispatch
	Opcode uint32
	RS     uint32
	RT     uint32
	RD     uint32
	Shamt  uint32
	Funct  uint32
	Imm16  uint32 // zero-extended raw 16-bit immediate field
	Target uint32 // 26-bit jump target field
}

// SignExtImm16 sign-extends the 16-bit immediate field to 32 bits.
func (ins Instruction) SignExtImm16() uint32 {
	return uint32(int32(int16(ins.Imm16)))
}

// Decode splits a 32-bit MIPS word into its fields and resolves the
// mnemonic via the opcode/funct/rt dispatch table in instructions.go.
// Decode itself never fails — an unrecognized encoding simply resolves to
// Op == "" and the executor reports ErrUnknownOpcode at execution time, the
// same two-phase shape the instruction table documentation in spec.md §6
// implies ("every instruction in the documented table").
func Decode(word uint32) Instruction {
	ins := Instruction{
		Raw:    word,
		Opcode: word >> 26 & 0x3f,
		RS:     word >> 21 & 0x1f,
		RT:     word >> 16 & 0x1f,
		RD:     word >> 11 & 0x1f,
		Shamt:  word >> 6 & 0x1f,
		Funct:  word & 0x3f,
		Imm16:  word & 0xffff,
		Target: word & 0x3ffffff,
	}
	ins.Op = mnemonicOf(ins)
	return ins
}
