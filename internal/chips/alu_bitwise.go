// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chips

import "github.com/lux-zk/zkmips/internal/mips"

// NewBitwiseChip builds the AND/OR/XOR/NOR family ALU chip. Bitwise ops
// have no closed-form base-field relation without the bytes chip's
// x&y/x|y/x^y lookup table (see bytes.go, DESIGN.md); structural-only here.
func NewBitwiseChip() *aluChip {
	return newALUChip("alu_bitwise", mips.ALUBitwise, map[string]aluRelation{
		"AND": nil, "OR": nil, "XOR": nil, "NOR": nil,
		"ANDI": nil, "ORI": nil, "XORI": nil,
	})
}
