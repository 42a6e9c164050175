// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chips

import "github.com/lux-zk/zkmips/internal/mips"

// NewShiftChip builds the shift-left/shift-right family ALU chip. Bit
// shifts have no closed-form base-field relation without a bit-decomposed
// witness (see DESIGN.md); structural-only.
func NewShiftChip() *aluChip {
	return newALUChip("alu_shift", mips.ALUShift, map[string]aluRelation{
		"SLL": nil, "SRL": nil, "SRA": nil, "SLLV": nil, "SRLV": nil,
		"SRAV": nil, "ROTR": nil, "ROTRV": nil,
	})
}
