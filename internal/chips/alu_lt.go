// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chips

import "github.com/lux-zk/zkmips/internal/mips"

// NewLtChip builds the signed/unsigned-less-than comparison family ALU
// chip (spec.md §4.2 "comparison"). The sub-then-sign-bit technique the
// branch chip uses applies here too but needs a dedicated sign-bit witness
// column this event doesn't carry; structural-only, per DESIGN.md.
func NewLtChip() *aluChip {
	return newALUChip("alu_lt", mips.ALULt, map[string]aluRelation{
		"SLT": nil, "SLTU": nil, "SLTI": nil, "SLTIU": nil,
	})
}
