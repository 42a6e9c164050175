// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chips

import "github.com/lux-zk/zkmips/internal/mips"

// NewClzChip builds the count-leading-zeros/ones family ALU chip.
// Bit-counting has no closed-form base-field relation without a
// bit-decomposed witness (see DESIGN.md); structural-only.
func NewClzChip() *aluChip {
	return newALUChip("alu_clz", mips.ALUClz, map[string]aluRelation{
		"CLZ": nil, "CLO": nil,
	})
}
