// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chips

import "github.com/lux-zk/zkmips/internal/mips"

// NewDivRemChip builds the divide/remainder family ALU chip. DIV/DIVU split
// their result across HI and LO, but ALUEvent only carries the quotient
// (see mips/instructions.go); checking quotient*divisor+remainder == dividend
// would need the remainder as a witness column this event doesn't carry,
// so this chip is structural-only (selector/is_real), per DESIGN.md.
func NewDivRemChip() *aluChip {
	return newALUChip("alu_divrem", mips.ALUDivRem, map[string]aluRelation{
		"DIV": nil, "DIVU": nil,
	})
}
