// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chips

import (
	"github.com/lux-zk/zkmips/internal/field"
	"github.com/lux-zk/zkmips/internal/mips"
)

// NewMulChip builds the multiply family ALU chip. MULT/MULTU/MADDU/MSUBU
// write a 64-bit HI:LO product/accumulator that ALUEvent only reports the
// low word of (see mips/instructions.go); only MUL (32-bit truncated
// product into a GPR) gets a checked relation here, consistent with
// DESIGN.md's byte-decomposition simplification for the rest.
func NewMulChip() *aluChip {
	mul := func(a, b, c field.Elem) field.Elem { return b.Mul(c) }
	return newALUChip("alu_mul", mips.ALUMul, map[string]aluRelation{
		"MULT": nil, "MULTU": nil, "MUL": mul, "MADDU": nil, "MSUBU": nil,
	})
}
