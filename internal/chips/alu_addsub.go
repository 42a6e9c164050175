// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chips

import (
	"github.com/lux-zk/zkmips/internal/field"
	"github.com/lux-zk/zkmips/internal/mips"
)

// NewAddSubChip builds the add/sub family ALU chip (spec.md §4.2 "ALU chips
// (one per family: add/sub...)").
func NewAddSubChip() *aluChip {
	add := func(a, b, c field.Elem) field.Elem { return b.Add(c) }
	sub := func(a, b, c field.Elem) field.Elem { return b.Sub(c) }
	return newALUChip("alu_addsub", mips.ALUAddSub, map[string]aluRelation{
		"ADD": add, "ADDU": add, "ADDI": add, "ADDIU": add,
		"SUB": sub, "SUBU": sub,
	})
}
