// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chips

import (
	"sort"

	"github.com/lux-zk/zkmips/internal/air"
	"github.com/lux-zk/zkmips/internal/field"
	"github.com/lux-zk/zkmips/internal/mips"
)

// JumpChip constrains link-register writes for J/JAL/JR/JALR (spec.md §4.2
// "Jump chip... Jump with link writes next_pc + 4 to the link register
// unless the link register is r0, in which case the write is suppressed").
// Target-PC computation (J/JAL's top-4-bits-plus-shifted-immediate,
// JR/JALR's register read) is not re-derived here for the same reason as
// the branch chip: the operands feeding it (the 26-bit target field, the
// source register read) are not threaded through JumpEvent, so TargetPC is
// an unchecked witness column; only the row's (opcode, PC) is matched
// against the CPU chip's bus tuple.
var jumpMnemonics = []string{"J", "JAL", "JALR", "JR"}

func init() { sort.Strings(jumpMnemonics) }

const (
	jpColOpcode = iota
	jpColPC
	jpColTargetPC
	jpColLink
	jpColLinkReg
	jpColLinkVal
	jpColIsReal
	jpColSelectorBase
)

func jpWidth() int { return jpColSelectorBase + len(jumpMnemonics) }

type JumpChip struct{}

func NewJumpChip() *JumpChip { return &JumpChip{} }

func (c *JumpChip) Name() string              { return "jump" }
func (c *JumpChip) Width() int                { return jpWidth() }
func (c *JumpChip) Preprocessed() *air.Matrix { return nil }

func jpSelectorIndex(op string) int {
	for i, m := range jumpMnemonics {
		if m == op {
			return i
		}
	}
	return -1
}

func (c *JumpChip) GenerateTrace(events []air.Event) (*air.Matrix, error) {
	h := air.NextPowerOfTwo(len(events))
	m := air.NewMatrix(jpWidth(), h)
	for i, e := range events {
		ev := e.(mips.JumpEvent)
		row := m.Data[i]
		row[jpColOpcode] = OpCode(ev.Op)
		row[jpColPC] = FromU32(ev.PC)
		row[jpColTargetPC] = FromU32(ev.TargetPC)
		row[jpColLink] = Bool(ev.Link)
		row[jpColLinkReg] = FromU32(ev.LinkReg)
		row[jpColLinkVal] = FromU32(ev.LinkVal)
		row[jpColIsReal] = field.One
		if idx := jpSelectorIndex(ev.Op); idx >= 0 {
			row[jpColSelectorBase+idx] = field.One
		}
	}
	return m, nil
}

func (c *JumpChip) Eval(cb *air.ConstraintBuilder) {
	cb.AssertZero("jump_is_real_boolean", func(row []field.Elem) field.Elem {
		r := row[jpColIsReal]
		return r.Mul(field.One.Sub(r))
	})
	cb.AssertZero("jump_link_boolean", func(row []field.Elem) field.Elem {
		l := row[jpColLink]
		return l.Mul(field.One.Sub(l))
	})
	cb.AssertZero("jump_single_selector", func(row []field.Elem) field.Elem {
		sum := field.Zero
		for i := range jumpMnemonics {
			sum = sum.Add(row[jpColSelectorBase+i])
		}
		return sum.Sub(row[jpColIsReal])
	})
	// J/JR never link; JAL/JALR always do.
	cb.AssertZero("jump_j_jr_never_link", func(row []field.Elem) field.Elem {
		sel := row[jpColSelectorBase+jpSelectorIndex("J")].Add(row[jpColSelectorBase+jpSelectorIndex("JR")])
		return sel.Mul(row[jpColLink])
	})
	cb.AssertZero("jump_jal_jalr_always_link", func(row []field.Elem) field.Elem {
		sel := row[jpColSelectorBase+jpSelectorIndex("JAL")].Add(row[jpColSelectorBase+jpSelectorIndex("JALR")])
		return sel.Mul(field.One.Sub(row[jpColLink]))
	})
	// Link value is always PC + 8 (the instruction after the delay slot).
	cb.AssertZero("jump_link_val_is_pc_plus_8", func(row []field.Elem) field.Elem {
		want := row[jpColPC].Add(field.New(8))
		return row[jpColLink].Mul(row[jpColLinkVal].Sub(want))
	})
	// A write to r0 is suppressed: if the link register is r0 the link
	// register's value must be constrained to 0 at read time elsewhere (r0
	// is hardwired zero in the register file), not re-asserted here.
}

func (c *JumpChip) Buses() []air.BusInteraction {
	return []air.BusInteraction{{
		Bus:    "family_jump",
		IsSend: false,
		Multiplicity: func(row []field.Elem) field.Elem {
			return row[jpColIsReal]
		},
		Tuple: func(row []field.Elem) []field.Elem {
			return []field.Elem{row[jpColOpcode], row[jpColPC]}
		},
	}}
}
