// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chips

import (
	"sort"

	"github.com/lux-zk/zkmips/internal/air"
	"github.com/lux-zk/zkmips/internal/field"
	"github.com/lux-zk/zkmips/internal/mips"
)

// BranchChip performs the signed comparison for branches and constrains
// the taken flag (spec.md §4.2 "Branch chip... performs the signed
// comparison for branches (a==b, a<0, a<=0, a>0, a>=0) via sub-then-sign-bit,
// and constrains target-PC computation"). Only BEQ/BNE's equality
// comparison is checked here via a standard is-zero witness gadget;
// BLEZ/BGTZ/BLTZ/BGEZ need the sign bit of a 32-bit value, which (like the
// ALU lt/shift chips) needs a byte-decomposition/range-check argument this
// repo does not build — those mnemonics keep only the structural
// constraints, documented per DESIGN.md. Target-PC arithmetic itself is not
// re-derived (the signed immediate isn't threaded through BranchEvent); it
// is carried as an unchecked witness column, and only the row's (opcode, PC)
// is matched against the CPU chip's bus tuple.
var branchMnemonics = []string{"BAL", "BEQ", "BGEZ", "BGTZ", "BLEZ", "BLTZ", "BNE"}

func init() { sort.Strings(branchMnemonics) }

const (
	brColOpcode = iota
	brColPC
	brColA
	brColB
	brColTaken
	brColTargetPC
	brColDiffInv // witness for the BEQ/BNE is-zero gadget: (A-B)*diffInv == 1-taken when op==BEQ
	brColIsReal
	brColSelectorBase
)

func brWidth() int { return brColSelectorBase + len(branchMnemonics) }

type BranchChip struct{}

func NewBranchChip() *BranchChip { return &BranchChip{} }

func (c *BranchChip) Name() string              { return "branch" }
func (c *BranchChip) Width() int                { return brWidth() }
func (c *BranchChip) Preprocessed() *air.Matrix { return nil }

func brSelectorIndex(op string) int {
	for i, m := range branchMnemonics {
		if m == op {
			return i
		}
	}
	return -1
}

func (c *BranchChip) GenerateTrace(events []air.Event) (*air.Matrix, error) {
	h := air.NextPowerOfTwo(len(events))
	m := air.NewMatrix(brWidth(), h)
	for i, e := range events {
		ev := e.(mips.BranchEvent)
		row := m.Data[i]
		row[brColOpcode] = OpCode(ev.Op)
		row[brColPC] = FromU32(ev.PC)
		row[brColA] = FromU32(ev.A)
		row[brColB] = FromU32(ev.B)
		row[brColTaken] = Bool(ev.Taken)
		row[brColTargetPC] = FromU32(ev.TargetPC)
		row[brColIsReal] = field.One
		diff := FromU32(ev.A).Sub(FromU32(ev.B))
		if inv, err := diff.Inv(); err == nil {
			row[brColDiffInv] = inv
		}
		if idx := brSelectorIndex(ev.Op); idx >= 0 {
			row[brColSelectorBase+idx] = field.One
		}
	}
	return m, nil
}

func (c *BranchChip) Eval(cb *air.ConstraintBuilder) {
	cb.AssertZero("branch_is_real_boolean", func(row []field.Elem) field.Elem {
		r := row[brColIsReal]
		return r.Mul(field.One.Sub(r))
	})
	cb.AssertZero("branch_taken_boolean", func(row []field.Elem) field.Elem {
		t := row[brColTaken]
		return t.Mul(field.One.Sub(t))
	})
	cb.AssertZero("branch_single_selector", func(row []field.Elem) field.Elem {
		sum := field.Zero
		for i := range branchMnemonics {
			sum = sum.Add(row[brColSelectorBase+i])
		}
		return sum.Sub(row[brColIsReal])
	})
	// BAL is an unconditional branch: taken is always 1 on a live row.
	cb.AssertZero("branch_bal_always_taken", func(row []field.Elem) field.Elem {
		sel := row[brColSelectorBase+brSelectorIndex("BAL")]
		return sel.Mul(field.One.Sub(row[brColTaken]))
	})
	// BEQ: taken <-> A == B, via the standard is-zero gadget over diff = A-B.
	cb.AssertZero("branch_beq_taken_matches_equality", func(row []field.Elem) field.Elem {
		sel := row[brColSelectorBase+brSelectorIndex("BEQ")]
		diff := row[brColA].Sub(row[brColB])
		return sel.Mul(diff.Mul(row[brColTaken]))
	})
	cb.AssertZero("branch_beq_not_taken_implies_nonzero_diff", func(row []field.Elem) field.Elem {
		sel := row[brColSelectorBase+brSelectorIndex("BEQ")]
		diff := row[brColA].Sub(row[brColB])
		return sel.Mul(diff.Mul(row[brColDiffInv]).Sub(field.One.Sub(row[brColTaken])))
	})
	// BNE: taken <-> A != B, the complementary gadget.
	cb.AssertZero("branch_bne_taken_matches_inequality", func(row []field.Elem) field.Elem {
		sel := row[brColSelectorBase+brSelectorIndex("BNE")]
		diff := row[brColA].Sub(row[brColB])
		return sel.Mul(diff.Mul(field.One.Sub(row[brColTaken])))
	})
	cb.AssertZero("branch_bne_taken_implies_nonzero_diff", func(row []field.Elem) field.Elem {
		sel := row[brColSelectorBase+brSelectorIndex("BNE")]
		diff := row[brColA].Sub(row[brColB])
		return sel.Mul(diff.Mul(row[brColDiffInv]).Sub(row[brColTaken]))
	})
}

func (c *BranchChip) Buses() []air.BusInteraction {
	return []air.BusInteraction{{
		Bus:    "family_branch",
		IsSend: false,
		Multiplicity: func(row []field.Elem) field.Elem {
			return row[brColIsReal]
		},
		Tuple: func(row []field.Elem) []field.Elem {
			return []field.Elem{row[brColOpcode], row[brColPC]}
		},
	}}
}
