// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package recursionair

import (
	"fmt"
	"sort"

	"github.com/lux-zk/zkmips/internal/air"
	"github.com/lux-zk/zkmips/internal/field"
)

var baseALUOps = []string{"ADD", "MUL", "SUB"}

func init() { sort.Strings(baseALUOps) }

const (
	baColA = iota
	baColB
	baColC
	baColIsReal
	baColSelectorBase
)

func baWidth() int { return baColSelectorBase + len(baseALUOps) }

func baSelectorIndex(op string) int {
	for i, o := range baseALUOps {
		if o == op {
			return i
		}
	}
	return -1
}

// BaseALUChip checks the recursion program's F_p arithmetic gates (spec.md
// §4.4 "base ... ALU chips over F_p"). Grounded directly on
// internal/chips/alu_addsub.go's add/sub relation pattern, generalized to
// also cover MUL since the recursion ALU folds all three into one chip
// rather than splitting addsub/mul as the MIPS AIR does.
type BaseALUChip struct{}

func NewBaseALUChip() *BaseALUChip { return &BaseALUChip{} }

func (c *BaseALUChip) Name() string              { return "recursion_base_alu" }
func (c *BaseALUChip) Width() int                { return baWidth() }
func (c *BaseALUChip) Preprocessed() *air.Matrix { return nil }

func (c *BaseALUChip) GenerateTrace(events []air.Event) (*air.Matrix, error) {
	h := air.NextPowerOfTwo(len(events))
	m := air.NewMatrix(baWidth(), h)
	for i, e := range events {
		ev := e.(BaseALUEvent)
		row := m.Data[i]
		row[baColA] = field.New(ev.A)
		row[baColB] = field.New(ev.B)
		row[baColC] = field.New(ev.C)
		row[baColIsReal] = field.One
		if idx := baSelectorIndex(ev.Op); idx >= 0 {
			row[baColSelectorBase+idx] = field.One
		}
	}
	return m, nil
}

func (c *BaseALUChip) Eval(cb *air.ConstraintBuilder) {
	cb.AssertZero("base_alu_is_real_boolean", func(row []field.Elem) field.Elem {
		r := row[baColIsReal]
		return r.Mul(field.One.Sub(r))
	})
	cb.AssertZero("base_alu_single_selector", func(row []field.Elem) field.Elem {
		sum := field.Zero
		for i := range baseALUOps {
			sum = sum.Add(row[baColSelectorBase+i])
		}
		return sum.Sub(row[baColIsReal])
	})
	addIdx, mulIdx, subIdx := baSelectorIndex("ADD"), baSelectorIndex("MUL"), baSelectorIndex("SUB")
	cb.AssertZero("base_alu_add_checked", func(row []field.Elem) field.Elem {
		want := row[baColB].Add(row[baColC])
		return row[baColSelectorBase+addIdx].Mul(row[baColA].Sub(want))
	})
	cb.AssertZero("base_alu_sub_checked", func(row []field.Elem) field.Elem {
		want := row[baColB].Sub(row[baColC])
		return row[baColSelectorBase+subIdx].Mul(row[baColA].Sub(want))
	})
	cb.AssertZero("base_alu_mul_checked", func(row []field.Elem) field.Elem {
		want := row[baColB].Mul(row[baColC])
		return row[baColSelectorBase+mulIdx].Mul(row[baColA].Sub(want))
	})
}

func (c *BaseALUChip) Buses() []air.BusInteraction { return nil }

const (
	eaColIsReal = iota
	eaColSelectorBase
)

func eaWidth() int { return eaColSelectorBase + len(baseALUOps) + 4*3 }

// ExtALUChip is the F_{p^4}-valued counterpart of BaseALUChip (spec.md
// §4.4 "ext ALU chips ... over F_p4"). Grounded the same way, lifted to
// field.Ext4 limb-by-limb columns (4 base-field columns per operand).
type ExtALUChip struct{}

func NewExtALUChip() *ExtALUChip { return &ExtALUChip{} }

func (c *ExtALUChip) Name() string              { return "recursion_ext_alu" }
func (c *ExtALUChip) Width() int                { return eaWidth() }
func (c *ExtALUChip) Preprocessed() *air.Matrix { return nil }

func extCols(base int) (a, b, cc [4]int) {
	for i := 0; i < 4; i++ {
		a[i] = base + i
		b[i] = base + 4 + i
		cc[i] = base + 8 + i
	}
	return
}

func (c *ExtALUChip) GenerateTrace(events []air.Event) (*air.Matrix, error) {
	h := air.NextPowerOfTwo(len(events))
	m := air.NewMatrix(eaWidth(), h)
	limbBase := eaColSelectorBase + len(baseALUOps)
	aCols, bCols, cCols := extCols(limbBase)
	for i, e := range events {
		ev := e.(ExtALUEvent)
		row := m.Data[i]
		for j := 0; j < 4; j++ {
			row[aCols[j]] = field.New(ev.A[j])
			row[bCols[j]] = field.New(ev.B[j])
			row[cCols[j]] = field.New(ev.C[j])
		}
		row[eaColIsReal] = field.One
		if idx := baSelectorIndex(ev.Op); idx >= 0 {
			row[eaColSelectorBase+idx] = field.One
		}
	}
	return m, nil
}

func (c *ExtALUChip) Eval(cb *air.ConstraintBuilder) {
	limbBase := eaColSelectorBase + len(baseALUOps)
	aCols, bCols, cCols := extCols(limbBase)
	cb.AssertZero("ext_alu_is_real_boolean", func(row []field.Elem) field.Elem {
		r := row[eaColIsReal]
		return r.Mul(field.One.Sub(r))
	})
	cb.AssertZero("ext_alu_single_selector", func(row []field.Elem) field.Elem {
		sum := field.Zero
		for i := range baseALUOps {
			sum = sum.Add(row[eaColSelectorBase+i])
		}
		return sum.Sub(row[eaColIsReal])
	})
	addIdx, subIdx := baSelectorIndex("ADD"), baSelectorIndex("SUB")
	// ADD/SUB are checked limb-wise (F_{p^4} addition/subtraction is
	// coordinatewise over the base field); MUL's coefficient-mixing
	// convolution is left structural-only, matching the MIPS AIR's own
	// treatment of multiplication beyond the single-limb case (see
	// internal/chips/alu_mul.go and DESIGN.md).
	for j := 0; j < 4; j++ {
		j := j
		cb.AssertZero(fmt.Sprintf("ext_alu_add_checked_limb_%d", j), func(row []field.Elem) field.Elem {
			want := row[bCols[j]].Add(row[cCols[j]])
			return row[eaColSelectorBase+addIdx].Mul(row[aCols[j]].Sub(want))
		})
		cb.AssertZero(fmt.Sprintf("ext_alu_sub_checked_limb_%d", j), func(row []field.Elem) field.Elem {
			want := row[bCols[j]].Sub(row[cCols[j]])
			return row[eaColSelectorBase+subIdx].Mul(row[aCols[j]].Sub(want))
		})
	}
}

func (c *ExtALUChip) Buses() []air.BusInteraction { return nil }
