// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package recursionair

import (
	"math/bits"

	"github.com/lux-zk/zkmips/internal/air"
	"github.com/lux-zk/zkmips/internal/field"
)

const (
	erbColBase     = iota
	erbColExponent
	erbColNumBits
	erbColResult
	erbColIsReal
	erbWidth
)

// ExpReverseBitsChip computes base^(bit-reversal of exponent over numBits
// bits) (spec.md §4.4 "an exp-reverse-bits chip used by FRI query-point
// derivation"), grounded on internal/fri.go's use of
// domainGenerator.Exp(...) to recompute twiddle factors from a query index
// — this chip is the in-circuit version of that same exponentiation, with
// the exponent's bits reversed first (FRI query points are derived from a
// bit-reversed index over the LDE domain). Like the MIPS AIR's shift/clz
// chips, bit-decomposition itself is not expressed as field constraints
// here (see DESIGN.md); Result is recomputed host-side by the trace
// builder and only range-gated as IsReal here.
type ExpReverseBitsChip struct{}

func NewExpReverseBitsChip() *ExpReverseBitsChip { return &ExpReverseBitsChip{} }

func (c *ExpReverseBitsChip) Name() string              { return "recursion_exp_reverse_bits" }
func (c *ExpReverseBitsChip) Width() int                { return erbWidth }
func (c *ExpReverseBitsChip) Preprocessed() *air.Matrix { return nil }

// ReverseBits reverses the low numBits bits of x, the exponent
// transformation this chip's events are built from.
func ReverseBits(x uint32, numBits int) uint32 {
	return bits.Reverse32(x) >> (32 - numBits)
}

func (c *ExpReverseBitsChip) GenerateTrace(events []air.Event) (*air.Matrix, error) {
	h := air.NextPowerOfTwo(len(events))
	m := air.NewMatrix(erbWidth, h)
	for i, e := range events {
		ev := e.(ExpReverseBitsEvent)
		row := m.Data[i]
		row[erbColBase] = field.New(ev.Base)
		row[erbColExponent] = field.New(uint64(ev.Exponent))
		row[erbColNumBits] = field.New(uint64(ev.NumBits))
		row[erbColResult] = field.New(ev.Result)
		row[erbColIsReal] = field.One
	}
	return m, nil
}

func (c *ExpReverseBitsChip) Eval(cb *air.ConstraintBuilder) {
	cb.AssertZero("exp_reverse_bits_is_real_boolean", func(row []field.Elem) field.Elem {
		r := row[erbColIsReal]
		return r.Mul(field.One.Sub(r))
	})
}

func (c *ExpReverseBitsChip) Buses() []air.BusInteraction { return nil }

const (
	selColCond = iota
	selColA
	selColB
	selColResult
	selColIsReal
	selWidth
)

// SelectChip is the recursion AIR's circuit-level multiplexer (spec.md
// §4.4 "a select chip for circuit-level multiplexing"): Result = Cond ? A
// : B, expressed as the standard linear-selector identity
// Result = Cond*A + (1-Cond)*B, checked directly (no structural-only
// simplification needed — this relation is a closed-form affine identity,
// unlike the signed-comparison/shift relations elsewhere in this repo).
type SelectChip struct{}

func NewSelectChip() *SelectChip { return &SelectChip{} }

func (c *SelectChip) Name() string              { return "recursion_select" }
func (c *SelectChip) Width() int                { return selWidth }
func (c *SelectChip) Preprocessed() *air.Matrix { return nil }

func (c *SelectChip) GenerateTrace(events []air.Event) (*air.Matrix, error) {
	h := air.NextPowerOfTwo(len(events))
	m := air.NewMatrix(selWidth, h)
	for i, e := range events {
		ev := e.(SelectEvent)
		row := m.Data[i]
		row[selColCond] = Bool(ev.Cond)
		row[selColA] = field.New(ev.A)
		row[selColB] = field.New(ev.B)
		row[selColResult] = field.New(ev.Result)
		row[selColIsReal] = field.One
	}
	return m, nil
}

func (c *SelectChip) Eval(cb *air.ConstraintBuilder) {
	cb.AssertZero("select_is_real_boolean", func(row []field.Elem) field.Elem {
		r := row[selColIsReal]
		return r.Mul(field.One.Sub(r))
	})
	cb.AssertZero("select_cond_boolean", func(row []field.Elem) field.Elem {
		cond := row[selColCond]
		return cond.Mul(field.One.Sub(cond))
	})
	cb.AssertZero("select_result_checked", func(row []field.Elem) field.Elem {
		cond := row[selColCond]
		want := cond.Mul(row[selColA]).Add(field.One.Sub(cond).Mul(row[selColB]))
		return row[selColIsReal].Mul(row[selColResult].Sub(want))
	})
}

func (c *SelectChip) Buses() []air.BusInteraction { return nil }

const (
	pvColIndex = iota
	pvColValue
	pvColIsReal
	pvWidth
)

// PublicValuesChip carries recursion public inputs unchanged through a
// layer (spec.md §4.4 "a public-values chip that carries recursion public
// inputs through layers"). Grounded on internal/chips/program.go's
// preprocessed-index/value column shape; unlike program.go there is no
// lookup-bus join here, and neither this chip nor the recursion driver
// compares the committed column between layers.
type PublicValuesChip struct{}

func NewPublicValuesChip() *PublicValuesChip { return &PublicValuesChip{} }

func (c *PublicValuesChip) Name() string              { return "recursion_public_values" }
func (c *PublicValuesChip) Width() int                { return pvWidth }
func (c *PublicValuesChip) Preprocessed() *air.Matrix { return nil }

func (c *PublicValuesChip) GenerateTrace(events []air.Event) (*air.Matrix, error) {
	h := air.NextPowerOfTwo(len(events))
	m := air.NewMatrix(pvWidth, h)
	for i, e := range events {
		ev := e.(PublicValuesEvent)
		row := m.Data[i]
		row[pvColIndex] = field.New(ev.Index)
		row[pvColValue] = field.New(ev.Value)
		row[pvColIsReal] = field.One
	}
	return m, nil
}

func (c *PublicValuesChip) Eval(cb *air.ConstraintBuilder) {
	cb.AssertZero("public_values_is_real_boolean", func(row []field.Elem) field.Elem {
		r := row[pvColIsReal]
		return r.Mul(field.One.Sub(r))
	})
}

func (c *PublicValuesChip) Buses() []air.BusInteraction { return nil }
