// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package recursionair

import (
	"github.com/lux-zk/zkmips/internal/air"
	"github.com/lux-zk/zkmips/internal/field"
)

const (
	memColAddress = iota
	memColValue
	memColIsWrite
	memColIsReal
	memWidth
)

// varMemChip is the recursion program's variable-slot memory chip: any
// address the program computes at runtime, checked only for the
// well-formedness of its own columns (is_real and is_write boolean).
// Address/value consistency across a read-after-write chain is not checked
// by this chip, by a bus (Buses returns nil), or by the recursion driver.
// Grounded on internal/chips/memory_local.go's column shape, without that
// chip's curve-accumulator bookkeeping.
type varMemChip struct{ name string }

func newVarMemChip() *varMemChip { return &varMemChip{name: "recursion_var_mem"} }

func (c *varMemChip) Name() string              { return c.name }
func (c *varMemChip) Width() int                { return memWidth }
func (c *varMemChip) Preprocessed() *air.Matrix { return nil }

func (c *varMemChip) GenerateTrace(events []air.Event) (*air.Matrix, error) {
	h := air.NextPowerOfTwo(len(events))
	m := air.NewMatrix(memWidth, h)
	for i, e := range events {
		ev := e.(VarMemoryEvent)
		row := m.Data[i]
		row[memColAddress] = field.New(ev.Address)
		row[memColValue] = field.New(ev.Value)
		row[memColIsWrite] = Bool(ev.IsWrite)
		row[memColIsReal] = field.One
	}
	return m, nil
}

func (c *varMemChip) Eval(cb *air.ConstraintBuilder) {
	cb.AssertZero(c.name+"_is_real_boolean", func(row []field.Elem) field.Elem {
		r := row[memColIsReal]
		return r.Mul(field.One.Sub(r))
	})
	cb.AssertZero(c.name+"_is_write_boolean", func(row []field.Elem) field.Elem {
		w := row[memColIsWrite]
		return w.Mul(field.One.Sub(w))
	})
}

func (c *varMemChip) Buses() []air.BusInteraction { return nil }

// NewVarMemChip constructs the variable-slot memory chip.
func NewVarMemChip() air.Chip { return newVarMemChip() }

// constMemChip is the recursion program's constant-slot memory chip: one
// fixed address per program-counter position, known at recursion-program
// compile time (spec.md §4.4 "memory chips (variable-slot and
// constant-slot)"), mirrored structurally on varMemChip but kept as a
// distinct chip name since the two have independent preprocessed layouts
// in the real implementation this models.
type constMemChip struct{ name string }

func newConstMemChip() *constMemChip { return &constMemChip{name: "recursion_const_mem"} }

func (c *constMemChip) Name() string              { return c.name }
func (c *constMemChip) Width() int                { return memWidth }
func (c *constMemChip) Preprocessed() *air.Matrix { return nil }

func (c *constMemChip) GenerateTrace(events []air.Event) (*air.Matrix, error) {
	h := air.NextPowerOfTwo(len(events))
	m := air.NewMatrix(memWidth, h)
	for i, e := range events {
		ev := e.(ConstMemoryEvent)
		row := m.Data[i]
		row[memColAddress] = field.New(ev.Address)
		row[memColValue] = field.New(ev.Value)
		row[memColIsWrite] = Bool(ev.IsWrite)
		row[memColIsReal] = field.One
	}
	return m, nil
}

func (c *constMemChip) Eval(cb *air.ConstraintBuilder) {
	cb.AssertZero(c.name+"_is_real_boolean", func(row []field.Elem) field.Elem {
		r := row[memColIsReal]
		return r.Mul(field.One.Sub(r))
	})
}

func (c *constMemChip) Buses() []air.BusInteraction { return nil }

// NewConstMemChip constructs the constant-slot memory chip.
func NewConstMemChip() air.Chip { return newConstMemChip() }

// Bool lifts a boolean into {0,1} ⊂ F_p, mirroring internal/chips.Bool;
// duplicated rather than imported since internal/chips imports
// internal/mips and would create an import cycle back through this
// package's future wiring from internal/recursion.
func Bool(b bool) field.Elem {
	if b {
		return field.One
	}
	return field.Zero
}
