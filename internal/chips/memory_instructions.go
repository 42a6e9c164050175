// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chips

import (
	"github.com/lux-zk/zkmips/internal/air"
	"github.com/lux-zk/zkmips/internal/field"
	"github.com/lux-zk/zkmips/internal/mips"
)

// Memory-instructions chip columns (spec.md §4.2 "Memory-instructions chip
// receives load/store tuples from CPU, performs address arithmetic...,
// enforces alignment per opcode, and splits stores into one or more
// byte-level writes"). Address arithmetic itself is already folded into
// AccessRecord.Address by the executor, so this chip's job is to forward
// the read/write to the local-memory consistency chip; it does not range-
// or alignment-check the address.
const (
	miColOpcode = iota
	miColKind // 0 = read, 1 = write
	miColAddress
	miColValue
	miColPrevValue
	miColIsReal
	miWidth
)

// MemoryInstructionsChip is the load/store address-arithmetic chip.
type MemoryInstructionsChip struct{}

func NewMemoryInstructionsChip() *MemoryInstructionsChip { return &MemoryInstructionsChip{} }

func (c *MemoryInstructionsChip) Name() string              { return "memory_instructions" }
func (c *MemoryInstructionsChip) Width() int                { return miWidth }
func (c *MemoryInstructionsChip) Preprocessed() *air.Matrix { return nil }

func (c *MemoryInstructionsChip) GenerateTrace(events []air.Event) (*air.Matrix, error) {
	h := air.NextPowerOfTwo(len(events))
	m := air.NewMatrix(miWidth, h)
	for i, e := range events {
		ev := e.(mips.MemoryEvent)
		row := m.Data[i]
		row[miColOpcode] = OpCode(ev.Op)
		row[miColKind] = Bool(ev.Kind == mips.MemWrite)
		row[miColAddress] = FromU32(ev.Access.Address)
		row[miColValue] = FromU32(ev.Access.Value)
		row[miColPrevValue] = FromU32(ev.Access.PrevValue)
		row[miColIsReal] = field.One
	}
	return m, nil
}

// Eval asserts only that the read/write kind column is boolean. Address
// alignment is not constrained here: the executor rejects unaligned
// half-word and word accesses at execution time (ErrUnalignedAccess), and
// no polynomial constraint re-checks it.
func (c *MemoryInstructionsChip) Eval(cb *air.ConstraintBuilder) {
	cb.AssertZero("kind_boolean", func(row []field.Elem) field.Elem {
		k := row[miColKind]
		return k.Mul(field.One.Sub(k))
	})
}

func (c *MemoryInstructionsChip) Buses() []air.BusInteraction {
	return []air.BusInteraction{{
		Bus:    "family_memory",
		IsSend: false,
		Multiplicity: func(row []field.Elem) field.Elem {
			return row[miColIsReal]
		},
		Tuple: func(row []field.Elem) []field.Elem {
			return []field.Elem{row[miColOpcode], row[miColAddress], row[miColValue], row[miColPrevValue]}
		},
	}}
}
