// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chips

import (
	"sort"

	"github.com/lux-zk/zkmips/internal/air"
	"github.com/lux-zk/zkmips/internal/field"
	"github.com/lux-zk/zkmips/internal/mips"
)

// ALU trace columns, shared across every family-specific ALU chip (spec.md
// §4.2 "ALU chips... Each chip receives the CPU's opcode-tagged tuples and
// constrains byte-by-byte correctness"). Byte-by-byte decomposition against
// the bytes chip is the one piece of this left unimplemented here — see
// DESIGN.md — so relations are checked directly in the base field instead,
// gated by a per-mnemonic boolean selector column rather than range-checked
// byte limbs.
const (
	aluColOpcode = iota
	aluColA
	aluColB
	aluColC
	aluColIsReal
	aluColSelectorBase
)

// aluRelation checks a = f(b, c) for one decoded opcode within a family;
// chips register one per mnemonic they own.
type aluRelation func(a, b, c field.Elem) field.Elem

// aluChip is the generic family-specific ALU chip every alu_*.go file
// instantiates with its own family tag and mnemonic->relation table.
type aluChip struct {
	name      string
	family    mips.ALUFamily
	mnemonics []string
	relations map[string]aluRelation
}

func newALUChip(name string, family mips.ALUFamily, relations map[string]aluRelation) *aluChip {
	mnemonics := make([]string, 0, len(relations))
	for op := range relations {
		mnemonics = append(mnemonics, op)
	}
	sort.Strings(mnemonics)
	return &aluChip{name: name, family: family, mnemonics: mnemonics, relations: relations}
}

func (c *aluChip) Name() string              { return c.name }
func (c *aluChip) Width() int                { return aluColSelectorBase + len(c.mnemonics) }
func (c *aluChip) Preprocessed() *air.Matrix { return nil }

func (c *aluChip) selectorIndex(op string) int {
	for i, m := range c.mnemonics {
		if m == op {
			return i
		}
	}
	return -1
}

func (c *aluChip) GenerateTrace(events []air.Event) (*air.Matrix, error) {
	h := air.NextPowerOfTwo(len(events))
	m := air.NewMatrix(c.Width(), h)
	for i, e := range events {
		ev := e.(mips.ALUEvent)
		row := m.Data[i]
		row[aluColOpcode] = OpCode(ev.Op)
		row[aluColA] = FromU32(ev.A)
		row[aluColB] = FromU32(ev.B)
		row[aluColC] = FromU32(ev.C)
		row[aluColIsReal] = field.One
		if idx := c.selectorIndex(ev.Op); idx >= 0 {
			row[aluColSelectorBase+idx] = field.One
		}
	}
	return m, nil
}

// Eval asserts exactly one mnemonic selector is set per live row, and that
// a = f(b, c) holds under whichever selector is set.
func (c *aluChip) Eval(cb *air.ConstraintBuilder) {
	cb.AssertZero("alu_"+string(c.family)+"_single_selector", func(row []field.Elem) field.Elem {
		sum := field.Zero
		for i := range c.mnemonics {
			sum = sum.Add(row[aluColSelectorBase+i])
		}
		return sum.Sub(row[aluColIsReal])
	})
	for i, op := range c.mnemonics {
		rel := c.relations[op]
		if rel == nil {
			// No closed-form field relation for this mnemonic without a
			// byte-decomposition/range-check argument (see DESIGN.md);
			// the selector-sum and is_real constraints above still apply.
			continue
		}
		i, rel := i, rel
		cb.AssertZero("alu_"+string(c.family)+"_"+op, func(row []field.Elem) field.Elem {
			sel := row[aluColSelectorBase+i]
			diff := row[aluColA].Sub(rel(row[aluColA], row[aluColB], row[aluColC]))
			return sel.Mul(diff)
		})
	}
}

func (c *aluChip) Buses() []air.BusInteraction {
	return []air.BusInteraction{{
		Bus:    "family_" + string(c.family),
		IsSend: false,
		Multiplicity: func(row []field.Elem) field.Elem {
			return row[aluColIsReal]
		},
		Tuple: func(row []field.Elem) []field.Elem {
			return []field.Elem{row[aluColOpcode], row[aluColA], row[aluColB], row[aluColC]}
		},
	}}
}
