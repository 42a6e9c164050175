// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chips

import (
	"github.com/lux-zk/zkmips/internal/air"
	"github.com/lux-zk/zkmips/internal/field"
	"github.com/lux-zk/zkmips/internal/mips"
)

// CPU trace column indices (spec.md §4.2 "CPU chip"). One row per executed
// cycle; the family-selector block has one column per entry of families,
// plus a trailing "none" selector for ops with no receiving chip.
const (
	colShard = iota
	colClockLo
	colClockHi
	colPC
	colNextPC
	colNextNextPC
	colOpcode
	colOperandA
	colOperandB
	colOperandC
	colMemAddr
	colMemValue
	colMemPrevValue
	colIsReal
	colIsHalt
	colFamilyBase
)

func cpuWidth() int { return colFamilyBase + len(families) + 1 }

// CPUChip is exactly one row per executed cycle (spec.md §4.2 "CPU chip").
// It does not itself check a = f(b, c); its local constraints are the
// boolean/selector checks, halt-vs-branch/jump exclusion and next_pc = pc + 4
// on non-branch/jump rows (the clock columns are not constrained). It sends
// an opcode-tagged tuple onto the family bus matching whichever family
// selector is set.
type CPUChip struct{}

// NewCPUChip returns the CPU chip.
func NewCPUChip() *CPUChip { return &CPUChip{} }

func (c *CPUChip) Name() string          { return "cpu" }
func (c *CPUChip) Width() int            { return cpuWidth() }
func (c *CPUChip) Preprocessed() *air.Matrix { return nil }

func (c *CPUChip) GenerateTrace(events []air.Event) (*air.Matrix, error) {
	h := air.NextPowerOfTwo(len(events))
	m := air.NewMatrix(cpuWidth(), h)
	for i, e := range events {
		ev := e.(mips.CPUEvent)
		row := m.Data[i]
		row[colShard] = FromU32(ev.Shard)
		row[colClockLo] = FromU64Lo(ev.Clock)
		row[colClockHi] = FromU64Hi(ev.Clock)
		row[colPC] = FromU32(ev.PC)
		row[colNextPC] = FromU32(ev.NextPC)
		row[colNextNextPC] = FromU32(ev.NextNextPC)
		row[colOpcode] = OpCode(ev.Ins.Op)
		row[colOperandA] = FromU32(ev.OperandA)
		row[colOperandB] = FromU32(ev.OperandB)
		row[colOperandC] = FromU32(ev.OperandC)
		if ev.MemAccess != nil {
			row[colMemAddr] = FromU32(ev.MemAccess.Address)
			row[colMemValue] = FromU32(ev.MemAccess.Value)
			row[colMemPrevValue] = FromU32(ev.MemAccess.PrevValue)
		}
		row[colIsReal] = field.One
		row[colIsHalt] = Bool(ev.IsHalt)

		fam := opFamily(ev.Ins.Op)
		if idx := familyIndex(fam); idx >= 0 {
			row[colFamilyBase+idx] = field.One
		} else {
			row[colFamilyBase+len(families)] = field.One
		}
	}
	return m, nil
}

// Eval registers the CPU chip's local constraints (spec.md §4.2 "Constraints
// enforced locally by the CPU chip").
func (c *CPUChip) Eval(cb *air.ConstraintBuilder) {
	cb.AssertZero("is_real_boolean", func(row []field.Elem) field.Elem {
		r := row[colIsReal]
		return r.Mul(field.One.Sub(r))
	})
	cb.AssertZero("is_halt_boolean", func(row []field.Elem) field.Elem {
		r := row[colIsHalt]
		return r.Mul(field.One.Sub(r))
	})
	// exactly one family selector per live row (spec.md: "exactly one
	// instruction-family selector is set per live row").
	cb.AssertZero("single_family_selector", func(row []field.Elem) field.Elem {
		sum := field.Zero
		for i := 0; i <= len(families); i++ {
			sum = sum.Add(row[colFamilyBase+i])
		}
		return sum.Sub(row[colIsReal])
	})
	// halt is exclusive with branch/jump selectors.
	cb.AssertZero("halt_excludes_branch_jump", func(row []field.Elem) field.Elem {
		branchIdx := familyIndex("branch")
		jumpIdx := familyIndex("jump")
		return row[colIsHalt].Mul(row[colFamilyBase+branchIdx].Add(row[colFamilyBase+jumpIdx]))
	})
	// sequential PC transition: next_pc = pc + 4 unless this row is a
	// branch/jump. A branch/jump row's next_pc is not constrained by any
	// chip (the branch/jump chips carry TargetPC as an unchecked witness).
	cb.AssertZero("sequential_next_pc", func(row []field.Elem) field.Elem {
		branchIdx := familyIndex("branch")
		jumpIdx := familyIndex("jump")
		isFlow := row[colFamilyBase+branchIdx].Add(row[colFamilyBase+jumpIdx])
		notFlow := row[colIsReal].Sub(isFlow)
		want := row[colPC].Add(field.New(4))
		return notFlow.Mul(row[colNextPC].Sub(want))
	})
}

// Buses declares the CPU chip's sends onto every family bus it can route
// to; the Multiplicity closure gates each send on the matching family
// selector, so a given row only contributes to the one bus its
// instruction belongs to.
func (c *CPUChip) Buses() []air.BusInteraction {
	out := make([]air.BusInteraction, 0, len(families))
	for i, fam := range families {
		i, fam := i, fam
		var tuple func(row []field.Elem) []field.Elem
		switch fam {
		case "memory":
			tuple = func(row []field.Elem) []field.Elem {
				return []field.Elem{row[colOpcode], row[colMemAddr], row[colMemValue], row[colMemPrevValue]}
			}
		case "branch", "jump":
			tuple = func(row []field.Elem) []field.Elem {
				return []field.Elem{row[colOpcode], row[colPC]}
			}
		default:
			tuple = func(row []field.Elem) []field.Elem {
				return []field.Elem{row[colOpcode], row[colOperandA], row[colOperandB], row[colOperandC]}
			}
		}
		out = append(out, air.BusInteraction{
			Bus:    "family_" + fam,
			IsSend: true,
			Multiplicity: func(row []field.Elem) field.Elem {
				return row[colFamilyBase+i]
			},
			Tuple: tuple,
		})
	}
	out = append(out, air.BusInteraction{
		Bus:          air.BusInstructionFetch,
		IsSend:       false,
		Multiplicity: func(row []field.Elem) field.Elem { return row[colIsReal] },
		Tuple: func(row []field.Elem) []field.Elem {
			return []field.Elem{row[colPC], row[colOpcode]}
		},
	})
	return out
}
