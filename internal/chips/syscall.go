// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chips

import (
	"sort"

	"github.com/lux-zk/zkmips/internal/air"
	"github.com/lux-zk/zkmips/internal/field"
	"github.com/lux-zk/zkmips/internal/mips"
)

// Control/IO syscall numbers this chip handles directly, mirroring the
// closed set in internal/mips/syscalls.go exactly (spec.md §4.2 "Syscall
// chip... handles control syscalls directly or re-sends a precompile-
// specific tuple to the matching precompile chip"). Anything outside this
// set is, by construction, a precompile dispatch.
const (
	scHalt                = 0x00
	scWrite               = 0x02
	scEnterUnconstrained  = 0x03
	scExitUnconstrained   = 0x04
	scCommit              = 0x10
	scCommitDeferred      = 0x1A
	scVerifyZkmProof      = 0x1B
	scHintLen             = 0xF0
	scHintRead            = 0xF1
	scVerify              = 0xF2
)

var controlSyscalls = []uint32{
	scHalt, scWrite, scEnterUnconstrained, scExitUnconstrained,
	scCommit, scCommitDeferred, scVerifyZkmProof, scHintLen, scHintRead, scVerify,
}

func init() { sort.Slice(controlSyscalls, func(i, j int) bool { return controlSyscalls[i] < controlSyscalls[j] }) }

func isControlSyscall(num uint32) bool {
	for _, c := range controlSyscalls {
		if c == num {
			return true
		}
	}
	return false
}

// Syscall-chip columns (spec.md §4.2 "Syscall chip"). One row per
// mips.SyscallEvent; IsControl selects the control/IO branch, and when it
// is unset the row's (Number, Arg1, Arg2) tuple is re-sent on
// air.BusSyscallDispatch for the matching precompile chip to receive.
const (
	scColOpcode = iota
	scColNumber
	scColArg1
	scColArg2
	scColResult
	scColIsControl
	scColIsReal
	scWidth
)

// SyscallChip receives the CPU chip's syscall-family tuple and splits it
// into the control/IO path (checked here) and the precompile-dispatch path
// (re-sent onto air.BusSyscallDispatch; the arithmetic behind each
// precompile lives in internal/chips/precompile and in a future precompile
// chip that receives this chip's send, per spec.md §4.2's "family-specific
// chip receives that tuple" pattern).
type SyscallChip struct{}

func NewSyscallChip() *SyscallChip { return &SyscallChip{} }

func (c *SyscallChip) Name() string              { return "syscall" }
func (c *SyscallChip) Width() int                { return scWidth }
func (c *SyscallChip) Preprocessed() *air.Matrix { return nil }

func (c *SyscallChip) GenerateTrace(events []air.Event) (*air.Matrix, error) {
	h := air.NextPowerOfTwo(len(events))
	m := air.NewMatrix(scWidth, h)
	for i, e := range events {
		ev := e.(mips.SyscallEvent)
		row := m.Data[i]
		row[scColOpcode] = OpCode("SYSCALL")
		row[scColNumber] = FromU32(ev.Number)
		row[scColArg1] = FromU32(ev.Arg1)
		row[scColArg2] = FromU32(ev.Arg2)
		row[scColResult] = FromU32(ev.Result)
		row[scColIsControl] = Bool(isControlSyscall(ev.Number))
		row[scColIsReal] = field.One
	}
	return m, nil
}

// Eval registers the chip's own local constraints. The control syscalls'
// individual semantics (halt's exit code, commit's public-values digest,
// hint-len/hint-read's provider contract) are host-side bookkeeping rather
// than field arithmetic over a = f(b, c) — like the branch/ALU chips'
// structural-only instances, no closed-form relation is asserted for them
// here (see DESIGN.md); only the selector's well-formedness is checked.
func (c *SyscallChip) Eval(cb *air.ConstraintBuilder) {
	cb.AssertZero("syscall_is_real_boolean", func(row []field.Elem) field.Elem {
		r := row[scColIsReal]
		return r.Mul(field.One.Sub(r))
	})
	cb.AssertZero("syscall_is_control_boolean", func(row []field.Elem) field.Elem {
		b := row[scColIsControl]
		return b.Mul(field.One.Sub(b))
	})
}

// Buses receives the CPU chip's syscall-family tuple and, on the
// non-control rows, re-sends the same (Number, Arg1, Arg2) payload onto
// air.BusSyscallDispatch for a precompile chip to pick up. Both
// interactions share the row's IsReal-gated multiplicity; the dispatch
// send is additionally gated by (1 - IsControl) so control rows never
// leak an unmatched send onto that bus.
func (c *SyscallChip) Buses() []air.BusInteraction {
	return []air.BusInteraction{
		{
			Bus:    "family_syscall",
			IsSend: false,
			Multiplicity: func(row []field.Elem) field.Elem {
				return row[scColIsReal]
			},
			Tuple: func(row []field.Elem) []field.Elem {
				return []field.Elem{row[scColOpcode], row[scColNumber], row[scColArg1], row[scColArg2]}
			},
		},
		{
			Bus:    air.BusSyscallDispatch,
			IsSend: true,
			Multiplicity: func(row []field.Elem) field.Elem {
				return row[scColIsReal].Mul(field.One.Sub(row[scColIsControl]))
			},
			Tuple: func(row []field.Elem) []field.Elem {
				return []field.Elem{row[scColNumber], row[scColArg1], row[scColArg2]}
			},
		},
	}
}
