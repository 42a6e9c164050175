// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package mips implements the MIPS32r2 execution engine: ELF loading,
// register/memory state, instruction dispatch, event emission, shard
// boundary detection, and syscall dispatch (spec.md §4.1 "MIPS executor").
package mips

// numRegisters is the MIPS32 general-purpose register file size; register 0
// is hardwired to zero. Unlike KTStephano-GVM's virtual architecture (where
// register 0 is the program counter), MIPS keeps PC as a separate field and
// reserves $0 as a constant zero — spec.md §3 "32-entry general register
// file plus HI/LO plus PC".
const numRegisters = 32

// Registers is the general-purpose register file. Reg(0) is always zero;
// writes to it are silently discarded (Set enforces this).
type Registers [numRegisters]uint32

// Get reads a register, returning 0 for register 0 regardless of stored
// contents.
func (r *Registers) Get(n uint32) uint32 {
	if n == 0 {
		return 0
	}
	return r[n]
}

// Set writes a register; writes to register 0 are no-ops, matching every
// MIPS implementation's treatment of $zero.
func (r *Registers) Set(n uint32, v uint32) {
	if n == 0 {
		return
	}
	r[n] = v
}

// State is the executor's full execution state: spec.md §3 "a 32-entry
// general register file plus HI/LO plus PC; an address→word memory with
// byte-addressable load/store helpers; a monotonically increasing clock
// counter measured in cycles; a global shard index."
type State struct {
	Regs   Registers
	HI, LO uint32
	PC     uint32

	Memory *Memory

	// RegMeta tracks the (value, shard, clock) of each register's most
	// recent write, giving the CPU chip's operand-access time witnesses
	// (spec.md §4.2 "operand-access time witnesses prove the current
	// (shard, clock) strictly exceeds the previous (shard, clock) of each
	// touched register/memory cell") a source to compare against, the same
	// way Memory.access does for memory cells.
	RegMeta [numRegisters]MemCell

	Clock uint64
	Shard uint32

	// Unconstrained tracks nesting depth of enter-unconstrained/
	// exit-unconstrained regions (spec.md §4.1 "Unconstrained regions");
	// while > 0, the executor records no events for the steps it runs.
	// Memory writes made inside the region are not reverted at region exit.
	Unconstrained int

	Halted   bool
	ExitCode uint32
}

// RegisterAccess is the register-file analogue of AccessRecord, used by the
// CPU chip's operand-access time witnesses.
type RegisterAccess struct {
	Reg       uint32
	Value     uint32
	PrevValue uint32
	PrevShard uint32
	PrevClock uint64
}

// ReadReg reads a register and reports its last-write access metadata
// without updating it (a read doesn't change a register's "last write"
// time; only a write does, matching the memory consistency scheme of
// spec.md §4.2).
func (s *State) ReadReg(n uint32) (uint32, RegisterAccess) {
	val := s.Regs.Get(n)
	meta := s.RegMeta[n]
	return val, RegisterAccess{Reg: n, Value: val, PrevValue: meta.Value, PrevShard: meta.Shard, PrevClock: meta.Clock}
}

// WriteReg writes a register and returns the access record describing the
// value/time it superseded. Writes to register 0 report Reg: 0 and have no
// effect, matching Registers.Set.
func (s *State) WriteReg(n uint32, v uint32) RegisterAccess {
	meta := s.RegMeta[n]
	rec := RegisterAccess{Reg: n, Value: v, PrevValue: meta.Value, PrevShard: meta.Shard, PrevClock: meta.Clock}
	if n == 0 {
		return rec
	}
	s.Regs.Set(n, v)
	s.RegMeta[n] = MemCell{Value: v, Shard: s.Shard, Clock: s.Clock}
	return rec
}

// Snapshot is a byte-comparable summary of execution state used to check
// shard-boundary equality (spec.md §3 "Shard i's terminal state equals
// shard i+1's initial state", §8 invariant 2) without carrying the full
// (potentially huge) memory image.
type Snapshot struct {
	Regs  Registers
	HI    uint32
	LO    uint32
	PC    uint32
	Clock uint64
	Shard uint32
}

// Snapshot captures the comparable summary of the current state.
func (s *State) Snapshot() Snapshot {
	return Snapshot{Regs: s.Regs, HI: s.HI, LO: s.LO, PC: s.PC, Clock: s.Clock, Shard: s.Shard}
}

// NewInitialState builds the state a fresh run begins in: registers zero,
// PC at the program's entry point, memory equal to the program image
// extended with a writable region (spec.md §3 "Initial state").
func NewInitialState(image *ProgramImage) *State {
	return &State{
		PC:     image.Entry,
		Memory: NewMemoryFromImage(image),
		Clock:  0,
		Shard:  0,
	}
}
