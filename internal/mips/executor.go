// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mips

import (
	"context"
	"fmt"
	"sort"

	"github.com/lux-zk/zkmips/internal/chips/precompile"
)

// ExecutorConfig bundles the executor's runtime knobs: shard sizing, the
// precompile table it dispatches native syscalls to, the guest's hint
// source, and an optional hard cycle ceiling across the whole run (spec.md
// §8 "InvalidExecution... exhausted cycle budget without HALT").
type ExecutorConfig struct {
	Shard          ShardConfig
	Precompiles    precompile.Table
	Hints          HintProvider
	MaxTotalCycles uint64 // 0 = unbounded
}

// DefaultExecutorConfig returns the configuration used by `execute` runs and
// tests: the default shard size, every precompile wired, and no hints.
func DefaultExecutorConfig() ExecutorConfig {
	return ExecutorConfig{
		Shard:       DefaultShardConfig(),
		Precompiles: precompile.Default(),
		Hints:       NewSliceHints(nil),
	}
}

// CycleReport is the supplemented per-opcode cycle histogram (SPEC_FULL.md
// "Supplemented features"): a breakdown of where cycles went, useful for
// guest-program profiling the way a real zkMIPS toolchain reports it.
type CycleReport struct {
	TotalCycles uint64
	ByOpcode    map[string]uint64
}

func newCycleReport() CycleReport {
	return CycleReport{ByOpcode: make(map[string]uint64)}
}

func (r *CycleReport) record(op string) {
	r.TotalCycles++
	r.ByOpcode[op]++
}

// ExecutionResult is everything a completed run produces: the ordered
// shard list (each owning its own events), the guest's committed public
// values and raw stdout-style output, any COMMIT_DEFERRED_PROOFS
// obligations recorded, the exit code, and the cycle report.
type ExecutionResult struct {
	Shards         []*Shard
	PublicValues   []byte
	Output         []byte
	DeferredProofs []DeferredProof
	ExitCode       uint32
	Cycles         CycleReport
}

// Executor runs the fetch/decode/execute loop over a MIPS program image,
// cutting shards per ExecutorConfig.Shard and dispatching syscalls,
// including precompiles, via syscalls.go (spec.md §4.1 "MIPS executor").
type Executor struct {
	state *State
	cfg   ExecutorConfig
	sc    syscallContext

	shards         []*Shard
	current        *Shard
	shardStartClk  uint64
	cycles         CycleReport

	touchedFirst map[uint32]AccessRecord
	touchedLast  map[uint32]memTouch
}

// memTouch pairs an access record with the global clock it happened at.
// AccessRecord itself only carries the *previous* (shard, clock) a value
// was superseded at (memory.go's PrevShard/PrevClock); closeShard needs the
// clock of the touch itself to hand the next shard (or the global chip) a
// correctly-chained finalize tuple.
type memTouch struct {
	rec   AccessRecord
	clock uint64
}

// NewExecutor creates an executor over a fresh initial state for image.
func NewExecutor(image *ProgramImage, cfg ExecutorConfig) (*Executor, error) {
	if err := cfg.Shard.Validate(); err != nil {
		return nil, err
	}
	if cfg.Precompiles == nil {
		cfg.Precompiles = precompile.Default()
	}
	if cfg.Hints == nil {
		cfg.Hints = NewSliceHints(nil)
	}
	return &Executor{
		state:  NewInitialState(image),
		cfg:    cfg,
		sc:     syscallContext{hints: cfg.Hints},
		cycles: newCycleReport(),
	}, nil
}

// State exposes the executor's live state, mainly for tests that want to
// assert on intermediate snapshots.
func (e *Executor) State() *State { return e.state }

func (e *Executor) openShard() {
	idx := uint32(len(e.shards))
	e.current = newShard(idx, e.state.Snapshot())
	e.state.Shard = idx
	e.shardStartClk = e.state.Clock
	e.touchedFirst = make(map[uint32]AccessRecord)
	e.touchedLast = make(map[uint32]memTouch)
}

// trackMemAccess records rec as part of the shard's touched-address set,
// feeding the global chip's init/finalize tuples (spec.md §4.2 "Memory
// consistency algorithm" steps 1 and 4): the first access to an address
// within a shard fixes its init value (the PrevValue it superseded), and
// the last access fixes its finalization value. e.state.Clock never resets
// across shards (only e.state.Shard advances), so it alone uniquely
// chains a shard's finalize tuple to the next shard's init tuple for the
// same address.
func (e *Executor) trackMemAccess(rec AccessRecord) {
	if _, ok := e.touchedFirst[rec.Address]; !ok {
		e.touchedFirst[rec.Address] = rec
	}
	e.touchedLast[rec.Address] = memTouch{rec: rec, clock: e.state.Clock}
}

func (e *Executor) closeShard() {
	e.current.Terminal = e.state.Snapshot()

	addrs := make([]uint32, 0, len(e.touchedFirst))
	for addr := range e.touchedFirst {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	for _, addr := range addrs {
		first := e.touchedFirst[addr]
		e.current.DeferredInit = append(e.current.DeferredInit, AccessRecord{
			Address: addr, Value: first.PrevValue, PrevShard: first.PrevShard, PrevClock: first.PrevClock,
		})
		last := e.touchedLast[addr]
		// PrevClock here is repurposed to carry this touch's own clock (not
		// the value it superseded, which finalize tuples don't need) so the
		// next shard's init tuple for the same address lines up exactly.
		e.current.DeferredFinal = append(e.current.DeferredFinal, AccessRecord{
			Address: addr, Value: last.rec.Value, PrevClock: last.clock,
		})
	}

	e.shards = append(e.shards, e.current)
}

// Run drives the executor to completion (HALT) or failure. It returns
// ExecutionError-wrapped sentinels for every InvalidExecution condition
// spec.md §8 enumerates. A panic inside the loop is recovered and returned
// as an ExecutionError of kind KindInternalError.
func (e *Executor) Run(ctx context.Context) (result *ExecutionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &ExecutionError{Kind: KindInternalError, Reason: fmt.Sprintf("internal error: %v", r),
				PC: e.state.PC, Shard: e.state.Shard, Clock: e.state.Clock}
		}
	}()
	e.openShard()

	var pendingBranch *uint32

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if e.cfg.MaxTotalCycles != 0 && e.cycles.TotalCycles >= e.cfg.MaxTotalCycles {
			return nil, newExecErr("cycle budget exhausted", e.state.PC, e.state.Shard, e.state.Clock, ErrCycleBudgetExceeded)
		}

		pc := e.state.PC
		raw := e.state.Memory.FetchWord(pc)
		ins := Decode(raw)

		outcome, err := execStep(e.state, ins, pc)
		if err != nil {
			return nil, err
		}

		var extraEvents []Event
		if outcome.IsSyscall {
			v0, evs, serr := e.state.handleSyscall(&e.sc, e.cfg.Precompiles, &outcome)
			if serr != nil {
				return nil, serr
			}
			outcome.setReg(e.state, 2, v0)
			extraEvents = append(evs, SyscallEvent{
				Shard: e.state.Shard, Clock: e.state.Clock,
				Number: outcome.OperandA, Arg1: outcome.OperandB, Arg2: outcome.OperandC,
				Result: v0,
			})
		}

		var next uint32
		if pendingBranch != nil {
			next = *pendingBranch
			pendingBranch = nil
		} else {
			next = pc + 4
		}
		if outcome.BranchTarget != nil {
			t := *outcome.BranchTarget
			pendingBranch = &t
		}
		nextNext := next + 4
		if pendingBranch != nil {
			nextNext = *pendingBranch
		}

		if e.state.Unconstrained == 0 {
			cpuEv := CPUEvent{
				Shard:       e.state.Shard,
				Clock:       e.state.Clock,
				PC:          pc,
				NextPC:      next,
				NextNextPC:  nextNext,
				Ins:         ins,
				OperandA:    outcome.OperandA,
				OperandB:    outcome.OperandB,
				OperandC:    outcome.OperandC,
				RegAccesses: outcome.RegAccesses,
				MemAccess:   outcome.MemAccess,
				IsHalt:      e.state.Halted,
			}
			e.current.emit("cpu", cpuEv)
			if outcome.MemAccess != nil {
				e.trackMemAccess(*outcome.MemAccess)
			}
			for _, fev := range outcome.FamilyEvents {
				e.current.emit(fev.ChipName(), fev)
				if mev, ok := fev.(MemoryEvent); ok {
					e.trackMemAccess(mev.Access)
				}
			}
			for _, sev := range extraEvents {
				e.current.emit(sev.ChipName(), sev)
				switch v := sev.(type) {
				case MemoryEvent:
					e.trackMemAccess(v.Access)
				case PrecompileEvent:
					for _, rec := range v.TouchedAddrs {
						e.trackMemAccess(rec)
					}
				}
			}
			e.cycles.record(ins.Op)
		}

		e.state.PC = next
		e.state.Clock++

		if e.state.Halted {
			break
		}

		if uint64(e.state.Clock-e.shardStartClk) >= e.cfg.Shard.MaxCycles {
			e.closeShard()
			e.openShard()
		}
	}

	e.closeShard()

	return &ExecutionResult{
		Shards:         e.shards,
		PublicValues:   e.sc.publicValues,
		Output:         e.sc.output,
		DeferredProofs: e.sc.deferredProofs,
		ExitCode:       e.state.ExitCode,
		Cycles:         e.cycles,
	}, nil
}
