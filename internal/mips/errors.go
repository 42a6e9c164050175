// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mips

import "errors"

// ErrorKind is the closed error-kind set of spec.md §7 that applies to the
// executor (the remaining kinds — TraceConstraintViolation,
// ShardBoundaryMismatch, MemoryConsistencyFailure, ProofInvalid,
// VerifierSelectorMismatch, DeferredObligationUnfulfilled,
// SetupArtifactCorrupted — belong to the proving/recursion/SNARK layers and
// are defined alongside those packages). All executor-level failures reduce
// to InvalidExecution; Reason distinguishes the cause for diagnostics.
type ErrorKind string

const (
	// KindInvalidExecution covers every way a guest program can fail to run
	// to completion: undefined opcode, unknown syscall, unaligned access
	// requiring alignment, memory out of range, or exhausted cycle budget
	// without HALT (spec.md §4.1 "Failure semantics").
	KindInvalidExecution ErrorKind = "InvalidExecution"
	// KindInternalError wraps a recovered panic from executor-internal code.
	KindInternalError ErrorKind = "InternalError"
)

// ExecutionError reports an InvalidExecution-class failure, with enough
// context (PC, shard, clock) to reproduce it without re-running the guest.
type ExecutionError struct {
	Kind   ErrorKind
	Reason string
	PC     uint32
	Shard  uint32
	Clock  uint64
	Err    error
}

func (e *ExecutionError) Error() string {
	return "mips: " + e.Reason
}

func (e *ExecutionError) Unwrap() error { return e.Err }

func newExecErr(reason string, pc uint32, shard uint32, clock uint64, cause error) *ExecutionError {
	return &ExecutionError{Kind: KindInvalidExecution, Reason: reason, PC: pc, Shard: shard, Clock: clock, Err: cause}
}

// Sentinel causes wrapped by ExecutionError.Err, so callers can match with
// errors.Is independent of the PC/shard/clock context.
var (
	ErrUnknownOpcode       = errors.New("mips: unknown or undefined opcode")
	ErrUnknownSyscall      = errors.New("mips: unknown syscall number")
	ErrUnalignedAccess     = errors.New("mips: unaligned memory access")
	ErrMemoryOutOfRange    = errors.New("mips: memory access out of range")
	ErrCycleBudgetExceeded = errors.New("mips: cycle budget exhausted without HALT")

	// ErrTooManyDeferredProofs is the Open Question decision recorded in
	// DESIGN.md: a run that invokes verify-zkm-proof more than
	// MaxDeferredProofs times fails cleanly rather than growing the
	// obligation set unboundedly.
	ErrTooManyDeferredProofs = errors.New("mips: too many deferred proof obligations")
)

// MaxDeferredProofs is the cap on verify-zkm-proof obligations per run.
const MaxDeferredProofs = 64
