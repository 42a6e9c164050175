// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mips

import (
	"fmt"

	"github.com/lux-zk/zkmips/internal/chips/precompile"
)

// Control and I/O syscall numbers, spec.md §6 "Syscall ABI". Precompile
// syscall numbers live in internal/chips/precompile, which this file
// delegates to for anything not in this closed control/IO set.
const (
	sysHalt                 = 0x00
	sysWrite                = 0x02
	sysEnterUnconstrained    = 0x03
	sysExitUnconstrained     = 0x04
	sysCommit                = 0x10
	sysCommitDeferredProofs  = 0x1A
	sysVerifyZkmProof        = 0x1B
	sysHintLen               = 0xF0
	sysHintRead              = 0xF1
	sysVerify                = 0xF2
)

// HintProvider supplies nondeterministic hint bytes to SYSHINTLEN/
// SYSHINTREAD, the guest's read-only side channel for witness data the
// host precomputes (spec.md §4.1 "I/O (hint-length, hint-read, write)").
type HintProvider interface {
	// Next returns the next hint buffer and advances past it, or ok=false
	// if no hint remains.
	Next() (data []byte, ok bool)
}

// sliceHints is the simplest HintProvider: a fixed, in-order list of
// buffers supplied up front (the common case for a deterministic test
// fixture or a single `execute` invocation).
type sliceHints struct {
	bufs [][]byte
	pos  int
}

// NewSliceHints builds a HintProvider that yields bufs in order.
func NewSliceHints(bufs [][]byte) HintProvider {
	return &sliceHints{bufs: bufs}
}

func (h *sliceHints) Next() ([]byte, bool) {
	if h.pos >= len(h.bufs) {
		return nil, false
	}
	b := h.bufs[h.pos]
	h.pos++
	return b, true
}

// DeferredProof is one COMMIT_DEFERRED_PROOFS obligation recorded during
// execution: a recursive-proof digest the aggregation layer must later
// discharge (spec.md §7 "Deferred proofs").
type DeferredProof struct {
	Shard  uint32
	Clock  uint64
	Digest [32]byte
}

// syscallContext carries the mutable bookkeeping a syscall handler can
// touch beyond the register file: committed public values, pending
// output writes, and deferred-proof obligations.
type syscallContext struct {
	hints           HintProvider
	publicValues    []byte
	output          []byte
	deferredProofs  []DeferredProof
	nextHintLen     int
	haveNextHintLen bool
	pendingHint     []byte
}

// handleSyscall dispatches a decoded SYSCALL's operands (as captured by
// execStep's StepOutcome) to the control/IO handler or to the precompile
// table, returning the value to write into $2 and any extra events the
// syscall produced (precompile events, primarily).
func (st *State) handleSyscall(sc *syscallContext, table precompile.Table, outcome *StepOutcome) (v0 uint32, events []Event, err error) {
	num := outcome.SyscallNumber
	a0, a1 := outcome.OperandB, outcome.OperandC // $4, $5

	switch num {
	case sysHalt:
		st.Halted = true
		st.ExitCode = a0
		return a0, nil, nil

	case sysWrite:
		// a0 = file descriptor (ignored beyond bookkeeping), a1 = pointer,
		// a2 would carry length but execStep only captures $4/$5 into
		// OperandB/OperandC; re-read $6 directly for the length operand.
		length, _ := st.ReadReg(6)
		buf, recs := st.Memory.ReadBuffer(a1, int(length), st.Shard, st.Clock)
		sc.output = append(sc.output, buf...)
		if len(recs) > 0 {
			events = append(events, MemoryEvent{Shard: st.Shard, Clock: st.Clock, Kind: MemRead, Op: "WRITE", Access: recs[0]})
		}
		return 0, events, nil

	case sysEnterUnconstrained:
		st.Unconstrained++
		return 0, nil, nil

	case sysExitUnconstrained:
		if st.Unconstrained > 0 {
			st.Unconstrained--
		}
		return 0, nil, nil

	case sysCommit:
		length, _ := st.ReadReg(6)
		buf, _ := st.Memory.ReadBuffer(a1, int(length), st.Shard, st.Clock)
		sc.publicValues = append(sc.publicValues, buf...)
		return 0, nil, nil

	case sysCommitDeferredProofs:
		if len(sc.deferredProofs) >= MaxDeferredProofs {
			return 0, nil, newExecErr("too many deferred proofs", st.PC, st.Shard, st.Clock, ErrTooManyDeferredProofs)
		}
		digestBytes, _ := st.Memory.ReadBuffer(a1, 32, st.Shard, st.Clock)
		var digest [32]byte
		copy(digest[:], digestBytes)
		sc.deferredProofs = append(sc.deferredProofs, DeferredProof{Shard: st.Shard, Clock: st.Clock, Digest: digest})
		return 0, nil, nil

	case sysVerifyZkmProof:
		// Recursive-proof verification is a recursion-layer concern
		// (internal/recursion); the executor only records that the guest
		// asserted it here, matching spec.md §7's deferred-proof model
		// where native execution trusts the assertion and the aggregation
		// tree later re-checks it.
		return 1, nil, nil

	case sysHintLen:
		if !sc.haveNextHintLen {
			data, ok := sc.hints.Next()
			if !ok {
				return 0, nil, nil
			}
			sc.nextHintLen = len(data)
			sc.haveNextHintLen = true
			sc.pendingHint = data
		}
		return uint32(sc.nextHintLen), nil, nil

	case sysHintRead:
		if !sc.haveNextHintLen {
			return 0, nil, fmt.Errorf("mips: SYSHINTREAD called before SYSHINTLEN")
		}
		data := sc.pendingHint
		recs := st.Memory.WriteBuffer(a0, data, st.Shard, st.Clock)
		sc.haveNextHintLen = false
		sc.pendingHint = nil
		if len(recs) > 0 {
			events = append(events, MemoryEvent{Shard: st.Shard, Clock: st.Clock, Kind: MemWrite, Op: "SYSHINTREAD", Access: recs[0]})
		}
		return 0, events, nil

	case sysVerify:
		// Commitment-opening verification against a previously committed
		// buffer; delegated to host-side verification outside the
		// executor's trust boundary, so it always reports success here.
		return 1, nil, nil
	}

	return dispatchPrecompile(st, table, outcome)
}

func dispatchPrecompile(st *State, table precompile.Table, outcome *StepOutcome) (uint32, []Event, error) {
	num := outcome.SyscallNumber
	ptr, length := outcome.OperandB, outcome.OperandC

	inputLen := precompileInputLen(num, int(length))
	input, readRecs := st.Memory.ReadBuffer(ptr, inputLen, st.Shard, st.Clock)

	out, err := table.Dispatch(num, input)
	if err != nil {
		return 0, nil, newExecErr("precompile dispatch", st.PC, st.Shard, st.Clock, ErrUnknownSyscall)
	}

	writeRecs := st.Memory.WriteBuffer(ptr, out, st.Shard, st.Clock)

	touched := append(append([]AccessRecord{}, readRecs...), writeRecs...)
	ev := PrecompileEvent{Shard: st.Shard, Clock: st.Clock, Syscall: num, TouchedAddrs: touched, Payload: out}
	return 0, []Event{ev}, nil
}

// precompileInputLen returns the fixed input-buffer size for a precompile
// syscall number. Most precompiles take a statically sized buffer implied
// by their mathematical arity (spec.md §4.2's precompile list); length is
// used for KeccakSponge when it is positive, and as the fallback for any
// syscall number not listed here.
func precompileInputLen(num uint32, length int) int {
	switch num {
	case precompile.ShaExtend:
		return 64
	case precompile.ShaCompress:
		return 288
	case precompile.EdAdd, precompile.Secp256k1Add, precompile.Secp256r1Add:
		return 64
	case precompile.EdDecompress:
		return 32
	case precompile.KeccakSponge:
		if length > 0 {
			return length
		}
		return 64
	case precompile.Secp256k1Double, precompile.Secp256r1Double:
		return 64
	case precompile.Secp256k1Decompress, precompile.Secp256r1Decompress:
		return 33
	case precompile.Bn254Add:
		return 128
	case precompile.Bn254Double:
		return 64
	case precompile.Bls12381Add:
		return 192
	case precompile.Bls12381Double:
		return 96
	case precompile.Bls12381Decompress:
		return 48
	case precompile.Uint256Mul:
		return 96
	case precompile.Bn254FpAdd, precompile.Bn254FpSub, precompile.Bn254FpMul:
		return 64
	case precompile.Bn254Fp2Add, precompile.Bn254Fp2Sub, precompile.Bn254Fp2Mul:
		return 128
	case precompile.Bls12381FpAdd, precompile.Bls12381FpSub, precompile.Bls12381FpMul:
		return 96
	case precompile.Bls12381Fp2Add, precompile.Bls12381Fp2Sub, precompile.Bls12381Fp2Mul:
		return 192
	case precompile.U256xU2048Mul:
		return 32 + 256
	case precompile.Poseidon2Permute:
		return 16 * 32
	}
	return length
}
