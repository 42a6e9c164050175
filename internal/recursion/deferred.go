// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package recursion

import (
	"fmt"

	"github.com/lux-zk/zkmips/internal/mips"
	"github.com/lux-zk/zkmips/internal/stark"
)

// Obligation pairs one executor-recorded DeferredProof (a
// COMMIT_DEFERRED_PROOFS syscall's digest) with the actual recursion
// proof the guest claimed would later discharge it.
type Obligation struct {
	Recorded mips.DeferredProof
	Proof    *ReduceProof
}

// ErrDeferredObligationUnfulfilled is spec.md §7's
// DeferredObligationUnfulfilled error kind: a guest committed to a
// verify-zkm-proof digest that the aggregation run cannot resolve to a
// proof that both verifies and hashes to the recorded digest.
type ErrDeferredObligationUnfulfilled struct {
	Shard uint32
	Clock uint64
}

func (e *ErrDeferredObligationUnfulfilled) Error() string {
	return fmt.Sprintf("recursion: deferred proof obligation from shard %d clock %d unfulfilled", e.Shard, e.Clock)
}

// ResolveDeferred discharges every COMMIT_DEFERRED_PROOFS obligation the
// executor recorded (spec.md §4.4 "Deferred verification (absorbs
// verify-zkm-proof obligations)"): for each, the supplied proof must
// verify under cfg and its digest must match what the guest committed to.
// A run with more obligations than mips.MaxDeferredProofs never reaches
// here (the executor itself rejects it with ErrTooManyDeferredProofs), so
// this function only re-validates the ones that were allowed through.
func ResolveDeferred(cfg Config, obligations []Obligation) error {
	for _, ob := range obligations {
		if ob.Proof == nil {
			return &ErrDeferredObligationUnfulfilled{Shard: ob.Recorded.Shard, Clock: ob.Recorded.Clock}
		}
		if ob.Proof.Digest != ob.Recorded.Digest {
			return &ErrDeferredObligationUnfulfilled{Shard: ob.Recorded.Shard, Clock: ob.Recorded.Clock}
		}
		if err := stark.Verify(cfg.Stark, ob.Proof.Proof); err != nil {
			return &ErrDeferredObligationUnfulfilled{Shard: ob.Recorded.Shard, Clock: ob.Recorded.Clock}
		}
	}
	return nil
}
