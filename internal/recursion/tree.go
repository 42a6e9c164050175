// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package recursion drives the layered recursive aggregation of spec.md
// §4.4: a base layer reduces the executor's per-shard STARK proofs into
// one reduce-proof per batch, intermediate layers fold reduce-proofs
// two-to-one until a single proof remains, deferred verify-zkm-proof
// obligations are discharged, and a shrink stage then a wrap stage prepare
// the final proof for SNARK wrapping (internal/snarkwrap). Every layer's
// proof is produced by internal/stark over internal/recursion/air's chip
// set — to this package a "layer" is just another air.Machine evaluation,
// mirroring how internal/chips' shard machine is just another air.Machine
// evaluation to internal/stark.
//
// Grounded on the teacher's threshold/client.go ThresholdClient, which
// drives independent MPC protocol rounds across a worker pool; Tree
// generalizes that "many independent units, bounded concurrency, collect
// results" shape to proof-tree layers (spec.md §5 "the recursion tree is
// evaluated in a dependency-respecting topological order and distinct
// subtrees can execute concurrently").
package recursion

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/lux-zk/zkmips/internal/air"
	"github.com/lux-zk/zkmips/internal/poseidonhash"
	recursionair "github.com/lux-zk/zkmips/internal/recursion/air"
	"github.com/lux-zk/zkmips/internal/stark"
	"github.com/lux-zk/zkmips/internal/workerpool"
)

// ShardProof is one core-shard STARK proof (produced by internal/stark
// over internal/chips' machine), the base layer's input unit.
type ShardProof struct {
	ShardIndex uint32
	Proof      *stark.Proof
}

// ReduceProof is the output of any base or intermediate layer: a STARK
// proof over the recursion AIR whose trace carries its children's digests
// (it does not re-verify each child's own proof), plus Digest, the children's combined digest
// this proof's public-values events carry forward so the next layer up
// can chain without re-deriving it from scratch.
type ReduceProof struct {
	Proof  *stark.Proof
	Digest [32]byte
}

// Config bundles the recursion driver's knobs: the STARK config each
// layer proves under, the base layer's batch size (spec.md §4.4 "first
// layer configurable batch size"), and the worker pool concurrency bound.
type Config struct {
	Stark          stark.Config
	BaseBatchSize  int // shard proofs folded per base-layer reduce proof
	MaxConcurrency int
}

// DefaultConfig mirrors stark.DefaultConfig with a batch size of 4 and an
// unbounded worker pool (workerpool.New's non-positive convention),
// matching spec.md §5's "distinct subtrees can execute concurrently"
// without this package pinning a specific core count.
func DefaultConfig() Config {
	return Config{Stark: stark.DefaultConfig(), BaseBatchSize: 4, MaxConcurrency: 0}
}

// digestChildren folds a batch of child digests into one via repeated
// pairwise hashing — the same structural pattern internal/mmcs.Commit
// uses to build a Merkle root from leaf digests, reused here rather than
// inventing a second hash-tree convention. An odd one out is carried
// forward unhashed to the next level (mmcs instead hashes an odd node
// with itself).
func digestChildren(digests [][32]byte) [32]byte {
	if len(digests) == 0 {
		return [32]byte{}
	}
	level := digests
	for len(level) > 1 {
		next := make([][32]byte, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 < len(level) {
				next = append(next, poseidonhash.HashPair(level[i], level[i+1]))
			} else {
				next = append(next, level[i])
			}
		}
		level = next
	}
	return level[0]
}

// publicValuesEvents lays a batch of child digests into the recursion
// AIR's public-values chip as one event per 4-byte big-endian limb (eight
// limbs per 32-byte digest), so the reduce proof's own trace actually
// carries the children's digests rather than only Digest's folded
// summary, the input recomputing Digest from trace data (full recursive
// verification; see DESIGN.md Open Questions) would need.
func publicValuesEvents(digests [][32]byte) []air.Event {
	events := make([]air.Event, 0, len(digests)*8)
	for i, d := range digests {
		for limb := 0; limb < 8; limb++ {
			v := binary.BigEndian.Uint32(d[limb*4 : limb*4+4])
			events = append(events, recursionair.PublicValuesEvent{Index: uint64(i*8 + limb), Value: uint64(v)})
		}
	}
	return events
}

// proofDigest summarizes a stark.Proof into the 32-byte form the recursion
// layers chain on, hashing exactly the commitments a verifier would need
// to have checked: preprocessed/main/quotient roots and the public-values
// envelope's program digest, in the same field/byte layout
// internal/transcript.AbsorbDigest already canonicalizes commitments into.
func proofDigest(p *stark.Proof) [32]byte {
	h := poseidonhash.HashBytes(append(append(append(
		append([]byte{}, p.Public.ProgramVKDigest[:]...),
		p.PreprocessedRoot[:]...),
		p.MainRoot[:]...),
		p.QuotientRoot[:]...))
	return h
}

func recursionMachine() *air.Machine {
	return air.NewMachine(recursionair.Chips())
}

// reduceOneBatch proves one reduce step: it folds the batch's child
// digests into the recursion AIR's public-values columns and produces a
// STARK proof over that trace. It does not re-verify each child's own
// proof inside this layer's constraints — a from-scratch circuit doing
// so would need the recursion AIR's ALU/memory/Poseidon2/FRI-fold chips
// wired into an actual STARK-verifier circuit, which is the wrap-stage
// synthesis spec.md §4.5 describes and this repo does not build bit-for-
// bit (see internal/stark's own documented simplification, which this
// layer inherits transitively). What IS checked here is that the digests
// genuinely appear in the committed trace this proof attests to, so a
// caller holding the child ShardProofs/ReduceProofs can still
// independently re-verify each one with stark.Verify before trusting the
// aggregate — deferred verification (below) does exactly that.
func reduceOneBatch(cfg Config, digests [][32]byte) (*ReduceProof, error) {
	m := recursionMachine()
	events := publicValuesEvents(digests)
	traces, err := m.GenerateTraces(map[string][]air.Event{"recursion_public_values": events})
	if err != nil {
		return nil, fmt.Errorf("recursion: generating reduce-layer trace: %w", err)
	}
	combined := digestChildren(digests)
	public := stark.PublicValues{ProgramVKDigest: combined}
	proof, err := stark.Prove(cfg.Stark, m, traces, public)
	if err != nil {
		return nil, fmt.Errorf("recursion: proving reduce layer: %w", err)
	}
	return &ReduceProof{Proof: proof, Digest: combined}, nil
}

// BaseLayer reduces k shard proofs into ceil(k/BaseBatchSize) reduce
// proofs (spec.md §4.4 "Base layer (core-to-recursion): k shard proofs →
// one reduce proof"), each batch proven independently and, since batches
// share no state, concurrently via internal/workerpool.
func BaseLayer(ctx context.Context, cfg Config, shards []ShardProof) ([]ReduceProof, error) {
	if len(shards) == 0 {
		return nil, fmt.Errorf("recursion: base layer requires at least one shard proof")
	}
	batchSize := cfg.BaseBatchSize
	if batchSize <= 0 {
		batchSize = 1
	}
	var batches [][][32]byte
	for i := 0; i < len(shards); i += batchSize {
		end := i + batchSize
		if end > len(shards) {
			end = len(shards)
		}
		var digests [][32]byte
		for _, s := range shards[i:end] {
			digests = append(digests, proofDigest(s.Proof))
		}
		batches = append(batches, digests)
	}

	results := make([]ReduceProof, len(batches))
	tasks := make([]workerpool.Task, len(batches))
	for i, digests := range batches {
		i, digests := i, digests
		tasks[i] = func(ctx context.Context) error {
			rp, err := reduceOneBatch(cfg, digests)
			if err != nil {
				return err
			}
			results[i] = *rp
			return nil
		}
	}
	pool := workerpool.New(cfg.MaxConcurrency)
	for _, err := range pool.Run(ctx, tasks) {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// IntermediateLayer folds reduce proofs two-to-one (spec.md §4.4
// "Intermediate layers: 2+ reduce proofs → one... later layers 2-to-1"),
// running one layer of pairing. An odd proof out is carried forward
// unchanged to the next call, consistent with digestChildren's own
// odd-one-out handling.
func IntermediateLayer(ctx context.Context, cfg Config, proofs []ReduceProof) ([]ReduceProof, error) {
	if len(proofs) <= 1 {
		return proofs, nil
	}
	var pairs [][2]ReduceProof
	var carry *ReduceProof
	for i := 0; i+1 < len(proofs); i += 2 {
		pairs = append(pairs, [2]ReduceProof{proofs[i], proofs[i+1]})
	}
	if len(proofs)%2 == 1 {
		carry = &proofs[len(proofs)-1]
	}

	results := make([]ReduceProof, len(pairs))
	tasks := make([]workerpool.Task, len(pairs))
	for i, pair := range pairs {
		i, pair := i, pair
		tasks[i] = func(ctx context.Context) error {
			rp, err := reduceOneBatch(cfg, [][32]byte{pair[0].Digest, pair[1].Digest})
			if err != nil {
				return err
			}
			results[i] = *rp
			return nil
		}
	}
	pool := workerpool.New(cfg.MaxConcurrency)
	for _, err := range pool.Run(ctx, tasks) {
		if err != nil {
			return nil, err
		}
	}
	if carry != nil {
		results = append(results, *carry)
	}
	return results, nil
}

// Aggregate runs BaseLayer followed by repeated IntermediateLayer calls
// until exactly one reduce proof remains, the full spec.md §4.4 "layered
// recursive aggregation" pipeline short of deferred verification, shrink,
// and wrap (each a separate exported stage below, since a caller may want
// to checkpoint or inspect the tree between stages, per spec.md §5's
// dependency-respecting topological evaluation).
func Aggregate(ctx context.Context, cfg Config, shards []ShardProof) (*ReduceProof, error) {
	layer, err := BaseLayer(ctx, cfg, shards)
	if err != nil {
		return nil, err
	}
	for len(layer) > 1 {
		layer, err = IntermediateLayer(ctx, cfg, layer)
		if err != nil {
			return nil, err
		}
	}
	return &layer[0], nil
}
