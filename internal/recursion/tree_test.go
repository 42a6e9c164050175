// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package recursion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lux-zk/zkmips/internal/air"
	"github.com/lux-zk/zkmips/internal/field"
	"github.com/lux-zk/zkmips/internal/mips"
	"github.com/lux-zk/zkmips/internal/stark"
)

// trivialChip is a minimal air.Chip fixture satisfied by construction,
// standing in for a real shard's chip set so these tests exercise the
// aggregation plumbing rather than internal/chips itself.
type trivialChip struct{}

func (trivialChip) Name() string              { return "trivial" }
func (trivialChip) Width() int                { return 2 }
func (trivialChip) Preprocessed() *air.Matrix { return nil }
func (trivialChip) GenerateTrace(events []air.Event) (*air.Matrix, error) {
	m := air.NewMatrix(2, 4)
	for i := range m.Data {
		m.Data[i][0] = field.New(uint64(i))
		m.Data[i][1] = field.New(uint64(i))
	}
	return m, nil
}
func (trivialChip) Eval(cb *air.ConstraintBuilder) {
	cb.AssertZero("trivial_equal", func(row []field.Elem) field.Elem { return row[0].Sub(row[1]) })
}
func (trivialChip) Buses() []air.BusInteraction { return nil }

func testShardProof(t *testing.T, idx uint32) ShardProof {
	t.Helper()
	cfg := stark.DefaultConfig()
	cfg.FRI.NumQueries = 4
	m := air.NewMachine([]air.Chip{trivialChip{}})
	traces, err := m.GenerateTraces(map[string][]air.Event{})
	require.NoError(t, err)
	proof, err := stark.Prove(cfg, m, traces, stark.PublicValues{Values: []field.Elem{field.New(uint64(idx))}})
	require.NoError(t, err)
	return ShardProof{ShardIndex: idx, Proof: proof}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Stark.FRI.NumQueries = 4
	cfg.BaseBatchSize = 2
	return cfg
}

func TestAggregateReducesManyShardsToOneProof(t *testing.T) {
	cfg := testConfig()
	var shards []ShardProof
	for i := uint32(0); i < 5; i++ {
		shards = append(shards, testShardProof(t, i))
	}

	top, err := Aggregate(context.Background(), cfg, shards)
	require.NoError(t, err)
	require.NotNil(t, top.Proof)
	require.NoError(t, stark.Verify(cfg.Stark, top.Proof))
}

func TestResolveDeferredAcceptsMatchingVerifiedProof(t *testing.T) {
	cfg := testConfig()
	shard := testShardProof(t, 0)
	layer, err := BaseLayer(context.Background(), cfg, []ShardProof{shard})
	require.NoError(t, err)
	require.Len(t, layer, 1)

	ob := Obligation{
		Recorded: mips.DeferredProof{Shard: 0, Clock: 1, Digest: layer[0].Digest},
		Proof:    &layer[0],
	}
	require.NoError(t, ResolveDeferred(cfg, []Obligation{ob}))
}

func TestResolveDeferredRejectsDigestMismatch(t *testing.T) {
	cfg := testConfig()
	shard := testShardProof(t, 0)
	layer, err := BaseLayer(context.Background(), cfg, []ShardProof{shard})
	require.NoError(t, err)

	ob := Obligation{
		Recorded: mips.DeferredProof{Shard: 0, Clock: 1, Digest: [32]byte{0xff}},
		Proof:    &layer[0],
	}
	err = ResolveDeferred(cfg, []Obligation{ob})
	require.Error(t, err)
}

func TestShrinkThenWrapStageProduceFinalProof(t *testing.T) {
	cfg := testConfig()
	shard := testShardProof(t, 0)
	top, err := Aggregate(context.Background(), cfg, []ShardProof{shard})
	require.NoError(t, err)

	shrunk, err := ShrinkStage(context.Background(), cfg, *top)
	require.NoError(t, err)

	wrapped, err := WrapStage(context.Background(), cfg, *shrunk)
	require.NoError(t, err)
	require.Equal(t, wrapped.Proof.Digest, wrapped.ScalarDigest)
}
