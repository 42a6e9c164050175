// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package zkvm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lux-zk/zkmips/internal/config"
	"github.com/lux-zk/zkmips/internal/mips"
)

func encodeR(opcode, rs, rt, rd, shamt, funct uint32) uint32 {
	return (opcode << 26) | (rs << 21) | (rt << 16) | (rd << 11) | (shamt << 6) | funct
}

// haltImage is the smallest valid program: a single SYSCALL with $2 left at
// its zero-value HALT code, proven in exactly one shard (spec.md §8).
func haltImage(t *testing.T) *mips.ProgramImage {
	t.Helper()
	words := map[uint32]uint32{
		0x400000: encodeR(0x00, 0, 0, 0, 0, 0x0C), // SYSCALL
	}
	return &mips.ProgramImage{Words: words, Entry: 0x400000, Digest: [32]byte{0xAB, 0xCD}}
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Stark.NumQueries = 4
	cfg.Recursion.BaseBatchSize = 2
	return cfg
}

func TestSetupValidatesConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Shard.MaxCyclesPerShard = 0

	_, _, err := Setup(haltImage(t), cfg)
	require.Error(t, err)
	var zerr *Error
	require.ErrorAs(t, err, &zerr)
	require.Equal(t, KindSetupArtifactCorrupted, zerr.Kind)
}

func TestSetupProducesMatchingVerifyingKey(t *testing.T) {
	image := haltImage(t)
	pk, vk, err := Setup(image, testConfig())
	require.NoError(t, err)
	require.Equal(t, image.Digest, vk.ProgramDigest)
	require.Equal(t, image, pk.Image)
	require.NotNil(t, vk.Groth16)
	require.NotNil(t, vk.Plonk)
}

func TestExecuteRunsHaltProgram(t *testing.T) {
	pk, _, err := Setup(haltImage(t), testConfig())
	require.NoError(t, err)

	publicValues, cycles, err := Execute(context.Background(), pk, nil)
	require.NoError(t, err)
	require.Empty(t, publicValues)
	require.Equal(t, uint64(1), cycles.TotalCycles)
}
