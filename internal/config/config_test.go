// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValidates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestShardShapeRejectsZeroCycles(t *testing.T) {
	s := ShardShape{MaxCyclesPerShard: 0}
	require.Error(t, s.Validate())
}

func TestStarkParamsRejectsZeroQueries(t *testing.T) {
	s := StarkParams{Blowup: 1, NumQueries: 0, FoldArity: 2}
	require.Error(t, s.Validate())
}

func TestStarkParamsRoundTripsThroughFRI(t *testing.T) {
	orig := StarkParams{Blowup: 1, NumQueries: 28, PoWBits: 16, FoldArity: 2}
	got := StarkParamsFromFRI(orig.ToFRI())
	require.Equal(t, orig, got)
}

func TestRecursionParamsRejectsZeroBatchSize(t *testing.T) {
	r := RecursionParams{BaseBatchSize: 0}
	require.Error(t, r.Validate())
}

func TestToRecursionConfigCarriesBatchSize(t *testing.T) {
	c := Default()
	c.Recursion.BaseBatchSize = 7
	rc := c.ToRecursionConfig()
	require.Equal(t, 7, rc.BaseBatchSize)
}

func TestEnvVerbosityDefaultsToInfo(t *testing.T) {
	require.NoError(t, os.Unsetenv("RUST_LOG"))
	require.Equal(t, "info", EnvVerbosity())

	require.NoError(t, os.Setenv("RUST_LOG", "debug"))
	defer os.Unsetenv("RUST_LOG")
	require.Equal(t, "debug", EnvVerbosity())
}

func TestEnvUintFallsBackOnMalformedValue(t *testing.T) {
	require.NoError(t, os.Setenv("ZKVM_TEST_N", "not-a-number"))
	defer os.Unsetenv("ZKVM_TEST_N")
	require.EqualValues(t, 42, EnvUint("ZKVM_TEST_N", 42))

	require.NoError(t, os.Setenv("ZKVM_TEST_N", "17"))
	require.EqualValues(t, 17, EnvUint("ZKVM_TEST_N", 42))
}
