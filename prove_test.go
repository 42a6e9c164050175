// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package zkvm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lux-zk/zkmips/internal/mips"
	"github.com/lux-zk/zkmips/internal/onchain"
)

func TestProveVerifyRoundTripCore(t *testing.T) {
	image := haltImage(t)
	pk, vk, err := Setup(image, testConfig())
	require.NoError(t, err)

	receipt, err := Prove(context.Background(), pk, nil, ModeCore)
	require.NoError(t, err)
	require.Equal(t, ModeCore, receipt.Mode)
	require.Len(t, receipt.Shards, 1)
	require.Nil(t, receipt.Reduced)
	require.Nil(t, receipt.SNARK)

	require.NoError(t, Verify(vk, receipt))
}

func TestProveVerifyRoundTripCompressed(t *testing.T) {
	image := haltImage(t)
	pk, vk, err := Setup(image, testConfig())
	require.NoError(t, err)

	receipt, err := Prove(context.Background(), pk, nil, ModeCompressed)
	require.NoError(t, err)
	require.NotNil(t, receipt.Reduced)
	require.Nil(t, receipt.Shards)

	require.NoError(t, Verify(vk, receipt))
}

func TestProveVerifyRoundTripGroth16(t *testing.T) {
	image := haltImage(t)
	pk, vk, err := Setup(image, testConfig())
	require.NoError(t, err)

	receipt, err := Prove(context.Background(), pk, nil, ModeGroth16)
	require.NoError(t, err)
	require.NotNil(t, receipt.SNARK)
	require.NotNil(t, receipt.Wrapped)

	require.NoError(t, Verify(vk, receipt))
	require.NoError(t, VerifyBytes(&onchain.Groth16Verifier{VK: vk.Groth16}, receipt.PublicValues, receipt.SNARK))
}

func TestProveVerifyRoundTripPlonk(t *testing.T) {
	image := haltImage(t)
	pk, vk, err := Setup(image, testConfig())
	require.NoError(t, err)

	receipt, err := Prove(context.Background(), pk, nil, ModePlonk)
	require.NoError(t, err)
	require.NotNil(t, receipt.SNARK)

	require.NoError(t, Verify(vk, receipt))
}

func TestVerifyRejectsMismatchedProgramDigest(t *testing.T) {
	image := haltImage(t)
	pk, vk, err := Setup(image, testConfig())
	require.NoError(t, err)

	receipt, err := Prove(context.Background(), pk, nil, ModeCore)
	require.NoError(t, err)
	receipt.ProgramDigest[0] ^= 0xFF

	err = Verify(vk, receipt)
	require.Error(t, err)
	var zerr *Error
	require.ErrorAs(t, err, &zerr)
	require.Equal(t, KindVerifierSelectorMismatch, zerr.Kind)
}

func TestResolveDeferredAcceptsNoRecordedObligations(t *testing.T) {
	pk, _, err := Setup(haltImage(t), testConfig())
	require.NoError(t, err)
	rc := pk.Config.ToRecursionConfig()

	require.NoError(t, resolveDeferred(rc, nil, nil))
}

func TestResolveDeferredFailsWithoutMatchingSuppliedProof(t *testing.T) {
	pk, _, err := Setup(haltImage(t), testConfig())
	require.NoError(t, err)
	rc := pk.Config.ToRecursionConfig()

	recorded := []mips.DeferredProof{{Shard: 0, Clock: 1, Digest: [32]byte{0x01}}}

	err = resolveDeferred(rc, recorded, nil)
	require.Error(t, err)
	var zerr *Error
	require.ErrorAs(t, err, &zerr)
	require.Equal(t, KindDeferredObligationUnfulfilled, zerr.Kind)
}

func TestToAirEventsPreservesOrderAndChipNames(t *testing.T) {
	in := []mips.Event{mips.CPUEvent{}, mips.BranchEvent{}, mips.JumpEvent{}}
	out := toAirEvents(in)
	require.Len(t, out, 3)
	for i, e := range in {
		require.Equal(t, e.ChipName(), out[i].ChipName())
	}
}
