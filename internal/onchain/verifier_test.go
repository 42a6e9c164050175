// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package onchain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/lux-zk/zkmips/internal/snarkwrap"
)

func TestGroth16VerifierAcceptsIdentityProof(t *testing.T) {
	var zeroG1 bn254.G1Affine
	var zeroG2 bn254.G2Affine
	vk := &snarkwrap.Groth16VerifyingKey{
		Alpha: zeroG1, Beta: zeroG2, Gamma: zeroG2, Delta: zeroG2,
		IC: []bn254.G1Affine{zeroG1},
	}
	var proof snarkwrap.Groth16Proof
	receipt := snarkwrap.EncodeGroth16Receipt(vk, &proof)

	v := &Groth16Verifier{VK: vk}
	err := v.VerifyProof(v.VerifierHash(), []byte("public values"), receipt)
	require.NoError(t, err)
}

func TestGroth16VerifierRejectsWrongVKeyHash(t *testing.T) {
	vk := &snarkwrap.Groth16VerifyingKey{IC: []bn254.G1Affine{{}}}
	var proof snarkwrap.Groth16Proof
	receipt := snarkwrap.EncodeGroth16Receipt(vk, &proof)

	v := &Groth16Verifier{VK: vk}
	err := v.VerifyProof([32]byte{0xff}, []byte("public values"), receipt)
	require.ErrorIs(t, err, ErrSelectorMismatch)
}

func TestPlonkVerifierRejectsEmptyReceipt(t *testing.T) {
	vk := &snarkwrap.PlonkVerifyingKey{}
	v := &PlonkVerifier{VK: vk}
	err := v.VerifyProof(v.VerifierHash(), nil, nil)
	require.Error(t, err)
}
