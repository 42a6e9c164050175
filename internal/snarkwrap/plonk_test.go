// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package snarkwrap

import (
	"testing"

	gokzg4844 "github.com/crate-crypto/go-kzg-4844"
	"github.com/stretchr/testify/require"
)

func TestPlonkVerifyingKeySelectorIsDigestPrefix(t *testing.T) {
	vk := &PlonkVerifyingKey{SelectorCommitments: [][48]byte{{1, 2, 3}}}
	sel := vk.Selector()
	digest := vk.Digest()
	require.Equal(t, digest[:4], sel[:])
}

func TestEncodeDecodePlonkReceiptRoundTrip(t *testing.T) {
	vk := &PlonkVerifyingKey{SelectorCommitments: [][48]byte{{9}}}
	proof := &PlonkProof{
		Openings: []PlonkOpeningProof{
			{
				Commitment: gokzg4844.KZGCommitment{9},
				Point:      gokzg4844.Scalar{1},
				Value:      gokzg4844.Scalar{2},
				Proof:      gokzg4844.KZGProof{3},
			},
		},
	}

	receipt := EncodePlonkReceipt(vk, proof)
	require.Len(t, receipt, 4+160)

	sel, decoded, err := DecodePlonkReceipt(receipt)
	require.NoError(t, err)
	require.Equal(t, vk.Selector(), sel)
	require.Equal(t, proof.Openings, decoded.Openings)
}

func TestVerifyPlonkRejectsEmptyProof(t *testing.T) {
	vk := &PlonkVerifyingKey{}
	_, err := VerifyPlonk(vk, &PlonkProof{})
	require.Error(t, err)
}

func TestVerifyPlonkRejectsCommitmentMismatch(t *testing.T) {
	vk := &PlonkVerifyingKey{SelectorCommitments: [][48]byte{{9}}}
	proof := &PlonkProof{
		Openings: []PlonkOpeningProof{
			{Commitment: gokzg4844.KZGCommitment{7}},
		},
	}
	ok, err := VerifyPlonk(vk, proof)
	require.Error(t, err)
	require.False(t, ok)
}
