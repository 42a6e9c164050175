// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package poseidonhash wraps gnark-crypto's Poseidon2 permutation as the
// single hash used throughout the commitment and transcript layers (spec.md
// §4.3: "The hash is Poseidon2 over the base field" / "The transcript hash
// is Poseidon2"). Grounded directly on the teacher's Poseidon2Hasher
// (zk/poseidon.go), whose Hash/HashPair shape is reused verbatim; only the
// field elements fed in differ (our AIR base field instead of BN254's
// scalar field — gnark-crypto's Poseidon2 over fr.Element is reused as the
// underlying permutation, matching how the teacher's own Poseidon2Hasher
// already operates on BN254 fr.Element regardless of what domain the caller
// is hashing).
package poseidonhash

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/poseidon2"
)

// HashBytes hashes an arbitrary-length byte string, chunked into 32-byte
// field elements the same way the teacher's Poseidon2Hasher.Hash does.
func HashBytes(data []byte) [32]byte {
	h := poseidon2.NewMerkleDamgardHasher()
	h.Write(data)
	sum := h.Sum(nil)
	var out [32]byte
	copy(out[:], sum)
	return out
}

// HashPair computes Poseidon2(left, right), the Merkle-tree pairwise hash,
// mirroring the teacher's Poseidon2Hasher.HashPair.
func HashPair(left, right [32]byte) [32]byte {
	buf := make([]byte, 0, 64)
	buf = append(buf, left[:]...)
	buf = append(buf, right[:]...)
	return HashBytes(buf)
}

// HashElements hashes a slice of BN254 scalar-field elements directly,
// without the byte-chunking step, for callers that already operate in terms
// of fr.Element (e.g. the SNARK wrapper's in-circuit hashing).
func HashElements(xs []fr.Element) [32]byte {
	h := poseidon2.NewMerkleDamgardHasher()
	for _, x := range xs {
		b := x.Bytes()
		h.Write(b[:])
	}
	sum := h.Sum(nil)
	var out [32]byte
	copy(out[:], sum)
	return out
}
