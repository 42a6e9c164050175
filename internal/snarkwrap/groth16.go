// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package snarkwrap implements the final SNARK-wrapping stage of spec.md
// §4.5: given the wrap-stage recursion proof, synthesize a constant-size
// BN254 proof (Groth16 or Plonk-KZG) with a fixed verifying key, tagged
// with the 4-byte selector prefix spec.md §6 "Receipt format" describes.
//
// This package does not itself build the pairing-friendly circuit that
// checks the STARK verifier (that synthesis is the "wrap stage" proper,
// internal/recursion's concern); it implements the two proof systems'
// verifying-key data model and the pairing/KZG verification equations a
// Go host uses to check a receipt, grounded on the teacher's zk/verifier.go
// groth16PairingCheck and zk/types.go VerifyingKey, reimplemented against
// real BN254 arithmetic (github.com/consensys/gnark-crypto/ecc/bn254)
// instead of the teacher's placeholder []byte-typed curve fields.
package snarkwrap

import (
	"crypto/sha256"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
)

// Groth16VerifyingKey mirrors the teacher's zk/types.go VerifyingKey shape
// (Alpha/Beta/Gamma/Delta/IC) but typed against real curve points instead
// of opaque byte slices, since this package performs the pairing check
// itself rather than deferring to an EVM precompile.
type Groth16VerifyingKey struct {
	Alpha bn254.G1Affine
	Beta  bn254.G2Affine
	Gamma bn254.G2Affine
	Delta bn254.G2Affine
	IC    []bn254.G1Affine // one more than the number of public inputs
}

// Groth16Proof is the standard three-element Groth16 proof.
type Groth16Proof struct {
	A bn254.G1Affine
	B bn254.G2Affine
	C bn254.G1Affine
}

// Digest returns the 32-byte verifying-key hash whose first 4 bytes are
// embedded as the receipt selector (spec.md §6 "Receipt format") and,
// on-chain, returned by VERIFIER_HASH() (spec.md §6 "On-chain interface").
func (vk *Groth16VerifyingKey) Digest() [32]byte {
	h := sha256.New()
	write := func(b []byte) { h.Write(b) }
	ab := vk.Alpha.Bytes()
	write(ab[:])
	bb := vk.Beta.Bytes()
	write(bb[:])
	gb := vk.Gamma.Bytes()
	write(gb[:])
	db := vk.Delta.Bytes()
	write(db[:])
	for _, ic := range vk.IC {
		icb := ic.Bytes()
		write(icb[:])
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Selector is the 4-byte receipt-routing prefix spec.md §6 describes,
// preventing a Groth16 proof from being routed to the Plonk verifier.
func (vk *Groth16VerifyingKey) Selector() [4]byte {
	d := vk.Digest()
	var sel [4]byte
	copy(sel[:], d[:4])
	return sel
}

// CeremonyTranscript is a data-model-only record of the multi-phase
// trusted-setup artifacts spec.md §6 "Trusted-setup artifacts" lists
// (phase-1 universal Powers-of-Tau, phase-2 circuit-specific initial
// parameters, k phase-2 contributions, the final proving/verifying keys).
// This repo does not run an actual MPC ceremony (spec.md's Non-goals
// exclude wire-level SNARK setup bit-reproduction). No code in this
// repository constructs a CeremonyTranscript; Setup (root zkvm package)
// attaches fixed trivial verifying keys instead.
type CeremonyTranscript struct {
	Phase1PowersOfTauHash [32]byte
	Phase2InitialHash     [32]byte
	ContributionHashes    [][32]byte
	FinalProvingKeyHash   [32]byte
	FinalVerifyingKeyHash [32]byte
}

// VerifyGroth16 checks the Groth16 pairing equation
//
//	e(A, B) = e(alpha, beta) . e(vkX, gamma) . e(C, delta)
//
// equivalently e(A,B) . e(-alpha,beta) . e(-vkX,gamma) . e(-C,delta) = 1,
// exactly the identity the teacher's zk/verifier.go groth16PairingCheck
// implements over a placeholder bn256 wrapper — here performed with real
// BN254 group operations and bn254.PairingCheck.
func VerifyGroth16(vk *Groth16VerifyingKey, proof *Groth16Proof, publicInputs []*big.Int) (bool, error) {
	if len(publicInputs) != len(vk.IC)-1 {
		return false, fmt.Errorf("snarkwrap: groth16: expected %d public inputs, got %d", len(vk.IC)-1, len(publicInputs))
	}

	vkX := vk.IC[0]
	for i, input := range publicInputs {
		var term bn254.G1Affine
		term.ScalarMultiplication(&vk.IC[i+1], input)
		vkX.Add(&vkX, &term)
	}

	var negAlpha, negVkX, negC bn254.G1Affine
	negAlpha.Neg(&vk.Alpha)
	negVkX.Neg(&vkX)
	negC.Neg(&proof.C)

	ok, err := bn254.PairingCheck(
		[]bn254.G1Affine{proof.A, negAlpha, negVkX, negC},
		[]bn254.G2Affine{proof.B, vk.Beta, vk.Gamma, vk.Delta},
	)
	if err != nil {
		return false, fmt.Errorf("snarkwrap: groth16 pairing check: %w", err)
	}
	return ok, nil
}

// EncodeGroth16Receipt lays out the tagged receipt byte format spec.md §6
// describes for the Groth16 flavor: the 4-byte VK-digest selector
// followed by eight 32-byte field elements (A.X, A.Y, B.X.A0, B.X.A1,
// B.Y.A0, B.Y.A1, C.X, C.Y — G2's Fp2 coordinates each split into two
// base-field limbs, G1's two coordinates each one limb, totalling eight).
func EncodeGroth16Receipt(vk *Groth16VerifyingKey, proof *Groth16Proof) []byte {
	sel := vk.Selector()
	out := make([]byte, 0, 4+8*32)
	out = append(out, sel[:]...)

	ax := proof.A.X.Bytes()
	ay := proof.A.Y.Bytes()
	bxa0 := proof.B.X.A0.Bytes()
	bxa1 := proof.B.X.A1.Bytes()
	bya0 := proof.B.Y.A0.Bytes()
	bya1 := proof.B.Y.A1.Bytes()
	cx := proof.C.X.Bytes()
	cy := proof.C.Y.Bytes()
	for _, limb := range [][32]byte{ax, ay, bxa0, bxa1, bya0, bya1, cx, cy} {
		out = append(out, limb[:]...)
	}
	return out
}

// DecodeGroth16Receipt is EncodeGroth16Receipt's inverse, used by
// VerifyBytes (the root zkvm package) when a caller hands back only the
// vk_digest plus opaque proof bytes rather than a typed Groth16Proof.
func DecodeGroth16Receipt(b []byte) (selector [4]byte, proof Groth16Proof, err error) {
	if len(b) != 4+8*32 {
		return selector, proof, fmt.Errorf("snarkwrap: groth16 receipt: want %d bytes, got %d", 4+8*32, len(b))
	}
	copy(selector[:], b[:4])
	rest := b[4:]
	limb := func(i int) []byte { return rest[i*32 : (i+1)*32] }

	// fp.Element.SetBytes reduces mod p rather than rejecting
	// non-canonical input; a malformed receipt therefore fails later at
	// the pairing check (an invalid curve point almost never lands back
	// on the curve) rather than here.
	proof.A.X.SetBytes(limb(0))
	proof.A.Y.SetBytes(limb(1))
	proof.B.X.A0.SetBytes(limb(2))
	proof.B.X.A1.SetBytes(limb(3))
	proof.B.Y.A0.SetBytes(limb(4))
	proof.B.Y.A1.SetBytes(limb(5))
	proof.C.X.SetBytes(limb(6))
	proof.C.Y.SetBytes(limb(7))

	if !proof.A.IsOnCurve() || !proof.B.IsOnCurve() || !proof.C.IsOnCurve() {
		return selector, proof, fmt.Errorf("snarkwrap: groth16 receipt decodes to an off-curve point")
	}
	return selector, proof, nil
}

// PublicValuesScalar derives the single BN254 scalar the SNARK circuit
// commits to, per spec.md §6 "Public values encoding":
// SHA-256(public_values_bytes) mod 2^253.
func PublicValuesScalar(publicValuesBytes []byte) *big.Int {
	sum := sha256.Sum256(publicValuesBytes)
	x := new(big.Int).SetBytes(sum[:])
	mod := new(big.Int).Lsh(big.NewInt(1), 253)
	x.Mod(x, mod)
	return x
}

// PublicValuesScalarBytes32 big-endian encodes PublicValuesScalar's result
// into the fixed-width form the circuit's single public-input column
// expects.
func PublicValuesScalarBytes32(publicValuesBytes []byte) [32]byte {
	x := PublicValuesScalar(publicValuesBytes)
	var out [32]byte
	b := x.Bytes()
	copy(out[32-len(b):], b)
	return out
}
