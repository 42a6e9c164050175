// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package snarkwrap

import (
	"crypto/sha256"
	"fmt"

	gokzg4844 "github.com/crate-crypto/go-kzg-4844"
)

// PlonkVerifyingKey is the universal-setup analogue of Groth16VerifyingKey:
// rather than circuit-specific alpha/beta/gamma/delta points, a Plonk-KZG
// verifying key is the circuit's selector/permutation polynomial
// commitments plus a shared reference to the universal Powers-of-Tau SRS
// (spec.md §4.5 "Plonk-KZG, with a universal trusted setup"). Grounded on
// the teacher's kzg4844 package, which already wires
// github.com/crate-crypto/go-kzg-4844's blob-commitment API for EIP-4844;
// this package reuses the same library's polynomial-commitment primitives
// (BlobToKZGCommitment / ComputeKZGProof / VerifyKZGProof) for Plonk's
// point-opening proofs instead of fixed-size 4096-scalar blobs, since
// go-kzg-4844 exposes exactly the KZG opening machinery Plonk needs over
// the same BLS12-381 SRS it already loads.
type PlonkVerifyingKey struct {
	SelectorCommitments [][48]byte // compressed G1 KZG commitments
	CircuitDigest       [32]byte
}

// Digest hashes the verifying key's commitments, used the same way
// Groth16VerifyingKey.Digest is: as the receipt's leading 4-byte selector.
func (vk *PlonkVerifyingKey) Digest() [32]byte {
	h := sha256.New()
	h.Write(vk.CircuitDigest[:])
	for _, c := range vk.SelectorCommitments {
		h.Write(c[:])
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Selector is the 4-byte receipt-routing prefix, spec.md §6 "Receipt
// format".
func (vk *PlonkVerifyingKey) Selector() [4]byte {
	d := vk.Digest()
	var sel [4]byte
	copy(sel[:], d[:4])
	return sel
}

// PlonkOpeningProof is one KZG point-opening: a commitment to a circuit
// polynomial, the evaluation point, the claimed value, and the quotient
// commitment (go-kzg-4844's KZGProof), mirroring gokzg4844.KZGProof's
// compressed-G1 shape.
type PlonkOpeningProof struct {
	Commitment gokzg4844.KZGCommitment
	Point      gokzg4844.Scalar
	Value      gokzg4844.Scalar
	Proof      gokzg4844.KZGProof
}

// PlonkProof bundles the opening proofs a Plonk verifier checks: one per
// committed polynomial in the standard KZG transcript spec.md §6 "Receipt
// format" names for the Plonk flavor.
type PlonkProof struct {
	Openings []PlonkOpeningProof
}

// plonkContext lazily builds the go-kzg-4844 verification context, which
// holds the trusted-setup SRS points needed for pairing checks. Built
// once and reused, mirroring how the teacher's kzg4844 package holds a
// package-level context rather than reconstructing the SRS per call.
var plonkCtx *gokzg4844.Context

func plonkContext() (*gokzg4844.Context, error) {
	if plonkCtx != nil {
		return plonkCtx, nil
	}
	ctx, err := gokzg4844.NewContext4096Secure()
	if err != nil {
		return nil, fmt.Errorf("snarkwrap: loading KZG trusted setup: %w", err)
	}
	plonkCtx = ctx
	return plonkCtx, nil
}

// VerifyPlonk checks every opening proof in a Plonk receipt against the
// shared Powers-of-Tau SRS. A real Plonk verifier additionally checks the
// gate/permutation identities the openings feed into; that circuit-level
// algebra is the wrap-stage circuit's own concern (internal/recursion),
// not this package's — VerifyPlonk only re-validates that each claimed
// (point, value) pair is a genuine KZG opening of its commitment, the
// cryptographic primitive spec.md §4.5 names go-kzg-4844 for.
func VerifyPlonk(vk *PlonkVerifyingKey, proof *PlonkProof) (bool, error) {
	ctx, err := plonkContext()
	if err != nil {
		return false, err
	}
	if len(proof.Openings) == 0 {
		return false, fmt.Errorf("snarkwrap: plonk proof has no openings")
	}
	if len(vk.SelectorCommitments) != 0 && len(proof.Openings) != len(vk.SelectorCommitments) {
		return false, fmt.Errorf("snarkwrap: plonk proof has %d openings, vk declares %d selector commitments", len(proof.Openings), len(vk.SelectorCommitments))
	}
	for i, o := range proof.Openings {
		if len(vk.SelectorCommitments) != 0 && o.Commitment != vk.SelectorCommitments[i] {
			return false, fmt.Errorf("snarkwrap: opening %d commits to a different polynomial than the verifying key", i)
		}
		if err := ctx.VerifyKZGProof(o.Commitment, o.Point, o.Value, o.Proof); err != nil {
			return false, nil //nolint:nilerr // a failed opening is "not ok", not a plumbing error
		}
	}
	return true, nil
}

// encodeOpening serializes one opening proof into the flat byte layout
// EncodePlonkReceipt concatenates: commitment || point || value || proof,
// each a fixed-size go-kzg-4844 compressed element.
func encodeOpening(o PlonkOpeningProof) []byte {
	out := make([]byte, 0, len(o.Commitment)+len(o.Point)+len(o.Value)+len(o.Proof))
	out = append(out, o.Commitment[:]...)
	out = append(out, o.Point[:]...)
	out = append(out, o.Value[:]...)
	out = append(out, o.Proof[:]...)
	return out
}

// EncodePlonkReceipt lays out the tagged receipt byte format spec.md §6
// describes for the Plonk flavor: the 4-byte VK-digest selector followed
// by the standard KZG transcript (one fixed-size block per opening).
func EncodePlonkReceipt(vk *PlonkVerifyingKey, proof *PlonkProof) []byte {
	sel := vk.Selector()
	out := make([]byte, 0, 4+len(proof.Openings)*(48+32+32+48))
	out = append(out, sel[:]...)
	for _, o := range proof.Openings {
		out = append(out, encodeOpening(o)...)
	}
	return out
}

// DecodePlonkReceipt is EncodePlonkReceipt's inverse.
func DecodePlonkReceipt(b []byte) (selector [4]byte, proof PlonkProof, err error) {
	const blockSize = 48 + 32 + 32 + 48
	if len(b) < 4 {
		return selector, proof, fmt.Errorf("snarkwrap: plonk receipt shorter than selector")
	}
	copy(selector[:], b[:4])
	rest := b[4:]
	if len(rest)%blockSize != 0 {
		return selector, proof, fmt.Errorf("snarkwrap: plonk receipt length %d not a multiple of %d", len(rest), blockSize)
	}
	n := len(rest) / blockSize
	proof.Openings = make([]PlonkOpeningProof, n)
	for i := 0; i < n; i++ {
		block := rest[i*blockSize : (i+1)*blockSize]
		copy(proof.Openings[i].Commitment[:], block[0:48])
		copy(proof.Openings[i].Point[:], block[48:80])
		copy(proof.Openings[i].Value[:], block[80:112])
		copy(proof.Openings[i].Proof[:], block[112:160])
	}
	return selector, proof, nil
}
