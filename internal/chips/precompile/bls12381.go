// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package precompile

import (
	"fmt"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fp"
)

// BLS12-381 G1/Fp/Fp2 arithmetic via gnark-crypto, the same module the
// teacher uses for BN254 Pedersen commitments (zk/pedersen.go) and whose
// bls12-381 sibling package mirrors the bn254 package's API one-for-one
// (DESIGN.md "L4 — internal/chips"). The quantum/verifier.go pairing code
// uses circl's bls12381 instead; this package needs raw Fp/Fp2 field
// operations that circl does not expose, so it draws on gnark-crypto here.

func decodeBls12381G1(b []byte) (bls12381.G1Affine, error) {
	var p bls12381.G1Affine
	if len(b) != 96 {
		return p, fmt.Errorf("precompile: expected 96-byte uncompressed BLS12-381 G1 point, got %d", len(b))
	}
	var buf [96]byte
	copy(buf[:], b)
	if _, err := p.SetBytes(buf[:]); err != nil {
		return p, fmt.Errorf("precompile: bls12381 point decode: %w", err)
	}
	return p, nil
}

func encodeBls12381G1(p bls12381.G1Affine) []byte {
	out := p.Bytes()
	return out[:]
}

func bls12381Add(input []byte) ([]byte, error) {
	if len(input) != 192 {
		return nil, fmt.Errorf("precompile: bls12381_add expects 192 bytes (two uncompressed G1 points), got %d", len(input))
	}
	p1, err := decodeBls12381G1(input[:96])
	if err != nil {
		return nil, err
	}
	p2, err := decodeBls12381G1(input[96:])
	if err != nil {
		return nil, err
	}
	var sum bls12381.G1Affine
	sum.Add(&p1, &p2)
	return encodeBls12381G1(sum), nil
}

func bls12381Double(input []byte) ([]byte, error) {
	p, err := decodeBls12381G1(input)
	if err != nil {
		return nil, fmt.Errorf("precompile: bls12381_double: %w", err)
	}
	var d bls12381.G1Affine
	d.Double(&p)
	return encodeBls12381G1(d), nil
}

// bls12381Decompress expands a 48-byte compressed G1 point (per the
// standard ZCash-style serialization gnark-crypto implements) into the
// 96-byte uncompressed form.
func bls12381Decompress(input []byte) ([]byte, error) {
	var p bls12381.G1Affine
	if len(input) != 48 {
		return nil, fmt.Errorf("precompile: bls12381_decompress expects 48 bytes, got %d", len(input))
	}
	var buf [48]byte
	copy(buf[:], input)
	if _, err := p.SetBytes(buf[:]); err != nil {
		return nil, fmt.Errorf("precompile: bls12381_decompress: %w", err)
	}
	return encodeBls12381G1(p), nil
}

func decodeBlsFp(b []byte) (fp.Element, error) {
	var e fp.Element
	if len(b) != fp.Bytes {
		return e, fmt.Errorf("precompile: expected %d-byte BLS12-381 Fp element, got %d", fp.Bytes, len(b))
	}
	var buf [fp.Bytes]byte
	copy(buf[:], b)
	e.SetBytes(buf[:])
	return e, nil
}

func encodeBlsFp(e fp.Element) []byte {
	out := e.Bytes()
	return out[:]
}

func blsFpBinOp(input []byte, op func(a, b *fp.Element) fp.Element) ([]byte, error) {
	if len(input) != 2*fp.Bytes {
		return nil, fmt.Errorf("precompile: expected %d bytes (two BLS12-381 Fp elements), got %d", 2*fp.Bytes, len(input))
	}
	a, err := decodeBlsFp(input[:fp.Bytes])
	if err != nil {
		return nil, err
	}
	b, err := decodeBlsFp(input[fp.Bytes:])
	if err != nil {
		return nil, err
	}
	return encodeBlsFp(op(&a, &b)), nil
}

func bls12381FpAdd(input []byte) ([]byte, error) {
	return blsFpBinOp(input, func(a, b *fp.Element) fp.Element {
		var r fp.Element
		r.Add(a, b)
		return r
	})
}

func bls12381FpSub(input []byte) ([]byte, error) {
	return blsFpBinOp(input, func(a, b *fp.Element) fp.Element {
		var r fp.Element
		r.Sub(a, b)
		return r
	})
}

func bls12381FpMul(input []byte) ([]byte, error) {
	return blsFpBinOp(input, func(a, b *fp.Element) fp.Element {
		var r fp.Element
		r.Mul(a, b)
		return r
	})
}

func decodeBlsFp2(b []byte) (bls12381.E2, error) {
	var e bls12381.E2
	if len(b) != 2*fp.Bytes {
		return e, fmt.Errorf("precompile: expected %d-byte BLS12-381 Fp2 element, got %d", 2*fp.Bytes, len(b))
	}
	a0, err := decodeBlsFp(b[:fp.Bytes])
	if err != nil {
		return e, err
	}
	a1, err := decodeBlsFp(b[fp.Bytes:])
	if err != nil {
		return e, err
	}
	e.A0, e.A1 = a0, a1
	return e, nil
}

func encodeBlsFp2(e bls12381.E2) []byte {
	out := make([]byte, 2*fp.Bytes)
	a0 := e.A0.Bytes()
	a1 := e.A1.Bytes()
	copy(out[:fp.Bytes], a0[:])
	copy(out[fp.Bytes:], a1[:])
	return out
}

func blsFp2BinOp(input []byte, op func(a, b *bls12381.E2) bls12381.E2) ([]byte, error) {
	if len(input) != 4*fp.Bytes {
		return nil, fmt.Errorf("precompile: expected %d bytes (two BLS12-381 Fp2 elements), got %d", 4*fp.Bytes, len(input))
	}
	a, err := decodeBlsFp2(input[:2*fp.Bytes])
	if err != nil {
		return nil, err
	}
	b, err := decodeBlsFp2(input[2*fp.Bytes:])
	if err != nil {
		return nil, err
	}
	return encodeBlsFp2(op(&a, &b)), nil
}

func bls12381Fp2Add(input []byte) ([]byte, error) {
	return blsFp2BinOp(input, func(a, b *bls12381.E2) bls12381.E2 {
		var r bls12381.E2
		r.Add(a, b)
		return r
	})
}

func bls12381Fp2Sub(input []byte) ([]byte, error) {
	return blsFp2BinOp(input, func(a, b *bls12381.E2) bls12381.E2 {
		var r bls12381.E2
		r.Sub(a, b)
		return r
	})
}

func bls12381Fp2Mul(input []byte) ([]byte, error) {
	return blsFp2BinOp(input, func(a, b *bls12381.E2) bls12381.E2 {
		var r bls12381.E2
		r.Mul(a, b)
		return r
	})
}
