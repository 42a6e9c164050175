// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package precompile

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
)

// BN254 G1/Fp/Fp2 arithmetic is grounded on the same gnark-crypto bn254
// package the teacher's zk/pedersen.go already imports for Pedersen
// commitments (DESIGN.md "L4 — internal/chips"); this file exercises the
// curve-point and base/tower-field operations the teacher's commitment
// scheme does not need.

func decodeBn254G1(b []byte) (bn254.G1Affine, error) {
	var p bn254.G1Affine
	if len(b) != 64 {
		return p, fmt.Errorf("precompile: expected 64-byte uncompressed BN254 point, got %d", len(b))
	}
	var buf [64]byte
	copy(buf[:], b)
	if _, err := p.SetBytes(buf[:]); err != nil {
		return p, fmt.Errorf("precompile: bn254 point decode: %w", err)
	}
	return p, nil
}

func encodeBn254G1(p bn254.G1Affine) []byte {
	out := p.Bytes()
	return out[:]
}

func bn254Add(input []byte) ([]byte, error) {
	if len(input) != 128 {
		return nil, fmt.Errorf("precompile: bn254_add expects 128 bytes (two uncompressed points), got %d", len(input))
	}
	p1, err := decodeBn254G1(input[:64])
	if err != nil {
		return nil, err
	}
	p2, err := decodeBn254G1(input[64:])
	if err != nil {
		return nil, err
	}
	var sum bn254.G1Affine
	sum.Add(&p1, &p2)
	return encodeBn254G1(sum), nil
}

func bn254Double(input []byte) ([]byte, error) {
	p, err := decodeBn254G1(input)
	if err != nil {
		return nil, fmt.Errorf("precompile: bn254_double: %w", err)
	}
	var d bn254.G1Affine
	d.Double(&p)
	return encodeBn254G1(d), nil
}

func decodeFp(b []byte) (fp.Element, error) {
	var e fp.Element
	if len(b) != fp.Bytes {
		return e, fmt.Errorf("precompile: expected %d-byte BN254 Fp element, got %d", fp.Bytes, len(b))
	}
	var buf [fp.Bytes]byte
	copy(buf[:], b)
	e.SetBytes(buf[:])
	return e, nil
}

func encodeFp(e fp.Element) []byte {
	out := e.Bytes()
	return out[:]
}

func bn254FpBinOp(input []byte, op func(a, b *fp.Element) fp.Element) ([]byte, error) {
	if len(input) != 2*fp.Bytes {
		return nil, fmt.Errorf("precompile: expected %d bytes (two BN254 Fp elements), got %d", 2*fp.Bytes, len(input))
	}
	a, err := decodeFp(input[:fp.Bytes])
	if err != nil {
		return nil, err
	}
	b, err := decodeFp(input[fp.Bytes:])
	if err != nil {
		return nil, err
	}
	return encodeFp(op(&a, &b)), nil
}

func bn254FpAdd(input []byte) ([]byte, error) {
	return bn254FpBinOp(input, func(a, b *fp.Element) fp.Element {
		var r fp.Element
		r.Add(a, b)
		return r
	})
}

func bn254FpSub(input []byte) ([]byte, error) {
	return bn254FpBinOp(input, func(a, b *fp.Element) fp.Element {
		var r fp.Element
		r.Sub(a, b)
		return r
	})
}

func bn254FpMul(input []byte) ([]byte, error) {
	return bn254FpBinOp(input, func(a, b *fp.Element) fp.Element {
		var r fp.Element
		r.Mul(a, b)
		return r
	})
}

func decodeBn254Fp2(b []byte) (bn254.E2, error) {
	var e bn254.E2
	if len(b) != 2*fp.Bytes {
		return e, fmt.Errorf("precompile: expected %d-byte BN254 Fp2 element, got %d", 2*fp.Bytes, len(b))
	}
	a0, err := decodeFp(b[:fp.Bytes])
	if err != nil {
		return e, err
	}
	a1, err := decodeFp(b[fp.Bytes:])
	if err != nil {
		return e, err
	}
	e.A0, e.A1 = a0, a1
	return e, nil
}

func encodeBn254Fp2(e bn254.E2) []byte {
	out := make([]byte, 2*fp.Bytes)
	a0 := e.A0.Bytes()
	a1 := e.A1.Bytes()
	copy(out[:fp.Bytes], a0[:])
	copy(out[fp.Bytes:], a1[:])
	return out
}

func bn254Fp2BinOp(input []byte, op func(a, b *bn254.E2) bn254.E2) ([]byte, error) {
	if len(input) != 4*fp.Bytes {
		return nil, fmt.Errorf("precompile: expected %d bytes (two BN254 Fp2 elements), got %d", 4*fp.Bytes, len(input))
	}
	a, err := decodeBn254Fp2(input[:2*fp.Bytes])
	if err != nil {
		return nil, err
	}
	b, err := decodeBn254Fp2(input[2*fp.Bytes:])
	if err != nil {
		return nil, err
	}
	return encodeBn254Fp2(op(&a, &b)), nil
}

func bn254Fp2Add(input []byte) ([]byte, error) {
	return bn254Fp2BinOp(input, func(a, b *bn254.E2) bn254.E2 {
		var r bn254.E2
		r.Add(a, b)
		return r
	})
}

func bn254Fp2Sub(input []byte) ([]byte, error) {
	return bn254Fp2BinOp(input, func(a, b *bn254.E2) bn254.E2 {
		var r bn254.E2
		r.Sub(a, b)
		return r
	})
}

func bn254Fp2Mul(input []byte) ([]byte, error) {
	return bn254Fp2BinOp(input, func(a, b *bn254.E2) bn254.E2 {
		var r bn254.E2
		r.Mul(a, b)
		return r
	})
}
