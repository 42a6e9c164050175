// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package precompile

import (
	"fmt"
	"math/big"
)

// secp256k1 short-Weierstrass curve: y^2 = x^3 + 7 over F_p,
// p = 2^256 - 2^32 - 977. gnark-crypto (already wired for BN254/BLS12-381)
// does not ship secp256k1, so this is hand-rolled over math/big, matching
// the teacher's own math/big-based field arithmetic style in zk/stark.go
// (DESIGN.md "Standard-library-only components").
var secp256k1P = mustBig("115792089237316195423570985008687907853269984665640564039457584007908834671663")

type wPoint struct {
	x, y    *big.Int
	Infinity bool
}

func wAdd(p, q wPoint, prime *big.Int) wPoint {
	if p.Infinity {
		return q
	}
	if q.Infinity {
		return p
	}
	if p.x.Cmp(q.x) == 0 {
		if new(big.Int).Add(p.y, q.y).Mod(new(big.Int).Add(p.y, q.y), prime).Sign() == 0 {
			return wPoint{Infinity: true}
		}
		return wDouble(p, prime)
	}
	lambda := new(big.Int).Sub(q.y, p.y)
	lambda.Mod(lambda, prime)
	dx := new(big.Int).Sub(q.x, p.x)
	dx.Mod(dx, prime)
	dxInv := new(big.Int).ModInverse(dx, prime)
	lambda.Mul(lambda, dxInv)
	lambda.Mod(lambda, prime)

	x3 := new(big.Int).Mul(lambda, lambda)
	x3.Sub(x3, p.x)
	x3.Sub(x3, q.x)
	x3.Mod(x3, prime)

	y3 := new(big.Int).Sub(p.x, x3)
	y3.Mul(y3, lambda)
	y3.Sub(y3, p.y)
	y3.Mod(y3, prime)

	return wPoint{x: x3, y: y3}
}

func wDouble(p wPoint, prime *big.Int) wPoint {
	if p.Infinity || p.y.Sign() == 0 {
		return wPoint{Infinity: true}
	}
	num := new(big.Int).Mul(p.x, p.x)
	num.Mul(num, big.NewInt(3))
	den := new(big.Int).Mul(p.y, big.NewInt(2))
	den.Mod(den, prime)
	denInv := new(big.Int).ModInverse(den, prime)
	lambda := new(big.Int).Mul(num, denInv)
	lambda.Mod(lambda, prime)

	x3 := new(big.Int).Mul(lambda, lambda)
	x3.Sub(x3, new(big.Int).Mul(p.x, big.NewInt(2)))
	x3.Mod(x3, prime)

	y3 := new(big.Int).Sub(p.x, x3)
	y3.Mul(y3, lambda)
	y3.Sub(y3, p.y)
	y3.Mod(y3, prime)

	return wPoint{x: x3, y: y3}
}

func decodeWPoint(b []byte, size int) (wPoint, error) {
	if len(b) != 2*size {
		return wPoint{}, fmt.Errorf("precompile: expected %d-byte uncompressed point, got %d", 2*size, len(b))
	}
	return wPoint{x: new(big.Int).SetBytes(b[:size]), y: new(big.Int).SetBytes(b[size:])}, nil
}

func encodeWPoint(p wPoint, size int) []byte {
	out := make([]byte, 2*size)
	xb, yb := p.x.Bytes(), p.y.Bytes()
	copy(out[size-len(xb):size], xb)
	copy(out[2*size-len(yb):], yb)
	return out
}

func secp256k1Add(input []byte) ([]byte, error) {
	if len(input) != 128 {
		return nil, fmt.Errorf("precompile: secp256k1_add expects 128 bytes (two uncompressed points), got %d", len(input))
	}
	p1, err := decodeWPoint(input[:64], 32)
	if err != nil {
		return nil, err
	}
	p2, err := decodeWPoint(input[64:], 32)
	if err != nil {
		return nil, err
	}
	sum := wAdd(p1, p2, secp256k1P)
	return encodeWPoint(sum, 32), nil
}

func secp256k1Double(input []byte) ([]byte, error) {
	p, err := decodeWPoint(input, 32)
	if err != nil {
		return nil, fmt.Errorf("precompile: secp256k1_double: %w", err)
	}
	return encodeWPoint(wDouble(p, secp256k1P), 32), nil
}

// secp256k1Decompress recovers y from a compressed point (33 bytes: a
// 0x02/0x03 parity prefix followed by the 32-byte x coordinate).
func secp256k1Decompress(input []byte) ([]byte, error) {
	if len(input) != 33 {
		return nil, fmt.Errorf("precompile: secp256k1_decompress expects 33 bytes, got %d", len(input))
	}
	prefix := input[0]
	x := new(big.Int).SetBytes(input[1:])
	y, err := recoverWeierstrassY(x, prefix == 0x03, secp256k1P, big.NewInt(7))
	if err != nil {
		return nil, fmt.Errorf("precompile: secp256k1_decompress: %w", err)
	}
	return encodeWPoint(wPoint{x: x, y: y}, 32), nil
}

// recoverWeierstrassY solves y^2 = x^3 + b (a = 0) for y, selecting the
// root whose parity matches wantOdd, using the p ≡ 3 (mod 4) square-root
// shortcut both secp256k1 and secp256r1's primes satisfy.
func recoverWeierstrassY(x *big.Int, wantOdd bool, p, b *big.Int) (*big.Int, error) {
	rhs := new(big.Int).Exp(x, big.NewInt(3), p)
	rhs.Add(rhs, b)
	rhs.Mod(rhs, p)

	exp := new(big.Int).Add(p, big.NewInt(1))
	exp.Div(exp, big.NewInt(4))
	y := new(big.Int).Exp(rhs, exp, p)

	check := new(big.Int).Mul(y, y)
	check.Mod(check, p)
	if check.Cmp(rhs) != 0 {
		return nil, fmt.Errorf("invalid curve point: x has no square root")
	}
	if y.Bit(0) == 1 != wantOdd {
		y.Sub(p, y)
	}
	return y, nil
}
