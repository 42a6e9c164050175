// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package precompile

import (
	"fmt"
	"math/big"
)

// secp256r1 (NIST P-256) short-Weierstrass curve: y^2 = x^3 + a*x + b over
// F_p, a = -3. Shares the wPoint/wAdd/wDouble machinery in secp256k1.go
// (DESIGN.md "Standard-library-only components" — neither curve is shipped
// by gnark-crypto, so both get the same hand-rolled math/big treatment).
var (
	secp256r1P = mustBig("115792089210356248762697446949407573530086143415290314195533631308867097853951")
	secp256r1B = mustBig("41058363725152142129326129780047268409114441015993725554835256314039467401291")
	secp256r1A = big.NewInt(-3)
)

// wAddA3 is wAdd specialized to curves with a = -3 (secp256r1); secp256k1's
// a = 0 lets wAdd/wDouble in secp256k1.go omit the a*x term entirely, so
// P-256 gets its own doubling formula instead of parameterizing those.
func wDoubleA3(p wPoint, prime, a *big.Int) wPoint {
	if p.Infinity || p.y.Sign() == 0 {
		return wPoint{Infinity: true}
	}
	num := new(big.Int).Mul(p.x, p.x)
	num.Mul(num, big.NewInt(3))
	ax := new(big.Int).Mod(a, prime)
	num.Add(num, ax)
	num.Mod(num, prime)

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

func wAddA3(p, q wPoint, prime, a *big.Int) wPoint {
	if p.Infinity {
		return q
	}
	if q.Infinity {
		return p
	}
	if p.x.Cmp(q.x) == 0 {
		sum := new(big.Int).Add(p.y, q.y)
		sum.Mod(sum, prime)
		if sum.Sign() == 0 {
			return wPoint{Infinity: true}
		}
		return wDoubleA3(p, prime, a)
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

func secp256r1Add(input []byte) ([]byte, error) {
	if len(input) != 128 {
		return nil, fmt.Errorf("precompile: secp256r1_add expects 128 bytes (two uncompressed points), got %d", len(input))
	}
	p1, err := decodeWPoint(input[:64], 32)
	if err != nil {
		return nil, err
	}
	p2, err := decodeWPoint(input[64:], 32)
	if err != nil {
		return nil, err
	}
	sum := wAddA3(p1, p2, secp256r1P, secp256r1A)
	return encodeWPoint(sum, 32), nil
}

func secp256r1Double(input []byte) ([]byte, error) {
	p, err := decodeWPoint(input, 32)
	if err != nil {
		return nil, fmt.Errorf("precompile: secp256r1_double: %w", err)
	}
	return encodeWPoint(wDoubleA3(p, secp256r1P, secp256r1A), 32), nil
}

func secp256r1Decompress(input []byte) ([]byte, error) {
	if len(input) != 33 {
		return nil, fmt.Errorf("precompile: secp256r1_decompress expects 33 bytes, got %d", len(input))
	}
	prefix := input[0]
	x := new(big.Int).SetBytes(input[1:])

	p := secp256r1P
	rhs := new(big.Int).Exp(x, big.NewInt(3), p)
	ax := new(big.Int).Mul(secp256r1A, x)
	ax.Mod(ax, p)
	rhs.Add(rhs, ax)
	rhs.Add(rhs, secp256r1B)
	rhs.Mod(rhs, p)

	exp := new(big.Int).Add(p, big.NewInt(1))
	exp.Div(exp, big.NewInt(4))
	y := new(big.Int).Exp(rhs, exp, p)

	check := new(big.Int).Mul(y, y)
	check.Mod(check, p)
	if check.Cmp(rhs) != 0 {
		return nil, fmt.Errorf("precompile: secp256r1_decompress: invalid curve point")
	}
	if (y.Bit(0) == 1) != (prefix == 0x03) {
		y.Sub(p, y)
	}
	return encodeWPoint(wPoint{x: x, y: y}, 32), nil
}
