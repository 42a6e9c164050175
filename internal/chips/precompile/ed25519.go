// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package precompile

import (
	"fmt"
	"math/big"
)

// Ed25519 point arithmetic is implemented directly over math/big rather
// than through a curve library: circl (already wired for Dilithium/Kyber
// elsewhere in the retrieval pack) exposes Ed25519 only at the
// sign/verify level, not raw twisted-Edwards point addition/decompression,
// and no other pack dependency ships edwards25519 point arithmetic either.
// This mirrors the same math/big-based hand-rolling already used for
// secp256k1/secp256r1 (DESIGN.md "Standard-library-only components").

var (
	ed25519P = mustBig("57896044618658097711785492504343953926634992332820282019728792003956564819949") // 2^255 - 19
	ed25519D = computeEd25519D()
)

func mustBig(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("precompile: bad constant " + s)
	}
	return n
}

// computeEd25519D derives d = -121665/121666 mod p, the twisted-Edwards
// curve parameter of edwards25519 (RFC 8032 §5.1).
func computeEd25519D() *big.Int {
	num := big.NewInt(-121665)
	den := big.NewInt(121666)
	denInv := new(big.Int).ModInverse(den, ed25519P)
	d := new(big.Int).Mul(num, denInv)
	return d.Mod(d, ed25519P)
}

type edPoint struct{ x, y *big.Int }

// edAddPoints implements the unified twisted-Edwards addition law.
func edAddPoints(p1, p2 edPoint) edPoint {
	p := ed25519P
	x1, y1, x2, y2 := p1.x, p1.y, p2.x, p2.y

	x1y2 := new(big.Int).Mul(x1, y2)
	y1x2 := new(big.Int).Mul(y1, x2)
	x1x2 := new(big.Int).Mul(x1, x2)
	y1y2 := new(big.Int).Mul(y1, y2)

	dxxyy := new(big.Int).Mul(ed25519D, new(big.Int).Mul(x1x2, y1y2))
	dxxyy.Mod(dxxyy, p)

	numX := new(big.Int).Mod(new(big.Int).Add(x1y2, y1x2), p)
	denX := new(big.Int).Mod(new(big.Int).Add(big.NewInt(1), dxxyy), p)
	numY := new(big.Int).Mod(new(big.Int).Add(y1y2, x1x2), p)
	denY := new(big.Int).Mod(new(big.Int).Sub(big.NewInt(1), dxxyy), p)

	x3 := new(big.Int).Mul(numX, new(big.Int).ModInverse(denX, p))
	y3 := new(big.Int).Mul(numY, new(big.Int).ModInverse(denY, p))
	x3.Mod(x3, p)
	y3.Mod(y3, p)
	return edPoint{x: x3, y: y3}
}

// edRecoverX recovers the (even-parity-adjusted) x coordinate from y on
// edwards25519: x^2 = (y^2-1) / (d*y^2+1) mod p, then a sqrt via the
// p ≡ 5 (mod 8) exponentiation formula (RFC 8032 §5.1.3).
func edRecoverX(y *big.Int, signBit bool) (*big.Int, error) {
	p := ed25519P
	ySq := new(big.Int).Mul(y, y)
	ySq.Mod(ySq, p)
	num := new(big.Int).Mod(new(big.Int).Sub(ySq, big.NewInt(1)), p)
	den := new(big.Int).Mod(new(big.Int).Add(new(big.Int).Mul(ed25519D, ySq), big.NewInt(1)), p)
	denInv := new(big.Int).ModInverse(den, p)
	if denInv == nil {
		return nil, fmt.Errorf("precompile: ed_decompress: non-invertible denominator")
	}
	xSq := new(big.Int).Mod(new(big.Int).Mul(num, denInv), p)

	// exponent (p+3)/8
	exp := new(big.Int).Add(p, big.NewInt(3))
	exp.Div(exp, big.NewInt(8))
	x := new(big.Int).Exp(xSq, exp, p)

	// If x^2 != xSq, multiply by sqrt(-1) mod p.
	check := new(big.Int).Mul(x, x)
	check.Mod(check, p)
	if check.Cmp(xSq) != 0 {
		two := big.NewInt(2)
		exp2 := new(big.Int).Sub(p, big.NewInt(1))
		exp2.Div(exp2, big.NewInt(4))
		sqrtM1 := new(big.Int).Exp(two, exp2, p)
		x.Mul(x, sqrtM1)
		x.Mod(x, p)
	}
	if x.Bit(0) != boolToUint(signBit) {
		x.Sub(p, x)
		x.Mod(x, p)
	}
	return x, nil
}

func boolToUint(b bool) uint {
	if b {
		return 1
	}
	return 0
}

func encodePoint(pt edPoint) []byte {
	out := make([]byte, 32)
	yBytes := pt.y.Bytes()
	copy(out, reverseBytes(yBytes))
	if pt.x.Bit(0) == 1 {
		out[31] |= 0x80
	}
	return out
}

func decodePoint(b []byte) (edPoint, error) {
	yBytes := reverseBytes(append([]byte{}, b...))
	signBit := yBytes[0]&0x80 != 0
	yBytes[0] &^= 0x80
	reversedBack := reverseBytes(yBytes)
	y := new(big.Int).SetBytes(reversedBack)
	y.Mod(y, ed25519P)
	x, err := edRecoverX(y, signBit)
	if err != nil {
		return edPoint{}, err
	}
	return edPoint{x: x, y: y}, nil
}

func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

// edAdd adds two compressed Edwards25519 points (32 bytes each,
// little-endian per RFC 8032) and returns the compressed sum, matching
// spec.md §6's ED_ADD precompile.
func edAdd(input []byte) ([]byte, error) {
	if len(input) != 64 {
		return nil, fmt.Errorf("precompile: ed_add expects 64 bytes (two compressed points), got %d", len(input))
	}
	p1, err := decodePoint(input[:32])
	if err != nil {
		return nil, fmt.Errorf("precompile: ed_add: %w", err)
	}
	p2, err := decodePoint(input[32:])
	if err != nil {
		return nil, fmt.Errorf("precompile: ed_add: %w", err)
	}
	sum := edAddPoints(p1, p2)
	return encodePoint(sum), nil
}

// edDecompress recovers the X coordinate from a 32-byte compressed
// Edwards25519 point, matching spec.md §8 scenario 4 ("Ed25519
// decompress... expected X matches the Ed25519 base point's X").
func edDecompress(input []byte) ([]byte, error) {
	if len(input) != 32 {
		return nil, fmt.Errorf("precompile: ed_decompress expects a 32-byte point, got %d", len(input))
	}
	pt, err := decodePoint(input)
	if err != nil {
		return nil, fmt.Errorf("precompile: ed_decompress: %w", err)
	}
	xBytes := pt.x.Bytes()
	out := make([]byte, 32)
	copy(out[32-len(xBytes):], xBytes)
	return out, nil
}
