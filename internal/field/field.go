// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package field implements the base prime field F_p with p = 2^31 - 2^24 + 1
// (the "Baby Bear" prime) and its degree-4 and degree-7 extensions used by
// the AIR machine, the polynomial commitment layer, and the multiset-hash
// curve.
package field

import (
	"fmt"
	"math/bits"
)

// Modulus is p = 2^31 - 2^24 + 1.
const Modulus uint64 = (1 << 31) - (1 << 24) + 1

// Elem is an element of F_p stored in [0, Modulus).
type Elem uint32

// Zero and One are the additive and multiplicative identities.
const (
	Zero Elem = 0
	One  Elem = 1
)

// New reduces x mod p.
func New(x uint64) Elem {
	return Elem(x % Modulus)
}

// FromInt64 reduces a signed value mod p.
func FromInt64(x int64) Elem {
	m := int64(Modulus)
	r := x % m
	if r < 0 {
		r += m
	}
	return Elem(r)
}

// Uint64 returns the canonical representative as a uint64.
func (a Elem) Uint64() uint64 { return uint64(a) }

// Add returns a+b mod p.
func (a Elem) Add(b Elem) Elem {
	s := uint64(a) + uint64(b)
	if s >= Modulus {
		s -= Modulus
	}
	return Elem(s)
}

// Sub returns a-b mod p.
func (a Elem) Sub(b Elem) Elem {
	if a >= b {
		return a - b
	}
	return Elem(Modulus) - (b - a)
}

// Neg returns -a mod p.
func (a Elem) Neg() Elem {
	if a == 0 {
		return 0
	}
	return Elem(Modulus) - a
}

// Mul returns a*b mod p using a 64-bit intermediate product (the product of
// two values below 2^31 always fits in 62 bits, so no 128-bit widening is
// needed, unlike the teacher's Goldilocks field whose modulus is ~2^64).
func (a Elem) Mul(b Elem) Elem {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	return reduce128(hi, lo)
}

// two64ModP is 2^64 mod p, used to fold the high limb of a 128-bit product
// back into the field when reduce128 is called from extension-field code
// with accumulated sums wider than a single Elem*Elem product.
var two64ModP = Elem((uint64(1) << 32 % Modulus) * (uint64(1) << 32 % Modulus) % Modulus)

// reduce128 reduces a 128-bit value hi*2^64+lo modulo p. For a plain
// Elem*Elem product hi is always zero (both operands are < 2^31), but the
// general path folds a non-zero high limb using 2^64 mod p.
func reduce128(hi, lo uint64) Elem {
	if hi == 0 {
		return Elem(lo % Modulus)
	}
	return Elem(lo % Modulus).Add(Elem(hi % Modulus).Mul(two64ModP))
}

// Exp computes a^e mod p via square-and-multiply.
func (a Elem) Exp(e uint64) Elem {
	return pow(a, e)
}

func pow(base Elem, exp uint64) Elem {
	result := One
	for exp > 0 {
		if exp&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		exp >>= 1
	}
	return result
}

// Inv computes the multiplicative inverse via Fermat's little theorem,
// mirroring the teacher's GoldilocksField.Inv (zk/stark.go).
func (a Elem) Inv() (Elem, error) {
	if a == 0 {
		return 0, fmt.Errorf("field: inverse of zero")
	}
	return pow(a, Modulus-2), nil
}

// IsZero reports whether a is the additive identity.
func (a Elem) IsZero() bool { return a == 0 }

// Equal reports whether a == b.
func (a Elem) Equal(b Elem) bool { return a == b }

// Bytes encodes a in 4-byte little-endian form.
func (a Elem) Bytes() [4]byte {
	var out [4]byte
	v := uint32(a)
	out[0] = byte(v)
	out[1] = byte(v >> 8)
	out[2] = byte(v >> 16)
	out[3] = byte(v >> 24)
	return out
}

// FromBytes decodes a little-endian 4-byte element, reducing mod p.
func FromBytes(b [4]byte) Elem {
	v := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return New(uint64(v))
}

// String implements fmt.Stringer.
func (a Elem) String() string { return fmt.Sprintf("%d", uint32(a)) }
