// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package curve implements the elliptic curve over field.Ext7 used by the
// memory-consistency multiset-hash accumulator (spec.md §4.2). The API
// mirrors the teacher's luxfi/crypto bn256 point usage in zk/verifier.go
// (Add/Double/identity), generalized from BN254 to this custom extension
// field curve.
package curve

import (
	"github.com/lux-zk/zkmips/internal/field"
)

// curveB is the short-Weierstrass coefficient: y^2 = x^3 + B.
var curveB = field.Ext7FromBase(field.New(5))

// Point is an affine point on the curve, or the identity (Finite == false).
// The zero value is the identity, so a zero-value Point or Accumulator starts
// correctly folded without an explicit constructor call.
type Point struct {
	X, Y  field.Ext7
	Finite bool
}

// Identity returns the point at infinity, the group's neutral element.
func Identity() Point {
	return Point{}
}

// Generator returns a fixed base point used to hash tuples onto the curve.
// Its coordinates are derived deterministically rather than chosen
// arbitrarily, so every implementation of this spec agrees on the same
// generator without needing to ship it out-of-band.
func Generator() Point {
	return deriveGenerator()
}

const generatorSearchBound = 4096

func deriveGenerator() Point {
	x := field.Ext7FromBase(field.New(1))
	for i := 0; i < generatorSearchBound; i++ {
		y2 := x.Mul(x).Mul(x).Add(curveB)
		if y, ok := sqrtExt7(y2); ok {
			return Point{X: x, Y: y, Finite: true}
		}
		x = x.Add(field.Ext7One)
	}
	panic("curve: failed to derive generator point within search bound")
}

// sqrtExt7 attempts a square root in Ext7 by trial-and-increment over a
// bounded candidate set. This is adequate here because it only runs once, at
// first use, to pin down one fixed generator point, not on any proving or
// verification hot path.
func sqrtExt7(a field.Ext7) (field.Ext7, bool) {
	if a.IsZero() {
		return field.Ext7Zero, true
	}
	candidate := a
	for i := 0; i < generatorSearchBound; i++ {
		if candidate.Mul(candidate).Equal(a) {
			return candidate, true
		}
		candidate = candidate.Add(field.Ext7One)
	}
	return field.Ext7Zero, false
}

// Equal reports whether two points are equal, treating all representations
// of the identity as equal.
func (p Point) Equal(q Point) bool {
	if !p.Finite || !q.Finite {
		return p.Finite == q.Finite
	}
	return p.X.Equal(q.X) && p.Y.Equal(q.Y)
}

// Neg returns the additive inverse.
func (p Point) Neg() Point {
	if !p.Finite {
		return p
	}
	return Point{X: p.X, Y: p.Y.Neg(), Finite: true}
}

// Add returns p+q using the standard short-Weierstrass affine addition
// formulas, handling the identity and doubling cases.
func (p Point) Add(q Point) Point {
	if !p.Finite {
		return q
	}
	if !q.Finite {
		return p
	}
	if p.X.Equal(q.X) {
		if p.Y.Equal(q.Y.Neg()) {
			return Identity()
		}
		return p.Double()
	}
	// lambda = (y2-y1)/(x2-x1)
	num := q.Y.Sub(p.Y)
	den := q.X.Sub(p.X)
	denInv, err := ext7Inv(den)
	if err != nil {
		return Identity()
	}
	lambda := num.Mul(denInv)
	x3 := lambda.Mul(lambda).Sub(p.X).Sub(q.X)
	y3 := lambda.Mul(p.X.Sub(x3)).Sub(p.Y)
	return Point{X: x3, Y: y3, Finite: true}
}

// Double returns 2p.
func (p Point) Double() Point {
	if !p.Finite || p.Y.IsZero() {
		return Identity()
	}
	three := field.Ext7FromBase(field.New(3))
	two := field.Ext7FromBase(field.New(2))
	num := three.Mul(p.X).Mul(p.X)
	denInv, err := ext7Inv(two.Mul(p.Y))
	if err != nil {
		return Identity()
	}
	lambda := num.Mul(denInv)
	x3 := lambda.Mul(lambda).Sub(p.X).Sub(p.X)
	y3 := lambda.Mul(p.X.Sub(x3)).Sub(p.Y)
	return Point{X: x3, Y: y3, Finite: true}
}

// ext7Inv inverts an Ext7 element via its norm, the same technique
// field.Ext4.Inv uses, specialised to degree 7 (norm collapses through all 6
// non-trivial Frobenius conjugates).
func ext7Inv(a field.Ext7) (field.Ext7, error) {
	conj := field.Ext7One
	frob := a
	for i := 0; i < 6; i++ {
		frob = frobeniusExt7(frob)
		conj = conj.Mul(frob)
	}
	norm := a.Mul(conj)[0]
	normInv, err := norm.Inv()
	if err != nil {
		return field.Ext7Zero, err
	}
	return conj.MulBase(normInv), nil
}

func frobeniusExt7(a field.Ext7) field.Ext7 {
	result := field.Ext7One
	base := a
	e := field.Modulus
	for e > 0 {
		if e&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		e >>= 1
	}
	return result
}
