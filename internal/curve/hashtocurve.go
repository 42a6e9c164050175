// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package curve

import (
	"github.com/lux-zk/zkmips/internal/field"
)

// Tag distinguishes a multiset-hash tuple's role, per spec.md §4.2:
// "the 6th extension-coordinate limb of a point's tag field distinguishes
// send from receive; the exceptional value 0 marks padding rows."
type Tag byte

const (
	// TagPadding marks a row that contributes nothing to the accumulator.
	TagPadding Tag = 0
	// TagSend marks a tuple added to the write-set (a "send" on the bus).
	TagSend Tag = 1
	// TagReceive marks a tuple added to the read-set (a "receive" on the bus).
	TagReceive Tag = 2
)

// HashToCurve deterministically maps a tagged tuple of field elements onto a
// curve point, used by the prover/verifier to fold memory-access and
// cross-shard bus tuples into the running multiset-hash accumulator. The
// scalar depends only on the tuple's contents, so a "send" of tuple T and a
// "receive" of the same tuple T map to additive inverses of one another and
// cancel in the running sum when the multiset equality holds; the tag only
// selects the sign (send = +, receive = -), matching "the 6th
// extension-coordinate limb of a point's tag field distinguishes send from
// receive" of spec.md §4.2.
func HashToCurve(tag Tag, tuple []field.Elem) Point {
	if tag == TagPadding {
		return Identity()
	}
	p := scalarMul(Generator(), tupleToScalar(tuple))
	if tag == TagReceive {
		return p.Neg()
	}
	return p
}

// tupleToScalar folds a tuple of field elements into a single scalar via
// Horner's rule over a fixed odd multiplier, so distinct tuples collide only
// with negligible probability.
func tupleToScalar(tuple []field.Elem) field.Elem {
	acc := field.Zero
	for _, v := range tuple {
		acc = acc.Mul(field.New(1<<16 + 1)).Add(v)
	}
	return acc
}

// scalarMul computes [k]p via double-and-add.
func scalarMul(p Point, k field.Elem) Point {
	result := Identity()
	base := p
	e := k.Uint64()
	for e > 0 {
		if e&1 == 1 {
			result = result.Add(base)
		}
		base = base.Double()
		e >>= 1
	}
	return result
}

// Accumulator is a running multiset-hash sum, initialised to the identity.
type Accumulator struct {
	Sum Point
}

// Add folds a tagged tuple into the accumulator.
func (acc *Accumulator) Add(tag Tag, tuple []field.Elem) {
	acc.Sum = acc.Sum.Add(HashToCurve(tag, tuple))
}

// IsIdentity reports whether the accumulator has returned to the group
// identity, i.e. every send has been matched by a receive (spec.md §8
// invariant 7).
func (acc *Accumulator) IsIdentity() bool {
	return !acc.Sum.Finite || acc.Sum.Equal(Identity())
}
