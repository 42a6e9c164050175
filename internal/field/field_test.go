// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package field

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddSubRoundTrip(t *testing.T) {
	a := New(123456789)
	b := New(987654321)
	require.True(t, a.Add(b).Sub(b).Equal(a))
}

func TestMulInv(t *testing.T) {
	a := New(42)
	inv, err := a.Inv()
	require.NoError(t, err)
	require.True(t, a.Mul(inv).Equal(One))
}

func TestInvZero(t *testing.T) {
	_, err := Elem(0).Inv()
	require.Error(t, err)
}

func TestNegRoundTrip(t *testing.T) {
	a := New(17)
	require.True(t, a.Add(a.Neg()).IsZero())
}

func TestBytesRoundTrip(t *testing.T) {
	a := New(0xC0FFEE)
	require.Equal(t, a, FromBytes(a.Bytes()))
}

func TestBatchInvert(t *testing.T) {
	xs := []Elem{New(2), New(3), New(5), New(7)}
	want := make([]Elem, len(xs))
	for i, x := range xs {
		inv, err := x.Inv()
		require.NoError(t, err)
		want[i] = inv
	}
	require.NoError(t, BatchInvert(xs))
	require.Equal(t, want, xs)
}

func TestExt4MulInv(t *testing.T) {
	a := Ext4{New(1), New(2), New(3), New(4)}
	inv, err := a.Inv()
	require.NoError(t, err)
	require.True(t, a.Mul(inv).Equal(Ext4One))
}

func TestExt4AddSub(t *testing.T) {
	a := Ext4{New(1), New(2), New(3), New(4)}
	b := Ext4{New(5), New(6), New(7), New(8)}
	require.True(t, a.Add(b).Sub(b).Equal(a))
}

func TestExt7MulDistributesOverAdd(t *testing.T) {
	a := Ext7{1, 2, 3, 4, 5, 6, 7}
	b := Ext7{7, 6, 5, 4, 3, 2, 1}
	c := Ext7{1, 1, 1, 1, 1, 1, 1}
	lhs := a.Mul(b.Add(c))
	rhs := a.Mul(b).Add(a.Mul(c))
	require.True(t, lhs.Equal(rhs))
}
