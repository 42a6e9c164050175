// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package curve

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lux-zk/zkmips/internal/field"
)

func TestIdentityIsNeutral(t *testing.T) {
	g := Generator()
	require.True(t, g.Add(Identity()).Equal(g))
	require.True(t, Identity().Add(g).Equal(g))
}

func TestPointPlusNegIsIdentity(t *testing.T) {
	g := Generator()
	require.True(t, g.Add(g.Neg()).Equal(Identity()))
}

func TestDoubleMatchesAdd(t *testing.T) {
	g := Generator()
	require.True(t, g.Add(g).Equal(g.Double()))
}

func TestAdditionCommutes(t *testing.T) {
	g := Generator()
	h := g.Double()
	require.True(t, g.Add(h).Equal(h.Add(g)))
}

func TestSendReceiveCancel(t *testing.T) {
	tuple := []field.Elem{field.New(1), field.New(2), field.New(3)}
	var acc Accumulator
	acc.Add(TagSend, tuple)
	acc.Add(TagReceive, tuple)
	require.True(t, acc.IsIdentity())
}

func TestMismatchedTuplesDoNotCancel(t *testing.T) {
	var acc Accumulator
	acc.Add(TagSend, []field.Elem{field.New(1)})
	acc.Add(TagReceive, []field.Elem{field.New(2)})
	require.False(t, acc.IsIdentity())
}

func TestPaddingContributesNothing(t *testing.T) {
	var acc Accumulator
	before := acc.Sum
	acc.Add(TagPadding, []field.Elem{field.New(99)})
	require.True(t, acc.Sum.Equal(before))
}
