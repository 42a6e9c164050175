// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mmcs

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lux-zk/zkmips/internal/field"
)

func makeMatrix(width, height int, seed uint64) *Matrix {
	data := make([][]field.Elem, height)
	for i := range data {
		row := make([]field.Elem, width)
		for j := range row {
			row[j] = field.New(seed + uint64(i*width+j))
		}
		data[i] = row
	}
	return &Matrix{Width: width, Height: height, Data: data}
}

func TestCommitOpenVerifyMixedHeights(t *testing.T) {
	m1 := makeMatrix(3, 8, 1)
	m2 := makeMatrix(2, 4, 1000)
	matrices := []*Matrix{m1, m2}

	c, err := Commit(matrices)
	require.NoError(t, err)

	for i := 0; i < 8; i++ {
		proof, err := c.Open(matrices, i)
		require.NoError(t, err)
		require.True(t, Verify(c.Root, []int{m1.Height, m2.Height}, proof))
	}
}

func TestVerifyRejectsTamperedRow(t *testing.T) {
	m1 := makeMatrix(3, 4, 1)
	matrices := []*Matrix{m1}
	c, err := Commit(matrices)
	require.NoError(t, err)

	proof, err := c.Open(matrices, 2)
	require.NoError(t, err)
	proof.Values[0][0] = proof.Values[0][0].Add(field.One)
	require.False(t, Verify(c.Root, []int{m1.Height}, proof))
}

func TestCommitRejectsNonPowerOfTwoHeight(t *testing.T) {
	m := makeMatrix(2, 3, 0)
	_, err := Commit([]*Matrix{m})
	require.Error(t, err)
}
