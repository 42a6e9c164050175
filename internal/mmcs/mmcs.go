// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package mmcs implements the Mixed Matrix Commitment Scheme: a Merkle
// commitment over a batch of trace matrices of differing heights, all
// committed under one root (spec.md §4.3 step 2, glossary "MMCS").
// Grounded on the teacher's zk/commitment.go CommitmentScheme interface,
// generalized from a single value commitment to a tree of row digests, and
// on zk/poseidon.go's Poseidon2Hasher.HashPair for the pairwise hash.
package mmcs

import (
	"fmt"

	"github.com/lux-zk/zkmips/internal/field"
	"github.com/lux-zk/zkmips/internal/poseidonhash"
)

// Matrix is one chip's trace: rows of base-field elements, height a power
// of two.
type Matrix struct {
	Width  int
	Height int
	Data   [][]field.Elem // Data[row][col]
}

// Row returns row i (the matrix's own slice, not a copy).
func (m *Matrix) Row(i int) []field.Elem {
	return m.Data[i]
}

// Commitment is the root of a mixed-matrix Merkle tree plus enough metadata
// to open rows of any committed matrix.
type Commitment struct {
	Root    [32]byte
	layers  [][][32]byte // layers[0] = leaf digests at the largest height
	maxRows int
}

// Commit builds a mixed-matrix commitment over a set of matrices. Matrices
// may have different heights; all heights must be powers of two. A matrix
// shorter than the tallest one is opened at index (i mod height), i.e. "the
// low bits of i" are truncated for shorter matrices (spec.md §4.3 step 2).
func Commit(matrices []*Matrix) (*Commitment, error) {
	if len(matrices) == 0 {
		return nil, fmt.Errorf("mmcs: no matrices to commit")
	}
	maxRows := 0
	for _, m := range matrices {
		if m.Height == 0 || (m.Height&(m.Height-1)) != 0 {
			return nil, fmt.Errorf("mmcs: matrix height %d is not a power of two", m.Height)
		}
		if m.Height > maxRows {
			maxRows = m.Height
		}
	}

	leaves := make([][32]byte, maxRows)
	for i := 0; i < maxRows; i++ {
		var rowBytes []byte
		for _, m := range matrices {
			row := m.Data[i%m.Height]
			for _, v := range row {
				b := v.Bytes()
				rowBytes = append(rowBytes, b[:]...)
			}
		}
		leaves[i] = poseidonhash.HashBytes(rowBytes)
	}

	layers := [][][32]byte{leaves}
	cur := leaves
	for len(cur) > 1 {
		next := make([][32]byte, (len(cur)+1)/2)
		for i := range next {
			left := cur[2*i]
			var right [32]byte
			if 2*i+1 < len(cur) {
				right = cur[2*i+1]
			} else {
				right = left
			}
			next[i] = poseidonhash.HashPair(left, right)
		}
		layers = append(layers, next)
		cur = next
	}

	return &Commitment{Root: cur[0], layers: layers, maxRows: maxRows}, nil
}

// OpeningProof is a Merkle authentication path for one row index.
type OpeningProof struct {
	Index   int
	Values  [][]field.Elem // per-matrix opened row (truncated index applied)
	Siblings [][32]byte
}

// Open produces an opening proof for row index i (relative to the tallest
// matrix) across every committed matrix.
func (c *Commitment) Open(matrices []*Matrix, index int) (*OpeningProof, error) {
	if index < 0 || index >= c.maxRows {
		return nil, fmt.Errorf("mmcs: index %d out of range [0, %d)", index, c.maxRows)
	}
	values := make([][]field.Elem, len(matrices))
	for mi, m := range matrices {
		values[mi] = m.Row(index % m.Height)
	}
	siblings := make([][32]byte, 0, len(c.layers)-1)
	idx := index
	for layer := 0; layer < len(c.layers)-1; layer++ {
		level := c.layers[layer]
		var sibIdx int
		if idx%2 == 0 {
			sibIdx = idx + 1
		} else {
			sibIdx = idx - 1
		}
		if sibIdx >= len(level) {
			sibIdx = idx
		}
		siblings = append(siblings, level[sibIdx])
		idx /= 2
	}
	return &OpeningProof{Index: index, Values: values, Siblings: siblings}, nil
}

// Verify checks that an opening proof is consistent with the committed root.
// heights needs one entry per opened matrix; its values do not enter the
// check.
func Verify(root [32]byte, heights []int, proof *OpeningProof) bool {
	var rowBytes []byte
	for mi, vals := range proof.Values {
		for _, v := range vals {
			b := v.Bytes()
			rowBytes = append(rowBytes, b[:]...)
		}
		_ = heights[mi]
	}
	cur := poseidonhash.HashBytes(rowBytes)
	idx := proof.Index
	for _, sib := range proof.Siblings {
		if idx%2 == 0 {
			cur = poseidonhash.HashPair(cur, sib)
		} else {
			cur = poseidonhash.HashPair(sib, cur)
		}
		idx /= 2
	}
	return cur == root
}
