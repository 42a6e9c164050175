// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package field

import "fmt"

// BatchInvert inverts every non-zero element of xs in place using the
// standard Montgomery trick (one running product forward, one inverse
// division backward), so that N inversions cost a single field inversion
// plus O(N) multiplications. Grounded on the batched scalar-multiplication
// loop structure of the teacher's zk/pedersen.go.
func BatchInvert(xs []Elem) error {
	n := len(xs)
	if n == 0 {
		return nil
	}
	prefix := make([]Elem, n)
	acc := One
	for i, x := range xs {
		if x.IsZero() {
			return fmt.Errorf("field: BatchInvert: element %d is zero", i)
		}
		prefix[i] = acc
		acc = acc.Mul(x)
	}
	accInv, err := acc.Inv()
	if err != nil {
		return err
	}
	for i := n - 1; i >= 0; i-- {
		xs[i], accInv = accInv.Mul(prefix[i]), accInv.Mul(xs[i])
	}
	return nil
}
