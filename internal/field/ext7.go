// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package field

// Ext7 is the degree-7 extension F_p[x]/(x^7 - W) over which the
// multiset-hash elliptic curve (internal/curve) is defined, per spec.md
// §4.2 "Memory consistency algorithm".
type Ext7 [7]Elem

const ext7NonResidue Elem = 5

// Ext7Zero and Ext7One are the additive/multiplicative identities.
var (
	Ext7Zero = Ext7{}
	Ext7One  = Ext7{One}
)

// Ext7FromBase embeds a base-field element into the extension.
func Ext7FromBase(a Elem) Ext7 {
	var r Ext7
	r[0] = a
	return r
}

// Add returns a+b coefficient-wise.
func (a Ext7) Add(b Ext7) Ext7 {
	var r Ext7
	for i := range r {
		r[i] = a[i].Add(b[i])
	}
	return r
}

// Sub returns a-b coefficient-wise.
func (a Ext7) Sub(b Ext7) Ext7 {
	var r Ext7
	for i := range r {
		r[i] = a[i].Sub(b[i])
	}
	return r
}

// Neg returns -a.
func (a Ext7) Neg() Ext7 {
	var r Ext7
	for i := range r {
		r[i] = a[i].Neg()
	}
	return r
}

// Mul returns a*b mod (x^7 - W).
func (a Ext7) Mul(b Ext7) Ext7 {
	var prod [13]Elem
	for i := 0; i < 7; i++ {
		if a[i] == 0 {
			continue
		}
		for j := 0; j < 7; j++ {
			prod[i+j] = prod[i+j].Add(a[i].Mul(b[j]))
		}
	}
	var r Ext7
	for i := 0; i < 7; i++ {
		r[i] = prod[i]
	}
	for i := 7; i < 13; i++ {
		r[i-7] = r[i-7].Add(prod[i].Mul(ext7NonResidue))
	}
	return r
}

// MulBase scales every coefficient by a base-field element.
func (a Ext7) MulBase(s Elem) Ext7 {
	var r Ext7
	for i := range r {
		r[i] = a[i].Mul(s)
	}
	return r
}

// IsZero reports whether every coefficient is zero.
func (a Ext7) IsZero() bool {
	for _, c := range a {
		if !c.IsZero() {
			return false
		}
	}
	return true
}

// Equal reports component-wise equality.
func (a Ext7) Equal(b Ext7) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Bytes encodes the 7 coefficients as 28 little-endian bytes.
func (a Ext7) Bytes() [28]byte {
	var out [28]byte
	for i, c := range a {
		b := c.Bytes()
		copy(out[i*4:], b[:])
	}
	return out
}
