// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package field

// Ext4 is the degree-4 extension F_p[x]/(x^4 - W) used for FRI query
// challenges and out-of-domain evaluation points (spec.md §4.3 step 3). W is
// chosen as a quadratic-and-quartic non-residue for the Baby Bear prime.
type Ext4 [4]Elem

// ext4NonResidue is the constant W defining the extension.
const ext4NonResidue Elem = 11

// Ext4Zero and Ext4One are the additive/multiplicative identities.
var (
	Ext4Zero = Ext4{}
	Ext4One  = Ext4{One, 0, 0, 0}
)

// Ext4FromBase embeds a base-field element into the extension.
func Ext4FromBase(a Elem) Ext4 {
	return Ext4{a, 0, 0, 0}
}

// Add returns a+b coefficient-wise.
func (a Ext4) Add(b Ext4) Ext4 {
	var r Ext4
	for i := range r {
		r[i] = a[i].Add(b[i])
	}
	return r
}

// Sub returns a-b coefficient-wise.
func (a Ext4) Sub(b Ext4) Ext4 {
	var r Ext4
	for i := range r {
		r[i] = a[i].Sub(b[i])
	}
	return r
}

// Neg returns -a.
func (a Ext4) Neg() Ext4 {
	var r Ext4
	for i := range r {
		r[i] = a[i].Neg()
	}
	return r
}

// Mul returns a*b mod (x^4 - W), via schoolbook multiplication.
func (a Ext4) Mul(b Ext4) Ext4 {
	var prod [7]Elem
	for i := 0; i < 4; i++ {
		if a[i] == 0 {
			continue
		}
		for j := 0; j < 4; j++ {
			prod[i+j] = prod[i+j].Add(a[i].Mul(b[j]))
		}
	}
	var r Ext4
	for i := 0; i < 4; i++ {
		r[i] = prod[i]
	}
	for i := 4; i < 7; i++ {
		r[i-4] = r[i-4].Add(prod[i].Mul(ext4NonResidue))
	}
	return r
}

// MulBase scales every coefficient by a base-field element.
func (a Ext4) MulBase(s Elem) Ext4 {
	var r Ext4
	for i := range r {
		r[i] = a[i].Mul(s)
	}
	return r
}

// IsZero reports whether every coefficient is zero.
func (a Ext4) IsZero() bool {
	for _, c := range a {
		if !c.IsZero() {
			return false
		}
	}
	return true
}

// Equal reports component-wise equality.
func (a Ext4) Equal(b Ext4) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Inv computes the multiplicative inverse by raising to p^4-2 via the norm
// map, mirroring the base field's Fermat-little-theorem approach but folded
// through the extension's Frobenius conjugates to stay in exact arithmetic
// without introducing a separate extended-Euclidean implementation.
func (a Ext4) Inv() (Ext4, error) {
	if a.IsZero() {
		return Ext4{}, errZeroInverse
	}
	// Compute a^(p+p^2+p^3) which lands in the base field (the norm), then
	// invert the norm and multiply back by the conjugate product.
	conjProd := Ext4One
	frob := a
	for i := 0; i < 3; i++ {
		frob = frobenius(frob)
		conjProd = conjProd.Mul(frob)
	}
	norm := a.Mul(conjProd)[0] // conjugate product times a lands purely in base field
	normInv, err := norm.Inv()
	if err != nil {
		return Ext4{}, err
	}
	return conjProd.MulBase(normInv), nil
}

// frobenius raises every coefficient's "position" by the p-power Frobenius
// endomorphism specialised to this quartic binomial extension: since the
// extension is F_p[x]/(x^4-W), Frobenius acts by x -> x^p, which for p ≡ 1
// mod 4 (true for the Baby Bear prime) permutes coefficients by a root of
// unity; for simplicity and exactness we instead compute it directly via
// repeated squaring through Exp-style exponentiation on the full element.
func frobenius(a Ext4) Ext4 {
	return a.expBase(Modulus)
}

func (a Ext4) expBase(e uint64) Ext4 {
	result := Ext4One
	base := a
	for e > 0 {
		if e&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		e >>= 1
	}
	return result
}

var errZeroInverse = fieldError("field: inverse of zero element")

type fieldError string

func (e fieldError) Error() string { return string(e) }
