// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package precompile

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

// uint256Mul implements the UINT256_MUL precompile: (x * y) mod m over
// three 32-byte big-endian words, grounded on github.com/holiman/uint256,
// the same 256-bit integer type the teacher's dex package uses for token
// balances (dex/pool_manager.go).
func uint256Mul(input []byte) ([]byte, error) {
	if len(input) != 96 {
		return nil, fmt.Errorf("precompile: uint256_mul expects 96 bytes (x, y, modulus), got %d", len(input))
	}
	x := new(uint256.Int).SetBytes(input[:32])
	y := new(uint256.Int).SetBytes(input[32:64])
	m := new(uint256.Int).SetBytes(input[64:])

	var result uint256.Int
	if m.IsZero() {
		result.Mul(x, y)
	} else {
		result.MulMod(x, y, m)
	}
	out := result.Bytes32()
	return out[:], nil
}

// u256xU2048Mul multiplies a 256-bit integer by a 2048-bit integer,
// producing the full 2304-bit product. holiman/uint256 is fixed at 256
// bits and cannot represent either the 2048-bit operand or the widened
// product, so this one operation falls back to math/big (DESIGN.md
// "Standard-library-only components").
func u256xU2048Mul(input []byte) ([]byte, error) {
	const wideBytes = 256
	if len(input) != 32+wideBytes {
		return nil, fmt.Errorf("precompile: u256xu2048_mul expects %d bytes (256-bit x, 2048-bit y), got %d", 32+wideBytes, len(input))
	}
	x := new(big.Int).SetBytes(input[:32])
	y := new(big.Int).SetBytes(input[32:])
	product := new(big.Int).Mul(x, y)

	out := make([]byte, 32+wideBytes)
	pb := product.Bytes()
	copy(out[len(out)-len(pb):], pb)
	return out, nil
}
