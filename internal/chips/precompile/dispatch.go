// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package precompile implements the native arithmetic behind every
// precompile syscall of spec.md §6 "Syscall ABI" and §4.2 "Precompile
// chips". The MIPS executor (internal/mips) calls Dispatch to run guest
// precompile calls natively. This package holds only those native
// functions; it defines no AIR chip, and no trace generation calls them.
package precompile

import "fmt"

// Syscall numbers, spec.md §6 "Syscall ABI" (selected identifiers — full
// list is normative there; only the precompile family is enumerated here).
const (
	ShaExtend            = 0x00300105
	ShaCompress          = 0x00010106
	EdAdd                = 0x00010107
	EdDecompress         = 0x00000108
	KeccakSponge         = 0x00010109
	Secp256k1Add         = 0x0001010A
	Secp256k1Double      = 0x0000010B
	Secp256k1Decompress  = 0x0000010C
	Bn254Add             = 0x0001010E
	Bn254Double          = 0x0000010F
	Bls12381Decompress   = 0x0000011C
	Uint256Mul           = 0x0001011D
	Bls12381Add          = 0x0001011E
	Bls12381Double       = 0x0000011F
	Bls12381FpAdd        = 0x120
	Bls12381FpSub        = 0x121
	Bls12381FpMul        = 0x122
	Bls12381Fp2Add       = 0x123
	Bls12381Fp2Sub       = 0x124
	Bls12381Fp2Mul       = 0x125
	Bn254FpAdd           = 0x126
	Bn254FpSub           = 0x127
	Bn254FpMul           = 0x128
	Bn254Fp2Add          = 0x129
	Bn254Fp2Sub          = 0x12A
	Bn254Fp2Mul          = 0x12B
	Secp256r1Add         = 0x0001012C
	Secp256r1Double      = 0x0000012D
	Secp256r1Decompress  = 0x0000012E
	U256xU2048Mul        = 0x0001012F
	Poseidon2Permute     = 0x00000130
)

// Func computes a precompile's mathematical relation over a raw input
// buffer (the bytes the executor read from guest memory at the syscall's
// pointer/length operands) and returns the raw output buffer to write back
// (spec.md §4.1 "the executor performs the memory reads, applies the
// precompile's mathematical function, writes the result back to memory").
type Func func(input []byte) (output []byte, err error)

// Table maps a syscall number to its native implementation.
type Table map[uint32]Func

// Default wires every precompile syscall number to its implementation,
// grounded per-family in DESIGN.md's "L4 — internal/chips" entries.
func Default() Table {
	return Table{
		ShaExtend:           shaExtend,
		ShaCompress:         shaCompress,
		EdAdd:               edAdd,
		EdDecompress:        edDecompress,
		KeccakSponge:        keccakSponge,
		Secp256k1Add:        secp256k1Add,
		Secp256k1Double:     secp256k1Double,
		Secp256k1Decompress: secp256k1Decompress,
		Bn254Add:            bn254Add,
		Bn254Double:         bn254Double,
		Bls12381Decompress:  bls12381Decompress,
		Uint256Mul:          uint256Mul,
		Bls12381Add:         bls12381Add,
		Bls12381Double:      bls12381Double,
		Bls12381FpAdd:       bls12381FpAdd,
		Bls12381FpSub:       bls12381FpSub,
		Bls12381FpMul:       bls12381FpMul,
		Bls12381Fp2Add:      bls12381Fp2Add,
		Bls12381Fp2Sub:      bls12381Fp2Sub,
		Bls12381Fp2Mul:      bls12381Fp2Mul,
		Bn254FpAdd:          bn254FpAdd,
		Bn254FpSub:          bn254FpSub,
		Bn254FpMul:          bn254FpMul,
		Bn254Fp2Add:         bn254Fp2Add,
		Bn254Fp2Sub:         bn254Fp2Sub,
		Bn254Fp2Mul:         bn254Fp2Mul,
		Secp256r1Add:        secp256r1Add,
		Secp256r1Double:     secp256r1Double,
		Secp256r1Decompress: secp256r1Decompress,
		U256xU2048Mul:       u256xU2048Mul,
		Poseidon2Permute:    poseidon2Permute,
	}
}

// Dispatch runs the precompile registered for number, or reports it
// unknown. Table is a plain map so callers (tests, alternate executors) can
// substitute or extend it without touching this package.
func (t Table) Dispatch(number uint32, input []byte) ([]byte, error) {
	fn, ok := t[number]
	if !ok {
		return nil, fmt.Errorf("precompile: no implementation registered for syscall 0x%x", number)
	}
	return fn(input)
}
