// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package precompile

import "encoding/binary"

// Keccak-f[1600] is implemented by hand rather than imported
// (golang.org/x/crypto/sha3 appears nowhere in the retrieval pack, not even
// transitively — DESIGN.md "Standard-library-only components"). The
// permutation below follows the reference round structure (theta, rho,
// pi, chi, iota) over a 5x5 array of 64-bit lanes.

var keccakRC = [24]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808a, 0x8000000080008000,
	0x000000000000808b, 0x0000000080000001, 0x8000000080008081, 0x8000000000008009,
	0x000000000000008a, 0x0000000000000088, 0x0000000080008009, 0x000000008000000a,
	0x000000008000808b, 0x800000000000008b, 0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080, 0x000000000000800a, 0x800000008000000a,
	0x8000000080008081, 0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

var keccakRotc = [25]uint32{
	0, 1, 62, 28, 27,
	36, 44, 6, 55, 20,
	3, 10, 43, 25, 39,
	41, 45, 15, 21, 8,
	18, 2, 61, 56, 14,
}

// piLane[x+5*y] gives the source lane index feeding destination (x,y) in
// the pi step.
var piLane = [25]int{
	0, 6, 12, 18, 24,
	3, 9, 10, 16, 22,
	1, 7, 13, 19, 20,
	4, 5, 11, 17, 23,
	2, 8, 14, 15, 21,
}

func rotl64(x uint64, n uint32) uint64 {
	if n == 0 {
		return x
	}
	return x<<n | x>>(64-n)
}

func keccakF1600(a *[25]uint64) {
	for round := 0; round < 24; round++ {
		// theta
		var c [5]uint64
		for x := 0; x < 5; x++ {
			c[x] = a[x] ^ a[x+5] ^ a[x+10] ^ a[x+15] ^ a[x+20]
		}
		var d [5]uint64
		for x := 0; x < 5; x++ {
			d[x] = c[(x+4)%5] ^ rotl64(c[(x+1)%5], 1)
		}
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				a[x+5*y] ^= d[x]
			}
		}

		// rho + pi
		var b [25]uint64
		for i := 0; i < 25; i++ {
			b[i] = rotl64(a[piLane[i]], keccakRotc[piLane[i]])
		}

		// chi
		for y := 0; y < 5; y++ {
			row := b[5*y : 5*y+5]
			for x := 0; x < 5; x++ {
				a[x+5*y] = row[x] ^ (^row[(x+1)%5] & row[(x+2)%5])
			}
		}

		// iota
		a[0] ^= keccakRC[round]
	}
}

// keccakSponge absorbs the entire input with the Keccak-256 rate
// (1088 bits = 136 bytes) and squeezes 32 bytes, i.e. standard Keccak-256
// (not NIST SHA3-256, which uses a different domain-separation padding
// byte) — matching spec.md §6 scenario 3's expected digest, "standard
// Keccak-256 of 64 zero bytes".
func keccakSponge(input []byte) ([]byte, error) {
	const rate = 136
	var state [25]uint64

	padded := append([]byte{}, input...)
	padded = append(padded, 0x01)
	for len(padded)%rate != 0 {
		padded = append(padded, 0x00)
	}
	padded[len(padded)-1] |= 0x80

	for off := 0; off < len(padded); off += rate {
		block := padded[off : off+rate]
		for i := 0; i < rate/8; i++ {
			state[i] ^= binary.LittleEndian.Uint64(block[i*8:])
		}
		keccakF1600(&state)
	}

	out := make([]byte, 32)
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint64(out[i*8:], state[i])
	}
	return out, nil
}
