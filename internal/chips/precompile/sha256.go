// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package precompile

import (
	"encoding/binary"
	"fmt"
)

// sha256K is the standard SHA-256 round-constant table.
var sha256K = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5, 0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3, 0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc, 0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7, 0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13, 0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3, 0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5, 0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208, 0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

func rotr(x uint32, n uint32) uint32 { return x>>n | x<<(32-n) }

// shaExtend computes the SHA-256 message schedule. input must be exactly 64
// bytes (the first 16 big-endian 32-bit words of a message block); output
// is all 64 big-endian 32-bit words (256 bytes), matching spec.md §6's
// SHA_EXTEND precompile, which zkMIPS guests invoke to materialize the
// schedule before a SHA_COMPRESS call.
func shaExtend(input []byte) ([]byte, error) {
	if len(input) != 64 {
		return nil, fmt.Errorf("precompile: sha_extend expects a 64-byte block, got %d", len(input))
	}
	var w [64]uint32
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(input[i*4:])
	}
	for i := 16; i < 64; i++ {
		s0 := rotr(w[i-15], 7) ^ rotr(w[i-15], 18) ^ (w[i-15] >> 3)
		s1 := rotr(w[i-2], 17) ^ rotr(w[i-2], 19) ^ (w[i-2] >> 10)
		w[i] = w[i-16] + s0 + w[i-7] + s1
	}
	out := make([]byte, 256)
	for i, word := range w {
		binary.BigEndian.PutUint32(out[i*4:], word)
	}
	return out, nil
}

// shaCompress runs the 64-round SHA-256 compression function. input is the
// 32-byte (8-word) state followed by the 256-byte (64-word) schedule
// produced by shaExtend; output is the updated 32-byte state, matching
// spec.md §6's SHA_COMPRESS precompile.
func shaCompress(input []byte) ([]byte, error) {
	if len(input) != 32+256 {
		return nil, fmt.Errorf("precompile: sha_compress expects 288 bytes (state+schedule), got %d", len(input))
	}
	var h [8]uint32
	for i := 0; i < 8; i++ {
		h[i] = binary.BigEndian.Uint32(input[i*4:])
	}
	var w [64]uint32
	for i := 0; i < 64; i++ {
		w[i] = binary.BigEndian.Uint32(input[32+i*4:])
	}

	a, b, c, d, e, f, g, hh := h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7]
	for i := 0; i < 64; i++ {
		s1 := rotr(e, 6) ^ rotr(e, 11) ^ rotr(e, 25)
		ch := (e & f) ^ (^e & g)
		t1 := hh + s1 + ch + sha256K[i] + w[i]
		s0 := rotr(a, 2) ^ rotr(a, 13) ^ rotr(a, 22)
		maj := (a & b) ^ (a & c) ^ (b & c)
		t2 := s0 + maj

		hh, g, f, e, d, c, b, a = g, f, e, d+t1, c, b, a, t1+t2
	}

	h[0] += a
	h[1] += b
	h[2] += c
	h[3] += d
	h[4] += e
	h[5] += f
	h[6] += g
	h[7] += hh

	out := make([]byte, 32)
	for i, word := range h {
		binary.BigEndian.PutUint32(out[i*4:], word)
	}
	return out, nil
}
