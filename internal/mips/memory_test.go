// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mips

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryWordRoundTrip(t *testing.T) {
	m := NewMemoryFromImage(&ProgramImage{Words: map[uint32]uint32{}})
	rec := m.WriteWord(0x1000, 0xCAFEBABE, 0, 1)
	require.Equal(t, uint32(0), rec.PrevValue)

	readRec := m.ReadWord(0x1000, 0, 2)
	require.Equal(t, uint32(0xCAFEBABE), readRec.Value)
	require.Equal(t, uint32(0xCAFEBABE), readRec.PrevValue)
	require.Equal(t, uint64(1), readRec.PrevClock)
}

func TestMemoryByteComposition(t *testing.T) {
	m := NewMemoryFromImage(&ProgramImage{Words: map[uint32]uint32{}})
	m.WriteByte(0x2000, 0xAA, 0, 1)
	m.WriteByte(0x2001, 0xBB, 0, 2)
	m.WriteByte(0x2002, 0xCC, 0, 3)
	m.WriteByte(0x2003, 0xDD, 0, 4)

	word := m.ReadWord(0x2000, 0, 5).Value
	require.Equal(t, uint32(0xDDCCBBAA), word)

	b, _ := m.ReadByte(0x2002, 0, 6)
	require.Equal(t, byte(0xCC), b)
}

func TestMemoryHalfRoundTrip(t *testing.T) {
	m := NewMemoryFromImage(&ProgramImage{Words: map[uint32]uint32{}})
	m.WriteHalf(0x3002, 0xBEEF, 0, 1)
	h, _ := m.ReadHalf(0x3002, 0, 2)
	require.Equal(t, uint16(0xBEEF), h)
	// upper half of the same word is untouched.
	word := m.ReadWord(0x3000, 0, 3).Value
	require.Equal(t, uint32(0xBEEF0000), word)
}

func TestFetchWordDoesNotUpdateAccessHistory(t *testing.T) {
	m := NewMemoryFromImage(&ProgramImage{Words: map[uint32]uint32{0x400: 0x12345678}})
	require.Equal(t, uint32(0x12345678), m.FetchWord(0x400))
	rec := m.ReadWord(0x400, 0, 1)
	require.Equal(t, uint32(0), rec.PrevClock)
}

func TestReadWriteBufferRoundTrip(t *testing.T) {
	m := NewMemoryFromImage(&ProgramImage{Words: map[uint32]uint32{}})
	data := []byte{1, 2, 3, 4, 5, 6, 7}
	m.WriteBuffer(0x5000, data, 0, 1)
	out, _ := m.ReadBuffer(0x5000, len(data), 0, 2)
	require.Equal(t, data, out)
}

func TestAlignmentPredicates(t *testing.T) {
	require.True(t, IsWordAligned(0x100))
	require.False(t, IsWordAligned(0x101))
	require.True(t, IsHalfAligned(0x102))
	require.False(t, IsHalfAligned(0x103))
}
