// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mips

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildMinimalMIPSELF hand-assembles the smallest valid little-endian
// MIPS32 ELF executable: an ELF header followed by one PT_LOAD program
// header and its data, with no section headers (debug/elf only requires
// program headers to resolve PT_LOAD segments).
func buildMinimalMIPSELF(t *testing.T, entry, vaddr uint32, data []byte) []byte {
	t.Helper()
	const ehdrSize = 52
	const phdrSize = 32

	buf := make([]byte, ehdrSize+phdrSize+len(data))

	// e_ident
	copy(buf[0:4], []byte{0x7f, 'E', 'L', 'F'})
	buf[4] = 1 // ELFCLASS32
	buf[5] = 1 // ELFDATA2LSB
	buf[6] = 1 // EV_CURRENT

	le := binary.LittleEndian
	le.PutUint16(buf[16:], 2)              // e_type = ET_EXEC
	le.PutUint16(buf[18:], 8)              // e_machine = EM_MIPS
	le.PutUint32(buf[20:], 1)              // e_version
	le.PutUint32(buf[24:], entry)          // e_entry
	le.PutUint32(buf[28:], ehdrSize)       // e_phoff
	le.PutUint32(buf[32:], 0)              // e_shoff
	le.PutUint32(buf[36:], 0)              // e_flags
	le.PutUint16(buf[40:], ehdrSize)       // e_ehsize
	le.PutUint16(buf[42:], phdrSize)       // e_phentsize
	le.PutUint16(buf[44:], 1)              // e_phnum
	le.PutUint16(buf[46:], 0)              // e_shentsize
	le.PutUint16(buf[48:], 0)              // e_shnum
	le.PutUint16(buf[50:], 0)              // e_shstrndx

	ph := buf[ehdrSize : ehdrSize+phdrSize]
	le.PutUint32(ph[0:], 1)                       // p_type = PT_LOAD
	le.PutUint32(ph[4:], ehdrSize+phdrSize)        // p_offset
	le.PutUint32(ph[8:], vaddr)                    // p_vaddr
	le.PutUint32(ph[12:], vaddr)                   // p_paddr
	le.PutUint32(ph[16:], uint32(len(data)))       // p_filesz
	le.PutUint32(ph[20:], uint32(len(data)))       // p_memsz
	le.PutUint32(ph[24:], 5)                       // p_flags = R|X
	le.PutUint32(ph[28:], 4)                       // p_align

	copy(buf[ehdrSize+phdrSize:], data)
	return buf
}

func TestLoadELFBasic(t *testing.T) {
	// ADDU $8, $9, $10 followed by a HALT-equivalent SYSCALL word.
	prog := make([]byte, 8)
	binary.LittleEndian.PutUint32(prog[0:], encodeR(0x00, 9, 10, 8, 0, 0x21))
	binary.LittleEndian.PutUint32(prog[4:], encodeR(0x00, 0, 0, 0, 0, 0x0C))

	raw := buildMinimalMIPSELF(t, 0x400000, 0x400000, prog)
	img, err := LoadELF(raw)
	require.NoError(t, err)
	require.Equal(t, uint32(0x400000), img.Entry)
	require.Equal(t, encodeR(0x00, 9, 10, 8, 0, 0x21), img.Words[0x400000])
	require.Equal(t, encodeR(0x00, 0, 0, 0, 0, 0x0C), img.Words[0x400004])
	require.NotEqual(t, [32]byte{}, img.Digest)
}

func TestLoadELFRejectsNonMIPS(t *testing.T) {
	raw := buildMinimalMIPSELF(t, 0x400000, 0x400000, []byte{0, 0, 0, 0})
	raw[18] = 0x3e // e_machine low byte -> EM_X86_64
	raw[19] = 0x00
	_, err := LoadELF(raw)
	require.Error(t, err)
}

func TestLoadELFRejectsGarbage(t *testing.T) {
	_, err := LoadELF([]byte{1, 2, 3, 4})
	require.Error(t, err)
}

func TestLoadELFTailBytesFoldIn(t *testing.T) {
	data := []byte{0xAA, 0xBB, 0xCC} // 3-byte tail, no full word
	raw := buildMinimalMIPSELF(t, 0x1000, 0x1000, data)
	img, err := LoadELF(raw)
	require.NoError(t, err)
	require.Equal(t, uint32(0x00CCBBAA), img.Words[0x1000])
}
