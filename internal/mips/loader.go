// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mips

import (
	"debug/elf"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/zeebo/blake3"
)

// ProgramImage is the immutable word-addressed memory image produced by
// loading an ELF: "An immutable mapping from word-aligned 32-bit addresses
// to 32-bit instruction/data words, plus an entry point... never mutated"
// (spec.md §3 "Program image").
type ProgramImage struct {
	Words  map[uint32]uint32
	Entry  uint32
	Digest [32]byte
}

// LoadELF parses a MIPS32 little-endian ELF into a ProgramImage. ELF
// parsing is the one standard-library-only component of this layer
// (DESIGN.md "Standard-library-only components": no repo in the retrieval
// pack imports a third-party ELF parser, and `debug/elf` already parses
// this narrow, fully-specified binary format correctly).
func LoadELF(data []byte) (*ProgramImage, error) {
	f, err := elf.NewFile(bytesReader(data))
	if err != nil {
		return nil, fmt.Errorf("mips: parse ELF: %w", err)
	}
	defer f.Close()

	if f.Machine != elf.EM_MIPS {
		return nil, fmt.Errorf("mips: ELF machine %s is not MIPS", f.Machine)
	}
	if f.Class != elf.ELFCLASS32 {
		return nil, fmt.Errorf("mips: ELF class %s is not 32-bit", f.Class)
	}
	if f.ByteOrder != binary.LittleEndian {
		return nil, fmt.Errorf("mips: ELF is not little-endian")
	}

	words := make(map[uint32]uint32)
	for _, prog := range f.Progs {
		if prog.Type != elf.PT_LOAD {
			continue
		}
		section, err := prog.Data()
		if err != nil {
			return nil, fmt.Errorf("mips: read PT_LOAD segment: %w", err)
		}
		base := uint32(prog.Vaddr)
		for i := 0; i+4 <= len(section); i += 4 {
			word := binary.LittleEndian.Uint32(section[i : i+4])
			if word != 0 {
				words[base+uint32(i)] = word
			}
		}
		// Tail bytes that don't fill a whole word still belong to the image;
		// fold them into the word they partially occupy.
		if rem := len(section) % 4; rem != 0 {
			tailAddr := base + uint32(len(section)-rem)
			var buf [4]byte
			copy(buf[:], section[len(section)-rem:])
			word := binary.LittleEndian.Uint32(buf[:])
			if word != 0 {
				words[tailAddr] = word
			}
		}
	}

	digest := blake3.Sum256(data)
	return &ProgramImage{Words: words, Entry: uint32(f.Entry), Digest: digest}, nil
}

// bytesReader adapts a byte slice to the io.ReaderAt debug/elf.NewFile
// expects, without pulling in bytes.Reader's io.Reader-only surface.
type bytesReader []byte

func (b bytesReader) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off > int64(len(b)) {
		return 0, fmt.Errorf("mips: ELF read offset %d out of range", off)
	}
	n := copy(p, b[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
