// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mips

// MemCell records the last write observed at a word-aligned address: its
// value and the (shard, clock) at which it was written. This is exactly the
// "previous value + previous shard + previous clock" triple spec.md §3
// "Memory access record" requires the executor to carry forward on every
// subsequent access.
type MemCell struct {
	Value uint32
	Shard uint32
	Clock uint64
}

// AccessRecord is what the executor hands to the chip layer for every
// touched address: the address, the value observed/written now, and the
// previous cell it supersedes (spec.md §3 "Event record... memory access
// records for any touched address (current value + previous value +
// previous shard + previous clock)").
type AccessRecord struct {
	Address   uint32
	Value     uint32
	PrevValue uint32
	PrevShard uint32
	PrevClock uint64
}

// Memory is word-addressable: loads/stores of sub-word width are composed
// from an aligned word read-modify-write, matching how real MIPS silicon
// (and every zkMIPS implementation in the corpus's problem domain) exposes
// byte/half access as masked operations over 32-bit-aligned storage.
type Memory struct {
	words  map[uint32]uint32
	access map[uint32]MemCell
}

// NewMemoryFromImage creates a memory whose word contents equal the program
// image (spec.md §3 "memory = program image extended with a writable
// region"); the writable region is implicit — any address not present in
// the image reads as zero until first written.
func NewMemoryFromImage(image *ProgramImage) *Memory {
	m := &Memory{
		words:  make(map[uint32]uint32, len(image.Words)),
		access: make(map[uint32]MemCell, len(image.Words)),
	}
	for addr, word := range image.Words {
		m.words[addr] = word
	}
	return m
}

// ReadWord performs an aligned word read, returning the access record and
// advancing the address's access-history cell. Addresses must be multiples
// of 4; callers are responsible for the alignment check appropriate to the
// instruction (some MIPS loads, e.g. LWL/LWR, intentionally read unaligned
// words by masking to the containing aligned word first).
func (m *Memory) ReadWord(addr uint32, shard uint32, clock uint64) AccessRecord {
	aligned := addr &^ 3
	val := m.words[aligned]
	prev := m.access[aligned]
	m.access[aligned] = MemCell{Value: val, Shard: shard, Clock: clock}
	return AccessRecord{Address: aligned, Value: val, PrevValue: prev.Value, PrevShard: prev.Shard, PrevClock: prev.Clock}
}

// WriteWord performs an aligned word write, returning the access record
// describing the value it superseded.
func (m *Memory) WriteWord(addr uint32, val uint32, shard uint32, clock uint64) AccessRecord {
	aligned := addr &^ 3
	prev := m.access[aligned]
	prevVal := m.words[aligned]
	m.words[aligned] = val
	m.access[aligned] = MemCell{Value: val, Shard: shard, Clock: clock}
	return AccessRecord{Address: aligned, Value: val, PrevValue: prevVal, PrevShard: prev.Shard, PrevClock: prev.Clock}
}

// ReadByte reads a single byte by performing the owning word's aligned read
// and extracting the little-endian byte at addr%4. The returned
// AccessRecord describes the whole word (matching how the memory-access
// multiset hash tracks cells at word granularity in this implementation);
// the byte value itself is returned separately.
func (m *Memory) ReadByte(addr uint32, shard uint32, clock uint64) (byte, AccessRecord) {
	rec := m.ReadWord(addr, shard, clock)
	shift := (addr % 4) * 8
	return byte(rec.Value >> shift), rec
}

// WriteByte writes a single byte into its owning word, leaving the other
// three bytes of that word unchanged.
func (m *Memory) WriteByte(addr uint32, v byte, shard uint32, clock uint64) AccessRecord {
	aligned := addr &^ 3
	shift := (addr % 4) * 8
	cur := m.words[aligned]
	next := (cur &^ (0xff << shift)) | uint32(v)<<shift
	return m.WriteWord(aligned, next, shard, clock)
}

// ReadHalf reads a little-endian 16-bit halfword. addr must be 2-byte
// aligned; callers enforce that.
func (m *Memory) ReadHalf(addr uint32, shard uint32, clock uint64) (uint16, AccessRecord) {
	rec := m.ReadWord(addr, shard, clock)
	shift := (addr % 4) * 8
	return uint16(rec.Value >> shift), rec
}

// WriteHalf writes a little-endian 16-bit halfword into its owning word.
func (m *Memory) WriteHalf(addr uint32, v uint16, shard uint32, clock uint64) AccessRecord {
	aligned := addr &^ 3
	shift := (addr % 4) * 8
	cur := m.words[aligned]
	next := (cur &^ (0xffff << shift)) | uint32(v)<<shift
	return m.WriteWord(aligned, next, shard, clock)
}

// FetchWord reads the aligned word at addr without updating its access
// history. Instruction fetch is tracked by a separate lookup bus (spec.md
// §4.2 "Program chip... instruction fetch") rather than the data-memory
// consistency argument, so it must not perturb MemCell bookkeeping.
func (m *Memory) FetchWord(addr uint32) uint32 {
	return m.words[addr&^3]
}

// ReadBuffer reads length bytes starting at addr, little-endian word by
// word, composing sub-word tails the same way ReadByte does. Used by
// precompile syscalls to pull a guest-memory buffer into a native []byte
// (spec.md §4.1 "the executor performs the memory reads, applies the
// precompile's mathematical function").
func (m *Memory) ReadBuffer(addr uint32, length int, shard uint32, clock uint64) ([]byte, []AccessRecord) {
	out := make([]byte, length)
	var recs []AccessRecord
	seen := make(map[uint32]bool)
	for i := 0; i < length; i++ {
		b, rec := m.ReadByte(addr+uint32(i), shard, clock)
		out[i] = b
		if !seen[rec.Address] {
			seen[rec.Address] = true
			recs = append(recs, rec)
		}
	}
	return out, recs
}

// WriteBuffer writes data back to guest memory starting at addr, returning
// the deduplicated per-word access records touched.
func (m *Memory) WriteBuffer(addr uint32, data []byte, shard uint32, clock uint64) []AccessRecord {
	var recs []AccessRecord
	seen := make(map[uint32]bool)
	for i, b := range data {
		rec := m.WriteByte(addr+uint32(i), b, shard, clock)
		if !seen[rec.Address] {
			seen[rec.Address] = true
			recs = append(recs, rec)
		} else {
			for j := range recs {
				if recs[j].Address == rec.Address {
					recs[j] = rec
				}
			}
		}
	}
	return recs
}

// IsWordAligned reports whether addr is a multiple of 4.
func IsWordAligned(addr uint32) bool { return addr&3 == 0 }

// IsHalfAligned reports whether addr is a multiple of 2.
func IsHalfAligned(addr uint32) bool { return addr&1 == 0 }
