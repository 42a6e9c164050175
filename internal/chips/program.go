// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chips

import (
	"sort"

	"github.com/lux-zk/zkmips/internal/air"
	"github.com/lux-zk/zkmips/internal/field"
	"github.com/lux-zk/zkmips/internal/mips"
)

// Program-chip columns (spec.md §4.2 "Program chip (preprocessed)... one
// row per program-image address, committed once at setup time rather than
// per-shard, since the image never changes across shards of the same
// proof"). Address/opcode are preprocessed and fixed by the image;
// multiplicity is the one per-shard-varying column — how many times this
// shard fetched that address — since a lookup table's row may be consumed
// any number of times, not just once (unlike the CPU chip's one-tuple-per-
// cycle send side).
const (
	pgColAddress = iota
	pgColOpcode
	pgColMultiplicity
	pgColIsReal
	pgWidth
)

// ProgramChip is the read-only instruction-fetch oracle the CPU chip joins
// against over air.BusInstructionFetch. Row i always describes the same
// address across every shard of a run (addrs is fixed at construction and
// sorted, so the preprocessed commitment is deterministic); only the
// multiplicity column is refilled by GenerateTrace from that shard's
// events.
type ProgramChip struct {
	addrs   []uint32
	opcodes []field.Elem
	height  int
}

// NewProgramChip builds the program chip's fixed address/opcode columns
// from image, decoding each word to recover its opcode tag (mirroring
// mips.Decode, the same decoder the executor itself uses, so the fetch
// tuple's opcode always matches what CPUChip sent).
func NewProgramChip(image *mips.ProgramImage) *ProgramChip {
	addrs := make([]uint32, 0, len(image.Words))
	for addr := range image.Words {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })

	opcodes := make([]field.Elem, len(addrs))
	for i, addr := range addrs {
		ins := mips.Decode(image.Words[addr])
		opcodes[i] = OpCode(ins.Op)
	}
	return &ProgramChip{addrs: addrs, opcodes: opcodes, height: air.NextPowerOfTwo(len(addrs))}
}

func (c *ProgramChip) Name() string { return "program" }
func (c *ProgramChip) Width() int   { return pgWidth }

// Preprocessed returns the address/opcode columns alone (multiplicity is
// left zero here — it is only meaningful per-shard, filled by GenerateTrace).
func (c *ProgramChip) Preprocessed() *air.Matrix {
	m := air.NewMatrix(pgWidth, c.height)
	for i, addr := range c.addrs {
		row := m.Data[i]
		row[pgColAddress] = FromU32(addr)
		row[pgColOpcode] = c.opcodes[i]
		row[pgColIsReal] = field.One
	}
	return m
}

// GenerateTrace fills the per-shard multiplicity column by tallying how
// many of this shard's mips.CPUEvents fetched each address, leaving
// address/opcode identical to Preprocessed so the two never drift apart.
func (c *ProgramChip) GenerateTrace(events []air.Event) (*air.Matrix, error) {
	counts := make(map[uint32]uint64, len(events))
	for _, e := range events {
		ev := e.(mips.CPUEvent)
		counts[ev.PC]++
	}

	m := air.NewMatrix(pgWidth, c.height)
	for i, addr := range c.addrs {
		row := m.Data[i]
		row[pgColAddress] = FromU32(addr)
		row[pgColOpcode] = c.opcodes[i]
		row[pgColMultiplicity] = field.New(counts[addr])
		row[pgColIsReal] = field.One
	}
	return m, nil
}

func (c *ProgramChip) Eval(cb *air.ConstraintBuilder) {
	cb.AssertZero("program_is_real_boolean", func(row []field.Elem) field.Elem {
		r := row[pgColIsReal]
		return r.Mul(field.One.Sub(r))
	})
}

// Buses sends (address, opcode) onto the instruction-fetch bus with
// per-row multiplicity, matching CPUChip's receive-side tuple shape
// (PC, opcode) exactly.
func (c *ProgramChip) Buses() []air.BusInteraction {
	return []air.BusInteraction{{
		Bus:    air.BusInstructionFetch,
		IsSend: true,
		Multiplicity: func(row []field.Elem) field.Elem {
			return row[pgColMultiplicity]
		},
		Tuple: func(row []field.Elem) []field.Elem {
			return []field.Elem{row[pgColAddress], row[pgColOpcode]}
		},
	}}
}
