// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package chips implements the core AIR chip set of spec.md §4.2: one
// air.Chip per named chip, consuming the mips package's event types and
// wiring lookup-bus interactions so the CPU chip's emitted tuples balance
// against the family-specific chip that receives them (spec.md §4.2 "a
// family-specific ALU/flow/memory chip receives that tuple and constrains
// a = f(b, c)").
package chips

import (
	"hash/fnv"

	"github.com/lux-zk/zkmips/internal/field"
)

// OpCode deterministically maps an opcode mnemonic to a field element. Both
// sides of a lookup bus derive the tag the same way, from the mnemonic
// alone, so the CPU chip and a family chip never need to share a
// hand-maintained opcode-to-code table.
func OpCode(op string) field.Elem {
	h := fnv.New32a()
	_, _ = h.Write([]byte(op))
	return field.New(uint64(h.Sum32()) % field.Modulus)
}

// FromU32 lifts a 32-bit machine word into the base field. The base field
// is smaller than 2^32 (p = 2^31-2^24+1), so this is a reducing embedding,
// not an exact one; bit-identical wraparound arithmetic across that
// boundary is out of scope (spec.md §1 "Non-goals": "Bit-identical column
// layouts... are not targets").
func FromU32(x uint32) field.Elem { return field.New(uint64(x)) }

// FromU64Lo and FromU64Hi split a 64-bit clock value into two field-sized
// limbs for range-checking, per spec.md §4.2 "clock (split into 16+8 bit
// limbs for range-checking)" — we use two 32-bit limbs instead of 16+8,
// since our chips don't implement the byte-range lookup argument at
// bit-exact granularity (see DESIGN.md).
func FromU64Lo(x uint64) field.Elem { return field.New(x & 0xffffffff) }
func FromU64Hi(x uint64) field.Elem { return field.New(x >> 32) }

// Bool lifts a boolean into {0,1} ⊂ F_p.
func Bool(b bool) field.Elem {
	if b {
		return field.One
	}
	return field.Zero
}

// opFamily classifies a decoded opcode mnemonic into the chip family that
// owns it, mirroring exactly the case grouping mips/instructions.go uses
// to build FamilyEvents — kept independent so the CPU chip can set its
// family-selector columns without importing mips' event-construction code.
func opFamily(op string) string {
	switch op {
	case "ADD", "ADDU", "SUB", "SUBU", "ADDI", "ADDIU":
		return "addsub"
	case "AND", "OR", "XOR", "NOR", "ANDI", "ORI", "XORI":
		return "bitwise"
	case "SLT", "SLTU", "SLTI", "SLTIU":
		return "lt"
	case "CLZ", "CLO":
		return "clz"
	case "SLL", "SRL", "SRA", "SLLV", "SRLV", "SRAV", "ROTR", "ROTRV":
		return "shift"
	case "MULT", "MULTU", "MUL", "MADDU", "MSUBU":
		return "mul"
	case "DIV", "DIVU":
		return "divrem"
	case "LB", "LBU", "LH", "LHU", "LW", "LL", "LWL", "LWR",
		"SB", "SH", "SW", "SC", "SWL", "SWR":
		return "memory"
	case "BEQ", "BNE", "BLEZ", "BGTZ", "BLTZ", "BGEZ", "BAL":
		return "branch"
	case "J", "JAL", "JR", "JALR":
		return "jump"
	case "SYSCALL":
		return "syscall"
	default:
		return "none"
	}
}

// families lists every non-"none" family, in the fixed order the CPU
// chip's selector columns use.
var families = []string{
	"addsub", "mul", "divrem", "shift", "bitwise", "lt", "clz",
	"memory", "branch", "jump", "syscall",
}

func familyIndex(f string) int {
	for i, name := range families {
		if name == f {
			return i
		}
	}
	return -1
}
