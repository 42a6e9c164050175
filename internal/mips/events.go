// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mips

// The typed event set is closed and mirrors the chip set (spec.md §3
// "Event record"): CPU event, ALU event per family, memory read/write
// event, branch event, jump event, syscall event, precompile events. Every
// event type here implements ChipName() string, which is the entire
// contract internal/air.Event requires — Go's structural interfaces mean
// L4 chip code can consume these directly without mips importing air.

// Event is the closed set of per-cycle event records a step can emit onto
// the CPU-to-chip bus.
type Event interface {
	ChipName() string
}

// CPUEvent is emitted exactly once per executed cycle (spec.md §4.2 "CPU
// chip... Exactly one row per executed cycle").
type CPUEvent struct {
	Shard    uint32
	Clock    uint64
	PC       uint32
	NextPC   uint32
	NextNextPC uint32
	Ins      Instruction
	OperandA uint32
	OperandB uint32
	OperandC uint32
	RegAccesses []RegisterAccess
	MemAccess   *AccessRecord
	IsHalt      bool
}

func (CPUEvent) ChipName() string { return "cpu" }

// ALUFamily distinguishes which family-specific chip an ALUEvent is routed
// to, per spec.md §4.2 "ALU chips (one per family: add/sub, mul, div/rem,
// shift-left, shift-right-arith-or-logical, bitwise, comparison,
// count-leading-ones/zeros)".
type ALUFamily string

const (
	ALUAddSub  ALUFamily = "addsub"
	ALUMul     ALUFamily = "mul"
	ALUDivRem  ALUFamily = "divrem"
	ALUShift   ALUFamily = "shift"
	ALUBitwise ALUFamily = "bitwise"
	ALULt      ALUFamily = "lt"
	ALUClz     ALUFamily = "clz"
)

// ALUEvent carries one opcode-tagged tuple from the CPU bus to a
// family-specific ALU chip (spec.md §4.2 "a family-specific ALU/flow/memory
// chip receives that tuple and constrains a = f(b, c)").
type ALUEvent struct {
	Family ALUFamily
	Op     string
	A, B, C uint32 // A = f(B, C)
}

func (e ALUEvent) ChipName() string { return "alu_" + string(e.Family) }

// MemoryEventKind distinguishes a load from a store.
type MemoryEventKind string

const (
	MemRead  MemoryEventKind = "read"
	MemWrite MemoryEventKind = "write"
)

// MemoryEvent is emitted by the memory-instructions chip's receive side for
// every load/store (spec.md §4.2 "Memory-instructions chip... performs
// address arithmetic... splits stores into one or more byte-level writes").
type MemoryEvent struct {
	Shard  uint32
	Clock  uint64
	Kind   MemoryEventKind
	Op     string
	Access AccessRecord
}

func (MemoryEvent) ChipName() string { return "memory_instructions" }

// BranchEvent is emitted for every decoded branch instruction (spec.md
// §4.2 "Branch chip... performs the signed comparison for branches... via
// sub-then-sign-bit, and constrains target-PC computation").
type BranchEvent struct {
	Shard      uint32
	Clock      uint64
	Op         string
	PC         uint32
	A, B       uint32
	Taken      bool
	TargetPC   uint32
}

func (BranchEvent) ChipName() string { return "branch" }

// JumpEvent is emitted for J/JAL/JALR/JR (spec.md §4.2 "Jump chip... Jump
// with link writes next_pc + 4 to the link register unless the link
// register is r0").
type JumpEvent struct {
	Shard    uint32
	Clock    uint64
	Op       string
	PC       uint32
	TargetPC uint32
	Link     bool
	LinkReg  uint32
	LinkVal  uint32
}

func (JumpEvent) ChipName() string { return "jump" }

// SyscallEvent is emitted for every SYSCALL instruction (spec.md §4.1
// "Syscalls"); Number is the dispatching register's value at the time of
// the call.
type SyscallEvent struct {
	Shard  uint32
	Clock  uint64
	Number uint32
	Arg1   uint32
	Arg2   uint32
	Arg3   uint32
	Result uint32
}

func (SyscallEvent) ChipName() string { return "syscall" }

// PrecompileEvent carries a precompile-specific payload: the touched memory
// addresses (for the memory bus) plus an opaque domain-specific blob the
// concrete precompile chip (internal/chips/precompile) interprets (spec.md
// §4.1 "the executor performs the memory reads, applies the precompile's
// mathematical function, writes the result back to memory, and emits a
// precompile event carrying all touched addresses").
type PrecompileEvent struct {
	Shard        uint32
	Clock        uint64
	Syscall      uint32
	TouchedAddrs []AccessRecord
	Payload      []byte
}

func (PrecompileEvent) ChipName() string { return "precompile" }

// GlobalMemoryEventKind distinguishes a shard's opening memory-init tuple
// from its closing finalization tuple (spec.md §4.2 "Memory consistency
// algorithm" steps 1 and 4).
type GlobalMemoryEventKind string

const (
	GlobalMemoryInit     GlobalMemoryEventKind = "init"
	GlobalMemoryFinalize GlobalMemoryEventKind = "finalize"
)

// GlobalMemoryEvent carries one shard-boundary memory tuple — gathered by
// Shard.GlobalMemoryEvents from DeferredInit/DeferredFinal — to the global
// chip, which resolves them across shard boundaries rather than within a
// single shard's own local-memory accumulator (spec.md §4.2 "Global chip...
// Gathers shard-boundary events — memory init/finalize and inter-shard
// syscall hand-offs — and exposes them for cross-shard consistency checks
// at the recursion layer").
type GlobalMemoryEvent struct {
	Shard  uint32
	Kind   GlobalMemoryEventKind
	Access AccessRecord
}

func (GlobalMemoryEvent) ChipName() string { return "memory_global" }
