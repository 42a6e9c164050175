// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mips

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func imageFromWords(entry uint32, words map[uint32]uint32) *ProgramImage {
	return &ProgramImage{Words: words, Entry: entry}
}

// A program consisting of exactly one SYSCALL ($2 defaults to 0 = HALT) is
// proven in exactly one shard (spec.md §8 "A single instruction HALT
// program is proven in exactly one shard").
func TestSingleHaltInstructionIsOneShard(t *testing.T) {
	words := map[uint32]uint32{
		0x400000: encodeR(0x00, 0, 0, 0, 0, 0x0C), // SYSCALL
	}
	exec, err := NewExecutor(imageFromWords(0x400000, words), DefaultExecutorConfig())
	require.NoError(t, err)

	result, err := exec.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Shards, 1)
	require.Equal(t, uint32(0), result.ExitCode)
	require.True(t, exec.State().Halted)
}

// Shard i's terminal state equals shard i+1's initial state (spec.md §3,
// §8 invariant 2), exercised here by forcing a one-cycle-per-shard config.
func TestShardBoundaryEquality(t *testing.T) {
	words := map[uint32]uint32{
		0x400000: encodeI(0x09, 0, 8, 1),                // ADDIU $8, $0, 1
		0x400004: encodeI(0x09, 8, 8, 1),                // ADDIU $8, $8, 1
		0x400008: encodeR(0x00, 0, 0, 0, 0, 0x0C),        // SYSCALL (HALT)
	}
	cfg := DefaultExecutorConfig()
	cfg.Shard.MaxCycles = 1
	exec, err := NewExecutor(imageFromWords(0x400000, words), cfg)
	require.NoError(t, err)

	result, err := exec.Run(context.Background())
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(result.Shards), 2)
	for i := 0; i < len(result.Shards)-1; i++ {
		require.Equal(t, result.Shards[i].Terminal, result.Shards[i+1].Initial)
	}
}

func TestDelaySlotExecutesBeforeBranchTarget(t *testing.T) {
	words := map[uint32]uint32{
		0x400000: encodeI(0x04, 0, 0, 2),                 // BEQ $0,$0,+2 (taken)
		0x400004: encodeI(0x09, 0, 8, 7),                 // ADDIU $8,$0,7 (delay slot, must execute)
		0x400008: encodeR(0x00, 0, 0, 0, 0, 0x0C),         // SYSCALL (skipped by the branch)
		0x40000C: encodeI(0x09, 0, 9, 9),                 // target: ADDIU $9,$0,9
		0x400010: encodeR(0x00, 0, 0, 0, 0, 0x0C),         // SYSCALL (HALT)
	}
	exec, err := NewExecutor(imageFromWords(0x400000, words), DefaultExecutorConfig())
	require.NoError(t, err)
	result, err := exec.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint32(7), exec.State().Regs.Get(8))
	require.Equal(t, uint32(9), exec.State().Regs.Get(9))
	require.Equal(t, uint64(4), result.Cycles.TotalCycles)
}

func TestCommitAccumulatesPublicValues(t *testing.T) {
	words := map[uint32]uint32{
		0x400000: encodeI(0x09, 0, 5, 0x2000), // ADDIU $5,$0,0x2000 (ptr)
		0x400004: encodeI(0x09, 0, 6, 4),       // ADDIU $6,$0,4 (length)
		0x400008: encodeI(0x09, 0, 2, 0x10),    // ADDIU $2,$0,COMMIT
		0x40000C: encodeR(0x00, 0, 0, 0, 0, 0x0C), // SYSCALL
		0x400010: encodeR(0x00, 0, 0, 0, 0, 0x0C), // SYSCALL (HALT, $2 reset below)
	}
	exec, err := NewExecutor(imageFromWords(0x400000, words), DefaultExecutorConfig())
	require.NoError(t, err)
	exec.State().Memory.WriteWord(0x2000, 0xAABBCCDD, 0, 0)

	result, err := exec.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, result.PublicValues, 4)
}

func TestUnconstrainedRegionDiscardsEvents(t *testing.T) {
	words := map[uint32]uint32{
		0x400000: encodeI(0x09, 0, 2, 0x03), // ADDIU $2,$0,ENTER_UNCONSTRAINED
		0x400004: encodeR(0x00, 0, 0, 0, 0, 0x0C), // SYSCALL
		0x400008: encodeI(0x09, 0, 8, 77),   // ADDIU $8,$0,77 (inside unconstrained region)
		0x40000C: encodeI(0x09, 0, 2, 0x04), // ADDIU $2,$0,EXIT_UNCONSTRAINED
		0x400010: encodeR(0x00, 0, 0, 0, 0, 0x0C), // SYSCALL
		0x400014: encodeR(0x00, 0, 0, 0, 0, 0x0C), // SYSCALL (HALT)
	}
	exec, err := NewExecutor(imageFromWords(0x400000, words), DefaultExecutorConfig())
	require.NoError(t, err)
	result, err := exec.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint32(77), exec.State().Regs.Get(8))
	// cpu events recorded: the first ADDIU and the EXIT_UNCONSTRAINED and
	// HALT SYSCALLs; the ENTER_UNCONSTRAINED SYSCALL and the two ADDIUs
	// executed inside the region are not recorded.
	require.Less(t, len(result.Shards[0].Events["cpu"]), 6)
}

func TestCycleBudgetExceeded(t *testing.T) {
	words := map[uint32]uint32{}
	for addr := uint32(0x400000); addr < 0x400000+4*8; addr += 4 {
		words[addr] = encodeI(0x09, 8, 8, 1) // ADDIU $8,$8,1 forever
	}
	cfg := DefaultExecutorConfig()
	cfg.MaxTotalCycles = 4
	exec, err := NewExecutor(imageFromWords(0x400000, words), cfg)
	require.NoError(t, err)
	_, err = exec.Run(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, ErrCycleBudgetExceeded)
}
