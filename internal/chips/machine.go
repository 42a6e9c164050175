// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chips

import (
	"github.com/lux-zk/zkmips/internal/air"
	"github.com/lux-zk/zkmips/internal/mips"
)

// Chips returns the full MIPS AIR chip set (spec.md §4.2 "Core AIR") for a
// given program image, ready to hand to air.NewMachine. The program/bytes
// chips are preprocessed once from image and shared read-only across every
// shard's machine (spec.md §5 "Program image and proving key are immutable
// after setup; freely shared read-only"); every other chip is stateless and
// safe to reuse across shards too, since GenerateTrace takes events as its
// only per-call input.
func Chips(image *mips.ProgramImage) []air.Chip {
	return []air.Chip{
		NewCPUChip(),
		NewAddSubChip(),
		NewMulChip(),
		NewDivRemChip(),
		NewShiftChip(),
		NewBitwiseChip(),
		NewLtChip(),
		NewClzChip(),
		NewMemoryInstructionsChip(),
		NewGlobalMemoryChip(),
		NewLocalMemoryChip(),
		NewBranchChip(),
		NewJumpChip(),
		NewProgramChip(image),
		NewBytesChip(),
		NewSyscallChip(),
	}
}
