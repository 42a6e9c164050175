// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package recursionair

import "github.com/lux-zk/zkmips/internal/air"

// Chips returns the full recursion-AIR chip set in spec.md §4.4's listed
// order, ready to hand to air.NewMachine. internal/recursion's driver
// builds one air.Machine per recursion-program evaluation from exactly
// this set, mirroring how internal/chips' own chip set is assembled for
// the MIPS AIR (see internal/recursion's machine wiring).
func Chips() []air.Chip {
	return []air.Chip{
		NewBaseALUChip(),
		NewExtALUChip(),
		NewVarMemChip(),
		NewConstMemChip(),
		NewPoseidon2NarrowChip(),
		NewPoseidon2WideChip(),
		NewFriFoldChip(),
		NewBatchedFriChip(),
		NewExpReverseBitsChip(),
		NewSelectChip(),
		NewPublicValuesChip(),
	}
}
