// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chips

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lux-zk/zkmips/internal/air"
	"github.com/lux-zk/zkmips/internal/mips"
)

func TestJumpChipJAndJRNeverLink(t *testing.T) {
	c := NewJumpChip()
	events := []air.Event{
		mips.JumpEvent{Op: "J", PC: 0, TargetPC: 0x400},
		mips.JumpEvent{Op: "JR", PC: 4, TargetPC: 0x500},
	}
	m, err := c.GenerateTrace(events)
	require.NoError(t, err)
	assertConstraintsHold(t, c, m)
}

func TestJumpChipJALAndJALRLinkPCPlus8(t *testing.T) {
	c := NewJumpChip()
	events := []air.Event{
		mips.JumpEvent{Op: "JAL", PC: 0, TargetPC: 0x400, Link: true, LinkReg: 31, LinkVal: 8},
		mips.JumpEvent{Op: "JALR", PC: 100, TargetPC: 0x500, Link: true, LinkReg: 5, LinkVal: 108},
	}
	m, err := c.GenerateTrace(events)
	require.NoError(t, err)
	assertConstraintsHold(t, c, m)
}

func TestJumpChipBusJoinsCPUJumpFamily(t *testing.T) {
	c := NewJumpChip()
	buses := c.Buses()
	require.Len(t, buses, 1)
	require.Equal(t, "family_jump", buses[0].Bus)
	require.False(t, buses[0].IsSend)
}
