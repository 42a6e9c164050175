// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chips

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lux-zk/zkmips/internal/air"
	"github.com/lux-zk/zkmips/internal/mips"
)

func TestCPUChipTraceWidthAndFamilySelector(t *testing.T) {
	c := NewCPUChip()
	events := []air.Event{
		mips.CPUEvent{Shard: 0, Clock: 1, PC: 0, NextPC: 4, NextNextPC: 8, Ins: mips.Instruction{Op: "ADDIU"}},
		mips.CPUEvent{Shard: 0, Clock: 2, PC: 4, NextPC: 100, NextNextPC: 104, Ins: mips.Instruction{Op: "BEQ"}},
		mips.CPUEvent{Shard: 0, Clock: 3, PC: 100, NextPC: 104, NextNextPC: 108, Ins: mips.Instruction{Op: "SYSCALL"}, IsHalt: true},
	}
	m, err := c.GenerateTrace(events)
	require.NoError(t, err)
	require.Equal(t, c.Width(), m.Width)
	require.GreaterOrEqual(t, m.Height, len(events))
	assertConstraintsHold(t, c, m)
}

func TestCPUChipSequentialNextPCOnlyForNonFlowRows(t *testing.T) {
	c := NewCPUChip()
	events := []air.Event{
		mips.CPUEvent{Shard: 0, Clock: 1, PC: 0, NextPC: 4, NextNextPC: 8, Ins: mips.Instruction{Op: "ADD"}},
	}
	m, err := c.GenerateTrace(events)
	require.NoError(t, err)
	assertConstraintsHold(t, c, m)
}

func TestCPUChipBusesOneBranchSendAndOneFetchReceive(t *testing.T) {
	c := NewCPUChip()
	buses := c.Buses()
	var sawBranch, sawFetch bool
	for _, b := range buses {
		if b.Bus == "family_branch" && b.IsSend {
			sawBranch = true
		}
		if b.Bus == air.BusInstructionFetch && !b.IsSend {
			sawFetch = true
		}
	}
	require.True(t, sawBranch)
	require.True(t, sawFetch)
}
