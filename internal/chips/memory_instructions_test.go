// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chips

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lux-zk/zkmips/internal/air"
	"github.com/lux-zk/zkmips/internal/mips"
)

func TestMemoryInstructionsChipTraceAndConstraints(t *testing.T) {
	c := NewMemoryInstructionsChip()
	events := []air.Event{
		mips.MemoryEvent{Shard: 0, Clock: 1, Kind: mips.MemRead, Op: "LW", Access: mips.AccessRecord{Address: 0x1000, Value: 5}},
		mips.MemoryEvent{Shard: 0, Clock: 2, Kind: mips.MemWrite, Op: "SW", Access: mips.AccessRecord{Address: 0x1000, Value: 9, PrevValue: 5}},
	}
	m, err := c.GenerateTrace(events)
	require.NoError(t, err)
	require.Equal(t, c.Width(), m.Width)
	assertConstraintsHold(t, c, m)
}

func TestMemoryInstructionsChipBusJoinsCPUFamilyTuple(t *testing.T) {
	c := NewMemoryInstructionsChip()
	buses := c.Buses()
	require.Len(t, buses, 1)
	require.Equal(t, "family_memory", buses[0].Bus)
	require.False(t, buses[0].IsSend)
}
