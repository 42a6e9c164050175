// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chips

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lux-zk/zkmips/internal/air"
	"github.com/lux-zk/zkmips/internal/mips"
)

func TestGlobalMemoryChipCancelsAcrossShardBoundary(t *testing.T) {
	c := NewGlobalMemoryChip()
	// Shard 0 finalizes address 0x200 at value 7, clock 50; shard 1's init
	// tuple for the same address reports exactly that (value, clock) as
	// the state it superseded — the two must cancel.
	events := []air.Event{
		mips.GlobalMemoryEvent{Shard: 0, Kind: mips.GlobalMemoryFinalize, Access: mips.AccessRecord{Address: 0x200, Value: 7, PrevClock: 50}},
		mips.GlobalMemoryEvent{Shard: 1, Kind: mips.GlobalMemoryInit, Access: mips.AccessRecord{Address: 0x200, Value: 7, PrevClock: 50}},
	}
	m, err := c.GenerateTrace(events)
	require.NoError(t, err)
	require.Equal(t, c.Width(), m.Width)
	assertConstraintsHold(t, c, m)
	require.True(t, c.Accumulator().IsIdentity())
}

func TestGlobalMemoryChipDoesNotCancelOnMismatch(t *testing.T) {
	c := NewGlobalMemoryChip()
	events := []air.Event{
		mips.GlobalMemoryEvent{Shard: 0, Kind: mips.GlobalMemoryFinalize, Access: mips.AccessRecord{Address: 0x200, Value: 7, PrevClock: 50}},
		mips.GlobalMemoryEvent{Shard: 1, Kind: mips.GlobalMemoryInit, Access: mips.AccessRecord{Address: 0x200, Value: 8, PrevClock: 50}},
	}
	_, err := c.GenerateTrace(events)
	require.NoError(t, err)
	require.False(t, c.Accumulator().IsIdentity())
}
