// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chips

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lux-zk/zkmips/internal/air"
	"github.com/lux-zk/zkmips/internal/field"
	"github.com/lux-zk/zkmips/internal/mips"
)

func TestSyscallChipControlRowsAreControlSelected(t *testing.T) {
	c := NewSyscallChip()
	events := []air.Event{
		mips.SyscallEvent{Number: scHalt, Arg1: 0, Arg2: 0, Result: 0},
		mips.SyscallEvent{Number: scHintLen, Arg1: 0, Arg2: 0, Result: 4},
	}
	m, err := c.GenerateTrace(events)
	require.NoError(t, err)
	require.Equal(t, field.One, m.Data[0][scColIsControl])
	require.Equal(t, field.One, m.Data[1][scColIsControl])
	assertConstraintsHold(t, c, m)
}

func TestSyscallChipPrecompileRowIsNotControlSelected(t *testing.T) {
	c := NewSyscallChip()
	events := []air.Event{
		mips.SyscallEvent{Number: 0x00010109, Arg1: 100, Arg2: 8, Result: 0}, // KeccakSponge
	}
	m, err := c.GenerateTrace(events)
	require.NoError(t, err)
	require.Equal(t, field.Zero, m.Data[0][scColIsControl])
	assertConstraintsHold(t, c, m)
}

func TestSyscallChipBusesReceiveFamilyAndSendDispatch(t *testing.T) {
	c := NewSyscallChip()
	buses := c.Buses()
	require.Len(t, buses, 2)
	require.Equal(t, "family_syscall", buses[0].Bus)
	require.False(t, buses[0].IsSend)
	require.Equal(t, air.BusSyscallDispatch, buses[1].Bus)
	require.True(t, buses[1].IsSend)
}

func TestSyscallChipDispatchMultiplicityZeroForControlRow(t *testing.T) {
	c := NewSyscallChip()
	events := []air.Event{
		mips.SyscallEvent{Number: scHalt},
	}
	m, err := c.GenerateTrace(events)
	require.NoError(t, err)
	buses := c.Buses()
	mult := buses[1].Multiplicity(m.Data[0])
	require.True(t, mult.Equal(field.Zero))
}
