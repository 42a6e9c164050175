// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package air

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lux-zk/zkmips/internal/field"
)

type fakeEvent struct {
	chip string
	val  uint64
}

func (e fakeEvent) ChipName() string { return e.chip }

type producerChip struct{ name string }

func (c *producerChip) Name() string          { return c.name }
func (c *producerChip) Width() int            { return 1 }
func (c *producerChip) Preprocessed() *Matrix { return nil }
func (c *producerChip) Eval(cb *ConstraintBuilder) {}
func (c *producerChip) Buses() []BusInteraction {
	return []BusInteraction{{
		Bus:          BusByteRange,
		IsSend:       true,
		Multiplicity: func(row []field.Elem) field.Elem { return field.One },
		Tuple:        func(row []field.Elem) []field.Elem { return []field.Elem{row[0]} },
	}}
}
func (c *producerChip) GenerateTrace(events []Event) (*Matrix, error) {
	h := NextPowerOfTwo(len(events))
	m := NewMatrix(1, h)
	for i, e := range events {
		m.Data[i][0] = field.New(e.(fakeEvent).val)
	}
	return m, nil
}

type consumerChip struct{ name string }

func (c *consumerChip) Name() string          { return c.name }
func (c *consumerChip) Width() int            { return 1 }
func (c *consumerChip) Preprocessed() *Matrix { return nil }
func (c *consumerChip) Eval(cb *ConstraintBuilder) {}
func (c *consumerChip) Buses() []BusInteraction {
	return []BusInteraction{{
		Bus:          BusByteRange,
		IsSend:       false,
		Multiplicity: func(row []field.Elem) field.Elem { return field.One },
		Tuple:        func(row []field.Elem) []field.Elem { return []field.Elem{row[0]} },
	}}
}
func (c *consumerChip) GenerateTrace(events []Event) (*Matrix, error) {
	h := NextPowerOfTwo(len(events))
	m := NewMatrix(1, h)
	for i, e := range events {
		m.Data[i][0] = field.New(e.(fakeEvent).val)
	}
	return m, nil
}

func TestMachineBusBalancesWhenTuplesMatch(t *testing.T) {
	producer := &producerChip{name: "producer"}
	consumer := &consumerChip{name: "consumer"}
	m := NewMachine([]Chip{producer, consumer})

	events := map[string][]Event{
		"producer": {fakeEvent{"producer", 1}, fakeEvent{"producer", 2}},
		"consumer": {fakeEvent{"consumer", 1}, fakeEvent{"consumer", 2}},
	}
	_, err := m.GenerateTraces(events)
	require.NoError(t, err)

	balances := m.BusesBalanced()
	require.True(t, balances[BusByteRange])
}

func TestMachineBusUnbalancedWhenTuplesDiffer(t *testing.T) {
	producer := &producerChip{name: "producer"}
	consumer := &consumerChip{name: "consumer"}
	m := NewMachine([]Chip{producer, consumer})

	events := map[string][]Event{
		"producer": {fakeEvent{"producer", 1}},
		"consumer": {fakeEvent{"consumer", 2}},
	}
	_, err := m.GenerateTraces(events)
	require.NoError(t, err)

	balances := m.BusesBalanced()
	require.False(t, balances[BusByteRange])
}

func TestNextPowerOfTwo(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 5: 8, 16: 16, 17: 32}
	for in, want := range cases {
		require.Equal(t, want, NextPowerOfTwo(in))
	}
}
