// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package air

import (
	"fmt"
	"sync"

	"github.com/lux-zk/zkmips/internal/curve"
	"github.com/lux-zk/zkmips/internal/field"
)

// Well-known bus names, matching spec.md §3 "Lookup bus" examples.
const (
	BusByteRange       = "byte_range"
	BusInstructionFetch = "instruction_fetch"
	BusMemoryAccess    = "memory_access"
	BusSyscallDispatch = "syscall_dispatch"
)

// Bus accumulates the multiset-hash of every tuple sent and received under
// one logical lookup relation across all chips in a shard. A proof is
// accepted only if the accumulator returns to the group identity (spec.md
// §3 "A proof is accepted only if the send-multiset equals the
// receive-multiset", §4.2 "Memory consistency algorithm").
type Bus struct {
	Name string
	acc  curve.Accumulator
}

// NewBus creates an empty bus accumulator.
func NewBus(name string) *Bus {
	return &Bus{Name: name}
}

// Send folds a produced tuple into the bus with multiplicity mult (usually
// 1, but LogUp allows weighted contributions).
func (b *Bus) Send(tuple []field.Elem, mult field.Elem) {
	b.foldWeighted(curve.TagSend, tuple, mult)
}

// Receive folds a consumed tuple into the bus.
func (b *Bus) Receive(tuple []field.Elem, mult field.Elem) {
	b.foldWeighted(curve.TagReceive, tuple, mult)
}

func (b *Bus) foldWeighted(tag curve.Tag, tuple []field.Elem, mult field.Elem) {
	m := mult.Uint64()
	for i := uint64(0); i < m; i++ {
		b.acc.Add(tag, tuple)
	}
}

// IsBalanced reports whether every send has been matched by a receive.
func (b *Bus) IsBalanced() bool {
	return b.acc.IsIdentity()
}

// Machine owns the LogUp auxiliary columns centrally, not the chips,
// "to preserve the single-writer invariant" (spec.md §9 "Lookup arguments
// over chips"). It drives trace generation for a set of chips over one
// shard's events, in parallel per chip (spec.md §5: "within a shard, chip
// trace generation is parallel across chips").
type Machine struct {
	chips []Chip
	buses map[string]*Bus
}

// NewMachine creates a machine over a fixed chip set.
func NewMachine(chips []Chip) *Machine {
	buses := make(map[string]*Bus)
	for _, c := range chips {
		for _, b := range c.Buses() {
			if _, ok := buses[b.Bus]; !ok {
				buses[b.Bus] = NewBus(b.Bus)
			}
		}
	}
	return &Machine{chips: chips, buses: buses}
}

// Chips returns the registered chip set in registration order.
func (m *Machine) Chips() []Chip { return m.chips }

// GenerateTraces builds every chip's trace matrix from its events and folds
// every bus interaction it declares into the shared Bus accumulators.
// eventsByChip maps a chip name to the events destined for it; chips not
// present in the map still produce an all-padding trace.
func (m *Machine) GenerateTraces(eventsByChip map[string][]Event) (map[string]*Matrix, error) {
	mats := make([]*Matrix, len(m.chips))
	errs := make([]error, len(m.chips))
	var wg sync.WaitGroup
	for i, c := range m.chips {
		wg.Add(1)
		go func(i int, c Chip) {
			defer wg.Done()
			mats[i], errs[i] = c.GenerateTrace(eventsByChip[c.Name()])
		}(i, c)
	}
	wg.Wait()

	traces := make(map[string]*Matrix, len(m.chips))
	for i, c := range m.chips {
		if errs[i] != nil {
			return nil, fmt.Errorf("air: chip %q trace generation: %w", c.Name(), errs[i])
		}
		traces[c.Name()] = mats[i]
		m.foldBusesForChip(c, mats[i])
	}
	return traces, nil
}

func (m *Machine) foldBusesForChip(c Chip, mat *Matrix) {
	for _, bi := range c.Buses() {
		bus := m.buses[bi.Bus]
		for _, row := range mat.Data {
			mult := bi.Multiplicity(row)
			if mult.IsZero() {
				continue
			}
			tuple := bi.Tuple(row)
			if bi.IsSend {
				bus.Send(tuple, mult)
			} else {
				bus.Receive(tuple, mult)
			}
		}
	}
}

// BusesBalanced reports whether every lookup bus's send-multiset equals its
// receive-multiset, i.e. the LogUp running sums cancel to zero across all
// participating chips (spec.md §4.3 step 4).
func (m *Machine) BusesBalanced() map[string]bool {
	out := make(map[string]bool, len(m.buses))
	for name, b := range m.buses {
		out[name] = b.IsBalanced()
	}
	return out
}

// Bus returns the named bus accumulator, or nil if unknown.
func (m *Machine) Bus(name string) *Bus { return m.buses[name] }
