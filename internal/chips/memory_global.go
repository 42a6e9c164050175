// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chips

import (
	"github.com/lux-zk/zkmips/internal/air"
	"github.com/lux-zk/zkmips/internal/curve"
	"github.com/lux-zk/zkmips/internal/field"
	"github.com/lux-zk/zkmips/internal/mips"
)

// GlobalMemoryChip resolves the shard-boundary ends of the memory
// consistency argument that memory_local.go leaves dangling (spec.md §4.2
// "Global chip... Gathers shard-boundary events — memory init/finalize and
// inter-shard syscall hand-offs — and exposes them for cross-shard
// consistency checks at the recursion layer", "Memory consistency
// algorithm" steps 1 and 4). Every shard's DeferredInit tuple (the value an
// address held just before this shard first touched it) must be matched by
// either the program's genesis memory image or an earlier shard's
// DeferredFinal tuple for the same address; every DeferredFinal tuple
// becomes available for whichever later shard touches that address next,
// or the program's public final memory image if none does. Consuming the
// full run's mips.Shard.GlobalMemoryEvents() (concatenated across shards,
// not reset per shard — unlike memory_local's per-shard reset) into one
// running curve.Accumulator makes every interior init/finalize pair cancel
// automatically; only the program's genesis and final images are left to
// reconcile externally (see Accumulator doc below).
const (
	gmColAddress = iota
	gmColKind // 0 = init, 1 = finalize
	gmColValue
	gmColClockLo
	gmColClockHi
	gmColIsReal
	gmWidth
)

type GlobalMemoryChip struct {
	acc curve.Accumulator
}

func NewGlobalMemoryChip() *GlobalMemoryChip { return &GlobalMemoryChip{} }

func (c *GlobalMemoryChip) Name() string              { return "memory_global" }
func (c *GlobalMemoryChip) Width() int                { return gmWidth }
func (c *GlobalMemoryChip) Preprocessed() *air.Matrix { return nil }

// GenerateTrace expects events drawn from every shard's GlobalMemoryEvents,
// in shard order — the recursion-layer driver is responsible for
// concatenating them (spec.md §5 "Recursive aggregation" ties shard proofs
// together in order).
func (c *GlobalMemoryChip) GenerateTrace(events []air.Event) (*air.Matrix, error) {
	h := air.NextPowerOfTwo(len(events))
	m := air.NewMatrix(gmWidth, h)
	c.acc = curve.Accumulator{} // zero value is the identity
	for i, e := range events {
		ev := e.(mips.GlobalMemoryEvent)
		row := m.Data[i]
		// For both kinds the matching clock lives in Access.PrevClock: an
		// init tuple's PrevClock is the previous write's clock (memory.go's
		// normal meaning), and a finalize tuple's PrevClock is repurposed by
		// Shard.DeferredFinal to carry this touch's own clock (see
		// executor.go's closeShard) — the two line up across shards
		// precisely because they mean the same instant for the same write.
		row[gmColAddress] = FromU32(ev.Access.Address)
		row[gmColValue] = FromU32(ev.Access.Value)
		row[gmColClockLo] = FromU64Lo(ev.Access.PrevClock)
		row[gmColClockHi] = FromU64Hi(ev.Access.PrevClock)
		row[gmColIsReal] = field.One

		tag := curve.TagReceive
		if ev.Kind == mips.GlobalMemoryFinalize {
			tag = curve.TagSend
			row[gmColKind] = field.One
		}
		tuple := []field.Elem{row[gmColAddress], row[gmColValue], row[gmColClockLo], row[gmColClockHi]}
		c.acc.Add(tag, tuple)
	}
	return m, nil
}

// Accumulator exposes the running cross-shard multiset-hash sum. It
// returns to the group identity only once the program's genesis memory
// image has been folded in as one TagSend per initially nonzero address
// (or once genesis is all-zero, matching the init tuples' PrevValue == 0
// default) and the program's public final memory image has been folded in
// as one TagReceive per committed address — that reconciliation against
// the public genesis/final images happens at the host level (internal/recursion),
// not inside this chip, since genesis/final images are public inputs the
// chip's own trace has no column for.
func (c *GlobalMemoryChip) Accumulator() curve.Accumulator { return c.acc }

func (c *GlobalMemoryChip) Eval(cb *air.ConstraintBuilder) {
	cb.AssertZero("is_real_boolean", func(row []field.Elem) field.Elem {
		r := row[gmColIsReal]
		return r.Mul(field.One.Sub(r))
	})
	cb.AssertZero("kind_boolean", func(row []field.Elem) field.Elem {
		k := row[gmColKind]
		return k.Mul(field.One.Sub(k))
	})
}

// Buses is empty for the same reason as memory_local's: this chip's
// consistency check runs through the dedicated curve accumulator above.
func (c *GlobalMemoryChip) Buses() []air.BusInteraction { return nil }
