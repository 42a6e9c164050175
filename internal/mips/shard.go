// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mips

// ShardConfig bounds the cycle/column budget a shard may grow to before the
// executor cuts it and starts a new one (spec.md §4.1 "Sharding": "Shard
// ceilings are chosen so the padded height of every chip fits a predeclared
// 'shape'"). RowCeiling is expressed per chip name because different chips
// emit a different number of rows per cycle (e.g. one CPU row per cycle,
// but a memory chip row per touched address, which can be zero or several).
type ShardConfig struct {
	// MaxCycles bounds a shard by raw cycle count, the simplest of the
	// "predeclared shapes": once a shard would execute one more cycle than
	// this, it is closed first.
	MaxCycles uint64
	// RowCeiling holds optional per-chip row bounds (nil or a missing entry
	// means no per-chip ceiling). The executor does not consult it; it cuts
	// shards on MaxCycles alone.
	RowCeiling map[string]int
}

// DefaultShardConfig returns a conservative shard size suitable for tests
// and local `execute` runs.
func DefaultShardConfig() ShardConfig {
	return ShardConfig{MaxCycles: 1 << 20}
}

// Validate checks the configuration is self-consistent (ambient
// "Configuration" stack, SPEC_FULL.md "Config struct per subsystem with a
// Validate() error method").
func (c ShardConfig) Validate() error {
	if c.MaxCycles == 0 {
		return errShardConfigZeroCycles
	}
	return nil
}

var errShardConfigZeroCycles = shardConfigError("mips: ShardConfig.MaxCycles must be > 0")

type shardConfigError string

func (e shardConfigError) Error() string { return string(e) }

// Shard is a contiguous window of cycles, owning its initial/terminal state
// snapshots and the events it emitted (spec.md §3 "Shard"). DeferredInit
// and DeferredFinal are the memory-initialization/finalization events
// "resolved globally rather than locally" by the recursion layer's global
// chip (spec.md §4.2 "Global chip").
type Shard struct {
	Index    uint32
	Initial  Snapshot
	Terminal Snapshot
	Events   map[string][]Event // keyed by chip name, spec.md §3 "consumed exactly once by a single chip's trace builder"

	DeferredInit  []AccessRecord
	DeferredFinal []AccessRecord

	RowCounts map[string]int
}

func newShard(index uint32, initial Snapshot) *Shard {
	return &Shard{
		Index:     index,
		Initial:   initial,
		Events:    make(map[string][]Event),
		RowCounts: make(map[string]int),
	}
}

func (s *Shard) emit(chip string, ev Event) {
	s.Events[chip] = append(s.Events[chip], ev)
	s.RowCounts[chip]++
}

// GlobalMemoryEvents wraps DeferredInit/DeferredFinal as the event stream
// the global chip consumes, one GlobalMemoryEvent per touched address per
// boundary (spec.md §4.2 "Memory consistency algorithm" steps 1 and 4).
func (s *Shard) GlobalMemoryEvents() []Event {
	out := make([]Event, 0, len(s.DeferredInit)+len(s.DeferredFinal))
	for _, rec := range s.DeferredInit {
		out = append(out, GlobalMemoryEvent{Shard: s.Index, Kind: GlobalMemoryInit, Access: rec})
	}
	for _, rec := range s.DeferredFinal {
		out = append(out, GlobalMemoryEvent{Shard: s.Index, Kind: GlobalMemoryFinalize, Access: rec})
	}
	return out
}

// wouldExceed reports whether adding n more rows of the given chip would
// exceed cfg's per-chip ceiling.
func (cfg ShardConfig) wouldExceed(shard *Shard, chip string, n int) bool {
	if cfg.RowCeiling == nil {
		return false
	}
	ceiling, ok := cfg.RowCeiling[chip]
	if !ok {
		return false
	}
	return shard.RowCounts[chip]+n > ceiling
}
