// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config defines the plain configuration structs the host API and
// CLI wire together: shard shape, FRI parameters, and recursion batch
// size. Grounded on the teacher's precompileconfig.Config pattern
// (zk/module.go's Config/Configurator) but without the EVM-specific
// Configure/Verify-against-chain-state plumbing — each struct here is a
// standalone value with a Validate() error method, the non-EVM analogue
// spec.md's AMBIENT STACK calls for.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/lux-zk/zkmips/internal/fri"
	"github.com/lux-zk/zkmips/internal/mips"
	"github.com/lux-zk/zkmips/internal/recursion"
	"github.com/lux-zk/zkmips/internal/stark"
)

// Key is the config-file lookup key a future JSON/TOML loader would use,
// mirroring the teacher's ConfigKey convention (zk/module.go: "zkConfig").
const Key = "zkvmConfig"

// Config bundles every subsystem's settings the host API needs to build
// an Executor, a stark.Config, and a recursion.Config from one place.
type Config struct {
	Executor  mips.ExecutorConfig `json:"-"` // not JSON-serializable as-is (holds a precompile.Table); callers build it via DefaultExecutorConfig
	Shard     ShardShape          `json:"shard"`
	Stark     StarkParams         `json:"stark"`
	Recursion RecursionParams     `json:"recursion"`
}

// Default returns the configuration the CLI uses absent any flags/env
// overrides.
func Default() Config {
	return Config{
		Executor:  mips.DefaultExecutorConfig(),
		Shard:     ShardShape{MaxCyclesPerShard: mips.DefaultShardConfig().MaxCycles},
		Stark:     StarkParamsFromFRI(stark.DefaultConfig().FRI),
		Recursion: RecursionParams{BaseBatchSize: recursion.DefaultConfig().BaseBatchSize},
	}
}

// ShardShape configures how the executor cuts shards (spec.md §3 "Shard").
type ShardShape struct {
	MaxCyclesPerShard uint64 `json:"maxCyclesPerShard"`
}

func (s ShardShape) Validate() error {
	if s.MaxCyclesPerShard == 0 {
		return fmt.Errorf("config: shard.maxCyclesPerShard must be positive, got %d", s.MaxCyclesPerShard)
	}
	return nil
}

// ToShardConfig converts into an mips.ShardConfig.
func (s ShardShape) ToShardConfig() mips.ShardConfig {
	return mips.ShardConfig{MaxCycles: s.MaxCyclesPerShard}
}

// StarkParams is the JSON-serializable mirror of fri.Config (spec.md §4.3
// "blow-up factor... number of query repetitions... grind bits").
type StarkParams struct {
	Blowup     int `json:"blowup"`
	NumQueries int `json:"numQueries"`
	PoWBits    int `json:"powBits"`
	FoldArity  int `json:"foldArity"`
}

// StarkParamsFromFRI copies an fri.Config's fields into a StarkParams,
// matching field-for-field since fri.Config is itself not JSON-tagged.
func StarkParamsFromFRI(cfg fri.Config) StarkParams {
	return StarkParams{
		Blowup:     cfg.Blowup,
		NumQueries: cfg.NumQueries,
		PoWBits:    int(cfg.PoWBits),
		FoldArity:  cfg.FoldArity,
	}
}

// ToFRI converts back into an fri.Config, the direction the host API and
// CLI need when building a stark.Config from parsed/loaded StarkParams.
func (s StarkParams) ToFRI() fri.Config {
	return fri.Config{
		Blowup:     s.Blowup,
		NumQueries: s.NumQueries,
		PoWBits:    uint32(s.PoWBits),
		FoldArity:  s.FoldArity,
	}
}

func (s StarkParams) Validate() error {
	if s.NumQueries <= 0 {
		return fmt.Errorf("config: stark.numQueries must be positive, got %d", s.NumQueries)
	}
	if s.Blowup < 0 {
		return fmt.Errorf("config: stark.blowup must be non-negative, got %d", s.Blowup)
	}
	if s.FoldArity < 2 {
		return fmt.Errorf("config: stark.foldArity must be at least 2, got %d", s.FoldArity)
	}
	return nil
}

// RecursionParams is the JSON-serializable mirror of recursion.Config's
// batch-size knob (spec.md §4.4 "first layer configurable batch size").
type RecursionParams struct {
	BaseBatchSize  int `json:"baseBatchSize"`
	MaxConcurrency int `json:"maxConcurrency"`
}

func (r RecursionParams) Validate() error {
	if r.BaseBatchSize <= 0 {
		return fmt.Errorf("config: recursion.baseBatchSize must be positive, got %d", r.BaseBatchSize)
	}
	return nil
}

// Validate checks every subsystem's settings.
func (c Config) Validate() error {
	if err := c.Shard.Validate(); err != nil {
		return err
	}
	if err := c.Stark.Validate(); err != nil {
		return err
	}
	if err := c.Recursion.Validate(); err != nil {
		return err
	}
	return nil
}

// ToRecursionConfig builds an internal/recursion.Config from the parsed
// params, the shape the host API needs to call recursion.Aggregate.
func (c Config) ToRecursionConfig() recursion.Config {
	return recursion.Config{
		Stark:          stark.Config{FRI: c.Stark.ToFRI()},
		BaseBatchSize:  c.Recursion.BaseBatchSize,
		MaxConcurrency: c.Recursion.MaxConcurrency,
	}
}

// EnvVerbosity reads the RUST_LOG-style verbosity tag spec.md §6
// "Environment variables" names, parsed with plain os.Getenv + no
// external parsing library, matching the teacher's lack of a heavyweight
// config framework.
func EnvVerbosity() string {
	if v := os.Getenv("RUST_LOG"); v != "" {
		return v
	}
	return "info"
}

// EnvPowersOfTauPath reads the trusted-setup phase-1 file path spec.md §6
// names.
func EnvPowersOfTauPath() string {
	return os.Getenv("ZKVM_POWERS_OF_TAU_PATH")
}

// EnvWitnessJSONPath / EnvConstraintsJSONPath read the SNARK-wrapping
// harness paths spec.md §6 "Environment variables" names
// (WITNESS_JSON/CONSTRAINTS_JSON).
func EnvWitnessJSONPath() string     { return os.Getenv("WITNESS_JSON") }
func EnvConstraintsJSONPath() string { return os.Getenv("CONSTRAINTS_JSON") }

// EnvUint parses an unsigned 32-bit integer environment variable, falling
// back to def when unset or malformed.
func EnvUint(name string, def uint32) uint32 {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return def
	}
	return uint32(n)
}
