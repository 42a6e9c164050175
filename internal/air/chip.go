// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package air implements the generic engine that takes a set of chips,
// builds per-chip trace matrices, enforces per-chip constraints, and runs
// lookup arguments across chips (spec.md §4.1-4.3, §9 "Chip polymorphism").
// Chips share the capability set {emit columns, fill trace row from event,
// enforce constraints, send/receive on named buses}; this is modeled as a
// Go interface rather than a tagged-variant-plus-dispatch table, matching
// the teacher's contract.StatefulPrecompiledContract interface shape
// (zk/contract.go, modules/modules.go) rather than the teacher's own
// per-file switch-on-opcode style, which does not compose well across many
// chip kinds.
package air

import "github.com/lux-zk/zkmips/internal/field"

// Event is the generic per-row input a chip consumes to fill one trace row.
// Concrete chips type-assert Event to their own event struct (e.g.
// mips.CPUEvent); the interface only reports which chip the event belongs
// to, for bookkeeping by the Machine.
type Event interface {
	ChipName() string
}

// Matrix is a chip's trace: Height rows (a power of two, padded with
// canonical no-op rows) by Width columns of base-field elements.
type Matrix struct {
	Width  int
	Height int
	Data   [][]field.Elem
}

// NewMatrix allocates a zeroed matrix.
func NewMatrix(width, height int) *Matrix {
	data := make([][]field.Elem, height)
	for i := range data {
		data[i] = make([]field.Elem, width)
	}
	return &Matrix{Width: width, Height: height, Data: data}
}

// BusInteraction is one producer or consumer declaration a chip makes
// against a named lookup bus (spec.md "Lookup bus").
type BusInteraction struct {
	Bus       string
	IsSend    bool // true = "send"/produce, false = "receive"/consume
	Multiplicity func(row []field.Elem) field.Elem
	Tuple     func(row []field.Elem) []field.Elem
}

// ConstraintBuilder accumulates polynomial constraint expressions a chip
// asserts must vanish on every row (and, for transition constraints, on
// every row but the last). Real coefficient tracking is left to the prover
// backend (internal/air.Machine); chips only describe *which* rows a
// constraint touches and a closure evaluating it over a row (and, for
// transition constraints, the next row).
type ConstraintBuilder struct {
	constraints []Constraint
}

// Constraint is a single named algebraic assertion.
type Constraint struct {
	Name       string
	Transition bool // if true, Eval receives (row, nextRow); else just (row, nil)
	Eval       func(row, nextRow []field.Elem) field.Elem
}

// AssertZero registers a constraint that must evaluate to the zero element
// on every live row.
func (cb *ConstraintBuilder) AssertZero(name string, eval func(row []field.Elem) field.Elem) {
	cb.constraints = append(cb.constraints, Constraint{
		Name: name,
		Eval: func(row, _ []field.Elem) field.Elem { return eval(row) },
	})
}

// AssertZeroTransition registers a constraint relating consecutive rows
// (e.g. PC transitions, clock monotonicity).
func (cb *ConstraintBuilder) AssertZeroTransition(name string, eval func(row, nextRow []field.Elem) field.Elem) {
	cb.constraints = append(cb.constraints, Constraint{Name: name, Transition: true, Eval: eval})
}

// Constraints returns the accumulated constraint set.
func (cb *ConstraintBuilder) Constraints() []Constraint { return cb.constraints }

// Chip is the capability set every AIR component implements.
type Chip interface {
	// Name identifies the chip for bus wiring and diagnostics.
	Name() string
	// Width is the number of main-trace columns this chip uses.
	Width() int
	// Preprocessed returns the chip's preprocessed (setup-time, committed
	// into the verifying key) column matrix, or nil if the chip has none.
	Preprocessed() *Matrix
	// GenerateTrace fills one trace row per event, padding with canonical
	// no-op rows up to a power-of-two height.
	GenerateTrace(events []Event) (*Matrix, error)
	// Eval registers this chip's local constraints against the builder.
	Eval(cb *ConstraintBuilder)
	// Buses declares this chip's lookup-bus sends and receives.
	Buses() []BusInteraction
}

// NextPowerOfTwo rounds n up to the nearest power of two, with a floor of 1,
// matching "padded with canonical no-op rows up to a power of two" (spec.md
// §3 "Trace matrix").
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
