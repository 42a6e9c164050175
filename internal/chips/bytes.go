// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chips

import (
	"github.com/lux-zk/zkmips/internal/air"
	"github.com/lux-zk/zkmips/internal/field"
)

// Bytes-chip columns (spec.md §4.2 "bytes chip (preprocessed)... universal
// byte-operation and byte-range oracle: one row per (x, y) in [0,256)^2,
// columns for x, y, x XOR y, x AND y, x OR y, x < y, and an 8-bit range
// tag"). All 65536 rows are fixed at construction; there is nothing
// per-shard to refill, so GenerateTrace ignores its events argument exactly
// like the program chip's Preprocessed data.
const (
	byColX = iota
	byColY
	byColXor
	byColAnd
	byColOr
	byColLt
	byColIsReal
	byWidth
)

const byteRange = 256

// BytesChip is the byte-operation/byte-range lookup oracle. No chip in this
// repo wires a receive-side interaction against it yet — the ALU
// bitwise/shift/lt/clz chips' relations are left structural-only rather
// than retrofitted to range-check against this table (see DESIGN.md) — but
// the table itself is built and exposed so that wiring is a pure addition,
// not a redesign, whenever it is taken up.
type BytesChip struct {
	trace *air.Matrix
}

// NewBytesChip builds the full x,y in [0,256)^2 table once.
func NewBytesChip() *BytesChip {
	h := air.NextPowerOfTwo(byteRange * byteRange)
	m := air.NewMatrix(byWidth, h)
	i := 0
	for x := 0; x < byteRange; x++ {
		for y := 0; y < byteRange; y++ {
			row := m.Data[i]
			row[byColX] = field.New(uint64(x))
			row[byColY] = field.New(uint64(y))
			row[byColXor] = field.New(uint64(x ^ y))
			row[byColAnd] = field.New(uint64(x & y))
			row[byColOr] = field.New(uint64(x | y))
			row[byColLt] = Bool(x < y)
			row[byColIsReal] = field.One
			i++
		}
	}
	return &BytesChip{trace: m}
}

func (c *BytesChip) Name() string              { return "bytes" }
func (c *BytesChip) Width() int                { return byWidth }
func (c *BytesChip) Preprocessed() *air.Matrix { return c.trace }

func (c *BytesChip) GenerateTrace(events []air.Event) (*air.Matrix, error) {
	return c.trace, nil
}

func (c *BytesChip) Eval(cb *air.ConstraintBuilder) {
	cb.AssertZero("bytes_lt_boolean", func(row []field.Elem) field.Elem {
		l := row[byColLt]
		return l.Mul(field.One.Sub(l))
	})
}

// Buses is empty: nothing in this repo consumes the table yet (see the
// type doc comment); a consumer would add its own receive-side interaction
// against air.BusByteRange, joining on (x, y, result-column).
func (c *BytesChip) Buses() []air.BusInteraction { return nil }
