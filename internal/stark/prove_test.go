// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package stark

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lux-zk/zkmips/internal/air"
	"github.com/lux-zk/zkmips/internal/field"
)

// trivialChip is a minimal air.Chip fixture: every row asserts column 0
// equals column 1, satisfied trivially by construction, used to exercise
// Prove/Verify's plumbing independent of any concrete chip set.
type trivialChip struct{}

func (trivialChip) Name() string              { return "trivial" }
func (trivialChip) Width() int                { return 2 }
func (trivialChip) Preprocessed() *air.Matrix { return nil }
func (trivialChip) GenerateTrace(events []air.Event) (*air.Matrix, error) {
	m := air.NewMatrix(2, 4)
	for i := range m.Data {
		m.Data[i][0] = field.New(uint64(i))
		m.Data[i][1] = field.New(uint64(i))
	}
	return m, nil
}
func (trivialChip) Eval(cb *air.ConstraintBuilder) {
	cb.AssertZero("trivial_equal", func(row []field.Elem) field.Elem {
		return row[0].Sub(row[1])
	})
}
func (trivialChip) Buses() []air.BusInteraction { return nil }

func TestProveVerifyRoundTrip(t *testing.T) {
	m := air.NewMachine([]air.Chip{trivialChip{}})
	traces, err := m.GenerateTraces(map[string][]air.Event{})
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.FRI.NumQueries = 4
	public := PublicValues{Values: []field.Elem{field.New(1), field.New(2)}}

	proof, err := Prove(cfg, m, traces, public)
	require.NoError(t, err)
	require.NoError(t, Verify(cfg, proof))
}
