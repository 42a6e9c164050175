// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chips

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lux-zk/zkmips/internal/air"
	"github.com/lux-zk/zkmips/internal/field"
)

// assertConstraintsHold evaluates every constraint a chip registers against
// every row of m (and, for transition constraints, every adjacent row
// pair), failing the test with the offending constraint's name.
func assertConstraintsHold(t *testing.T, c air.Chip, m *air.Matrix) {
	t.Helper()
	cb := &air.ConstraintBuilder{}
	c.Eval(cb)
	for _, cons := range cb.Constraints() {
		if cons.Transition {
			for i := 0; i < m.Height-1; i++ {
				got := cons.Eval(m.Data[i], m.Data[i+1])
				require.True(t, got.Equal(field.Zero), "transition constraint %q failed at row %d", cons.Name, i)
			}
			continue
		}
		for i := 0; i < m.Height; i++ {
			got := cons.Eval(m.Data[i], nil)
			require.True(t, got.Equal(field.Zero), "constraint %q failed at row %d", cons.Name, i)
		}
	}
}
