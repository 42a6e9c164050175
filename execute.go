// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package zkvm

import (
	"context"
	"fmt"

	"github.com/lux-zk/zkmips/internal/mips"
)

// Execute implements spec.md §4.6 `execute(program_image, input_stream) ->
// (public_values, cycle_report)`: runs the guest to completion without
// producing a proof, for testing (spec.md §4.6's own parenthetical). Each
// element of inputs is handed to the guest in order via
// mips.NewSliceHints, the HintProvider SYSHINTLEN/SYSHINTREAD consume.
func Execute(ctx context.Context, pk *ProvingKey, inputs [][]byte) ([]byte, mips.CycleReport, error) {
	execCfg := pk.Config.Executor
	execCfg.Hints = mips.NewSliceHints(inputs)

	ex, err := mips.NewExecutor(pk.Image, execCfg)
	if err != nil {
		return nil, mips.CycleReport{}, newError(mips.KindInvalidExecution, "building executor", err)
	}
	result, err := ex.Run(ctx)
	if err != nil {
		return nil, mips.CycleReport{}, err
	}
	logger.Debug(fmt.Sprintf("zkvm: execute complete, %d shards, %d cycles", len(result.Shards), result.Cycles.TotalCycles))
	return result.PublicValues, result.Cycles, nil
}
