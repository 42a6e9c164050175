// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/spf13/cobra"

	zkvm "github.com/lux-zk/zkmips"
)

func newExecuteCmd() *cobra.Command {
	var n uint32
	cmd := &cobra.Command{
		Use:   "execute <program.elf>",
		Short: "Run a guest program to completion without proving it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := loadProgramImage(args[0])
			if err != nil {
				return err
			}
			pk, _, err := zkvm.Setup(image, defaultConfig())
			if err != nil {
				return err
			}
			publicValues, cycles, err := zkvm.Execute(context.Background(), pk, nInputs(n))
			if err != nil {
				return err
			}
			fmt.Printf("public values: %d bytes\n", len(publicValues))
			fmt.Printf("cycles: %d total\n", cycles.TotalCycles)
			for op, count := range cycles.ByOpcode {
				fmt.Printf("  %s: %d\n", op, count)
			}
			return nil
		},
	}
	cmd.Flags().Uint32Var(&n, "n", 0, "program-specific numeric input, per spec.md §6 CLI surface")
	return cmd
}

// nInputs packs --n into the single hint buffer most fixture guest
// programs (e.g. a Fibonacci iteration count) expect as their first
// SYSHINTREAD.
func nInputs(n uint32) [][]byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, n)
	return [][]byte{buf}
}
