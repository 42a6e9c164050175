// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	zkvm "github.com/lux-zk/zkmips"
)

func newProveCmd() *cobra.Command {
	var n uint32
	var core, compressed, plonk, groth16 bool
	var out string
	cmd := &cobra.Command{
		Use:   "prove <program.elf>",
		Short: "Prove a guest program invocation, producing a receipt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := modeFromFlags(core, compressed, plonk, groth16)
			if err != nil {
				return err
			}
			image, err := loadProgramImage(args[0])
			if err != nil {
				return err
			}
			pk, vk, err := zkvm.Setup(image, defaultConfig())
			if err != nil {
				return err
			}
			receipt, err := zkvm.Prove(context.Background(), pk, nInputs(n), mode)
			if err != nil {
				return err
			}
			if err := zkvm.Verify(vk, receipt); err != nil {
				return err
			}
			fmt.Printf("proved and self-verified: mode=%s public_values=%dB\n", mode, len(receipt.PublicValues))

			if out != "" && receipt.SNARK != nil {
				if err := os.WriteFile(out, receipt.SNARK, 0o600); err != nil {
					return fmt.Errorf("writing receipt: %w", err)
				}
				fmt.Printf("wrote SNARK receipt to %s (%d bytes)\n", out, len(receipt.SNARK))
			}
			return nil
		},
	}
	cmd.Flags().Uint32Var(&n, "n", 0, "program-specific numeric input, per spec.md §6 CLI surface")
	cmd.Flags().BoolVar(&core, "core", false, "produce a core receipt (vector of shard proofs)")
	cmd.Flags().BoolVar(&compressed, "compressed", false, "produce a compressed receipt (single reduced STARK proof)")
	cmd.Flags().BoolVar(&plonk, "plonk", false, "produce a Plonk-wrapped SNARK receipt")
	cmd.Flags().BoolVar(&groth16, "groth16", false, "produce a Groth16-wrapped SNARK receipt")
	return cmd
}

func modeFromFlags(core, compressed, plonk, groth16 bool) (zkvm.ProofMode, error) {
	selected := 0
	for _, b := range []bool{core, compressed, plonk, groth16} {
		if b {
			selected++
		}
	}
	if selected > 1 {
		return 0, fmt.Errorf("zkvm: at most one of --core/--compressed/--plonk/--groth16 may be set")
	}
	switch {
	case compressed:
		return zkvm.ModeCompressed, nil
	case plonk:
		return zkvm.ModePlonk, nil
	case groth16:
		return zkvm.ModeGroth16, nil
	default:
		return zkvm.ModeCore, nil
	}
}
