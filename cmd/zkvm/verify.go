// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lux-zk/zkmips/internal/onchain"
	zkvm "github.com/lux-zk/zkmips"
)

func newVerifyCmd() *cobra.Command {
	var plonk, groth16 bool
	var publicValuesPath string
	cmd := &cobra.Command{
		Use:   "verify <program.elf> <receipt.bin>",
		Short: "Verify a SNARK-wrapped receipt produced by `prove --plonk|--groth16`",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if plonk == groth16 {
				return fmt.Errorf("zkvm: exactly one of --plonk/--groth16 must be set")
			}
			image, err := loadProgramImage(args[0])
			if err != nil {
				return err
			}
			_, vk, err := zkvm.Setup(image, defaultConfig())
			if err != nil {
				return err
			}
			proofBytes, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("reading receipt: %w", err)
			}
			var publicValues []byte
			if publicValuesPath != "" {
				publicValues, err = os.ReadFile(publicValuesPath)
				if err != nil {
					return fmt.Errorf("reading public values: %w", err)
				}
			}

			var verifier onchain.Verifier
			if groth16 {
				verifier = &onchain.Groth16Verifier{VK: vk.Groth16}
			} else {
				verifier = &onchain.PlonkVerifier{VK: vk.Plonk}
			}
			if err := zkvm.VerifyBytes(verifier, publicValues, proofBytes); err != nil {
				return err
			}
			fmt.Println("receipt verified")
			return nil
		},
	}
	cmd.Flags().BoolVar(&plonk, "plonk", false, "receipt is a Plonk-wrapped SNARK")
	cmd.Flags().BoolVar(&groth16, "groth16", false, "receipt is a Groth16-wrapped SNARK")
	cmd.Flags().StringVar(&publicValuesPath, "public-values", "", "path to the committed public values bytes")
	return cmd
}
