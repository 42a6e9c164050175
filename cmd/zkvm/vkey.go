// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	zkvm "github.com/lux-zk/zkmips"
)

func newVKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vkey <program.elf>",
		Short: "Print the verifying-key digests for a program image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := loadProgramImage(args[0])
			if err != nil {
				return err
			}
			_, vk, err := zkvm.Setup(image, defaultConfig())
			if err != nil {
				return err
			}
			fmt.Printf("program digest:  %x\n", vk.ProgramDigest)
			fmt.Printf("groth16 VERIFIER_HASH(): %x\n", vk.Groth16.Digest())
			fmt.Printf("plonk VERIFIER_HASH():   %x\n", vk.Plonk.Digest())
			return nil
		},
	}
}
