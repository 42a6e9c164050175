// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Command zkvm is the reference host driver spec.md §6 "CLI surface"
// describes: `execute`, `prove [--core|--compressed|--plonk|--groth16]`,
// `verify`, `vkey`, wired over the root zkvm package's five-operation
// host API.
package main

import (
	"errors"
	"fmt"
	"os"

	log "github.com/luxfi/log"
	"github.com/spf13/cobra"

	"github.com/lux-zk/zkmips/internal/config"
	"github.com/lux-zk/zkmips/internal/mips"
	zkvm "github.com/lux-zk/zkmips"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "zkvm",
		Short: "zkMIPS zkVM reference host driver",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			zkvm.SetLogger(log.NewTestLogger(levelFromVerbosity(config.EnvVerbosity())))
		},
	}
	root.AddCommand(newExecuteCmd(), newProveCmd(), newVerifyCmd(), newVKeyCmd())
	return root
}

// levelFromVerbosity maps the RUST_LOG-style tag to a log.Level, defaulting
// to Info for anything it doesn't recognize rather than failing the CLI
// over a logging preference.
func levelFromVerbosity(tag string) log.Level {
	switch tag {
	case "debug", "trace":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// exitCode maps an error to spec.md §6 "exit codes: 0 success, 1
// verification failed, 2 execution failed, 3 misuse".
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var zerr *zkvm.Error
	if errors.As(err, &zerr) {
		switch zerr.Kind {
		case zkvm.KindProofInvalid, zkvm.KindVerifierSelectorMismatch, zkvm.KindDeferredObligationUnfulfilled:
			return 1
		case mips.KindInvalidExecution, mips.KindInternalError:
			return 2
		default:
			return 3
		}
	}
	var execErr *mips.ExecutionError
	if errors.As(err, &execErr) {
		return 2
	}
	return 3
}

func loadProgramImage(path string) (*mips.ProgramImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading program image: %w", err)
	}
	return mips.LoadELF(data)
}

func defaultConfig() config.Config { return config.Default() }
