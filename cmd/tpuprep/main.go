// Package main is the entry point for the tpuprep CLI.
//
// tpuprep is a command-line tool for provisioning TPU VM hosts for
// machine-learning experimentation. It bootstraps the python package
// manager, installs the pinned accelerator build and its companion
// libraries, and fetches the text-compression benchmark datasets.
// Phases run sequentially and the run stops at the first failure.
//
// Commands: apply, plan, datasets, init, doctor, remote, tpu.
//
// For detailed usage information, run:
//
//	tpuprep --help
package main

import (
	"fmt"
	"os"

	"github.com/imamik/tpuprep/cmd/tpuprep/commands"
	"github.com/imamik/tpuprep/internal/runner"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(runner.ExitCode(err))
	}
}
