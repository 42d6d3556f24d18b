// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"fmt"
	"log"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/imamik/tpuprep/internal/config"
	"github.com/imamik/tpuprep/internal/provision"
	"github.com/imamik/tpuprep/internal/provision/dataset"
	"github.com/imamik/tpuprep/internal/provision/python"
	"github.com/imamik/tpuprep/internal/runner"
	"github.com/imamik/tpuprep/internal/util/prerequisites"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfig resolves the configuration for a command invocation.
	loadConfig = config.Load

	// checkDefaultPrereqs runs the default prerequisite checks.
	checkDefaultPrereqs = prerequisites.CheckDefault

	// checkTPUPrereqs runs the TPU-management prerequisite checks.
	checkTPUPrereqs = prerequisites.CheckForTPU

	// checkDoctorPrereqs runs the tool checks the doctor command reports on.
	checkDoctorPrereqs = prerequisites.CheckForDoctor

	// newMirrorFetcher creates an S3 mirror fetcher.
	newMirrorFetcher = func(mirror config.Mirror) (dataset.Fetcher, error) {
		return dataset.NewMirrorFetcher(mirror)
	}

	// newRunner creates the command runner used by apply and datasets.
	newRunner = func() runner.Runner {
		return runner.NewExecRunner()
	}
)

// pipelineOptions tunes phase assembly.
type pipelineOptions struct {
	skipDatasets bool
	forceFetch   bool
	dryRun       bool
}

// buildPipeline assembles the full phase sequence for a config:
// the five package phases followed by the three dataset phases.
func buildPipeline(cfg *config.Config, opts pipelineOptions) (*provision.Pipeline, error) {
	phases := python.NewProvisioner().Phases()

	if !opts.skipDatasets {
		datasetOpts := []dataset.Option{
			dataset.WithForce(opts.forceFetch),
			dataset.WithDryRun(opts.dryRun),
		}

		if cfg.Datasets.Mirror.Enabled() && !opts.dryRun {
			fetcher, err := newMirrorFetcher(cfg.Datasets.Mirror)
			if err != nil {
				return nil, fmt.Errorf("failed to configure dataset mirror: %w", err)
			}
			datasetOpts = append(datasetOpts, dataset.WithFetcher(fetcher))
		}

		phases = append(phases, dataset.NewProvisioner(datasetOpts...).Phases()...)
	}

	return provision.NewPipeline(phases...), nil
}

// checkPrerequisites verifies required host tools are available.
// Enabled by default, can be disabled via prerequisites_check_enabled: false.
func checkPrerequisites(cfg *config.Config) error {
	if !cfg.PrerequisitesEnabled() {
		return nil
	}

	log.Println("Checking prerequisites...")
	results := checkDefaultPrereqs()

	// Log found tools
	for _, r := range results.Results {
		if r.Found {
			version := r.Version
			if version == "" {
				version = "unknown version"
			}
			log.Printf("  Found %s (%s)", r.Tool.Name, version)
		}
	}

	// Return error if required tools are missing
	if err := results.Error(); err != nil {
		return fmt.Errorf("prerequisites check failed: %w", err)
	}

	return nil
}

func isInteractiveTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
