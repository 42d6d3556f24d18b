package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/imamik/tpuprep/internal/metrics"
	"github.com/imamik/tpuprep/internal/provision"
)

// ApplyOptions carries the apply command flags.
type ApplyOptions struct {
	ConfigPath   string
	SkipDatasets bool
	MetricsFile  string
}

// Apply provisions the local host.
//
// This function orchestrates the complete provisioning workflow:
//  1. Loads and validates the configuration (tpuprep.yaml or defaults)
//  2. Checks host prerequisites (python3, pip)
//  3. Assembles the phase pipeline: package phases, then dataset phases
//  4. Runs the pipeline sequentially, stopping at the first failure
//  5. Writes the phase metrics textfile if requested
//
// The metrics textfile is written even when the run fails, so a scrape
// picks up the failed phase.
func Apply(ctx context.Context, opts ApplyOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	if err := checkPrerequisites(cfg); err != nil {
		return err
	}

	pipeline, err := buildPipeline(cfg, pipelineOptions{skipDatasets: opts.SkipDatasets})
	if err != nil {
		return err
	}

	pctx := provision.NewContext(ctx, cfg, newRunner())

	var recorder *metrics.Recorder
	if opts.MetricsFile != "" {
		recorder = metrics.NewRecorder()
		pctx.Recorder = recorder
	}

	runErr := pipeline.Run(pctx)

	if recorder != nil {
		if err := recorder.WriteTextfile(opts.MetricsFile); err != nil {
			log.Printf("Warning: failed to write metrics file: %v", err)
		}
	}

	if runErr != nil {
		return runErr
	}

	printApplySuccess(pctx)
	return nil
}

// printApplySuccess outputs completion details for the user.
func printApplySuccess(pctx *provision.Context) {
	fmt.Printf("\nProvisioning complete!\n")
	if pctx.State.PipVersion != "" {
		fmt.Printf("Package manager: %s\n", pctx.State.PipVersion)
	}
	if pctx.State.InstalledPinned != "" {
		fmt.Printf("Accelerator build: %s\n", pctx.State.InstalledPinned)
	}
	if pctx.State.DataDir != "" {
		fmt.Printf("Datasets in: %s\n", pctx.State.DataDir)
		for _, path := range pctx.State.Extracted {
			fmt.Printf("  %s\n", path)
		}
	}
}
