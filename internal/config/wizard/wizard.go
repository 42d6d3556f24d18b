// Package wizard implements the interactive configuration builder behind
// `tpuprep init`.
package wizard

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/imamik/tpuprep/internal/config"
)

// Result holds the user's choices from the wizard.
type Result struct {
	AcceleratorVersion string
	IndexURL           string
	Libraries          []string
	DataDir            string
	BaseURL            string
	Sudo               bool
}

// Run runs the configuration wizard.
func Run(ctx context.Context) (*Result, error) {
	result := &Result{
		// Defaults
		AcceleratorVersion: config.DefaultAcceleratorVersion,
		IndexURL:           config.DefaultAcceleratorIndexURL,
		Libraries:          config.DefaultLibraries(),
		DataDir:            config.DefaultDataDir,
		BaseURL:            config.DefaultDatasetBaseURL,
		Sudo:               true,
	}

	// Build the form
	form := huh.NewForm(
		// Accelerator pin
		huh.NewGroup(
			huh.NewInput().
				Title("Accelerator version").
				Description("Exact jax[tpu] version to pin").
				Placeholder(config.DefaultAcceleratorVersion).
				Value(&result.AcceleratorVersion).
				Validate(validateVersion),

			huh.NewInput().
				Title("Wheel index URL").
				Description("find-links index hosting the TPU wheels").
				Value(&result.IndexURL).
				Validate(validateAbsoluteURL),
		),

		// Library selection
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Auxiliary libraries").
				Description("Installed after the accelerator build").
				Options(
					huh.NewOption("optax (gradient optimizers)", "optax").Selected(true),
					huh.NewOption("ray (distributed execution)", "ray").Selected(true),
					huh.NewOption("dm-haiku (neural network layers)", "dm-haiku").Selected(true),
					huh.NewOption("wandb (experiment logging)", "wandb").Selected(true),
					huh.NewOption("fabric (remote execution)", "fabric").Selected(true),
					huh.NewOption("einops (tensor utilities)", "einops").Selected(true),
				).
				Value(&result.Libraries),
		),

		// Dataset location
		huh.NewGroup(
			huh.NewInput().
				Title("Data directory").
				Description("Benchmark archives are downloaded and extracted here").
				Placeholder(config.DefaultDataDir).
				Value(&result.DataDir).
				Validate(validateNotEmpty),

			huh.NewInput().
				Title("Dataset host").
				Description("Base URL serving enwik8.zip and enwik9.zip").
				Value(&result.BaseURL).
				Validate(validateAbsoluteURL),
		),

		// Privileges
		huh.NewGroup(
			huh.NewConfirm().
				Title("Use sudo for package phases?").
				Description("TPU VM images install packages system-wide").
				Value(&result.Sudo),
		),
	)

	// Run the form
	if err := form.RunWithContext(ctx); err != nil {
		return nil, fmt.Errorf("wizard canceled: %w", err)
	}

	return result, nil
}

// ToConfig converts the wizard result to a Config.
func (r *Result) ToConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Accelerator.Version = r.AcceleratorVersion
	cfg.Accelerator.IndexURL = r.IndexURL
	cfg.Libraries = r.Libraries
	cfg.Datasets.Dir = r.DataDir
	cfg.Datasets.BaseURL = r.BaseURL
	sudo := r.Sudo
	cfg.Sudo = &sudo
	return cfg
}

func validateNotEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("must not be empty")
	}
	return nil
}

func validateVersion(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("must not be empty")
	}
	if strings.ContainsAny(s, " \t") {
		return fmt.Errorf("must not contain whitespace")
	}
	return nil
}

func validateAbsoluteURL(s string) error {
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("must be an absolute URL")
	}
	return nil
}
