package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/tpuprep/internal/config"
	"github.com/imamik/tpuprep/internal/config/wizard"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	runWizard   = wizard.Run
	writeConfig = wizard.WriteConfig
)

// Init creates a configuration file, interactively or from defaults.
//
// The wizard requires an interactive terminal; on a non-TTY the defaults
// are written as if --defaults had been passed.
func Init(ctx context.Context, outputPath string, useDefaults bool) error {
	var cfg *config.Config

	if useDefaults || !isInteractiveTTY() {
		cfg = config.DefaultConfig()
	} else {
		result, err := runWizard(ctx)
		if err != nil {
			return err
		}
		cfg = result.ToConfig()
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	if err := writeConfig(cfg, outputPath); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", outputPath)
	fmt.Printf("\nNext steps:\n")
	fmt.Printf("  tpuprep plan     # preview the provisioning run\n")
	fmt.Printf("  tpuprep apply    # provision this host\n")
	return nil
}
