package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/tpuprep/cmd/tpuprep/handlers"
)

// Doctor returns the command for diagnosing the host environment.
func Doctor() *cobra.Command {
	var (
		configPath string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the host before provisioning",
		Long: `Check that this host can be provisioned.

Validates the configuration, checks that the required tools are installed,
probes the dataset host and accelerator index for reachability and reports
the state of the data directory.

Examples:
  tpuprep doctor
  tpuprep doctor --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(cmd.Context(), configPath, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: tpuprep.yaml)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output machine-readable JSON")

	return cmd
}
