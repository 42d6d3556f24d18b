package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/tpuprep/cmd/tpuprep/handlers"
)

// Plan returns the command for previewing a provisioning run.
//
// The pipeline runs against a recording no-op executor: every command that
// apply would run is printed, and nothing on the host is touched.
func Plan() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show what apply would do without doing it",
		Long: `Preview the provisioning run.

Prints every command apply would execute and every artifact it would
produce, in order, without mutating package state or the filesystem.

Examples:
  tpuprep plan
  tpuprep plan -c lab.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Plan(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: tpuprep.yaml)")

	return cmd
}
