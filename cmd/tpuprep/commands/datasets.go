package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/tpuprep/cmd/tpuprep/handlers"
)

// Datasets returns the command for fetching the benchmark datasets only.
func Datasets() *cobra.Command {
	var (
		configPath string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "Download and extract the benchmark datasets",
		Long: `Run only the dataset phases: create the data directory, download the
configured archives and extract them.

Archives already on disk are kept unless --force is given.

Examples:
  tpuprep datasets
  tpuprep datasets --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Datasets(cmd.Context(), configPath, force)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: tpuprep.yaml)")
	cmd.Flags().BoolVar(&force, "force", false, "Re-download archives that already exist")

	return cmd
}
