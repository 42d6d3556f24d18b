package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/tpuprep/cmd/tpuprep/handlers"
)

// Apply returns the command for provisioning the local host.
//
// This command runs the full phase sequence: conflicting package removal,
// pip bootstrap, transport upgrade, accelerator install, library install,
// data directory creation, dataset download and extraction.
//
// Optional flags:
//
//	--config, -c:   Path to configuration YAML file (default: auto-detect tpuprep.yaml)
//	--skip-datasets: Stop after the package phases
//	--metrics-file:  Write per-phase metrics in Prometheus text format
func Apply() *cobra.Command {
	var opts handlers.ApplyOptions

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Provision this host",
		Long: `Provision this host for TPU experimentation.

Phases run strictly in order and the run stops at the first failure; no
phase is retried or rolled back. Re-running apply is safe: the directory
and download phases skip work that is already done.

If no config file is specified, tpuprep looks for tpuprep.yaml in the
current directory and falls back to built-in defaults.

Examples:
  # Provision using tpuprep.yaml or defaults
  tpuprep apply

  # Provision using a specific config file
  tpuprep apply -c lab.yaml

  # Packages only, record phase metrics
  tpuprep apply --skip-datasets --metrics-file /var/lib/node_exporter/tpuprep.prom`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Apply(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: tpuprep.yaml)")
	cmd.Flags().BoolVar(&opts.SkipDatasets, "skip-datasets", false, "Run only the package phases")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "Write phase metrics to this file in Prometheus text format")

	return cmd
}
