package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/imamik/tpuprep/cmd/tpuprep/handlers"
)

// TPU returns the command group for managing TPU nodes.
func TPU() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tpu",
		Short: "Manage Cloud TPU nodes",
	}

	cmd.AddCommand(tpuCreate())
	cmd.AddCommand(tpuStatus())
	cmd.AddCommand(tpuDelete())

	return cmd
}

func tpuCreate() *cobra.Command {
	var (
		configPath string
		wait       bool
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a TPU node",
		Long: `Create a TPU node using the zone, accelerator type and runtime version
from the configuration.

Examples:
  tpuprep tpu create swarm-0
  tpuprep tpu create swarm-0 --wait`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.TPUCreate(cmd.Context(), configPath, args[0], wait)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: tpuprep.yaml)")
	cmd.Flags().BoolVar(&wait, "wait", false, "Block until the node is READY")

	return cmd
}

func tpuStatus() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "status NAME",
		Short: "Show the state of a TPU node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.TPUStatus(cmd.Context(), configPath, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: tpuprep.yaml)")

	return cmd
}

func tpuDelete() *cobra.Command {
	var (
		configPath string
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a TPU node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.TPUDelete(cmd.Context(), configPath, args[0], timeout)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: tpuprep.yaml)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Give up after this long (0 waits indefinitely)")

	return cmd
}
