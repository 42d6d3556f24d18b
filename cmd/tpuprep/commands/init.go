package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/tpuprep/cmd/tpuprep/handlers"
)

// Init returns the command for creating a configuration file.
//
// Interactive by default; --defaults writes the built-in configuration
// without asking questions.
func Init() *cobra.Command {
	var (
		outputPath  string
		useDefaults bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a tpuprep.yaml configuration file",
		Long: `Create a configuration file for this project.

Runs an interactive wizard on a terminal, asking for the accelerator pin,
library set and dataset location. With --defaults the built-in
configuration is written as-is.

Examples:
  tpuprep init
  tpuprep init --defaults
  tpuprep init -o lab.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath, useDefaults)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "tpuprep.yaml", "Path of the config file to write")
	cmd.Flags().BoolVar(&useDefaults, "defaults", false, "Write the default configuration without prompting")

	return cmd
}
