package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/tpuprep/cmd/tpuprep/handlers"
)

// Remote returns the command for provisioning remote TPU hosts over SSH.
//
// Hosts come from the config file or --host flags. Hosts are provisioned
// sequentially and the run stops at the first host that fails.
func Remote() *cobra.Command {
	var opts handlers.RemoteOptions

	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Provision remote TPU hosts over SSH",
		Long: `Run the full phase sequence on each configured remote host.

Hosts are taken from remote.hosts in the config file unless --host is
given. Each host is provisioned sequentially with the same fail-fast
semantics as a local apply.

Examples:
  tpuprep remote
  tpuprep remote --host 10.0.0.5 --user ubuntu --key-file ~/.ssh/id_ed25519`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Remote(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: tpuprep.yaml)")
	cmd.Flags().StringSliceVar(&opts.Hosts, "host", nil, "Remote host to provision (repeatable, overrides config)")
	cmd.Flags().StringVar(&opts.User, "user", "", "SSH user (overrides config)")
	cmd.Flags().StringVar(&opts.KeyFile, "key-file", "", "SSH private key file (overrides config)")

	return cmd
}
