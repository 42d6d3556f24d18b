package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/imamik/tpuprep/internal/config"
	"github.com/imamik/tpuprep/internal/provision"
	"github.com/imamik/tpuprep/internal/runner"
	"github.com/imamik/tpuprep/internal/ssh"
)

// RemoteOptions carries the remote command flags.
type RemoteOptions struct {
	ConfigPath string
	Hosts      []string
	User       string
	KeyFile    string
}

// newCommunicator creates an SSH communicator (replaced in tests).
var newCommunicator = func(host, user, keyFile string) (ssh.Communicator, error) {
	return ssh.NewSSHCommunicatorFromKeyFile(host, user, keyFile)
}

// Remote provisions each configured remote host over SSH, sequentially.
// The run stops at the first host that fails, matching local fail-fast
// semantics.
func Remote(ctx context.Context, opts RemoteOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	remote := resolveRemote(cfg, opts)
	if len(remote.Hosts) == 0 {
		return fmt.Errorf("no remote hosts configured; set remote.hosts or pass --host")
	}
	if remote.User == "" || remote.KeyFile == "" {
		return fmt.Errorf("remote user and key file are required; set remote.user/remote.key_file or pass --user/--key-file")
	}

	for i, host := range remote.Hosts {
		log.Printf("Provisioning host %s (%d/%d)", host, i+1, len(remote.Hosts))

		if err := provisionHost(ctx, cfg, remote, host); err != nil {
			return fmt.Errorf("host %s failed: %w", host, err)
		}
	}

	fmt.Printf("\nProvisioned %d host(s)\n", len(remote.Hosts))
	return nil
}

// resolveRemote merges flag overrides onto the configured remote settings.
func resolveRemote(cfg *config.Config, opts RemoteOptions) config.Remote {
	remote := cfg.Remote
	if len(opts.Hosts) > 0 {
		remote.Hosts = opts.Hosts
	}
	if opts.User != "" {
		remote.User = opts.User
	}
	if opts.KeyFile != "" {
		remote.KeyFile = opts.KeyFile
	}
	return remote
}

// provisionHost runs the package phases on one host over SSH. Dataset
// phases run remotely too: the archives must land on the TPU host, not
// on the operator's machine.
func provisionHost(ctx context.Context, cfg *config.Config, remote config.Remote, host string) error {
	comm, err := newCommunicator(host, remote.User, remote.KeyFile)
	if err != nil {
		return err
	}

	phases, err := remotePhases(cfg)
	if err != nil {
		return err
	}

	pipeline := provision.NewPipeline(phases...)
	pctx := provision.NewContext(ctx, cfg, ssh.NewRunner(comm))
	pctx.Observer = pctx.Observer.WithFields(map[string]string{"host": host})

	return pipeline.Run(pctx)
}

// remotePhases assembles the phase list executed on a remote host: the
// package phases plus dataset commands expressed as shell steps, since
// the local fetch/extract code cannot write the remote filesystem.
func remotePhases(cfg *config.Config) ([]provision.Phase, error) {
	pipeline, err := buildPipeline(cfg, pipelineOptions{skipDatasets: true})
	if err != nil {
		return nil, err
	}
	phases := pipeline.Phases

	dir := cfg.Datasets.Dir
	phases = append(phases, provision.PhaseFunc{
		PhaseName: "ensure-data-dir",
		Fn: func(pctx *provision.Context) error {
			return pctx.Runner.Run(pctx, runner.Command{Argv: []string{"mkdir", "-p", dir}})
		},
	})

	for _, archive := range cfg.Datasets.Archives {
		archive := archive
		url := fmt.Sprintf("%s/%s", cfg.Datasets.BaseURL, archive)
		phases = append(phases, provision.PhaseFunc{
			PhaseName: "fetch-" + archive,
			Fn: func(pctx *provision.Context) error {
				return pctx.Runner.Run(pctx, runner.Command{Argv: []string{"wget", "-nc", url, "-P", dir}})
			},
		})
	}

	for _, archive := range cfg.Datasets.Archives {
		archive := archive
		phases = append(phases, provision.PhaseFunc{
			PhaseName: "extract-" + archive,
			Fn: func(pctx *provision.Context) error {
				return pctx.Runner.Run(pctx, runner.Command{
					Argv: []string{"unzip", "-o", dir + "/" + archive, "-d", dir},
				})
			},
		})
	}

	return phases, nil
}
