// Package python implements the package-manager provisioning phases:
// conflict removal, pip bootstrap, transport upgrade, the pinned
// accelerator build and the auxiliary library set.
package python

import (
	"fmt"

	"github.com/imamik/tpuprep/internal/provision"
	"github.com/imamik/tpuprep/internal/runner"
)

// conflictingPackages are wheels pre-installed on TPU VM images that
// shadow the pinned accelerator build and must be removed first.
var conflictingPackages = []string{"jax", "jaxlib"}

// transportPackages are upgraded before any index fetch so that TLS
// certificate handling is current.
var transportPackages = []string{"requests", "certifi"}

// Provisioner builds the python environment phases.
type Provisioner struct{}

// NewProvisioner creates a python environment provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Phases returns the package phases in dependency order: conflict removal,
// pip bootstrap, transport upgrade, accelerator install, library install.
func (p *Provisioner) Phases() []provision.Phase {
	return []provision.Phase{
		&removeConflictsPhase{},
		&bootstrapPipPhase{},
		&upgradeTransportPhase{},
		&installAcceleratorPhase{},
		&installLibrariesPhase{},
	}
}

// pipCommand builds a pip invocation honoring the sudo setting.
func pipCommand(ctx *provision.Context, args ...string) runner.Command {
	return runner.Command{
		Argv: append([]string{ctx.Config.Pip}, args...),
		Sudo: ctx.Config.SudoEnabled(),
	}
}

// run logs and executes a command through the context runner.
func run(ctx *provision.Context, phase string, cmd runner.Command) error {
	provision.LogCommandRunning(ctx.Observer, phase, cmd.String())
	return ctx.Runner.Run(ctx, cmd)
}

type removeConflictsPhase struct{}

func (*removeConflictsPhase) Name() string { return "remove-conflicts" }

func (ph *removeConflictsPhase) Provision(ctx *provision.Context) error {
	args := append([]string{"uninstall", "-y"}, conflictingPackages...)
	if err := run(ctx, ph.Name(), pipCommand(ctx, args...)); err != nil {
		return fmt.Errorf("failed to remove conflicting packages: %w", err)
	}
	return nil
}

type bootstrapPipPhase struct{}

func (*bootstrapPipPhase) Name() string { return "bootstrap-pip" }

func (ph *bootstrapPipPhase) Provision(ctx *provision.Context) error {
	if err := run(ctx, ph.Name(), pipCommand(ctx, "install", "--upgrade", "pip")); err != nil {
		return fmt.Errorf("failed to upgrade pip: %w", err)
	}

	// Record the resulting pip version, best effort.
	out, err := ctx.Runner.Output(ctx, runner.Command{Argv: []string{ctx.Config.Pip, "--version"}})
	if err == nil {
		ctx.State.PipVersion = out
	}
	return nil
}

type upgradeTransportPhase struct{}

func (*upgradeTransportPhase) Name() string { return "upgrade-transport" }

func (ph *upgradeTransportPhase) Provision(ctx *provision.Context) error {
	args := append([]string{"install", "--upgrade"}, transportPackages...)
	if err := run(ctx, ph.Name(), pipCommand(ctx, args...)); err != nil {
		return fmt.Errorf("failed to upgrade transport libraries: %w", err)
	}
	return nil
}

type installAcceleratorPhase struct{}

func (*installAcceleratorPhase) Name() string { return "install-accelerator" }

func (ph *installAcceleratorPhase) Provision(ctx *provision.Context) error {
	req := ctx.Config.Accelerator.Requirement()
	cmd := pipCommand(ctx, "install", req, "-f", ctx.Config.Accelerator.IndexURL)
	if err := run(ctx, ph.Name(), cmd); err != nil {
		return fmt.Errorf("failed to install %s: %w", req, err)
	}
	ctx.State.InstalledPinned = req
	return nil
}

type installLibrariesPhase struct{}

func (*installLibrariesPhase) Name() string { return "install-libraries" }

func (ph *installLibrariesPhase) Provision(ctx *provision.Context) error {
	args := append([]string{"install"}, ctx.Config.Libraries...)
	if err := run(ctx, ph.Name(), pipCommand(ctx, args...)); err != nil {
		return fmt.Errorf("failed to install libraries: %w", err)
	}
	ctx.State.InstalledExtras = append([]string(nil), ctx.Config.Libraries...)
	return nil
}
