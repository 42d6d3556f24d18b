package ssh

import (
	"context"
	"fmt"
	"os"

	"github.com/imamik/tpuprep/internal/runner"
)

// Runner adapts a Communicator to the runner.Runner interface so the
// same phase definitions provision remote hosts.
type Runner struct {
	comm Communicator
}

// NewRunner creates a runner executing commands over the given communicator.
func NewRunner(comm Communicator) *Runner {
	return &Runner{comm: comm}
}

// Run implements runner.Runner. Remote output is streamed to stdout once
// the command completes.
func (r *Runner) Run(ctx context.Context, cmd runner.Command) error {
	out, err := r.comm.Execute(ctx, cmd.String())
	if out != "" {
		fmt.Fprint(os.Stdout, out)
	}
	if err != nil {
		return fmt.Errorf("remote command failed: %w", err)
	}
	return nil
}

// Output implements runner.Runner.
func (r *Runner) Output(ctx context.Context, cmd runner.Command) (string, error) {
	return r.comm.Execute(ctx, cmd.String())
}
