// Package runner abstracts external command execution so provisioning
// phases can be described once and executed by interchangeable backends:
// a real local executor, a recording dry-run executor, or an SSH executor.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Command is a pure description of one external command.
type Command struct {
	// Argv is the program and its arguments.
	Argv []string

	// Sudo prefixes the command with sudo for steps that mutate
	// system package state.
	Sudo bool
}

// String renders the command the way a shell user would type it.
func (c Command) String() string {
	argv := c.Argv
	if c.Sudo {
		argv = append([]string{"sudo"}, argv...)
	}
	quoted := make([]string, 0, len(argv))
	for _, arg := range argv {
		if strings.ContainsAny(arg, " \t\"'$&|;<>()[]") {
			quoted = append(quoted, fmt.Sprintf("%q", arg))
		} else {
			quoted = append(quoted, arg)
		}
	}
	return strings.Join(quoted, " ")
}

// Runner executes command descriptions.
type Runner interface {
	// Run executes the command, streaming its output to the user.
	Run(ctx context.Context, cmd Command) error

	// Output executes the command and captures its standard output.
	Output(ctx context.Context, cmd Command) (string, error)
}

// ExecRunner executes commands on the local host via os/exec.
type ExecRunner struct{}

// NewExecRunner creates a local command runner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) error {
	c := r.build(ctx, cmd)
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

// Output implements Runner.
func (r *ExecRunner) Output(ctx context.Context, cmd Command) (string, error) {
	out, err := r.build(ctx, cmd).Output()
	return strings.TrimSpace(string(out)), err
}

func (r *ExecRunner) build(ctx context.Context, cmd Command) *exec.Cmd {
	argv := cmd.Argv
	if cmd.Sudo {
		argv = append([]string{"sudo"}, argv...)
	}
	// #nosec G204 - argv comes from static phase definitions, not user input
	return exec.CommandContext(ctx, argv[0], argv[1:]...)
}

// DryRunner records commands without executing them, for plan mode.
type DryRunner struct {
	// Commands holds every command that would have been executed, in order.
	Commands []Command
}

// NewDryRunner creates a recording no-op runner.
func NewDryRunner() *DryRunner {
	return &DryRunner{}
}

// Run implements Runner. It records the command and reports success.
func (r *DryRunner) Run(_ context.Context, cmd Command) error {
	r.Commands = append(r.Commands, cmd)
	return nil
}

// Output implements Runner. Captured output is empty in dry-run mode.
func (r *DryRunner) Output(_ context.Context, cmd Command) (string, error) {
	r.Commands = append(r.Commands, cmd)
	return "", nil
}

// ExitCode extracts the process exit code from a Runner error.
// Returns 1 when the error carries no exit status, 0 for nil.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}
