package provision

import (
	"context"
	"time"

	"github.com/imamik/tpuprep/internal/config"
	"github.com/imamik/tpuprep/internal/runner"
)

// Recorder receives per-phase outcomes, e.g. for a metrics textfile.
type Recorder interface {
	RecordPhase(phase, result string, duration time.Duration)
}

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	Runner   runner.Runner
	Observer Observer
	Recorder Recorder
}

// NewContext creates a new provisioning context.
func NewContext(ctx context.Context, cfg *config.Config, run runner.Runner) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		State:    NewState(),
		Runner:   run,
		Observer: NewConsoleObserver(),
	}
}
