package provision

import (
	"fmt"
	"time"
)

// Pipeline is an ordered list of phases executed sequentially.
type Pipeline struct {
	Phases []Phase
}

// NewPipeline creates a pipeline from the given phases, in order.
func NewPipeline(phases ...Phase) *Pipeline {
	return &Pipeline{Phases: phases}
}

// Run executes all phases sequentially, stopping at the first failure.
// No phase starts before its predecessor has completed successfully, and
// a failed phase is never retried or rolled back.
func (p *Pipeline) Run(ctx *Context) error {
	start := time.Now()
	ctx.Observer.Printf("Starting provisioning with %d phases...", len(p.Phases))

	for i, phase := range p.Phases {
		phaseStart := time.Now()
		name := fmt.Sprintf("%s (%d/%d)", phase.Name(), i+1, len(p.Phases))

		LogPhaseStart(ctx.Observer, phase.Name())
		ctx.Observer.Printf("[%s] starting", name)

		if err := phase.Provision(ctx); err != nil {
			LogPhaseFailed(ctx.Observer, phase.Name(), err)
			if ctx.Recorder != nil {
				ctx.Recorder.RecordPhase(phase.Name(), "failed", time.Since(phaseStart))
			}
			return fmt.Errorf("%s phase failed: %w", phase.Name(), err)
		}

		LogPhaseComplete(ctx.Observer, phase.Name(), time.Since(phaseStart))
		if ctx.Recorder != nil {
			ctx.Recorder.RecordPhase(phase.Name(), "succeeded", time.Since(phaseStart))
		}
	}

	ctx.Observer.Printf("Provisioning completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}
