package provision

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockPhase implements the Phase interface for testing.
type mockPhase struct {
	name string
	err  error
}

func (m *mockPhase) Name() string               { return m.name }
func (m *mockPhase) Provision(_ *Context) error { return m.err }

// recordingRecorder captures phase outcomes for assertions.
type recordingRecorder struct {
	records []string
}

func (r *recordingRecorder) RecordPhase(phase, result string, _ time.Duration) {
	r.records = append(r.records, phase+":"+result)
}

func testContext() *Context {
	return &Context{
		Context:  context.Background(),
		State:    NewState(),
		Observer: NewMockObserver(),
	}
}

func TestNewPipeline(t *testing.T) {
	t.Parallel()
	p1 := &mockPhase{name: "phase-1"}
	p2 := &mockPhase{name: "phase-2"}

	pipeline := NewPipeline(p1, p2)

	require.NotNil(t, pipeline)
	assert.Len(t, pipeline.Phases, 2)
	assert.Equal(t, "phase-1", pipeline.Phases[0].Name())
	assert.Equal(t, "phase-2", pipeline.Phases[1].Name())
}

func TestNewPipeline_Empty(t *testing.T) {
	t.Parallel()
	pipeline := NewPipeline()

	require.NotNil(t, pipeline)
	assert.Empty(t, pipeline.Phases)
}

func TestPipeline_Run_Success(t *testing.T) {
	t.Parallel()
	executed := make([]string, 0)

	pipeline := NewPipeline(
		phaseFunc("bootstrap-pip", func(_ *Context) error { executed = append(executed, "bootstrap-pip"); return nil }),
		phaseFunc("install-accelerator", func(_ *Context) error { executed = append(executed, "install-accelerator"); return nil }),
		phaseFunc("fetch-datasets", func(_ *Context) error { executed = append(executed, "fetch-datasets"); return nil }),
	)

	err := pipeline.Run(testContext())

	require.NoError(t, err)
	assert.Equal(t, []string{"bootstrap-pip", "install-accelerator", "fetch-datasets"}, executed)
}

func TestPipeline_Run_StopsOnError(t *testing.T) {
	t.Parallel()
	executed := make([]string, 0)

	pipeline := NewPipeline(
		phaseFunc("bootstrap-pip", func(_ *Context) error { executed = append(executed, "bootstrap-pip"); return nil }),
		phaseFunc("install-accelerator", func(_ *Context) error { return fmt.Errorf("no matching distribution") }),
		phaseFunc("fetch-datasets", func(_ *Context) error { executed = append(executed, "fetch-datasets"); return nil }),
	)

	err := pipeline.Run(testContext())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "install-accelerator phase failed")
	assert.Contains(t, err.Error(), "no matching distribution")
	// fetch-datasets should NOT have executed
	assert.Equal(t, []string{"bootstrap-pip"}, executed)
}

func TestPipeline_Run_EmptyPipeline(t *testing.T) {
	t.Parallel()
	pipeline := NewPipeline()
	err := pipeline.Run(testContext())

	require.NoError(t, err)
}

func TestPipeline_Run_LogsPhaseEvents(t *testing.T) {
	t.Parallel()
	observer := NewMockObserver()
	ctx := testContext()
	ctx.Observer = observer

	pipeline := NewPipeline(
		phaseFunc("test", func(_ *Context) error { return nil }),
	)

	err := pipeline.Run(ctx)

	require.NoError(t, err)

	// Should have phase start and phase complete events
	var hasStart, hasComplete bool
	for _, event := range observer.events {
		if event.Type == EventPhaseStarted {
			hasStart = true
		}
		if event.Type == EventPhaseCompleted {
			hasComplete = true
		}
	}
	assert.True(t, hasStart, "should log phase start event")
	assert.True(t, hasComplete, "should log phase complete event")
}

func TestPipeline_Run_LogsFailure(t *testing.T) {
	t.Parallel()
	observer := NewMockObserver()
	ctx := testContext()
	ctx.Observer = observer

	pipeline := NewPipeline(
		phaseFunc("failing", func(_ *Context) error { return fmt.Errorf("boom") }),
	)

	_ = pipeline.Run(ctx)

	var hasFailed bool
	for _, event := range observer.events {
		if event.Type == EventPhaseFailed {
			hasFailed = true
		}
	}
	assert.True(t, hasFailed, "should log phase failed event")
}

func TestPipeline_Run_RecordsOutcomes(t *testing.T) {
	t.Parallel()
	recorder := &recordingRecorder{}
	ctx := testContext()
	ctx.Recorder = recorder

	pipeline := NewPipeline(
		phaseFunc("ok", func(_ *Context) error { return nil }),
		phaseFunc("bad", func(_ *Context) error { return fmt.Errorf("boom") }),
	)

	err := pipeline.Run(ctx)

	require.Error(t, err)
	assert.Equal(t, []string{"ok:succeeded", "bad:failed"}, recorder.records)
}

func TestPipeline_Run_NoRetryAfterFailure(t *testing.T) {
	t.Parallel()
	calls := 0

	pipeline := NewPipeline(
		phaseFunc("flaky", func(_ *Context) error { calls++; return fmt.Errorf("transient") }),
	)

	err := pipeline.Run(testContext())

	require.Error(t, err)
	assert.Equal(t, 1, calls, "a failed phase must not be retried")
}
