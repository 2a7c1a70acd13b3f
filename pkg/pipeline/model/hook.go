package model

import "time"

// Hook observes pipeline executions. Hooks are called from the goroutine running
// the pipeline; implementations shared between pipelines must be safe for
// concurrent use. A hook cannot alter nor fail an execution.
type Hook interface {
	// OnStart runs before the first executed step.
	OnStart(run RunInfo)
	// BeforeStep runs before the transform of a step.
	BeforeStep(run RunInfo, step StepInfo)
	// AfterStep runs after the transform of a step, err being the step error.
	AfterStep(run RunInfo, step StepInfo, elapsed time.Duration, err error)
	// OnFinish runs once the execution is over, err being the returned error.
	OnFinish(run RunInfo, elapsed time.Duration, err error)
}

// NopHook implements Hook with no-ops. Embed it to observe only some events.
type NopHook struct{}

func (NopHook) OnStart(RunInfo)                                   {}
func (NopHook) BeforeStep(RunInfo, StepInfo)                      {}
func (NopHook) AfterStep(RunInfo, StepInfo, time.Duration, error) {}
func (NopHook) OnFinish(RunInfo, time.Duration, error)            {}

// Hooks fans events out to a list of hooks, in order.
type Hooks []Hook

func (hs Hooks) OnStart(run RunInfo) {
	for _, h := range hs {
		h.OnStart(run)
	}
}

func (hs Hooks) BeforeStep(run RunInfo, step StepInfo) {
	for _, h := range hs {
		h.BeforeStep(run, step)
	}
}

func (hs Hooks) AfterStep(run RunInfo, step StepInfo, elapsed time.Duration, err error) {
	for _, h := range hs {
		h.AfterStep(run, step, elapsed, err)
	}
}

func (hs Hooks) OnFinish(run RunInfo, elapsed time.Duration, err error) {
	for _, h := range hs {
		h.OnFinish(run, elapsed, err)
	}
}

var (
	_ Hook = NopHook{}
	_ Hook = Hooks(nil)
)
