package pipeline

import (
	"context"
	"time"

	"github.com/askiada/go-derive/pkg/pipeline/model"
)

// Executor is the execution strategy bound to a pipeline. It applies
// stages[run.Start:run.Stop] in order to data.
//
// Implementations must return the error of a failing step unaltered and must not
// run any later step.
type Executor interface {
	Execute(ctx context.Context, run model.RunInfo, stages []Stage, data any) (any, error)
}

// Sequential runs steps one after the other in the calling goroutine.
type Sequential struct {
	hooks model.Hooks
}

// NewSequential creates a sequential executor notifying hooks.
func NewSequential(hooks ...model.Hook) *Sequential {
	return &Sequential{hooks: hooks}
}

// Execute implements Executor.
func (s *Sequential) Execute(ctx context.Context, run model.RunInfo, stages []Stage, data any) (any, error) {
	lo, hi := clip(len(stages), run.Start, run.Stop)
	run.Start, run.Stop, run.Total = lo, hi, len(stages)

	start := time.Now()
	s.hooks.OnStart(run)

	ans := data
	for idx := lo; idx < hi; idx++ {
		stage := stages[idx]
		info := model.StepInfo{
			Index:       idx,
			Variant:     stage.Variant(),
			Fingerprint: stage.Fingerprint(),
		}

		s.hooks.BeforeStep(run, info)
		startFn := time.Now()
		out, err := stage.Transform(ctx, ans)
		s.hooks.AfterStep(run, info, time.Since(startFn), err)

		if err != nil {
			s.hooks.OnFinish(run, time.Since(start), err)

			return nil, err
		}

		ans = out
	}

	s.hooks.OnFinish(run, time.Since(start), nil)

	return ans, nil
}

var _ Executor = (*Sequential)(nil)
