package pipeline

import (
	"context"

	"github.com/pkg/errors"

	"github.com/askiada/go-derive/pkg/pipeline/model"
)

// Pipeline is a definition bound to an executor. It is immutable and can be shared
// by concurrent executions, as long as its steps hold no mutable state.
type Pipeline[In, Out any] struct {
	def  JustPipeline[In, Out]
	exec Executor
}

// New binds def to an executor, sequential by default.
func New[In, Out any](def JustPipeline[In, Out], opts ...Option) Pipeline[In, Out] {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.executor == nil {
		o.executor = NewSequential()
	}

	return Pipeline[In, Out]{def: def, exec: o.executor}
}

// Execute runs every step on data and returns the output of the last one.
// The first step error stops the execution and is returned as is.
func (p Pipeline[In, Out]) Execute(ctx context.Context, data In) (Out, error) {
	var zero Out

	res, err := p.run(ctx, data, 0, p.def.Len())
	if err != nil {
		return zero, err
	}

	if res == nil {
		return zero, nil
	}

	out, ok := res.(Out)
	if !ok {
		return zero, errors.Wrapf(ErrInputType, "pipeline output is %T", res)
	}

	return out, nil
}

// ExecuteRange runs steps [start, stop) on data. Bounds follow slice expression
// rules: negative values count from the end, out of range values are clipped, and
// an empty range returns data untouched.
func (p Pipeline[In, Out]) ExecuteRange(ctx context.Context, data any, start, stop int) (any, error) {
	return p.run(ctx, data, start, stop)
}

func (p Pipeline[In, Out]) run(ctx context.Context, data any, start, stop int) (any, error) {
	total := p.def.Len()

	lo, hi := clip(total, start, stop)
	if lo == hi {
		return data, nil
	}

	if p.exec == nil {
		return nil, ErrExecutorMustBeSet
	}

	return p.exec.Execute(ctx, model.NewRun(lo, hi, total), p.def.Stages(), data)
}

// Definition returns the steps of the pipeline, without its executor.
func (p Pipeline[In, Out]) Definition() JustPipeline[In, Out] {
	return p.def
}

// Len returns the number of steps.
func (p Pipeline[In, Out]) Len() int {
	return p.def.Len()
}

// Equal reports whether both pipelines have equal definitions. Executors are not
// compared.
func (p Pipeline[In, Out]) Equal(other Pipeline[In, Out]) bool {
	return p.def.Equal(other.def)
}

// Fingerprint returns the fingerprint of the definition.
func (p Pipeline[In, Out]) Fingerprint() string {
	return p.def.Fingerprint()
}

// Hash returns the hash of the definition.
func (p Pipeline[In, Out]) Hash() uint64 {
	return p.def.Hash()
}
