package pipeline

import "github.com/askiada/go-derive/pkg/pipeline/model"

type options struct {
	executor Executor
}

// Option configures a Pipeline.
type Option func(o *options)

// WithExecutor binds exec to the pipeline. A nil executor selects the default
// sequential executor.
func WithExecutor(exec Executor) Option {
	return func(o *options) {
		o.executor = exec
	}
}

// WithHooks binds a sequential executor notifying hooks. It replaces any executor
// set before.
func WithHooks(hooks ...model.Hook) Option {
	return func(o *options) {
		o.executor = NewSequential(hooks...)
	}
}
