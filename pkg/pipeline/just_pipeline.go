package pipeline

import (
	"reflect"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
)

// JustPipeline is an ordered sequence of steps turning an In into an Out, without
// any way to run it. It is a value: it is never modified once built and two
// definitions made of equal steps are equal.
type JustPipeline[In, Out any] struct {
	stages []Stage
}

// Just returns the empty definition over T. Steps are added with Then.
func Just[T any]() JustPipeline[T, T] {
	return JustPipeline[T, T]{}
}

// Then returns a new definition made of def followed by step. The compiler rejects
// a step whose input does not match the output of def.
func Then[In, Mid, Out any, P comparable](def JustPipeline[In, Mid], step Step[P, Mid, Out]) JustPipeline[In, Out] {
	stages := make([]Stage, len(def.stages), len(def.stages)+1)
	copy(stages, def.stages)

	return JustPipeline[In, Out]{stages: append(stages, Erase(step))}
}

// FromStages builds a definition from stages whose types are only known at runtime.
// Adjacent stages are checked once here: an output that can never feed the next
// input is rejected with ErrIncompatibleSteps. Outputs typed as interfaces are
// checked on execution instead.
func FromStages(stages ...Stage) (JustPipeline[any, any], error) {
	for i, stage := range stages {
		if stage.IsZero() {
			return JustPipeline[any, any]{}, errors.Wrapf(ErrStepMustBeSet, "step %d", i)
		}

		if i == 0 {
			continue
		}

		prev := stages[i-1]
		if !compatible(prev.OutputType(), stage.InputType()) {
			return JustPipeline[any, any]{}, errors.Wrapf(ErrIncompatibleSteps,
				"step %d (%s) outputs %s, step %d (%s) expects %s",
				i-1, prev.Variant(), prev.OutputType(), i, stage.Variant(), stage.InputType())
		}
	}

	return JustPipeline[any, any]{stages: append([]Stage(nil), stages...)}, nil
}

func compatible(out, in reflect.Type) bool {
	if out.AssignableTo(in) {
		return true
	}

	if out.Kind() != reflect.Interface {
		return false
	}

	// the dynamic value behind an interface may still satisfy in
	return in.Kind() == reflect.Interface || in.Implements(out)
}

// Len returns the number of steps.
func (j JustPipeline[In, Out]) Len() int {
	return len(j.stages)
}

// Stages returns a copy of the steps.
func (j JustPipeline[In, Out]) Stages() []Stage {
	return append([]Stage(nil), j.stages...)
}

// Slice returns the definition made of steps [start, stop). Bounds follow slice
// expression rules: negative values count from the end and out of range values
// are clipped.
func (j JustPipeline[In, Out]) Slice(start, stop int) JustPipeline[any, any] {
	lo, hi := clip(len(j.stages), start, stop)

	return JustPipeline[any, any]{stages: append([]Stage(nil), j.stages[lo:hi]...)}
}

// Untyped forgets the input and output types of the definition.
func (j JustPipeline[In, Out]) Untyped() JustPipeline[any, any] {
	return JustPipeline[any, any]{stages: j.stages}
}

// Equal reports whether both definitions hold pairwise equal steps.
func (j JustPipeline[In, Out]) Equal(other JustPipeline[In, Out]) bool {
	return equalStages(j.stages, other.stages)
}

// Fingerprint returns a canonical description of the definition. It can be used as
// a map key for definitions of different types.
func (j JustPipeline[In, Out]) Fingerprint() string {
	parts := make([]string, len(j.stages))
	for i, stage := range j.stages {
		parts[i] = stage.Fingerprint()
	}

	return strings.Join(parts, " | ")
}

// Hash returns the xxhash of the fingerprint.
func (j JustPipeline[In, Out]) Hash() uint64 {
	return xxhash.Sum64String(j.Fingerprint())
}

// Bind returns a pipeline running the definition with exec.
func (j JustPipeline[In, Out]) Bind(exec Executor) Pipeline[In, Out] {
	return New(j, WithExecutor(exec))
}

func equalStages(a, b []Stage) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}

	return true
}

// clip resolves [start, stop) against a sequence of length n.
func clip(n, start, stop int) (int, int) {
	lo, hi := index(n, start), index(n, stop)
	if hi < lo {
		hi = lo
	}

	return lo, hi
}

func index(n, i int) int {
	if i < 0 {
		i += n
		if i < 0 {
			return 0
		}
	}

	if i > n {
		return n
	}

	return i
}
