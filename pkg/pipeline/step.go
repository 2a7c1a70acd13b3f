package pipeline

import (
	"context"
	"reflect"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
)

// Step is an atomic transformation from I to O configured by parameters of type P.
//
// Transform must be a function of the parameters and the input only. Two steps are
// the same step when they share their concrete type and their parameters.
type Step[P comparable, I, O any] interface {
	// Parameters returns the immutable configuration of the step.
	Parameters() P
	// Transform derives the output from the input.
	Transform(ctx context.Context, input I) (O, error)
}

// StepBase holds the parameters of a step. Concrete steps embed it and provide
// their own Transform.
type StepBase[P comparable, I, O any] struct {
	Params P
}

// Parameters returns the step parameters.
func (b StepBase[P, I, O]) Parameters() P {
	return b.Params
}

// Transform always fails with ErrNotImplemented: the base has no transformation.
func (b StepBase[P, I, O]) Transform(context.Context, I) (O, error) {
	var zero O

	return zero, errors.Wrapf(ErrNotImplemented, "%s", variantOf(b))
}

// Stage is the type-erased form of a Step, as stored by pipelines.
type Stage struct {
	variant     string
	params      any
	fingerprint string
	in, out     reflect.Type
	fn          func(ctx context.Context, input any) (any, error)
}

// Erase wraps step into a Stage. A nil step gives the zero Stage.
func Erase[P comparable, I, O any](step Step[P, I, O]) Stage {
	if step == nil {
		return Stage{}
	}

	inType := typeOf[I]()
	variant := variantOf(step)
	params := step.Parameters()

	return Stage{
		variant:     variant,
		params:      params,
		fingerprint: fingerprint(variant, typeOf[P](), params),
		in:          inType,
		out:         typeOf[O](),
		fn: func(ctx context.Context, input any) (any, error) {
			in, ok := input.(I)
			if !ok {
				if input != nil || !nillable(inType) {
					return nil, errors.Wrapf(ErrInputType, "%s expects %s, got %T", variantOf(step), inType, input)
				}
			}

			return step.Transform(ctx, in)
		},
	}
}

// Variant returns the package qualified name of the concrete step type.
func (s Stage) Variant() string {
	return s.variant
}

// Parameters returns the parameters of the underlying step.
func (s Stage) Parameters() any {
	return s.params
}

// InputType returns the type consumed by the stage.
func (s Stage) InputType() reflect.Type {
	return s.in
}

// OutputType returns the type produced by the stage.
func (s Stage) OutputType() reflect.Type {
	return s.out
}

// Transform applies the underlying step to input. The error of the step, if any,
// is returned as is.
func (s Stage) Transform(ctx context.Context, input any) (any, error) {
	if s.IsZero() {
		return nil, ErrStepMustBeSet
	}

	return s.fn(ctx, input)
}

// IsZero reports whether the stage wraps no step.
func (s Stage) IsZero() bool {
	return s.fn == nil
}

// Equal reports whether both stages wrap the same variant with equal parameters.
// Parameters are compared by value: floats by numeric value with NaN equal to
// itself, interfaces by dynamic type and value, pointers by address. Equal stages
// have the same fingerprint and hash, unequal stages different fingerprints.
func (s Stage) Equal(other Stage) bool {
	return s.fingerprint == other.fingerprint
}

// Fingerprint returns a canonical description of the stage, stable across processes
// as long as the parameters hold no pointers.
func (s Stage) Fingerprint() string {
	return s.fingerprint
}

// Hash returns the xxhash of the fingerprint.
func (s Stage) Hash() uint64 {
	return xxhash.Sum64String(s.Fingerprint())
}

// String implements fmt.Stringer.
func (s Stage) String() string {
	return s.Fingerprint()
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}

func variantOf(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return "<nil>"
	}

	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.PkgPath() == "" || t.Name() == "" {
		return t.String()
	}

	return t.PkgPath() + "." + t.Name()
}
