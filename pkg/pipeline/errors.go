package pipeline

import (
	"github.com/pkg/errors"
)

var (
	// ErrNotImplemented is returned when the abstract step base is invoked directly.
	ErrNotImplemented = errors.New("step transform is not implemented")
	// ErrIncompatibleSteps is returned when adjacent steps cannot be chained.
	ErrIncompatibleSteps = errors.New("incompatible adjacent steps")
	// ErrInputType is returned when a stage receives a value it cannot consume.
	ErrInputType         = errors.New("unexpected step input type")
	ErrStepMustBeSet     = errors.New("step must be set")
	ErrExecutorMustBeSet = errors.New("executor must be set")
)
