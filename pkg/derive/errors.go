package derive

import "github.com/pkg/errors"

var (
	ErrNotNumeric        = errors.New("dimension is not numeric")
	ErrNotCategorical    = errors.New("dimension is not categorical")
	ErrEmptyInput        = errors.New("no value to derive from")
	ErrInvalidParameters = errors.New("invalid step parameters")
	ErrNotFinite         = errors.New("value is not finite")
)
