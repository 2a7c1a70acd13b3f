package analytics

import "github.com/pkg/errors"

var (
	ErrUnknownDimension   = errors.New("unknown dimension")
	ErrDuplicateDimension = errors.New("duplicate dimension")
	ErrInvalidDimension   = errors.New("invalid dimension")
	ErrUnknownDataset     = errors.New("unknown dataset")
	ErrDuplicateEvent     = errors.New("duplicate event")
	ErrInvalidValue       = errors.New("invalid value")
	ErrInvalidFilter      = errors.New("invalid filter")
)
