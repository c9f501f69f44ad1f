package engine

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrMissingProvider = errors.New("missing provider")
	ErrInvalidWeights  = errors.New("invalid scoring weights")
	ErrInvalidCascade  = errors.New("invalid tie-break cascade")
	ErrCancelled       = errors.New("recommendation cancelled")
)
