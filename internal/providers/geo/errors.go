package geo

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrMissingLocation = errors.New("missing location data")
)
