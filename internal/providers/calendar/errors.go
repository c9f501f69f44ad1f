package calendar

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrUnknownFestival = errors.New("unknown festival")
	ErrLookupCancelled = errors.New("calendar lookup cancelled")
)
