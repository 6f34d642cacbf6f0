package capacity

import "errors"

// Common errors returned by the capacity package
var (
	ErrInvalidSize = errors.New("invalid network size")
	ErrNilRand     = errors.New("random source must be provided")
)
