package fuel

import "errors"

var (
	// ErrNegativeMass is returned by Breakdown when a manifest contains a negative mass.
	ErrNegativeMass = errors.New("module masses must be non-negative integers")
)
