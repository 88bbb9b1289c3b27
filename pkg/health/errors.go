package health

import "errors"

// Sentinel errors for the health package.
var (
	// ErrCheckFailed is returned by Run when one or more checks fail.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrCheckTimeout marks a check that was still running when the deadline passed.
	ErrCheckTimeout = errors.New("health: check timeout")
)
