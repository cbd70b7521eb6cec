package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConflict signals an operation rejected because of current state,
	// e.g. merging an already-tombstoned project or reversing a merge twice.
	ErrConflict = errors.New("conflict")
	// ErrOracleUnavailable signals a failed or timed-out confirmation call.
	// Callers recover from it locally; it must never reach the HTTP layer.
	ErrOracleUnavailable = errors.New("confirmation oracle unavailable")
)
