package domain

import "errors"

var (
	// ErrInvalidQuery signals malformed or out-of-range request parameters.
	// Caller error; never retried automatically.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrStoreUnavailable signals that the shop store could not be reached
	// or the fetch timed out. Transient; retry policy belongs to the caller.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrDeadlineExceeded signals that the overall search blew its latency
	// budget. Distinct from ErrStoreUnavailable so dashboards can tell
	// "slow" from "broken".
	ErrDeadlineExceeded = errors.New("deadline exceeded")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
)
