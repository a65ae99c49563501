package domain

import "fmt"

// InvalidSpecError signals that a caller supplied out-of-bounds query
// parameters. It is surfaced immediately and never retried.
type InvalidSpecError struct {
	Reason string
}

func (e *InvalidSpecError) Error() string {
	return "invalid query spec: " + e.Reason
}

// StoreUnavailableError wraps a backend connectivity or query failure.
// Retry policy, if any, belongs to the caller.
type StoreUnavailableError struct {
	Backend string
	Err     error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("store %s unavailable: %v", e.Backend, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}
