package connector

import (
	"errors"
	"fmt"
)

// Configuration errors.
var (
	// ErrMissingEndpoint indicates Config.Endpoint is empty.
	ErrMissingEndpoint = errors.New("connector: endpoint is required")

	// ErrNegativeDuration indicates a timeout or delay below zero.
	ErrNegativeDuration = errors.New("connector: duration must not be negative")

	// ErrInvalidValue indicates a config value that cannot be parsed.
	ErrInvalidValue = errors.New("connector: invalid config value")

	// ErrNegativeRetries indicates Config.Retry.MaxRetries below zero.
	ErrNegativeRetries = errors.New("connector: max retries must not be negative")
)

// Error is the single failure type returned by Connector operations.
// Err is the underlying cause: an *resilience.ExhaustedError, an
// *account.Failure, resilience.ErrCircuitOpen or a context error.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("connector: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
