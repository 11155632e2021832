package resilience

import (
	"errors"
	"fmt"
)

// Sentinel errors for resilience operations.
var (
	// ErrCircuitOpen is returned when the circuit breaker is open.
	ErrCircuitOpen = errors.New("resilience: circuit breaker is open")

	// ErrMaxRetriesExceeded is matched by every *ExhaustedError.
	ErrMaxRetriesExceeded = errors.New("resilience: max retries exceeded")
)

// ExhaustedError reports that every allowed attempt failed with a
// retryable error. Err is the failure of the last attempt.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("resilience: gave up after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrMaxRetriesExceeded.
func (e *ExhaustedError) Is(target error) bool {
	return target == ErrMaxRetriesExceeded
}
