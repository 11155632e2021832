package resilience

import (
	"context"
	"time"
)

// RetryConfig configures the retry behavior.
//
// The delay between attempts is fixed; it never grows with the attempt
// number.
type RetryConfig struct {
	// MaxRetries is the number of retries after the initial attempt.
	// Zero is valid and means a single attempt.
	MaxRetries int

	// Delay is the fixed wait before each retry.
	Delay time.Duration

	// RetryIf determines if an error should trigger a retry.
	// Default: all non-nil errors trigger retry.
	RetryIf func(err error) bool

	// OnRetry is called before each retry attempt with the context the
	// failed attempt ran under.
	OnRetry func(ctx context.Context, attempt int, err error, delay time.Duration)
}

// DefaultRetryConfig returns three retries three seconds apart.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		Delay:      3 * time.Second,
	}
}

// NoRetryConfig returns a policy that makes exactly one attempt.
// Test harnesses use it so real failures are not hidden behind delays.
func NoRetryConfig() RetryConfig {
	return RetryConfig{}
}

// Retry implements bounded retry with a fixed delay.
type Retry struct {
	config RetryConfig
}

// NewRetry creates a new retry handler.
func NewRetry(config RetryConfig) *Retry {
	if config.MaxRetries < 0 {
		config.MaxRetries = 0
	}
	if config.Delay < 0 {
		config.Delay = 0
	}
	if config.RetryIf == nil {
		config.RetryIf = func(err error) bool { return err != nil }
	}

	return &Retry{config: config}
}

// Execute runs op until it succeeds, fails with a non-retryable error,
// or MaxRetries retries have been spent.
//
// Non-retryable errors are returned unchanged. If the last attempt still
// fails with a retryable error, the result is an *ExhaustedError that
// wraps it.
func (r *Retry) Execute(ctx context.Context, op func(context.Context) error) error {
	maxAttempts := r.config.MaxRetries + 1

	for attempt := 1; ; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}

		if !r.config.RetryIf(err) {
			return err
		}

		if attempt >= maxAttempts {
			return &ExhaustedError{Attempts: attempt, Err: err}
		}

		if r.config.OnRetry != nil {
			r.config.OnRetry(ctx, attempt, err, r.config.Delay)
		}

		if err := sleep(ctx, r.config.Delay); err != nil {
			return err
		}
	}
}

// Config returns the retry configuration.
func (r *Retry) Config() RetryConfig {
	return r.config
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
