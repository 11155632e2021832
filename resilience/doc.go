// Package resilience provides the retry and circuit breaker patterns the
// connector wraps around every remote call.
//
// # Retry
//
// Retry makes one attempt plus up to MaxRetries retries, waiting a fixed
// Delay between them. Only errors accepted by RetryIf are retried; any
// other error is returned at once. When the retries run out, the last
// failure is returned wrapped in an *ExhaustedError, which matches
// ErrMaxRetriesExceeded:
//
//	retry := resilience.NewRetry(resilience.RetryConfig{
//	    MaxRetries: 3,
//	    Delay:      3 * time.Second,
//	    RetryIf:    account.IsTransient,
//	})
//
//	err := retry.Execute(ctx, func(ctx context.Context) error {
//	    return callRegistry(ctx)
//	})
//	if errors.Is(err, resilience.ErrMaxRetriesExceeded) {
//	    // every attempt failed transiently
//	}
//
// NoRetryConfig makes a single attempt and is meant for tests.
//
// # Circuit breaker
//
// CircuitBreaker opens after MaxFailures consecutive failures, rejects
// calls with ErrCircuitOpen for ResetTimeout, then lets probes through.
//
// # Composition
//
//	executor := resilience.NewExecutor(
//	    resilience.WithRetry(retry),
//	    resilience.WithCircuitBreaker(cb),
//	)
package resilience
