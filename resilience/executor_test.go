package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewExecutor(t *testing.T) {
	e := NewExecutor()

	if e.circuitBreaker != nil {
		t.Error("Default executor should not have circuit breaker")
	}
	if e.retry != nil {
		t.Error("Default executor should not have retry")
	}
}

func TestExecutor_WithOptions(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{})
	retry := NewRetry(RetryConfig{})

	e := NewExecutor(WithCircuitBreaker(cb), WithRetry(retry))

	if e.CircuitBreaker() != cb {
		t.Error("CircuitBreaker not set")
	}
	if e.retry != retry {
		t.Error("Retry not set")
	}
}

func TestExecutor_ExecuteNoPatterns(t *testing.T) {
	e := NewExecutor()

	attempts := 0
	err := e.Execute(context.Background(), func(ctx context.Context) error {
		attempts++
		return errTransient
	})

	if err != errTransient {
		t.Errorf("Execute() error = %v, want %v", err, errTransient)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

func TestExecutor_RetryBound(t *testing.T) {
	e := NewExecutor(WithRetry(NewRetry(RetryConfig{
		MaxRetries: 3,
		Delay:      time.Millisecond,
		RetryIf:    onlyTransient,
	})))

	attempts := 0
	err := e.Execute(context.Background(), func(ctx context.Context) error {
		attempts++
		return errTransient
	})

	if attempts != 4 {
		t.Errorf("attempts = %d, want 4", attempts)
	}
	if !errors.Is(err, ErrMaxRetriesExceeded) {
		t.Errorf("Execute() error = %v, want ErrMaxRetriesExceeded", err)
	}
}

func TestExecutor_OpenCircuitStopsRetries(t *testing.T) {
	cb, _ := newTestBreaker(CircuitBreakerConfig{MaxFailures: 2, ResetTimeout: time.Hour})
	e := NewExecutor(
		WithCircuitBreaker(cb),
		WithRetry(NewRetry(RetryConfig{MaxRetries: 5, RetryIf: onlyTransient})),
	)

	attempts := 0
	err := e.Execute(context.Background(), func(ctx context.Context) error {
		attempts++
		return errTransient
	})

	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("Execute() error = %v, want ErrCircuitOpen", err)
	}
}
