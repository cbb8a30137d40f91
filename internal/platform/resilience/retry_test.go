package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetry_StopsOnSuccess(t *testing.T) {
	t.Parallel()

	calls := 0
	err := Retry(context.Background(), RetryPolicy{MaxRetries: 3, BaseDelay: time.Millisecond}, func(int) error {
		calls++
		if calls < 2 {
			return Retryable(errors.New("status 503"), 0)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}

func TestRetry_DoesNotRepeatPermanentErrors(t *testing.T) {
	t.Parallel()

	permanent := errors.New("status 404")
	calls := 0
	err := Retry(context.Background(), RetryPolicy{MaxRetries: 3, BaseDelay: time.Millisecond}, func(int) error {
		calls++
		return permanent
	})
	if !errors.Is(err, permanent) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestRetry_ExhaustsAndUnwraps(t *testing.T) {
	t.Parallel()

	transient := errors.New("status 429")
	calls := 0
	err := Retry(context.Background(), RetryPolicy{MaxRetries: 2, BaseDelay: time.Millisecond}, func(int) error {
		calls++
		return Retryable(transient, time.Millisecond)
	})
	if err != transient {
		t.Fatalf("expected unwrapped transient error, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestRetry_HonorsContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Retry(ctx, RetryPolicy{MaxRetries: 5, BaseDelay: time.Second}, func(int) error {
		return Retryable(errors.New("status 500"), 0)
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}

func TestRetry_RetryAfterOverridesBackoff(t *testing.T) {
	t.Parallel()

	calls := 0
	started := time.Now()
	err := Retry(context.Background(), RetryPolicy{MaxRetries: 1, BaseDelay: 5 * time.Second, MaxDelay: 10 * time.Second}, func(int) error {
		calls++
		if calls == 1 {
			return Retryable(errors.New("status 429"), 20*time.Millisecond)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if elapsed := time.Since(started); elapsed > 2*time.Second {
		t.Fatalf("expected the Retry-After delay, waited %s", elapsed)
	}
}

func TestRetryPolicy_Defaults(t *testing.T) {
	t.Parallel()

	p := RetryPolicy{MaxRetries: -1}.withDefaults()
	if p.MaxRetries != 0 || p.BaseDelay != 500*time.Millisecond || p.MaxDelay != 10*time.Second {
		t.Fatalf("unexpected defaults: %+v", p)
	}

	b := RetryPolicy{BaseDelay: 100 * time.Millisecond, MaxDelay: time.Second}.backOff()
	if b.InitialInterval != 100*time.Millisecond || b.MaxInterval != time.Second || b.Multiplier != 2 {
		t.Fatalf("unexpected backoff: %+v", b)
	}
}
