package resilience

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// RetryPolicy bounds attempts with jittered exponential backoff.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

// RetryableError marks an attempt as worth repeating. After overrides the
// computed backoff when the remote side told us how long to wait.
type RetryableError struct {
	Err   error
	After time.Duration
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

func Retryable(err error, after time.Duration) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err, After: after}
}

// waitHint carries the attempt error together with the server supplied
// delay so backoff sees the RetryAfterError and callers still see err.
type waitHint struct {
	err  error
	wait *backoff.RetryAfterError
}

func (h *waitHint) Error() string   { return h.err.Error() }
func (h *waitHint) Unwrap() []error { return []error{h.err, h.wait} }

func (p RetryPolicy) backOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.BaseDelay
	b.MaxInterval = p.MaxDelay
	b.Multiplier = 2
	return b
}

func (p RetryPolicy) withDefaults() RetryPolicy {
	if p.BaseDelay <= 0 {
		p.BaseDelay = 500 * time.Millisecond
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = 10 * time.Second
	}
	p.MaxRetries = max(p.MaxRetries, 0)
	return p
}

// Retry calls fn until it succeeds, returns a non-retryable error, the
// retries are exhausted or ctx is done. The returned error is the one fn
// gave back, without the retry marker.
func Retry(ctx context.Context, policy RetryPolicy, fn func(attempt int) error) error {
	policy = policy.withDefaults()

	attempt := 0
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		err := fn(attempt)
		attempt++
		if err == nil {
			return struct{}{}, nil
		}

		var retryable *RetryableError
		if !errors.As(err, &retryable) {
			return struct{}{}, backoff.Permanent(err)
		}
		if retryable.After > 0 {
			wait := &backoff.RetryAfterError{Duration: min(retryable.After, policy.MaxDelay)}
			return struct{}{}, &waitHint{err: retryable.Err, wait: wait}
		}
		return struct{}{}, retryable.Err
	},
		backoff.WithBackOff(policy.backOff()),
		backoff.WithMaxTries(uint(policy.MaxRetries)+1),
		backoff.WithMaxElapsedTime(0),
	)

	var hint *waitHint
	if errors.As(err, &hint) {
		return hint.err
	}
	return err
}
