package resilience

import (
	"errors"
	"testing"
	"time"
)

func testBreaker(threshold, probes int, openFor time.Duration, seen *[]CircuitState) (*CircuitBreaker, *time.Time) {
	b := NewCircuitBreaker("wiki", CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: threshold,
		OpenTimeout:      openFor,
		HalfOpenMaxReq:   probes,
	}, func(_ string, _, to CircuitState) {
		if seen != nil {
			*seen = append(*seen, to)
		}
	})
	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }
	return b, &now
}

func TestCircuitBreaker_OpensProbesAndCloses(t *testing.T) {
	t.Parallel()

	var seen []CircuitState
	b, now := testBreaker(2, 1, 5*time.Second, &seen)

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}
	b.Record(true)
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}
	b.Record(true)
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	*now = now.Add(6 * time.Second)
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected expired breaker to report half-open, got %s", state)
	}
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected second concurrent probe to be rejected, got %v", err)
	}
	b.Record(false)
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful probe, got %s", state)
	}

	want := []CircuitState{CircuitStateOpen, CircuitStateHalfOpen, CircuitStateClosed}
	if len(seen) != len(want) {
		t.Fatalf("unexpected transitions: %v", seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("unexpected transitions: %v", seen)
		}
	}
}

func TestCircuitBreaker_FailedProbeReopens(t *testing.T) {
	t.Parallel()

	b, now := testBreaker(1, 1, time.Minute, nil)
	boom := errors.New("connection reset")

	if err := b.Do(func() error { return boom }, nil); !errors.Is(err, boom) {
		t.Fatalf("expected call error, got %v", err)
	}
	if err := b.Do(func() error { return nil }, nil); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected open circuit, got %v", err)
	}

	*now = now.Add(2 * time.Minute)
	_ = b.Do(func() error { return boom }, nil)
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected reopened breaker, got %s", state)
	}
}

func TestCircuitBreaker_IgnoredErrorsDoNotTrip(t *testing.T) {
	t.Parallel()

	b, _ := testBreaker(1, 1, time.Minute, nil)
	notFound := errors.New("status 404")

	_ = b.Do(func() error { return notFound }, func(error) bool { return false })
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed breaker, got %s", state)
	}
}

func TestCircuitBreaker_Defaults(t *testing.T) {
	t.Parallel()

	b := NewCircuitBreaker("geocode", CircuitBreakerConfig{Enabled: true}, nil)
	if b.cfg != DefaultCircuitBreakerConfig() {
		t.Fatalf("expected default knobs, got %+v", b.cfg)
	}
}

func TestCircuitBreaker_DisabledIsNilAndPermissive(t *testing.T) {
	t.Parallel()

	b := NewCircuitBreaker("off", CircuitBreakerConfig{Enabled: false}, nil)
	if b != nil {
		t.Fatalf("expected nil breaker when disabled")
	}
	if err := b.Do(func() error { return nil }, nil); err != nil {
		t.Fatalf("nil breaker should admit calls, got %v", err)
	}
	if b.State() != CircuitStateClosed {
		t.Fatalf("nil breaker should report closed")
	}
}
