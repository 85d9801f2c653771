package resilience

import (
	"errors"
	"testing"
	"time"
)

var errRedisDown = errors.New("dial tcp: connection refused")

func TestCircuitBreaker_OpensAndRecovers(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 2, OpenTimeout: 5 * time.Second, HalfOpenProbes: 1})

	now := time.Date(2026, 11, 17, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	failing := func() error { return errRedisDown }
	healthy := func() error { return nil }

	if err := b.Do(failing); !errors.Is(err, errRedisDown) {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	_ = b.Do(failing)
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	called := false
	if err := b.Do(func() error { called = true; return nil }); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
	if called {
		t.Fatalf("open breaker must not call through")
	}

	now = now.Add(6 * time.Second)
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open after timeout, got %s", state)
	}
	if err := b.Do(healthy); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful probe, got %s", state)
	}
}

func TestCircuitBreaker_FailedProbeReopens(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, OpenTimeout: time.Second})

	now := time.Date(2026, 11, 17, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	_ = b.Do(func() error { return errRedisDown })
	now = now.Add(2 * time.Second)

	if err := b.Do(func() error { return errRedisDown }); !errors.Is(err, errRedisDown) {
		t.Fatalf("expected probe to reach the dependency, got %v", err)
	}
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after failed probe, got %s", state)
	}
}

func TestNewCircuitBreaker_AppliesDefaults(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{})
	if b.cfg != DefaultCircuitBreakerConfig() {
		t.Fatalf("expected defaults, got %+v", b.cfg)
	}
}
