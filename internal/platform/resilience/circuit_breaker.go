package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

type CircuitBreakerConfig struct {
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenProbes   int
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		FailureThreshold: 5,
		OpenTimeout:      15 * time.Second,
		HalfOpenProbes:   1,
	}
}

// CircuitBreaker stops calls to a failing dependency for OpenTimeout after
// FailureThreshold consecutive failures, then lets HalfOpenProbes calls
// through to decide whether to close again.
type CircuitBreaker struct {
	mu  sync.Mutex
	cfg CircuitBreakerConfig

	state     CircuitState
	failures  int
	openedAt  time.Time
	inFlight  int
	successes int
	now       func() time.Time
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	defaults := DefaultCircuitBreakerConfig()
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = defaults.FailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaults.OpenTimeout
	}
	if cfg.HalfOpenProbes < 1 {
		cfg.HalfOpenProbes = defaults.HalfOpenProbes
	}

	return &CircuitBreaker{
		cfg:   cfg,
		state: CircuitStateClosed,
		now:   time.Now,
	}
}

// Do runs fn when the breaker admits the call and records its outcome.
func (b *CircuitBreaker) Do(fn func() error) error {
	if err := b.allow(); err != nil {
		return err
	}

	err := fn()
	if err != nil {
		b.recordFailure()
		return err
	}
	b.recordSuccess()
	return nil
}

func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout {
		return CircuitStateHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen {
		if b.now().Sub(b.openedAt) < b.cfg.OpenTimeout {
			return ErrCircuitOpen
		}
		b.state = CircuitStateHalfOpen
		b.inFlight = 0
		b.successes = 0
	}

	if b.state == CircuitStateHalfOpen {
		if b.inFlight >= b.cfg.HalfOpenProbes {
			return ErrCircuitOpen
		}
		b.inFlight++
	}

	return nil
}

func (b *CircuitBreaker) recordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateClosed:
		b.failures = 0
	case CircuitStateHalfOpen:
		b.inFlight--
		b.successes++
		if b.successes >= b.cfg.HalfOpenProbes && b.inFlight == 0 {
			b.state = CircuitStateClosed
			b.failures = 0
			b.successes = 0
			b.openedAt = time.Time{}
		}
	}
}

func (b *CircuitBreaker) recordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateClosed:
		b.failures++
		if b.failures < b.cfg.FailureThreshold {
			return
		}
	case CircuitStateHalfOpen:
		b.inFlight--
	}

	b.state = CircuitStateOpen
	b.openedAt = b.now()
	b.inFlight = 0
	b.successes = 0
}
