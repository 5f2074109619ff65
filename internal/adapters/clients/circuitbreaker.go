package clients

import (
	"sync"
	"time"
)

// State is the circuit breaker state.
type State int

const (
	// StateClosed allows requests through.
	StateClosed State = iota

	// StateOpen blocks requests while the upstream is considered unhealthy.
	StateOpen

	// StateHalfOpen lets a limited number of probes through to test recovery.
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig tunes the breaker thresholds.
type CircuitBreakerConfig struct {
	// MaxFailures is the consecutive failure count that opens the circuit.
	MaxFailures int

	// Timeout is how long the circuit stays open before probing.
	Timeout time.Duration

	// HalfOpenLimit is both the probe concurrency cap and the consecutive
	// success count required to close again.
	HalfOpenLimit int
}

// CircuitBreaker guards an upstream with the standard three-state pattern:
// closed opens after MaxFailures consecutive failures, open goes half-open
// after Timeout, half-open closes after HalfOpenLimit successes and reopens
// on any failure.
type CircuitBreaker struct {
	mu               sync.RWMutex
	state            State
	failures         int
	successes        int
	halfOpenRequests int
	lastFailure      time.Time
	cfg              CircuitBreakerConfig

	onStateChange func(from, to State)

	// now is overridable for tests.
	now func() time.Time
}

// NewCircuitBreaker creates a breaker in the closed state.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		state: StateClosed,
		cfg:   cfg,
		now:   time.Now,
	}
}

// OnStateChange registers a callback invoked on every state transition.
func (cb *CircuitBreaker) OnStateChange(fn func(from, to State)) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.onStateChange = fn
}

// Allow reports whether a request may proceed. An open circuit whose timeout
// has elapsed transitions to half-open and admits the caller as a probe.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		return true

	case StateOpen:
		if cb.now().Sub(cb.lastFailure) >= cb.cfg.Timeout {
			cb.transitionTo(StateHalfOpen)
			cb.halfOpenRequests = 1

			return true
		}

		return false

	case StateHalfOpen:
		if cb.halfOpenRequests >= cb.cfg.HalfOpenLimit {
			return false
		}
		cb.halfOpenRequests++

		return true

	default:
		return false
	}
}

// RecordSuccess notes a successful request.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		cb.failures = 0

	case StateHalfOpen:
		cb.halfOpenRequests--
		cb.successes++

		if cb.successes >= cb.cfg.HalfOpenLimit {
			cb.transitionTo(StateClosed)
		}
	}
}

// RecordFailure notes a failed request. Any failure in half-open reopens
// the circuit immediately.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.lastFailure = cb.now()

	switch cb.state {
	case StateClosed:
		cb.failures++
		if cb.failures >= cb.cfg.MaxFailures {
			cb.transitionTo(StateOpen)
		}

	case StateHalfOpen:
		cb.halfOpenRequests--
		cb.transitionTo(StateOpen)
	}
}

// State returns the current state.
func (cb *CircuitBreaker) State() State {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	return cb.state
}

// transitionTo switches state and resets counters. Caller holds the lock.
func (cb *CircuitBreaker) transitionTo(newState State) {
	if cb.state == newState {
		return
	}

	oldState := cb.state
	cb.state = newState
	cb.failures = 0
	cb.successes = 0

	if cb.onStateChange != nil {
		// Run outside the lock.
		go cb.onStateChange(oldState, newState)
	}
}
