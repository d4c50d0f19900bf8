package provider

import (
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrBreakerOpen is returned when the circuit is open and the cooldown has
// not elapsed.
var ErrBreakerOpen = errors.New("circuit breaker open")

type breakerState int

const (
	stateClosed breakerState = iota
	stateOpen
	stateHalfOpen
)

func (s breakerState) String() string {
	switch s {
	case stateClosed:
		return "closed"
	case stateOpen:
		return "open"
	case stateHalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

// circuitBreaker trips after consecutive provider failures and allows a probe
// call once the cooldown elapses. One breaker guards each upstream provider so
// a dead primary stops eating its timeout on every request.
type circuitBreaker struct {
	mu               sync.Mutex
	state            breakerState
	failureCount     int
	successCount     int
	lastFailure      time.Time
	failureThreshold int
	successThreshold int
	cooldown         time.Duration
	component        string
}

func newCircuitBreaker(component string) *circuitBreaker {
	return &circuitBreaker{
		state:            stateClosed,
		failureThreshold: 5,
		successThreshold: 2,
		cooldown:         30 * time.Second,
		component:        component,
	}
}

// call runs fn when the circuit allows it, recording the outcome.
func (cb *circuitBreaker) call(fn func() error) error {
	cb.mu.Lock()
	if cb.state == stateOpen {
		if time.Since(cb.lastFailure) < cb.cooldown {
			cb.mu.Unlock()
			return ErrBreakerOpen
		}
		cb.transition(stateHalfOpen)
		cb.successCount = 0
	}
	cb.mu.Unlock()

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.failureCount++
		cb.lastFailure = time.Now()
		if cb.state == stateHalfOpen || cb.failureCount >= cb.failureThreshold {
			cb.transition(stateOpen)
			cb.failureCount = 0
		}
		return err
	}

	cb.successCount++
	cb.failureCount = 0
	if cb.state == stateHalfOpen && cb.successCount >= cb.successThreshold {
		cb.transition(stateClosed)
		cb.successCount = 0
	}
	return nil
}

// transition must be called with cb.mu held.
func (cb *circuitBreaker) transition(to breakerState) {
	if cb.state == to {
		return
	}
	slog.Info("circuit breaker state change", "component", cb.component, "from", cb.state.String(), "to", to.String())
	cb.state = to
}
