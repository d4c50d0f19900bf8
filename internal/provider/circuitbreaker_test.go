package provider

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	cb := newCircuitBreaker("test")
	fail := func() error { return errors.New("boom") }

	for i := 0; i < cb.failureThreshold; i++ {
		if err := cb.call(fail); err == nil {
			t.Fatal("expected failure to propagate")
		}
	}

	// Circuit is now open; calls short-circuit
	err := cb.call(func() error {
		t.Error("fn should not run while circuit is open")
		return nil
	})
	if !errors.Is(err, ErrBreakerOpen) {
		t.Errorf("expected ErrBreakerOpen, got %v", err)
	}
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	cb := newCircuitBreaker("test")
	cb.cooldown = 10 * time.Millisecond

	for i := 0; i < cb.failureThreshold; i++ {
		cb.call(func() error { return errors.New("boom") })
	}

	time.Sleep(20 * time.Millisecond)

	// Probe calls succeed, closing the circuit after successThreshold
	for i := 0; i < cb.successThreshold; i++ {
		if err := cb.call(func() error { return nil }); err != nil {
			t.Fatalf("probe call %d failed: %v", i, err)
		}
	}

	if cb.state != stateClosed {
		t.Errorf("expected closed state after recovery, got %s", cb.state)
	}
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb := newCircuitBreaker("test")
	cb.cooldown = 10 * time.Millisecond

	for i := 0; i < cb.failureThreshold; i++ {
		cb.call(func() error { return errors.New("boom") })
	}

	time.Sleep(20 * time.Millisecond)

	// Single failure in half-open goes straight back to open
	cb.call(func() error { return errors.New("still down") })

	if cb.state != stateOpen {
		t.Errorf("expected open state after half-open failure, got %s", cb.state)
	}
}

func TestCircuitBreaker_SuccessResetsFailureCount(t *testing.T) {
	cb := newCircuitBreaker("test")

	for i := 0; i < cb.failureThreshold-1; i++ {
		cb.call(func() error { return errors.New("boom") })
	}
	cb.call(func() error { return nil })

	// Counter reset; the next failures start from zero
	for i := 0; i < cb.failureThreshold-1; i++ {
		cb.call(func() error { return errors.New("boom") })
	}

	if cb.state != stateClosed {
		t.Errorf("expected closed state, got %s", cb.state)
	}
}
