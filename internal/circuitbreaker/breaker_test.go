package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestBreakerOpensAfterThreshold(t *testing.T) {
	b := New("p", Config{FailureThreshold: 3, ResetTimeout: time.Minute}, zap.NewNop())

	for i := 0; i < 2; i++ {
		b.RecordFailure()
	}
	if b.State() != StateClosed {
		t.Fatalf("breaker opened before threshold")
	}

	b.RecordFailure()
	if b.State() != StateOpen {
		t.Fatalf("breaker did not open at threshold")
	}
	if err := b.Allow(); !errors.Is(err, ErrOpen) {
		t.Fatalf("expected ErrOpen, got %v", err)
	}
}

func TestBreakerSuccessResetsStreak(t *testing.T) {
	b := New("p", Config{FailureThreshold: 2, ResetTimeout: time.Minute}, zap.NewNop())
	b.RecordFailure()
	b.RecordSuccess()
	b.RecordFailure()
	if b.State() != StateClosed {
		t.Fatalf("success did not reset the failure streak")
	}
}

func TestBreakerHalfOpenProbe(t *testing.T) {
	b := New("p", Config{FailureThreshold: 1, ResetTimeout: time.Millisecond}, zap.NewNop())
	b.RecordFailure()
	if b.State() != StateOpen {
		t.Fatalf("expected open state")
	}

	time.Sleep(5 * time.Millisecond)

	// First probe admitted, concurrent second refused.
	if err := b.Allow(); err != nil {
		t.Fatalf("expected probe to be admitted, got %v", err)
	}
	if b.State() != StateHalfOpen {
		t.Fatalf("expected half-open state")
	}
	if err := b.Allow(); !errors.Is(err, ErrOpen) {
		t.Fatalf("expected second probe refused")
	}

	b.RecordSuccess()
	if b.State() != StateClosed {
		t.Fatalf("successful probe must close the breaker")
	}
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	b := New("p", Config{FailureThreshold: 1, ResetTimeout: time.Millisecond}, zap.NewNop())
	b.RecordFailure()
	time.Sleep(5 * time.Millisecond)

	if err := b.Allow(); err != nil {
		t.Fatalf("probe should be admitted: %v", err)
	}
	b.RecordFailure()
	if b.State() != StateOpen {
		t.Fatalf("failed probe must reopen the breaker")
	}
}
