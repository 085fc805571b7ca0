// Package circuitbreaker guards individual completion providers. A
// provider that keeps failing is opened for a cooldown period so the
// registry walk can move to the fallback immediately instead of burning
// its retry budget on a known-bad backend.
package circuitbreaker

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// State of a breaker.
type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// ErrOpen reports that the breaker is refusing calls.
var ErrOpen = errors.New("circuit breaker is open")

// Config holds breaker thresholds.
type Config struct {
	FailureThreshold int           // consecutive failures that open the breaker
	ResetTimeout     time.Duration // time in open state before a probe is allowed
}

// DefaultConfig is conservative: the bounded per-provider retry budget
// of a single call can never trip it on its own.
func DefaultConfig() Config {
	return Config{
		FailureThreshold: 5,
		ResetTimeout:     30 * time.Second,
	}
}

// Breaker is a minimal consecutive-failure circuit breaker.
type Breaker struct {
	name   string
	config Config
	logger *zap.Logger

	mu           sync.Mutex
	state        State
	failures     int
	openedAt     time.Time
	halfOpenBusy bool
}

// New creates a closed breaker for the named provider.
func New(name string, config Config, logger *zap.Logger) *Breaker {
	if config.FailureThreshold <= 0 {
		config.FailureThreshold = DefaultConfig().FailureThreshold
	}
	if config.ResetTimeout <= 0 {
		config.ResetTimeout = DefaultConfig().ResetTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Breaker{name: name, config: config, logger: logger}
}

// Allow reports whether a call may proceed. In the half-open state only
// one probe is admitted at a time.
func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		return nil
	case StateOpen:
		if time.Since(b.openedAt) < b.config.ResetTimeout {
			return ErrOpen
		}
		b.setState(StateHalfOpen)
		b.halfOpenBusy = true
		return nil
	case StateHalfOpen:
		if b.halfOpenBusy {
			return ErrOpen
		}
		b.halfOpenBusy = true
		return nil
	}
	return nil
}

// RecordSuccess closes the breaker and clears the failure streak.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = 0
	b.halfOpenBusy = false
	if b.state != StateClosed {
		b.setState(StateClosed)
	}
}

// RecordFailure counts a failure, opening the breaker when the streak
// reaches the threshold or a half-open probe fails.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.halfOpenBusy = false
	switch b.state {
	case StateHalfOpen:
		b.open()
	case StateClosed:
		b.failures++
		if b.failures >= b.config.FailureThreshold {
			b.open()
		}
	}
}

// State returns the current state.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Breaker) open() {
	b.openedAt = time.Now()
	b.failures = 0
	b.setState(StateOpen)
}

func (b *Breaker) setState(s State) {
	if b.state == s {
		return
	}
	prev := b.state
	b.state = s
	b.logger.Info("Circuit breaker state changed",
		zap.String("provider", b.name),
		zap.String("from", prev.String()),
		zap.String("to", s.String()),
	)
}
