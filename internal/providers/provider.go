// Package providers models completion backends behind a single invoke
// contract and keeps them in an ordered registry. Order encodes
// priority: the engine walks the registry front to back, so the primary
// provider always gets the first attempt.
package providers

import (
	"context"
	"errors"
	"fmt"
)

// Provider is the single capability every backend exposes: accept a
// prompt, return the generated text or fail.
type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrNoProviders reports that no backend could be constructed from the
// available credentials. This is a deployment mistake, surfaced at
// engine construction rather than at call time.
var ErrNoProviders = errors.New("no completion providers configured")

// InvocationError wraps a failed provider call with the provider's
// identity so the orchestrator can log it without leaking backend
// diagnostics to the caller.
type InvocationError struct {
	Provider string
	Err      error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }
