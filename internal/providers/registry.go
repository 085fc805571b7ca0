package providers

import (
	"go.uber.org/zap"

	"github.com/openjuris/summarizer/internal/circuitbreaker"
	"github.com/openjuris/summarizer/internal/config"
)

// Entry pairs a provider with the circuit breaker guarding it.
type Entry struct {
	Provider Provider
	Breaker  *circuitbreaker.Breaker
}

// Registry is the ordered, immutable list of configured providers.
// Order encodes fallback priority.
type Registry struct {
	entries []Entry
}

// NewRegistry wraps the given providers, preserving their order, and
// attaches a breaker to each.
func NewRegistry(logger *zap.Logger, ps ...Provider) *Registry {
	entries := make([]Entry, 0, len(ps))
	for _, p := range ps {
		entries = append(entries, Entry{
			Provider: p,
			Breaker:  circuitbreaker.New(p.Name(), circuitbreaker.DefaultConfig(), logger),
		})
	}
	return &Registry{entries: entries}
}

// NewRegistryFromConfig constructs providers for every credential that
// is present, in fallback order (Groq primary, Gemini fallback). A
// missing credential omits that provider with a warning; it is not an
// error here. Callers that need at least one provider check Len.
func NewRegistryFromConfig(cfg config.Providers, logger *zap.Logger) *Registry {
	var ps []Provider
	if cfg.Groq.APIKey != "" {
		ps = append(ps, NewGroq(cfg.Groq, logger))
		logger.Info("Groq provider initialized", zap.String("model", cfg.Groq.Model))
	} else {
		logger.Warn("Groq credential absent, provider omitted")
	}
	if cfg.Gemini.APIKey != "" {
		ps = append(ps, NewGemini(cfg.Gemini, logger))
		logger.Info("Gemini provider initialized", zap.String("model", cfg.Gemini.Model))
	} else {
		logger.Warn("Gemini credential absent, provider omitted")
	}
	return NewRegistry(logger, ps...)
}

// Entries returns the ordered provider entries. The slice must be
// treated as read-only.
func (r *Registry) Entries() []Entry { return r.entries }

// Len reports the number of configured providers.
func (r *Registry) Len() int { return len(r.entries) }

// Names lists provider names in fallback order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		names = append(names, e.Provider.Name())
	}
	return names
}
