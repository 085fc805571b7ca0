package summarizer

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/openjuris/summarizer/internal/metrics"
	"github.com/openjuris/summarizer/internal/providers"
)

// attemptCursor is the explicit two-level state of the fallback walk:
// an index into the ordered registry and a 1-based attempt counter for
// the current provider. Providers are tried strictly sequentially, so
// the primary always wins ties and quota is never raced.
type attemptCursor struct {
	entries    []providers.Entry
	maxRetries int
	provider   int
	attempt    int
}

func newAttemptCursor(entries []providers.Entry, maxRetries int) *attemptCursor {
	return &attemptCursor{entries: entries, maxRetries: maxRetries}
}

// next advances to the following (provider, attempt) pair. It returns
// false once every provider has exhausted its attempt budget, which is
// the machine's only terminal state.
func (c *attemptCursor) next() (providers.Entry, int, bool) {
	for c.provider < len(c.entries) {
		if c.attempt < c.maxRetries {
			c.attempt++
			return c.entries[c.provider], c.attempt, true
		}
		c.provider++
		c.attempt = 0
	}
	return providers.Entry{}, 0, false
}

// skipProvider abandons the current provider's remaining attempts and
// moves the cursor to the next one.
func (c *attemptCursor) skipProvider() {
	c.provider++
	c.attempt = 0
}

// generate walks the registry in priority order, attempting each
// provider up to MaxRetries times, and returns the first response whose
// trimmed length exceeds the viability threshold. Attempts are bounded;
// the walk never blocks beyond the per-call HTTP timeouts and stops
// between attempts once ctx is done.
func (e *Engine) generate(ctx context.Context, prompt string) (string, bool) {
	cursor := newAttemptCursor(e.registry.Entries(), e.opts.MaxRetries)
	lastProvider := ""

	for {
		entry, attempt, ok := cursor.next()
		if !ok {
			e.logger.Error("All providers exhausted",
				zap.Strings("providers", e.registry.Names()),
				zap.Int("max_retries", e.opts.MaxRetries),
			)
			return "", false
		}
		if err := ctx.Err(); err != nil {
			e.logger.Warn("Generation cancelled", zap.Error(err))
			return "", false
		}

		name := entry.Provider.Name()
		if lastProvider != "" && lastProvider != name {
			metrics.ProviderFallbacks.Inc()
		}
		lastProvider = name

		if err := entry.Breaker.Allow(); err != nil {
			metrics.ProviderAttempts.WithLabelValues(name, metrics.OutcomeBreakerOpen).Inc()
			e.logger.Warn("Provider skipped, circuit breaker open", zap.String("provider", name))
			cursor.skipProvider()
			continue
		}

		start := time.Now()
		text, err := entry.Provider.Complete(ctx, prompt)
		metrics.ProviderLatency.WithLabelValues(name).Observe(time.Since(start).Seconds())

		if err != nil {
			entry.Breaker.RecordFailure()
			metrics.ProviderAttempts.WithLabelValues(name, metrics.OutcomeError).Inc()
			e.logger.Warn("Generation attempt failed",
				zap.String("provider", name),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			continue
		}

		trimmed := strings.TrimSpace(text)
		if len(trimmed) <= e.opts.MinResponseChars {
			// The transport worked, so the breaker stays happy; the
			// response just is not a usable answer.
			entry.Breaker.RecordSuccess()
			metrics.ProviderAttempts.WithLabelValues(name, metrics.OutcomeTooShort).Inc()
			e.logger.Warn("Response below viability threshold",
				zap.String("provider", name),
				zap.Int("attempt", attempt),
				zap.Int("length", len(trimmed)),
			)
			continue
		}

		entry.Breaker.RecordSuccess()
		metrics.ProviderAttempts.WithLabelValues(name, metrics.OutcomeAccepted).Inc()
		e.logger.Info("Summary generated",
			zap.String("provider", name),
			zap.Int("attempt", attempt),
			zap.Int("length", len(trimmed)),
		)
		return trimmed, true
	}
}
