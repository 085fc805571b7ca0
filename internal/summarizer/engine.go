package summarizer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/openjuris/summarizer/internal/chunking"
	"github.com/openjuris/summarizer/internal/config"
	"github.com/openjuris/summarizer/internal/metrics"
	"github.com/openjuris/summarizer/internal/normalize"
	"github.com/openjuris/summarizer/internal/prompts"
	"github.com/openjuris/summarizer/internal/providers"
)

// Options holds the engine's tunable thresholds.
type Options struct {
	MinFragmentChars int
	MaxRetries       int
	MinResponseChars int
	MaxCitations     int
	Chunking         chunking.Config
}

// DefaultOptions mirrors the documented defaults.
func DefaultOptions() Options {
	return Options{
		MinFragmentChars: normalize.DefaultMinFragmentChars,
		MaxRetries:       2,
		MinResponseChars: 50,
		MaxCitations:     10,
		Chunking:         chunking.DefaultConfig(),
	}
}

// OptionsFromConfig maps the loaded configuration onto engine options,
// falling back to defaults for unset values.
func OptionsFromConfig(s config.Summarize) Options {
	o := DefaultOptions()
	if s.MinFragmentChars > 0 {
		o.MinFragmentChars = s.MinFragmentChars
	}
	if s.MaxRetries > 0 {
		o.MaxRetries = s.MaxRetries
	}
	if s.MinResponseChars > 0 {
		o.MinResponseChars = s.MinResponseChars
	}
	if s.MaxCitations > 0 {
		o.MaxCitations = s.MaxCitations
	}
	if s.ChunkCeiling > 0 {
		o.Chunking.Ceiling = s.ChunkCeiling
	}
	if s.ChunkWindow > 0 {
		o.Chunking.WindowSize = s.ChunkWindow
	}
	if s.ChunkOverlap > 0 {
		o.Chunking.Overlap = s.ChunkOverlap
	}
	if s.MaxChunkWindows > 0 {
		o.Chunking.MaxWindows = s.MaxChunkWindows
	}
	return o
}

// Engine drives the generation pipeline. The registry and catalog are
// read-only after construction, so one Engine serves any number of
// concurrent calls.
type Engine struct {
	registry   *providers.Registry
	catalog    *prompts.Catalog
	normalizer *normalize.Normalizer
	chunker    *chunking.Chunker
	opts       Options
	logger     *zap.Logger
}

// New constructs the engine. An empty registry is a deployment
// mistake and fails construction.
func New(registry *providers.Registry, catalog *prompts.Catalog, opts Options, logger *zap.Logger) (*Engine, error) {
	if registry == nil || registry.Len() == 0 {
		return nil, providers.ErrNoProviders
	}
	if catalog == nil {
		catalog = prompts.NewCatalog()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	def := DefaultOptions()
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = def.MaxRetries
	}
	if opts.MinResponseChars <= 0 {
		opts.MinResponseChars = def.MinResponseChars
	}
	if opts.MaxCitations <= 0 {
		opts.MaxCitations = def.MaxCitations
	}
	return &Engine{
		registry:   registry,
		catalog:    catalog,
		normalizer: normalize.New(opts.MinFragmentChars),
		chunker:    chunking.New(opts.Chunking),
		opts:       opts,
		logger:     logger,
	}, nil
}

// Summarize produces a structured answer for the batch in the requested
// mode. The returned error is non-nil only for configuration errors
// (an unknown mode); every retryable failure comes back as a
// well-formed result with Success=false.
func (e *Engine) Summarize(ctx context.Context, batch SearchBatch, mode prompts.Mode) (SummaryResult, error) {
	parsed, err := prompts.ParseMode(string(mode))
	if err != nil {
		return SummaryResult{}, err
	}
	mode = parsed

	metrics.SummariesStarted.WithLabelValues(string(mode)).Inc()
	started := time.Now()
	defer func() {
		metrics.SummaryDuration.WithLabelValues(string(mode)).Observe(time.Since(started).Seconds())
	}()

	if !batch.Success {
		return e.failure(batch.Query, mode, reasonUpstreamFailure), nil
	}
	if len(batch.Results) == 0 {
		return e.failure(batch.Query, mode, reasonNoResults), nil
	}

	fragments := make([]normalize.Fragment, 0, len(batch.Results))
	for _, r := range batch.Results {
		fragments = append(fragments, normalize.Fragment{Content: r.Content, Source: r.Source})
	}
	content, retained := e.normalizer.Combine(fragments)
	if content == "" {
		return e.failure(batch.Query, mode, reasonNoUsableContent), nil
	}
	metrics.FragmentsRetained.Observe(float64(retained))

	content = e.chunker.Truncate(content)

	vars := map[string]string{
		prompts.VarContent: content,
		prompts.VarQuery:   batch.Query,
	}
	prompt, err := e.catalog.Render(mode, vars)
	if err != nil {
		// Catalog and mode were validated above; a render failure here
		// is a template misconfiguration.
		metrics.SummariesCompleted.WithLabelValues(string(mode), "error").Inc()
		return SummaryResult{}, fmt.Errorf("render prompt: %w", err)
	}

	summary, ok := e.generate(ctx, prompt)
	if !ok {
		return e.failure(batch.Query, mode, reasonProvidersExhausted), nil
	}

	var citations []string
	switch mode {
	case prompts.ModeComprehensive:
		citations = e.extractViaCitationsPass(ctx, content)
	case prompts.ModeCitations:
		citations = ExtractCitations(summary, e.opts.MaxCitations)
	}
	if len(citations) > 0 {
		metrics.CitationsExtracted.Observe(float64(len(citations)))
	}

	metrics.SummariesCompleted.WithLabelValues(string(mode), "success").Inc()
	return SummaryResult{
		Success:       true,
		Query:         batch.Query,
		Summary:       summary,
		Citations:     citations,
		Mode:          mode,
		ContentLength: len(content),
		SourceCount:   retained,
		Timestamp:     time.Now().UTC(),
	}, nil
}

// ComprehensiveSummary is Summarize with the comprehensive mode fixed.
func (e *Engine) ComprehensiveSummary(ctx context.Context, batch SearchBatch) (SummaryResult, error) {
	return e.Summarize(ctx, batch, prompts.ModeComprehensive)
}

// QuickAnswer is Summarize with the quick mode fixed.
func (e *Engine) QuickAnswer(ctx context.Context, batch SearchBatch) (SummaryResult, error) {
	return e.Summarize(ctx, batch, prompts.ModeQuick)
}

// extractViaCitationsPass runs a second generation over the same
// content with the citations template. A failed pass degrades to an
// empty list; it never fails the call.
func (e *Engine) extractViaCitationsPass(ctx context.Context, content string) []string {
	prompt, err := e.catalog.Render(prompts.ModeCitations, map[string]string{
		prompts.VarContent: content,
	})
	if err != nil {
		e.logger.Warn("Citation prompt render failed", zap.Error(err))
		return nil
	}
	text, ok := e.generate(ctx, prompt)
	if !ok {
		e.logger.Warn("Citation generation failed, returning summary without citations")
		return nil
	}
	return ExtractCitations(text, e.opts.MaxCitations)
}

func (e *Engine) failure(query string, mode prompts.Mode, reason string) SummaryResult {
	e.logger.Warn("Summary request failed",
		zap.String("mode", string(mode)),
		zap.String("reason", reason),
	)
	metrics.SummariesCompleted.WithLabelValues(string(mode), "failure").Inc()
	return SummaryResult{
		Success:   false,
		Query:     query,
		Mode:      mode,
		Error:     reason,
		Timestamp: time.Now().UTC(),
	}
}
