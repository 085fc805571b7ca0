// Package summarizer turns batches of retrieved text fragments into
// structured answers via the ordered provider registry. It owns the
// retry/fallback state machine, citation extraction, and result
// statistics.
package summarizer

import (
	"time"

	"github.com/openjuris/summarizer/internal/prompts"
)

// SearchResult is one retrieved fragment, supplied by the caller per
// request and never persisted.
type SearchResult struct {
	Content  string            `json:"content"`
	Source   string            `json:"source"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// SearchBatch is the caller's full payload from the upstream search
// step.
type SearchBatch struct {
	Success bool           `json:"success"`
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
}

// SummaryResult is the engine's output. On failure paths Success is
// false and Error carries the reason; Timestamp is always set.
type SummaryResult struct {
	Success       bool         `json:"success"`
	Query         string       `json:"query,omitempty"`
	Summary       string       `json:"summary,omitempty"`
	Citations     []string     `json:"citations,omitempty"`
	Mode          prompts.Mode `json:"mode,omitempty"`
	ContentLength int          `json:"content_length,omitempty"`
	SourceCount   int          `json:"source_count,omitempty"`
	Error         string       `json:"error,omitempty"`
	Timestamp     time.Time    `json:"timestamp"`
}

// Stats are read-only metrics derived from a successful result.
type Stats struct {
	WordCount      int          `json:"word_count"`
	CharacterCount int          `json:"character_count"`
	CitationCount  int          `json:"citation_count"`
	SourceCount    int          `json:"source_count"`
	Mode           prompts.Mode `json:"mode"`
	Timestamp      time.Time    `json:"timestamp"`
}

// Failure reasons surfaced to callers. Provider-internal diagnostics
// stay in the logs.
const (
	reasonUpstreamFailure    = "search data indicates failure"
	reasonNoResults          = "no search results to summarize"
	reasonNoUsableContent    = "no usable content found in search results"
	reasonProvidersExhausted = "failed to generate summary with all available providers"
)
