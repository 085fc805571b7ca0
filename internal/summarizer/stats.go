package summarizer

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// ErrFailedResult reports an attempt to compute statistics for a result
// that itself indicates failure. Stats are never computed on failures;
// a zeroed record would be indistinguishable from a real empty summary.
var ErrFailedResult = errors.New("cannot compute stats for a failed result")

// ComputeStats derives read-only metrics from a finished result.
func ComputeStats(result SummaryResult) (Stats, error) {
	if !result.Success {
		return Stats{}, ErrFailedResult
	}
	return Stats{
		WordCount:      len(strings.Fields(result.Summary)),
		CharacterCount: utf8.RuneCountInString(result.Summary),
		CitationCount:  len(result.Citations),
		SourceCount:    result.SourceCount,
		Mode:           result.Mode,
		Timestamp:      result.Timestamp,
	}, nil
}
