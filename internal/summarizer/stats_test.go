package summarizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openjuris/summarizer/internal/prompts"
)

func TestComputeStats(t *testing.T) {
	res := SummaryResult{
		Success:       true,
		Summary:       "A void contract has no legal effect.",
		Citations:     []string{"Criminal Code, RSC 1985, c C-46"},
		Mode:          prompts.ModeComprehensive,
		ContentLength: 2048,
		SourceCount:   3,
	}

	stats, err := ComputeStats(res)
	require.NoError(t, err)

	assert.Equal(t, 7, stats.WordCount)
	assert.Equal(t, 36, stats.CharacterCount)
	assert.Equal(t, 1, stats.CitationCount)
	assert.Equal(t, prompts.ModeComprehensive, stats.Mode)
	assert.Equal(t, 3, stats.SourceCount)
}

func TestComputeStatsCountsRunes(t *testing.T) {
	res := SummaryResult{Success: true, Summary: "Québec droit civil"}
	stats, err := ComputeStats(res)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.WordCount)
	assert.Equal(t, 18, stats.CharacterCount, "multi-byte characters count once")
}

func TestComputeStatsRejectsFailedResult(t *testing.T) {
	_, err := ComputeStats(SummaryResult{Success: false, Error: "boom"})
	require.ErrorIs(t, err, ErrFailedResult)
}
