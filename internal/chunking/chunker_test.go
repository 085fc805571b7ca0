package chunking

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPassThroughWithinCeiling(t *testing.T) {
	c := New(DefaultConfig())
	text := strings.Repeat("a", 8000)
	assert.Nil(t, c.Split(text), "content within the ceiling produces no windows")
	assert.Equal(t, text, c.Truncate(text))
}

func TestSplitProducesOverlappingWindows(t *testing.T) {
	c := New(Config{Ceiling: 100, WindowSize: 50, Overlap: 10, MaxWindows: 3})
	text := strings.Repeat("abcde", 40) // 200 runes

	chunks := c.Split(text)
	require.NotEmpty(t, chunks)

	for i, ch := range chunks {
		assert.LessOrEqual(t, len([]rune(ch.Text)), 50)
		assert.Equal(t, i, ch.Index)
		assert.Equal(t, len(chunks), ch.TotalCount)
		assert.Equal(t, chunks[0].GroupID, ch.GroupID)
	}

	// Consecutive windows share the overlap region.
	first := []rune(chunks[0].Text)
	second := []rune(chunks[1].Text)
	assert.Equal(t, string(first[40:]), string(second[:10]))
}

func TestSplitCoversEntireText(t *testing.T) {
	c := New(Config{Ceiling: 10, WindowSize: 7, Overlap: 2, MaxWindows: 3})
	text := "abcdefghijklmnopqrstuvwxyz"

	chunks := c.Split(text)
	require.NotEmpty(t, chunks)
	last := chunks[len(chunks)-1].Text
	assert.True(t, strings.HasSuffix(text, last), "final window must reach the end of the text")
}

func TestTruncateBoundsOversizedContent(t *testing.T) {
	c := New(Config{Ceiling: 1000, WindowSize: 400, Overlap: 100, MaxWindows: 2})
	text := strings.Repeat("z", 5000)

	out := c.Truncate(text)
	assert.LessOrEqual(t, len([]rune(out)), c.MaxTruncatedLen())
	assert.Less(t, len(out), len(text))
}

func TestNewFallsBackOnBadConfig(t *testing.T) {
	c := New(Config{WindowSize: -1, Ceiling: -5})
	def := DefaultConfig()
	assert.Equal(t, def.Ceiling, c.Ceiling())
}

func TestSplitDegenerateOverlap(t *testing.T) {
	// Overlap >= window size would loop forever without the step
	// fallback.
	c := New(Config{Ceiling: 10, WindowSize: 4, Overlap: 4, MaxWindows: 3})
	chunks := c.Split(strings.Repeat("q", 30))
	if len(chunks) == 0 {
		t.Fatal("expected windows for oversized content")
	}
}
