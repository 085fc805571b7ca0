// Package chunking bounds the size of text handed to a completion
// provider. Oversized content is split into overlapping windows and a
// fixed prefix of those windows is re-joined, so the worst-case request
// size is deterministic and chunk boundaries do not bisect prose as
// aggressively as a hard substring cut.
package chunking

import (
	"strings"

	"github.com/google/uuid"
)

// Config controls chunking behavior. All sizes are in runes.
type Config struct {
	Ceiling    int `yaml:"ceiling" mapstructure:"ceiling"`
	WindowSize int `yaml:"window_size" mapstructure:"window_size"`
	Overlap    int `yaml:"overlap" mapstructure:"overlap"`
	MaxWindows int `yaml:"max_windows" mapstructure:"max_windows"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Ceiling:    8000,
		WindowSize: 1000,
		Overlap:    200,
		MaxWindows: 3,
	}
}

// Chunk is one window of a split text.
type Chunk struct {
	GroupID    string // shared ID for all windows of one split
	Text       string
	Index      int // 0-based window position
	TotalCount int
}

// Chunker splits oversized text into overlapping windows.
type Chunker struct {
	ceiling    int
	windowSize int
	overlap    int
	maxWindows int
}

// New creates a Chunker, falling back to defaults for non-positive
// values.
func New(cfg Config) *Chunker {
	def := DefaultConfig()
	if cfg.Ceiling <= 0 {
		cfg.Ceiling = def.Ceiling
	}
	if cfg.WindowSize <= 0 {
		cfg.WindowSize = def.WindowSize
	}
	if cfg.Overlap < 0 {
		cfg.Overlap = def.Overlap
	}
	if cfg.MaxWindows <= 0 {
		cfg.MaxWindows = def.MaxWindows
	}
	return &Chunker{
		ceiling:    cfg.Ceiling,
		windowSize: cfg.WindowSize,
		overlap:    cfg.Overlap,
		maxWindows: cfg.MaxWindows,
	}
}

// Ceiling reports the length above which Split produces windows.
func (c *Chunker) Ceiling() int { return c.ceiling }

// Split returns overlapping windows covering text, or nil when the text
// is already within the ceiling (no chunking needed).
func (c *Chunker) Split(text string) []Chunk {
	runes := []rune(text)
	if len(runes) <= c.ceiling {
		return nil
	}

	groupID := uuid.New().String()
	step := c.windowSize - c.overlap
	if step <= 0 {
		step = c.windowSize / 2
	}

	var chunks []Chunk
	for i := 0; i < len(runes); i += step {
		end := i + c.windowSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, Chunk{
			GroupID: groupID,
			Text:    string(runes[i:end]),
			Index:   len(chunks),
		})
		if end == len(runes) {
			break
		}
	}
	for i := range chunks {
		chunks[i].TotalCount = len(chunks)
	}
	return chunks
}

// Truncate bounds text for a single provider request: content within
// the ceiling passes through untouched, anything larger is replaced by
// the first MaxWindows windows joined with a blank line.
func (c *Chunker) Truncate(text string) string {
	chunks := c.Split(text)
	if chunks == nil {
		return text
	}
	n := c.maxWindows
	if n > len(chunks) {
		n = len(chunks)
	}
	parts := make([]string, 0, n)
	for _, ch := range chunks[:n] {
		parts = append(parts, ch.Text)
	}
	return strings.Join(parts, "\n\n")
}

// MaxTruncatedLen reports the worst-case length Truncate can produce,
// used by callers that need a hard request budget.
func (c *Chunker) MaxTruncatedLen() int {
	return c.maxWindows*c.windowSize + (c.maxWindows-1)*2
}
