// Package config resolves engine configuration once at startup: an
// optional YAML file (CONFIG_PATH) merged with environment overrides.
// Setting CONFIG_PATH to a file that cannot be read is an error;
// leaving it unset is fine, credentials usually arrive via the
// environment alone.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// ProviderConfig configures one completion backend. A provider with an
// empty APIKey is omitted from the registry at startup.
type ProviderConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	BaseURL     string  `mapstructure:"base_url"`
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	TimeoutSecs int     `mapstructure:"timeout_seconds"`
	RPM         int     `mapstructure:"rpm"`
}

// Providers holds the configured backends in fallback order: Groq is
// primary, Gemini is the fallback.
type Providers struct {
	Groq   ProviderConfig `mapstructure:"groq"`
	Gemini ProviderConfig `mapstructure:"gemini"`
}

// Summarize holds the content-pipeline knobs.
type Summarize struct {
	MinFragmentChars int    `mapstructure:"min_fragment_chars"`
	ChunkCeiling     int    `mapstructure:"chunk_ceiling"`
	ChunkWindow      int    `mapstructure:"chunk_window"`
	ChunkOverlap     int    `mapstructure:"chunk_overlap"`
	MaxChunkWindows  int    `mapstructure:"max_chunk_windows"`
	MaxRetries       int    `mapstructure:"max_retries"`
	MinResponseChars int    `mapstructure:"min_response_chars"`
	MaxCitations     int    `mapstructure:"max_citations"`
	PromptDir        string `mapstructure:"prompt_dir"`
}

// Config is the full engine configuration.
type Config struct {
	Providers Providers `mapstructure:"providers"`
	Summarize Summarize `mapstructure:"summarize"`
}

// Defaults mirror the documented engine behavior.
func defaults() Config {
	var c Config
	c.Providers.Groq = ProviderConfig{
		Model:       "llama3-70b-8192",
		BaseURL:     "https://api.groq.com/openai/v1",
		Temperature: 0.1,
		MaxTokens:   2000,
		TimeoutSecs: 60,
		RPM:         30,
	}
	c.Providers.Gemini = ProviderConfig{
		Model:       "gemini-1.5-flash",
		BaseURL:     "https://generativelanguage.googleapis.com/v1beta",
		Temperature: 0.1,
		MaxTokens:   2000,
		TimeoutSecs: 60,
		RPM:         40,
	}
	c.Summarize = Summarize{
		MinFragmentChars: 100,
		ChunkCeiling:     8000,
		ChunkWindow:      1000,
		ChunkOverlap:     200,
		MaxChunkWindows:  3,
		MaxRetries:       2,
		MinResponseChars: 50,
		MaxCitations:     10,
	}
	return c
}

// Load reads CONFIG_PATH (if set and present) and applies environment
// overrides on top of the defaults.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		v := viper.New()
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := v.Unmarshal(&cfg); err != nil {
			return nil, fmt.Errorf("unmarshal config %s: %w", path, err)
		}
	}

	// Credentials come from the environment; an env var always wins
	// over the file so secrets never need to live on disk.
	if k := os.Getenv("GROQ_API_KEY"); k != "" {
		cfg.Providers.Groq.APIKey = k
	}
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Providers.Gemini.APIKey = k
	}
	if d := os.Getenv("PROMPT_DIR"); d != "" {
		cfg.Summarize.PromptDir = d
	}

	return &cfg, nil
}

// MetricsPort returns METRICS_PORT when set and positive, else 0
// (metrics endpoint disabled).
func MetricsPort() int {
	p := os.Getenv("METRICS_PORT")
	if p == "" {
		return 0
	}
	var v int
	_, _ = fmt.Sscanf(p, "%d", &v)
	if v > 0 {
		return v
	}
	return 0
}
