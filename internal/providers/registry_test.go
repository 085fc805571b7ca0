package providers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/openjuris/summarizer/internal/config"
)

type fakeProvider struct{ name string }

func (f *fakeProvider) Name() string { return f.name }
func (f *fakeProvider) Complete(ctx context.Context, prompt string) (string, error) {
	return "", nil
}

func TestRegistryPreservesOrder(t *testing.T) {
	r := NewRegistry(zap.NewNop(), &fakeProvider{"primary"}, &fakeProvider{"fallback"})
	assert.Equal(t, []string{"primary", "fallback"}, r.Names())
	assert.Equal(t, 2, r.Len())
}

func TestRegistryEntriesCarryBreakers(t *testing.T) {
	r := NewRegistry(zap.NewNop(), &fakeProvider{"p"})
	for _, e := range r.Entries() {
		assert.NotNil(t, e.Breaker)
	}
}

func TestNewRegistryFromConfigOmitsMissingCredentials(t *testing.T) {
	cfg := config.Providers{
		Gemini: config.ProviderConfig{APIKey: "k", Model: "gemini-1.5-flash"},
	}
	r := NewRegistryFromConfig(cfg, zap.NewNop())
	assert.Equal(t, []string{"gemini"}, r.Names())
}

func TestNewRegistryFromConfigOrdersGroqFirst(t *testing.T) {
	cfg := config.Providers{
		Groq:   config.ProviderConfig{APIKey: "a", Model: "llama3-70b-8192"},
		Gemini: config.ProviderConfig{APIKey: "b", Model: "gemini-1.5-flash"},
	}
	r := NewRegistryFromConfig(cfg, zap.NewNop())
	assert.Equal(t, []string{"groq", "gemini"}, r.Names())
}

func TestNewRegistryFromConfigEmpty(t *testing.T) {
	r := NewRegistryFromConfig(config.Providers{}, zap.NewNop())
	assert.Equal(t, 0, r.Len())
}
