package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/openjuris/summarizer/internal/config"
)

// Gemini talks to the Generative Language API generateContent endpoint.
type Gemini struct {
	client  *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger

	apiKey      string
	baseURL     string
	model       string
	temperature float64
	maxTokens   int
}

// NewGemini builds the Gemini adapter from its configuration.
func NewGemini(cfg config.ProviderConfig, logger *zap.Logger) *Gemini {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Gemini{
		client:      &http.Client{Timeout: timeout},
		limiter:     limiterForRPM(cfg.RPM),
		logger:      logger,
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
}

func (g *Gemini) Name() string { return "gemini" }

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends the prompt as a single user turn and concatenates the
// first candidate's text parts.
func (g *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", &InvocationError{Provider: g.Name(), Err: err}
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     g.temperature,
			MaxOutputTokens: g.maxTokens,
		},
	})
	if err != nil {
		return "", &InvocationError{Provider: g.Name(), Err: fmt.Errorf("marshal request: %w", err)}
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", &InvocationError{Provider: g.Name(), Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", &InvocationError{Provider: g.Name(), Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &InvocationError{Provider: g.Name(), Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		g.logger.Warn("Gemini request failed",
			zap.Int("status", resp.StatusCode),
			zap.String("body", truncateForLog(string(data))),
		)
		return "", &InvocationError{Provider: g.Name(), Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var parsed geminiResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", &InvocationError{Provider: g.Name(), Err: fmt.Errorf("decode response: %w", err)}
	}
	if parsed.Error != nil {
		return "", &InvocationError{Provider: g.Name(), Err: fmt.Errorf("api error: %s", parsed.Error.Message)}
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", &InvocationError{Provider: g.Name(), Err: fmt.Errorf("no candidates returned")}
	}

	var b strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return b.String(), nil
}
