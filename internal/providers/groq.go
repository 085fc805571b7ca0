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

// Groq talks to Groq's OpenAI-compatible chat completions endpoint.
type Groq struct {
	client  *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger

	apiKey      string
	baseURL     string
	model       string
	temperature float64
	maxTokens   int
}

// NewGroq builds the Groq adapter from its configuration.
func NewGroq(cfg config.ProviderConfig, logger *zap.Logger) *Groq {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Groq{
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

func (g *Groq) Name() string { return "groq" }

type groqChatRequest struct {
	Model       string        `json:"model"`
	Messages    []groqMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends the prompt as a single user message and returns the
// first choice's content.
func (g *Groq) Complete(ctx context.Context, prompt string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", &InvocationError{Provider: g.Name(), Err: err}
	}

	body, err := json.Marshal(groqChatRequest{
		Model:       g.model,
		Messages:    []groqMessage{{Role: "user", Content: prompt}},
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
	})
	if err != nil {
		return "", &InvocationError{Provider: g.Name(), Err: fmt.Errorf("marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", &InvocationError{Provider: g.Name(), Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", &InvocationError{Provider: g.Name(), Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &InvocationError{Provider: g.Name(), Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		g.logger.Warn("Groq request failed",
			zap.Int("status", resp.StatusCode),
			zap.String("body", truncateForLog(string(data))),
		)
		return "", &InvocationError{Provider: g.Name(), Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var parsed groqChatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", &InvocationError{Provider: g.Name(), Err: fmt.Errorf("decode response: %w", err)}
	}
	if parsed.Error != nil {
		return "", &InvocationError{Provider: g.Name(), Err: fmt.Errorf("api error: %s", parsed.Error.Message)}
	}
	if len(parsed.Choices) == 0 {
		return "", &InvocationError{Provider: g.Name(), Err: fmt.Errorf("no choices returned")}
	}
	return parsed.Choices[0].Message.Content, nil
}

func limiterForRPM(rpm int) *rate.Limiter {
	if rpm <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1)
}

func truncateForLog(s string) string {
	const max = 512
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
