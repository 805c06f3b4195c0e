package llm

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

	"github.com/example/kanban/internal/ports/secondary"
)

// Defaults for OpenAI-compatible endpoints.
const (
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultOpenAIModel   = "gpt-4o-mini"
	defaultTimeout       = 60 * time.Second
	maxRetries           = 3
)

// OpenAICompleter talks to any /chat/completions endpoint.
type OpenAICompleter struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *zap.Logger

	// backoff returns the pause before retry attempt n (1-based).
	backoff func(n int) time.Duration
}

// NewOpenAICompleter creates a completer from cfg, filling in defaults.
func NewOpenAICompleter(cfg Config, logger *zap.Logger) *OpenAICompleter {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultOpenAIBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultOpenAIModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpenAICompleter{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
		backoff: func(n int) time.Duration {
			return time.Duration(1<<uint(n-1)) * time.Second
		},
	}
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model    string          `json:"model"`
	Messages []openAIMessage `json:"messages"`
	Stream   bool            `json:"stream"`
}

type openAIResponse struct {
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// messages lays out system prompt, board context, history and the new turn.
func (c *OpenAICompleter) messages(req secondary.ChatRequest) []openAIMessage {
	var msgs []openAIMessage
	if req.SystemPrompt != "" {
		msgs = append(msgs, openAIMessage{Role: "system", Content: req.SystemPrompt})
	}
	if req.Context != "" {
		msgs = append(msgs, openAIMessage{Role: "assistant", Content: contextMessage(req.Context)})
	}
	for _, turn := range req.History {
		msgs = append(msgs, openAIMessage{Role: turn.Role, Content: turn.Content})
	}
	return append(msgs, openAIMessage{Role: "user", Content: req.Message})
}

// Complete sends the conversation and returns the first choice.
// Rate limited requests are retried with exponential backoff.
func (c *OpenAICompleter) Complete(ctx context.Context, req secondary.ChatRequest) (string, error) {
	body, err := json.Marshal(openAIRequest{Model: c.model, Messages: c.messages(req)})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	start := time.Now()
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(c.backoff(attempt)):
			}
		}

		reply, retry, err := c.do(ctx, body)
		if err == nil {
			c.logger.Debug("openai completion",
				zap.String("model", c.model),
				zap.Int("attempts", attempt+1),
				zap.Duration("elapsed", time.Since(start)))
			return reply, nil
		}
		if !retry {
			return "", err
		}
		lastErr = err
		c.logger.Warn("openai request will be retried", zap.Int("attempt", attempt+1), zap.Error(err))
	}
	return "", fmt.Errorf("max retries exceeded: %w", lastErr)
}

// do performs one request and reports whether a failure is worth retrying.
func (c *OpenAICompleter) do(ctx context.Context, body []byte) (string, bool, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", false, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", ctx.Err() == nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", true, fmt.Errorf("rate limit exceeded (429)")
	case resp.StatusCode >= 500:
		return "", true, fmt.Errorf("server error %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	case resp.StatusCode != http.StatusOK:
		return "", false, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var parsed openAIResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", false, fmt.Errorf("failed to parse response: %w", err)
	}
	if parsed.Error != nil {
		return "", false, fmt.Errorf("API error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", false, fmt.Errorf("no completion returned")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), false, nil
}

var _ secondary.ChatCompleter = (*OpenAICompleter)(nil)
