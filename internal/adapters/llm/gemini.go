package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/example/kanban/internal/ports/secondary"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiCompleter answers chat requests through the Gemini API.
type GeminiCompleter struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// NewGeminiCompleter creates a Gemini client from cfg.
func NewGeminiCompleter(ctx context.Context, cfg Config, logger *zap.Logger) (*GeminiCompleter, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiCompleter{client: client, model: cfg.Model, timeout: cfg.Timeout, logger: logger}, nil
}

// geminiContents converts the request into Gemini turns. Gemini has no assistant
// role; prior assistant turns and the board context use the model role.
func geminiContents(req secondary.ChatRequest) []*genai.Content {
	var contents []*genai.Content
	if req.Context != "" {
		contents = append(contents, genai.NewContentFromText(contextMessage(req.Context), genai.RoleModel))
	}
	for _, turn := range req.History {
		var role genai.Role = genai.RoleUser
		if turn.Role == "assistant" {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Content, role))
	}
	return append(contents, genai.NewContentFromText(req.Message, genai.RoleUser))
}

// Complete sends the conversation and returns the response text.
func (g *GeminiCompleter) Complete(ctx context.Context, req secondary.ChatRequest) (string, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	var config *genai.GenerateContentConfig
	if req.SystemPrompt != "" {
		config = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(req.SystemPrompt, genai.RoleUser),
		}
	}

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, geminiContents(req), config)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("no completion returned")
	}
	g.logger.Debug("gemini completion", zap.String("model", g.model), zap.Duration("elapsed", time.Since(start)))
	return text, nil
}

var _ secondary.ChatCompleter = (*GeminiCompleter)(nil)
