// Package llm adapts chat completion providers to the ChatCompleter port.
package llm

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/example/kanban/internal/ports/secondary"
)

// Provider names accepted by New.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config selects and configures a provider.
type Config struct {
	Provider string
	BaseURL  string
	APIKey   string
	Model    string
	Timeout  time.Duration
}

// New returns the completer for cfg.Provider. An empty API key yields a nil
// completer, which makes the chat service answer with its fallback reply.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (secondary.ChatCompleter, error) {
	if cfg.APIKey == "" {
		return nil, nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Provider {
	case ProviderOpenAI, "":
		return NewOpenAICompleter(cfg, logger), nil
	case ProviderGemini:
		return NewGeminiCompleter(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unknown llm provider %q (expected %s or %s)", cfg.Provider, ProviderOpenAI, ProviderGemini)
	}
}

// contextMessage frames the board summary handed to the model ahead of the
// conversation.
func contextMessage(boardContext string) string {
	return "Current board state (JSON):\n" + boardContext
}
