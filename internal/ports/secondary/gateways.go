package secondary

import (
	"context"

	"github.com/example/kanban/internal/models"
)

// ChatCompleter sends a conversation to a language model and returns its reply.
type ChatCompleter interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}

// ChatRequest is one completion request. Context is primed as an assistant
// turn ahead of History and the new user Message.
type ChatRequest struct {
	SystemPrompt string
	Context      string
	History      []ChatTurn
	Message      string
}

// ChatTurn is a previous message replayed to the model.
type ChatTurn struct {
	Role    string // "user" or "assistant"
	Content string
}

// WeatherProvider resolves a location and returns a daily forecast.
type WeatherProvider interface {
	Forecast(ctx context.Context, location string, days int) (*models.WeatherReport, error)
}

// ImageStore persists uploaded task images and returns their public URL.
type ImageStore interface {
	Save(ctx context.Context, userID, filename string, content []byte) (string, error)
}
