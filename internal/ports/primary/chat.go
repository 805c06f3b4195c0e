package primary

import (
	"context"

	"github.com/example/kanban/internal/models"
)

// ChatService defines the primary port for the board assistant.
type ChatService interface {
	// SendMessage stores the user turn, asks the assistant and stores its reply.
	SendMessage(ctx context.Context, boardID, content string) (*ChatExchange, error)

	// ListMessages returns a board's chat history in order.
	ListMessages(ctx context.Context, boardID string) ([]*models.ChatMessage, error)

	// ClearMessages deletes a board's chat history.
	ClearMessages(ctx context.Context, boardID string) (int, error)

	// BuildContext summarises a board for the assistant.
	BuildContext(ctx context.Context, boardID string) (*models.ChatContext, error)
}

// ChatExchange is one question and its answer.
type ChatExchange struct {
	Question *models.ChatMessage `json:"question"`
	Answer   *models.ChatMessage `json:"answer"`
	Fallback bool                `json:"fallback"`
}
