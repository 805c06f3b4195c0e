package primary

import (
	"context"

	"github.com/example/kanban/internal/models"
)

// ColumnService defines the primary port for column operations.
type ColumnService interface {
	// AddColumn appends a column to a board.
	AddColumn(ctx context.Context, boardID, title string) (*models.Column, error)

	// ListColumns lists the columns of a board in order.
	ListColumns(ctx context.Context, boardID string) ([]*models.Column, error)

	// RenameColumn changes a column title.
	RenameColumn(ctx context.Context, columnID, title string) error

	// MoveColumn moves a column to a new index within its board.
	MoveColumn(ctx context.Context, columnID string, position int) error

	// DeleteColumn deletes a column with all of its tasks.
	DeleteColumn(ctx context.Context, columnID string) error
}
