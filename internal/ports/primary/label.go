package primary

import (
	"context"

	"github.com/example/kanban/internal/models"
)

// LabelService defines the primary port for label operations.
type LabelService interface {
	// UpsertLabel creates a label or updates the color of an existing one.
	UpsertLabel(ctx context.Context, boardID, name, color string) (*models.Label, error)

	// UpdateLabel renames and/or recolors a label.
	UpdateLabel(ctx context.Context, req UpdateLabelRequest) (*models.Label, error)

	// DeleteLabel deletes a label and strips it from every task.
	DeleteLabel(ctx context.Context, boardID, name string) error

	// PinLabel pins a label.
	PinLabel(ctx context.Context, boardID, name string) error

	// UnpinLabel unpins a label.
	UnpinLabel(ctx context.Context, boardID, name string) error

	// TogglePin flips the pinned flag and returns the new value.
	TogglePin(ctx context.Context, boardID, name string) (bool, error)

	// ListLabels lists labels pinned first, then by usage.
	ListLabels(ctx context.Context, boardID string) ([]*models.Label, error)

	// AddLabelToTask attaches a label by name, creating it if missing.
	AddLabelToTask(ctx context.Context, taskID, name string) error

	// RemoveLabelFromTask detaches a label by name.
	RemoveLabelFromTask(ctx context.Context, taskID, name string) error
}

// UpdateLabelRequest contains parameters for updating a label.
type UpdateLabelRequest struct {
	BoardID string  `json:"-"`
	Name    string  `json:"-"`
	NewName *string `json:"name"`
	Color   *string `json:"color"`
}
