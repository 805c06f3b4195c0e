package primary

import (
	"context"

	"github.com/example/kanban/internal/models"
)

// TaskService defines the primary port for task operations.
type TaskService interface {
	// CreateTask creates a task at the end of the board order.
	CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error)

	// GetTask retrieves a task with labels and checklist.
	GetTask(ctx context.Context, taskID string) (*models.Task, error)

	// ListTasks lists the tasks of a board matching the filters, newest first.
	ListTasks(ctx context.Context, filters TaskFilters) ([]*models.Task, error)

	// UpdateTask applies a partial update.
	UpdateTask(ctx context.Context, req UpdateTaskRequest) error

	// MoveTask moves a task to another column of the same board.
	MoveTask(ctx context.Context, taskID, columnID string) error

	// ReorderTasks moves activeID to overID's slot when both share a column.
	ReorderTasks(ctx context.Context, activeID, overID string) (*ReorderResult, error)

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, taskID string) error
}

// CreateTaskRequest contains parameters for creating a task.
type CreateTaskRequest struct {
	ColumnID    string           `json:"column_id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Date        string           `json:"date"`
	ImageURL    string           `json:"image_url"`
	Labels      []string         `json:"labels"`
	Checklist   []ChecklistInput `json:"checklist"`
}

// UpdateTaskRequest contains parameters for updating a task.
// Nil fields are left unchanged; empty Date or ImageURL clears the field.
type UpdateTaskRequest struct {
	TaskID      string  `json:"-"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	ImageURL    *string `json:"image_url"`
}

// TaskFilters contains filter options for listing tasks.
type TaskFilters struct {
	BoardID  string
	ColumnID string
	Query    string
	Tags     string // comma separated
}

// ReorderResult reports whether a reorder changed anything.
type ReorderResult struct {
	Moved  bool   `json:"moved"`
	Reason string `json:"reason,omitempty"`
}
