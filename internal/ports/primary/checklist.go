package primary

import (
	"context"

	"github.com/example/kanban/internal/models"
)

// ChecklistService defines the primary port for checklist operations.
type ChecklistService interface {
	// AddItem adds an item or group to a task, optionally under a group.
	AddItem(ctx context.Context, req AddChecklistItemRequest) (*models.ChecklistItem, error)

	// GetChecklist returns the checklist tree of a task.
	GetChecklist(ctx context.Context, taskID string) ([]*models.ChecklistItem, error)

	// UpdateItemText changes the text of an item.
	UpdateItemText(ctx context.Context, itemID, text string) error

	// SetCompleted sets the completed flag, cascading through groups.
	SetCompleted(ctx context.Context, itemID string, completed bool) error

	// DeleteItem deletes an item and its descendants.
	DeleteItem(ctx context.Context, itemID string) error
}

// AddChecklistItemRequest contains parameters for adding a checklist item.
type AddChecklistItemRequest struct {
	TaskID   string `json:"-"`
	ParentID string `json:"parent_id"`
	Text     string `json:"text"`
	Type     string `json:"type"`
}

// ChecklistInput describes a checklist subtree to create with a task.
type ChecklistInput struct {
	Text      string           `json:"text" yaml:"text"`
	Type      string           `json:"type,omitempty" yaml:"type,omitempty"`
	Completed bool             `json:"completed,omitempty" yaml:"completed,omitempty"`
	Children  []ChecklistInput `json:"children,omitempty" yaml:"children,omitempty"`
}
