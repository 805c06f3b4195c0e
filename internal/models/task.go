package models

import "time"

// Task is a card living in exactly one column of a board.
// Position orders tasks board-wide; column membership is ColumnID.
type Task struct {
	ID          string           `json:"id"`
	BoardID     string           `json:"board_id"`
	ColumnID    string           `json:"column_id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Date        string           `json:"date,omitempty"`
	ImageURL    string           `json:"image_url,omitempty"`
	Position    int              `json:"position"`
	CreatedBy   string           `json:"created_by,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	Labels      []string         `json:"labels"`
	Checklist   []*ChecklistItem `json:"checklist"`
}

// TaskDateLayout is the layout of Task.Date.
const TaskDateLayout = "2006-01-02"
