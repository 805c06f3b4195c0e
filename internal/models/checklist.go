package models

// ChecklistItem is an entry of a task checklist. Groups may hold children.
type ChecklistItem struct {
	ID        string           `json:"id"`
	TaskID    string           `json:"task_id"`
	ParentID  string           `json:"parent_id,omitempty"`
	Text      string           `json:"text"`
	Completed bool             `json:"completed"`
	Type      string           `json:"type"`
	Position  int              `json:"position"`
	Children  []*ChecklistItem `json:"children,omitempty"`
}

// Checklist item types
const (
	ChecklistTypeItem  = "item"
	ChecklistTypeGroup = "group"
)
