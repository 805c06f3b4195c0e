package models

// Label is a named, colored tag scoped to a board.
type Label struct {
	ID         string `json:"id"`
	BoardID    string `json:"board_id"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	Pinned     bool   `json:"pinned"`
	UsageCount int    `json:"usage_count"`
}

// DefaultLabelColor is used when a label is attached by name before it exists.
const DefaultLabelColor = "#6b7280"
