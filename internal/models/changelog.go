package models

import "time"

// ChangeLog is an audit entry describing one mutation on a board.
type ChangeLog struct {
	ID         string    `json:"id"`
	BoardID    string    `json:"board_id"`
	ActorID    string    `json:"actor_id,omitempty"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Details    string    `json:"details,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Change log actions
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Entity types recorded in change logs
const (
	EntityBoard     = "board"
	EntityColumn    = "column"
	EntityTask      = "task"
	EntityLabel     = "label"
	EntityChecklist = "checklist_item"
	EntityMember    = "member"
)
