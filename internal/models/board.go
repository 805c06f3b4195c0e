// Package models contains domain types for kanban entities.
// SQL persistence lives in internal/adapters/sqlite and internal/adapters/postgres.
package models

import "time"

// Board is a named dashboard owning columns, tasks, labels and chat history.
type Board struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	OwnerID         string    `json:"owner_id,omitempty"`
	IsDefault       bool      `json:"is_default"`
	CalendarURL     string    `json:"google_calendar_url,omitempty"`
	WeatherLocation string    `json:"weather_location,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Member links a user to a board.
type Member struct {
	BoardID   string    `json:"board_id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Invite is a shareable code granting membership to a board.
type Invite struct {
	Code      string    `json:"code"`
	BoardID   string    `json:"board_id"`
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// DefaultBoardName is the name of the board created on first initialisation.
const DefaultBoardName = "Main"

// DefaultColumnTitles are the columns every new board starts with, in order.
var DefaultColumnTitles = []string{"To Do", "In Progress", "Done"}

// Member roles
const (
	RoleOwner  = "owner"
	RoleMember = "member"
)
