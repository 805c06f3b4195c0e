// Package primary defines the primary ports (driving adapters) for the application.
package primary

import (
	"context"

	"github.com/example/kanban/internal/models"
)

// BoardService defines the primary port for board (dashboard) operations.
type BoardService interface {
	// EnsureDefaultBoard returns the default board, creating it when missing.
	EnsureDefaultBoard(ctx context.Context) (*models.Board, error)

	// CreateBoard creates a board with the default columns and selects it.
	CreateBoard(ctx context.Context, name string) (*models.Board, error)

	// GetBoard retrieves a board by ID.
	GetBoard(ctx context.Context, boardID string) (*models.Board, error)

	// ListBoards lists the boards visible to the acting user.
	ListBoards(ctx context.Context) ([]*models.Board, error)

	// RenameBoard changes a board's name.
	RenameBoard(ctx context.Context, boardID, name string) error

	// DeleteBoard deletes a board and moves the selection off it.
	DeleteBoard(ctx context.Context, boardID string) error

	// SelectBoard makes a board the current one.
	SelectBoard(ctx context.Context, boardID string) error

	// CurrentBoard resolves the selected board, falling back to the default.
	CurrentBoard(ctx context.Context) (*models.Board, error)

	// SetCalendarURL stores the calendar embed URL of a board.
	SetCalendarURL(ctx context.Context, boardID, url string) error

	// ClearCalendarURL removes the calendar embed URL of a board.
	ClearCalendarURL(ctx context.Context, boardID string) error

	// SetWeatherLocation stores the weather widget location of a board.
	SetWeatherLocation(ctx context.Context, boardID, location string) error

	// ClearWeatherLocation removes the weather widget location of a board.
	ClearWeatherLocation(ctx context.Context, boardID string) error

	// GetBoardView loads a board with columns, tasks, labels and checklists.
	GetBoardView(ctx context.Context, boardID string) (*BoardView, error)

	// ExportBoard captures a board as a portable snapshot.
	ExportBoard(ctx context.Context, boardID string) (*BoardSnapshot, error)

	// ImportBoard creates a new board from a snapshot.
	ImportBoard(ctx context.Context, snapshot *BoardSnapshot, name string) (*models.Board, error)
}

// BoardView is a fully loaded board.
type BoardView struct {
	Board   *models.Board   `json:"board"`
	Columns []*ColumnView   `json:"columns"`
	Labels  []*models.Label `json:"labels"`
}

// ColumnView is a column with its tasks in board order.
type ColumnView struct {
	*models.Column
	Tasks []*models.Task `json:"tasks"`
}

// BoardSnapshot is the portable form of a board.
type BoardSnapshot struct {
	Version         int              `json:"version" yaml:"version"`
	Name            string           `json:"name" yaml:"name"`
	CalendarURL     string           `json:"google_calendar_url,omitempty" yaml:"google_calendar_url,omitempty"`
	WeatherLocation string           `json:"weather_location,omitempty" yaml:"weather_location,omitempty"`
	Labels          []SnapshotLabel  `json:"labels,omitempty" yaml:"labels,omitempty"`
	Columns         []SnapshotColumn `json:"columns" yaml:"columns"`
}

// SnapshotLabel is a label inside a snapshot.
type SnapshotLabel struct {
	Name   string `json:"name" yaml:"name"`
	Color  string `json:"color" yaml:"color"`
	Pinned bool   `json:"pinned,omitempty" yaml:"pinned,omitempty"`
}

// SnapshotColumn is a column inside a snapshot.
type SnapshotColumn struct {
	Title string         `json:"title" yaml:"title"`
	Tasks []SnapshotTask `json:"tasks,omitempty" yaml:"tasks,omitempty"`
}

// SnapshotTask is a task inside a snapshot.
type SnapshotTask struct {
	Title       string           `json:"title" yaml:"title"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
	Date        string           `json:"date,omitempty" yaml:"date,omitempty"`
	ImageURL    string           `json:"image_url,omitempty" yaml:"image_url,omitempty"`
	Labels      []string         `json:"labels,omitempty" yaml:"labels,omitempty"`
	Checklist   []ChecklistInput `json:"checklist,omitempty" yaml:"checklist,omitempty"`
}

// SnapshotVersion is the current snapshot format version.
const SnapshotVersion = 1
