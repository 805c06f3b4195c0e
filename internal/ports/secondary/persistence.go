// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"time"
)

// BoardRepository defines the secondary port for board persistence,
// including membership and invites.
type BoardRepository interface {
	// Create persists a new board.
	Create(ctx context.Context, board *BoardRecord) error

	// GetByID retrieves a board by its ID.
	GetByID(ctx context.Context, id string) (*BoardRecord, error)

	// GetDefault retrieves the default board.
	GetDefault(ctx context.Context) (*BoardRecord, error)

	// List retrieves boards matching the given filters, oldest first.
	List(ctx context.Context, filters BoardFilters) ([]*BoardRecord, error)

	// Update replaces the mutable fields of a board.
	Update(ctx context.Context, board *BoardRecord) error

	// Delete removes a board and everything it owns.
	Delete(ctx context.Context, id string) error

	// GetNextID returns the next available board ID.
	GetNextID(ctx context.Context) (string, error)

	// AddMember links a user to a board. Adding an existing member is a no-op.
	AddMember(ctx context.Context, member *MemberRecord) error

	// GetMember retrieves a membership.
	GetMember(ctx context.Context, boardID, userID string) (*MemberRecord, error)

	// ListMembers retrieves the members of a board.
	ListMembers(ctx context.Context, boardID string) ([]*MemberRecord, error)

	// RemoveMember unlinks a user from a board.
	RemoveMember(ctx context.Context, boardID, userID string) error

	// CreateInvite persists an invite code.
	CreateInvite(ctx context.Context, invite *InviteRecord) error

	// GetInvite retrieves an invite by code.
	GetInvite(ctx context.Context, code string) (*InviteRecord, error)
}

// BoardRecord represents a board as stored in persistence.
type BoardRecord struct {
	ID              string
	Name            string
	OwnerID         string // Empty string means null
	IsDefault       bool
	CalendarURL     string // Empty string means null
	WeatherLocation string // Empty string means null
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// BoardFilters contains filter options for querying boards.
type BoardFilters struct {
	MemberID string // restrict to boards the user belongs to
}

// MemberRecord represents a board membership as stored in persistence.
type MemberRecord struct {
	BoardID   string
	UserID    string
	Role      string
	CreatedAt time.Time
}

// InviteRecord represents an invite as stored in persistence.
type InviteRecord struct {
	Code      string
	BoardID   string
	CreatedBy string // Empty string means null
	CreatedAt time.Time
}

// ColumnRepository defines the secondary port for column persistence.
type ColumnRepository interface {
	// Create persists a new column.
	Create(ctx context.Context, column *ColumnRecord) error

	// GetByID retrieves a column by its ID.
	GetByID(ctx context.Context, id string) (*ColumnRecord, error)

	// List retrieves the columns of a board ordered by position.
	List(ctx context.Context, boardID string) ([]*ColumnRecord, error)

	// Rename changes a column title.
	Rename(ctx context.Context, id, title string) error

	// Delete removes a column and its tasks.
	Delete(ctx context.Context, id string) error

	// SetPositions rewrites positions so ids[i] gets position i.
	SetPositions(ctx context.Context, boardID string, ids []string) error

	// GetNextID returns the next available column ID.
	GetNextID(ctx context.Context) (string, error)
}

// ColumnRecord represents a column as stored in persistence.
type ColumnRecord struct {
	ID        string
	BoardID   string
	Title     string
	Position  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TaskRepository defines the secondary port for task persistence.
type TaskRepository interface {
	// Create persists a new task.
	Create(ctx context.Context, task *TaskRecord) error

	// GetByID retrieves a task by its ID.
	GetByID(ctx context.Context, id string) (*TaskRecord, error)

	// List retrieves tasks matching the given filters ordered by position.
	List(ctx context.Context, filters TaskFilters) ([]*TaskRecord, error)

	// Update replaces the mutable fields of a task (title, description,
	// date, image URL, column).
	Update(ctx context.Context, task *TaskRecord) error

	// Delete removes a task with its checklist and label links.
	Delete(ctx context.Context, id string) error

	// SetPositions rewrites positions so ids[i] gets position i.
	SetPositions(ctx context.Context, boardID string, ids []string) error

	// NextPosition returns the position after the last task of a board.
	NextPosition(ctx context.Context, boardID string) (int, error)

	// GetNextID returns the next available task ID.
	GetNextID(ctx context.Context) (string, error)

	// AttachLabel links a label to a task. Returns false when already linked.
	AttachLabel(ctx context.Context, taskID, labelID string) (bool, error)

	// DetachLabel unlinks a label from a task.
	DetachLabel(ctx context.Context, taskID, labelID string) error

	// LabelNames returns task ID to attached label names for a board.
	LabelNames(ctx context.Context, boardID string) (map[string][]string, error)
}

// TaskRecord represents a task as stored in persistence.
type TaskRecord struct {
	ID          string
	BoardID     string
	ColumnID    string
	Title       string
	Description string // Empty string means null
	Date        string // Empty string means null
	ImageURL    string // Empty string means null
	Position    int
	CreatedBy   string // Empty string means null
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskFilters contains filter options for querying tasks.
type TaskFilters struct {
	BoardID  string
	ColumnID string
}

// LabelRepository defines the secondary port for label persistence.
type LabelRepository interface {
	// Create persists a new label.
	Create(ctx context.Context, label *LabelRecord) error

	// GetByID retrieves a label by its ID.
	GetByID(ctx context.Context, id string) (*LabelRecord, error)

	// GetByName retrieves a label by board and name.
	GetByName(ctx context.Context, boardID, name string) (*LabelRecord, error)

	// List retrieves the labels of a board.
	List(ctx context.Context, boardID string) ([]*LabelRecord, error)

	// Update replaces name, color and pinned.
	Update(ctx context.Context, label *LabelRecord) error

	// Delete removes a label and strips it from every task.
	Delete(ctx context.Context, id string) error

	// IncrementUsage bumps the usage counter of a label.
	IncrementUsage(ctx context.Context, id string) error

	// GetNextID returns the next available label ID.
	GetNextID(ctx context.Context) (string, error)
}

// LabelRecord represents a label as stored in persistence.
type LabelRecord struct {
	ID         string
	BoardID    string
	Name       string
	Color      string
	Pinned     bool
	UsageCount int
}

// ChecklistRepository defines the secondary port for checklist persistence.
type ChecklistRepository interface {
	// Create persists a new checklist item.
	Create(ctx context.Context, item *ChecklistItemRecord) error

	// GetByID retrieves a checklist item by its ID.
	GetByID(ctx context.Context, id string) (*ChecklistItemRecord, error)

	// ListByTask retrieves the flat checklist of a task ordered by position.
	ListByTask(ctx context.Context, taskID string) ([]*ChecklistItemRecord, error)

	// ListByBoard retrieves every checklist item of a board's tasks.
	ListByBoard(ctx context.Context, boardID string) ([]*ChecklistItemRecord, error)

	// UpdateText changes the text of an item.
	UpdateText(ctx context.Context, id, text string) error

	// SetCompleted sets the completed flag of every listed item.
	SetCompleted(ctx context.Context, ids []string, completed bool) error

	// Delete removes an item and its descendants.
	Delete(ctx context.Context, id string) error

	// NextPosition returns the position after the last sibling under parentID
	// (empty parentID means top level).
	NextPosition(ctx context.Context, taskID, parentID string) (int, error)

	// GetNextID returns the next available checklist item ID.
	GetNextID(ctx context.Context) (string, error)
}

// ChecklistItemRecord represents a checklist item as stored in persistence.
type ChecklistItemRecord struct {
	ID        string
	TaskID    string
	ParentID  string // Empty string means null
	Text      string
	Completed bool
	Type      string
	Position  int
}

// ChatRepository defines the secondary port for chat history persistence.
type ChatRepository interface {
	// Create persists a chat message.
	Create(ctx context.Context, msg *ChatMessageRecord) error

	// List retrieves the latest messages of a board in chronological order.
	// A limit of 0 returns the whole history.
	List(ctx context.Context, boardID string, limit int) ([]*ChatMessageRecord, error)

	// DeleteByBoard clears the history of a board.
	DeleteByBoard(ctx context.Context, boardID string) (int, error)
}

// ChatMessageRecord represents a chat message as stored in persistence.
type ChatMessageRecord struct {
	ID        string
	BoardID   string
	UserID    string // Empty string means null
	Sender    string
	Content   string
	Timestamp time.Time
}

// ChangeLogRepository defines the secondary port for audit log persistence.
type ChangeLogRepository interface {
	// Create persists a new log entry.
	Create(ctx context.Context, log *ChangeLogRecord) error

	// GetByID retrieves a log entry by its ID.
	GetByID(ctx context.Context, id string) (*ChangeLogRecord, error)

	// List retrieves log entries matching the given filters, newest first.
	List(ctx context.Context, filters ChangeLogFilters) ([]*ChangeLogRecord, error)

	// GetNextID returns the next available log ID.
	GetNextID(ctx context.Context) (string, error)

	// PruneOlderThan deletes log entries older than the given number of days.
	// Returns the number of deleted entries.
	PruneOlderThan(ctx context.Context, days int) (int, error)
}

// ChangeLogRecord represents a change log entry as stored in persistence.
type ChangeLogRecord struct {
	ID         string
	BoardID    string
	ActorID    string // Empty string means null
	Action     string // 'create', 'update', 'delete'
	EntityType string
	EntityID   string
	Details    string // JSON object, empty string means null
	Timestamp  time.Time
}

// ChangeLogFilters contains filter options for querying logs.
type ChangeLogFilters struct {
	BoardID    string
	EntityType string
	EntityID   string
	ActorID    string
	Action     string
	Limit      int
}

// WorkspaceStateStore persists client UI state between invocations.
type WorkspaceStateStore interface {
	Load() (*WorkspaceState, error)
	Save(state *WorkspaceState) error
}

// WorkspaceState is the persisted client UI state.
type WorkspaceState struct {
	SelectedBoard string `json:"selected_board"`
	DarkMode      bool   `json:"dark_mode"`
	SearchQuery   string `json:"search_query,omitempty"`
	TagSearch     string `json:"tag_search,omitempty"`
}
