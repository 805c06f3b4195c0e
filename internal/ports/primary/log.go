package primary

import (
	"context"

	"github.com/example/kanban/internal/models"
)

// LogService defines the primary port for board change log operations.
type LogService interface {
	// ListLogs retrieves log entries matching the given filters.
	ListLogs(ctx context.Context, filters LogFilters) ([]*models.ChangeLog, error)

	// GetLog retrieves a single log entry by ID.
	GetLog(ctx context.Context, id string) (*models.ChangeLog, error)

	// PruneLogs deletes log entries older than the specified number of days.
	PruneLogs(ctx context.Context, olderThanDays int) (int, error)
}

// LogFilters contains filter options for querying logs.
type LogFilters struct {
	BoardID    string
	EntityType string
	EntityID   string
	ActorID    string
	Action     string
	Limit      int
}
