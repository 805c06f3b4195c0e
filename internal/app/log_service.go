package app

import (
	"context"
	"fmt"

	"github.com/example/kanban/internal/models"
	"github.com/example/kanban/internal/ports/primary"
	"github.com/example/kanban/internal/ports/secondary"
)

// LogServiceImpl implements the LogService interface.
type LogServiceImpl struct {
	logRepo secondary.ChangeLogRepository
}

// NewLogService creates a new LogService with injected dependencies.
func NewLogService(logRepo secondary.ChangeLogRepository) *LogServiceImpl {
	return &LogServiceImpl{
		logRepo: logRepo,
	}
}

// ListLogs retrieves log entries matching the given filters.
func (s *LogServiceImpl) ListLogs(ctx context.Context, filters primary.LogFilters) ([]*models.ChangeLog, error) {
	records, err := s.logRepo.List(ctx, secondary.ChangeLogFilters{
		BoardID:    filters.BoardID,
		EntityType: filters.EntityType,
		EntityID:   filters.EntityID,
		ActorID:    filters.ActorID,
		Action:     filters.Action,
		Limit:      filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}

	entries := make([]*models.ChangeLog, len(records))
	for i, r := range records {
		entries[i] = recordToChangeLog(r)
	}
	return entries, nil
}

// GetLog retrieves a single log entry by ID.
func (s *LogServiceImpl) GetLog(ctx context.Context, id string) (*models.ChangeLog, error) {
	record, err := s.logRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return recordToChangeLog(record), nil
}

// PruneLogs deletes log entries older than the specified number of days.
func (s *LogServiceImpl) PruneLogs(ctx context.Context, olderThanDays int) (int, error) {
	if olderThanDays < 0 {
		return 0, invalid(fmt.Sprintf("invalid retention %d (expected days >= 0)", olderThanDays))
	}
	return s.logRepo.PruneOlderThan(ctx, olderThanDays)
}

// Ensure LogServiceImpl implements the interface
var _ primary.LogService = (*LogServiceImpl)(nil)
