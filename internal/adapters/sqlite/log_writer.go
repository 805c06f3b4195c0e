package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/kanban/internal/ctxutil"
	"github.com/example/kanban/internal/models"
	"github.com/example/kanban/internal/ports/secondary"
)

// LogWriterAdapter implements secondary.LogWriter using ChangeLogRepository.
type LogWriterAdapter struct {
	logRepo secondary.ChangeLogRepository
}

// NewLogWriterAdapter creates a new LogWriterAdapter.
func NewLogWriterAdapter(logRepo secondary.ChangeLogRepository) *LogWriterAdapter {
	return &LogWriterAdapter{logRepo: logRepo}
}

// LogCreate logs a create operation for an entity.
func (w *LogWriterAdapter) LogCreate(ctx context.Context, boardID, entityType, entityID string) error {
	return w.writeLog(ctx, boardID, models.ActionCreate, entityType, entityID, nil)
}

// LogUpdate logs an update operation for an entity field.
func (w *LogWriterAdapter) LogUpdate(ctx context.Context, boardID, entityType, entityID, fieldName, oldValue, newValue string) error {
	return w.writeLog(ctx, boardID, models.ActionUpdate, entityType, entityID, &fieldChange{
		Field: fieldName,
		Old:   oldValue,
		New:   newValue,
	})
}

// LogDelete logs a delete operation for an entity.
func (w *LogWriterAdapter) LogDelete(ctx context.Context, boardID, entityType, entityID string) error {
	return w.writeLog(ctx, boardID, models.ActionDelete, entityType, entityID, nil)
}

type fieldChange struct {
	Field string `json:"field"`
	Old   string `json:"old"`
	New   string `json:"new"`
}

func (w *LogWriterAdapter) writeLog(ctx context.Context, boardID, action, entityType, entityID string, change *fieldChange) error {
	id, err := w.logRepo.GetNextID(ctx)
	if err != nil {
		return err
	}

	var details string
	if change != nil {
		raw, err := json.Marshal(change)
		if err != nil {
			return fmt.Errorf("failed to encode log details: %w", err)
		}
		details = string(raw)
	}

	return w.logRepo.Create(ctx, &secondary.ChangeLogRecord{
		ID:         id,
		BoardID:    boardID,
		ActorID:    ctxutil.UserFromContext(ctx),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
	})
}

// Ensure LogWriterAdapter implements the interface
var _ secondary.LogWriter = (*LogWriterAdapter)(nil)
