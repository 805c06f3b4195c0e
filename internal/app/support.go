package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	corechecklist "github.com/example/kanban/internal/core/checklist"
	"github.com/example/kanban/internal/models"
	"github.com/example/kanban/internal/ports/secondary"
)

// guardError carries a guard's reason as its message while classifying the
// failure with one of the models sentinels.
type guardError struct {
	reason string
	kind   error
}

func (e *guardError) Error() string { return e.reason }
func (e *guardError) Unwrap() error { return e.kind }

func invalid(reason string) error   { return &guardError{reason: reason, kind: models.ErrInvalid} }
func forbidden(reason string) error { return &guardError{reason: reason, kind: models.ErrForbidden} }
func conflict(reason string) error  { return &guardError{reason: reason, kind: models.ErrConflict} }
func missing(reason string) error   { return &guardError{reason: reason, kind: models.ErrNotFound} }

func isNotFound(err error) bool { return errors.Is(err, models.ErrNotFound) }

// changeRecorder writes change log entries. Failures are logged and never
// returned, so an audit hiccup cannot undo a mutation that already happened.
type changeRecorder struct {
	writer secondary.LogWriter
	logger *zap.Logger
}

func newChangeRecorder(writer secondary.LogWriter, logger *zap.Logger) changeRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return changeRecorder{writer: writer, logger: logger}
}

func (c changeRecorder) created(ctx context.Context, boardID, entityType, entityID string) {
	if c.writer == nil {
		return
	}
	c.check(c.writer.LogCreate(ctx, boardID, entityType, entityID), entityType, entityID)
}

func (c changeRecorder) updated(ctx context.Context, boardID, entityType, entityID, field, oldValue, newValue string) {
	if c.writer == nil || oldValue == newValue {
		return
	}
	c.check(c.writer.LogUpdate(ctx, boardID, entityType, entityID, field, oldValue, newValue), entityType, entityID)
}

func (c changeRecorder) deleted(ctx context.Context, boardID, entityType, entityID string) {
	if c.writer == nil {
		return
	}
	c.check(c.writer.LogDelete(ctx, boardID, entityType, entityID), entityType, entityID)
}

func (c changeRecorder) check(err error, entityType, entityID string) {
	if err != nil {
		c.logger.Warn("change log write failed",
			zap.String("entity_type", entityType),
			zap.String("entity_id", entityID),
			zap.Error(err))
	}
}

// boardContent is everything stored under one board.
type boardContent struct {
	columns []*models.Column
	tasks   []*models.Task // board order, labels and checklist attached
	labels  []*models.Label
}

// boardLoader reads a board's columns, tasks, label links and checklists
// concurrently and assembles them.
type boardLoader struct {
	columnRepo    secondary.ColumnRepository
	taskRepo      secondary.TaskRepository
	labelRepo     secondary.LabelRepository
	checklistRepo secondary.ChecklistRepository
}

func (l boardLoader) load(ctx context.Context, boardID string) (*boardContent, error) {
	var (
		columnRecs []*secondary.ColumnRecord
		taskRecs   []*secondary.TaskRecord
		labelRecs  []*secondary.LabelRecord
		itemRecs   []*secondary.ChecklistItemRecord
		labelNames map[string][]string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		columnRecs, err = l.columnRepo.List(gctx, boardID)
		return err
	})
	g.Go(func() (err error) {
		taskRecs, err = l.taskRepo.List(gctx, secondary.TaskFilters{BoardID: boardID})
		return err
	})
	g.Go(func() (err error) {
		labelRecs, err = l.labelRepo.List(gctx, boardID)
		return err
	})
	g.Go(func() (err error) {
		labelNames, err = l.taskRepo.LabelNames(gctx, boardID)
		return err
	})
	g.Go(func() (err error) {
		itemRecs, err = l.checklistRepo.ListByBoard(gctx, boardID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load board %s: %w", boardID, err)
	}

	itemsByTask := make(map[string][]*models.ChecklistItem)
	for _, r := range itemRecs {
		itemsByTask[r.TaskID] = append(itemsByTask[r.TaskID], recordToChecklistItem(r))
	}

	content := &boardContent{
		columns: make([]*models.Column, len(columnRecs)),
		tasks:   make([]*models.Task, len(taskRecs)),
		labels:  make([]*models.Label, len(labelRecs)),
	}
	for i, r := range columnRecs {
		content.columns[i] = recordToColumn(r)
	}
	for i, r := range taskRecs {
		t := recordToTask(r)
		t.Labels = labelNamesOrEmpty(labelNames[r.ID])
		t.Checklist = corechecklist.BuildTree(itemsByTask[r.ID])
		if t.Checklist == nil {
			t.Checklist = []*models.ChecklistItem{}
		}
		content.tasks[i] = t
	}
	for i, r := range labelRecs {
		content.labels[i] = recordToLabel(r)
	}
	return content, nil
}

func labelNamesOrEmpty(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}

// Record conversions

func recordToBoard(r *secondary.BoardRecord) *models.Board {
	return &models.Board{
		ID:              r.ID,
		Name:            r.Name,
		OwnerID:         r.OwnerID,
		IsDefault:       r.IsDefault,
		CalendarURL:     r.CalendarURL,
		WeatherLocation: r.WeatherLocation,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func recordToColumn(r *secondary.ColumnRecord) *models.Column {
	return &models.Column{
		ID:        r.ID,
		BoardID:   r.BoardID,
		Title:     r.Title,
		Position:  r.Position,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func recordToTask(r *secondary.TaskRecord) *models.Task {
	return &models.Task{
		ID:          r.ID,
		BoardID:     r.BoardID,
		ColumnID:    r.ColumnID,
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date,
		ImageURL:    r.ImageURL,
		Position:    r.Position,
		CreatedBy:   r.CreatedBy,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		Labels:      []string{},
	}
}

func recordToLabel(r *secondary.LabelRecord) *models.Label {
	return &models.Label{
		ID:         r.ID,
		BoardID:    r.BoardID,
		Name:       r.Name,
		Color:      r.Color,
		Pinned:     r.Pinned,
		UsageCount: r.UsageCount,
	}
}

func recordToChecklistItem(r *secondary.ChecklistItemRecord) *models.ChecklistItem {
	return &models.ChecklistItem{
		ID:        r.ID,
		TaskID:    r.TaskID,
		ParentID:  r.ParentID,
		Text:      r.Text,
		Completed: r.Completed,
		Type:      r.Type,
		Position:  r.Position,
	}
}

func recordToMember(r *secondary.MemberRecord) *models.Member {
	return &models.Member{
		BoardID:   r.BoardID,
		UserID:    r.UserID,
		Role:      r.Role,
		CreatedAt: r.CreatedAt,
	}
}

func recordToChatMessage(r *secondary.ChatMessageRecord) *models.ChatMessage {
	return &models.ChatMessage{
		ID:        r.ID,
		BoardID:   r.BoardID,
		UserID:    r.UserID,
		Sender:    r.Sender,
		Content:   r.Content,
		Timestamp: r.Timestamp,
	}
}

func recordToChangeLog(r *secondary.ChangeLogRecord) *models.ChangeLog {
	return &models.ChangeLog{
		ID:         r.ID,
		BoardID:    r.BoardID,
		ActorID:    r.ActorID,
		Action:     r.Action,
		EntityType: r.EntityType,
		EntityID:   r.EntityID,
		Details:    r.Details,
		Timestamp:  r.Timestamp,
	}
}
