package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	coreboard "github.com/example/kanban/internal/core/board"
	coretask "github.com/example/kanban/internal/core/task"
	"github.com/example/kanban/internal/models"
	"github.com/example/kanban/internal/ports/primary"
	"github.com/example/kanban/internal/ports/secondary"
)

// ColumnServiceImpl implements the ColumnService interface.
type ColumnServiceImpl struct {
	boardRepo  secondary.BoardRepository
	columnRepo secondary.ColumnRepository
	changes    changeRecorder
}

// NewColumnService creates a new ColumnService with injected dependencies.
func NewColumnService(
	boardRepo secondary.BoardRepository,
	columnRepo secondary.ColumnRepository,
	logWriter secondary.LogWriter,
	logger *zap.Logger,
) *ColumnServiceImpl {
	return &ColumnServiceImpl{
		boardRepo:  boardRepo,
		columnRepo: columnRepo,
		changes:    newChangeRecorder(logWriter, logger),
	}
}

// AddColumn appends a column to a board.
func (s *ColumnServiceImpl) AddColumn(ctx context.Context, boardID, title string) (*models.Column, error) {
	title = strings.TrimSpace(title)
	if r := coreboard.ValidateName("column", title); !r.Allowed {
		return nil, invalid(r.Reason)
	}
	if _, err := s.boardRepo.GetByID(ctx, boardID); err != nil {
		return nil, err
	}

	existing, err := s.columnRepo.List(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns: %w", err)
	}

	id, err := s.columnRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate column ID: %w", err)
	}
	record := &secondary.ColumnRecord{
		ID:       id,
		BoardID:  boardID,
		Title:    title,
		Position: len(existing),
	}
	if err := s.columnRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create column: %w", err)
	}

	s.changes.created(ctx, boardID, models.EntityColumn, id)
	return recordToColumn(record), nil
}

// ListColumns lists the columns of a board in order.
func (s *ColumnServiceImpl) ListColumns(ctx context.Context, boardID string) ([]*models.Column, error) {
	records, err := s.columnRepo.List(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns: %w", err)
	}
	columns := make([]*models.Column, len(records))
	for i, r := range records {
		columns[i] = recordToColumn(r)
	}
	return columns, nil
}

// RenameColumn changes a column title.
func (s *ColumnServiceImpl) RenameColumn(ctx context.Context, columnID, title string) error {
	title = strings.TrimSpace(title)
	if r := coreboard.ValidateName("column", title); !r.Allowed {
		return invalid(r.Reason)
	}

	record, err := s.columnRepo.GetByID(ctx, columnID)
	if err != nil {
		return err
	}
	if err := s.columnRepo.Rename(ctx, columnID, title); err != nil {
		return fmt.Errorf("failed to rename column: %w", err)
	}

	s.changes.updated(ctx, record.BoardID, models.EntityColumn, columnID, "title", record.Title, title)
	return nil
}

// MoveColumn moves a column to a new index within its board. The index is
// clamped and positions are re-sequenced from 0.
func (s *ColumnServiceImpl) MoveColumn(ctx context.Context, columnID string, position int) error {
	record, err := s.columnRepo.GetByID(ctx, columnID)
	if err != nil {
		return err
	}

	columns, err := s.columnRepo.List(ctx, record.BoardID)
	if err != nil {
		return fmt.Errorf("failed to list columns: %w", err)
	}
	order := make([]string, len(columns))
	oldIndex := 0
	for i, c := range columns {
		order[i] = c.ID
		if c.ID == columnID {
			oldIndex = i
		}
	}

	reordered := coretask.MoveTo(order, columnID, position)
	if err := s.columnRepo.SetPositions(ctx, record.BoardID, reordered); err != nil {
		return fmt.Errorf("failed to move column: %w", err)
	}

	s.changes.updated(ctx, record.BoardID, models.EntityColumn, columnID, "position",
		fmt.Sprint(oldIndex), fmt.Sprint(indexOf(reordered, columnID)))
	return nil
}

// DeleteColumn deletes a column with all of its tasks.
func (s *ColumnServiceImpl) DeleteColumn(ctx context.Context, columnID string) error {
	record, err := s.columnRepo.GetByID(ctx, columnID)
	if err != nil {
		return err
	}
	if err := s.columnRepo.Delete(ctx, columnID); err != nil {
		return fmt.Errorf("failed to delete column: %w", err)
	}

	remaining, err := s.columnRepo.List(ctx, record.BoardID)
	if err != nil {
		return fmt.Errorf("failed to list columns: %w", err)
	}
	ids := make([]string, len(remaining))
	for i, c := range remaining {
		ids[i] = c.ID
	}
	if err := s.columnRepo.SetPositions(ctx, record.BoardID, ids); err != nil {
		return fmt.Errorf("failed to compact column positions: %w", err)
	}

	s.changes.deleted(ctx, record.BoardID, models.EntityColumn, columnID)
	return nil
}

// Ensure ColumnServiceImpl implements the interface
var _ primary.ColumnService = (*ColumnServiceImpl)(nil)
