package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/example/kanban/internal/ports/secondary"
)

// ChecklistRepository implements secondary.ChecklistRepository with SQLite.
type ChecklistRepository struct {
	db *sql.DB
}

// NewChecklistRepository creates a new SQLite checklist repository.
func NewChecklistRepository(db *sql.DB) *ChecklistRepository {
	return &ChecklistRepository{db: db}
}

const checklistSelectCols = "c.id, c.task_id, c.parent_id, c.text, c.completed, c.type, c.position"

func scanChecklistItem(s scanner) (*secondary.ChecklistItemRecord, error) {
	var parentID sql.NullString
	record := &secondary.ChecklistItemRecord{}
	err := s.Scan(&record.ID, &record.TaskID, &parentID, &record.Text, &record.Completed, &record.Type, &record.Position)
	if err != nil {
		return nil, err
	}
	record.ParentID = parentID.String
	return record, nil
}

// Create persists a new checklist item.
func (r *ChecklistRepository) Create(ctx context.Context, item *secondary.ChecklistItemRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO checklist_items (id, task_id, parent_id, text, completed, type, position) VALUES (?, ?, ?, ?, ?, ?, ?)",
		item.ID, item.TaskID, nullString(item.ParentID), item.Text, item.Completed, item.Type, item.Position,
	)
	if err != nil {
		return fmt.Errorf("failed to create checklist item: %w", err)
	}
	return nil
}

// GetByID retrieves a checklist item by its ID.
func (r *ChecklistRepository) GetByID(ctx context.Context, id string) (*secondary.ChecklistItemRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+checklistSelectCols+" FROM checklist_items c WHERE c.id = ?", id)

	record, err := scanChecklistItem(row)
	if err == sql.ErrNoRows {
		return nil, notFound("checklist item", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get checklist item: %w", err)
	}

	return record, nil
}

// ListByTask retrieves the flat checklist of a task ordered by position.
func (r *ChecklistRepository) ListByTask(ctx context.Context, taskID string) ([]*secondary.ChecklistItemRecord, error) {
	return r.list(ctx,
		"SELECT "+checklistSelectCols+" FROM checklist_items c WHERE c.task_id = ? ORDER BY c.position ASC, c.id ASC",
		taskID,
	)
}

// ListByBoard retrieves every checklist item of a board's tasks.
func (r *ChecklistRepository) ListByBoard(ctx context.Context, boardID string) ([]*secondary.ChecklistItemRecord, error) {
	return r.list(ctx,
		"SELECT "+checklistSelectCols+" FROM checklist_items c JOIN tasks t ON t.id = c.task_id WHERE t.board_id = ? ORDER BY c.task_id, c.position ASC, c.id ASC",
		boardID,
	)
}

func (r *ChecklistRepository) list(ctx context.Context, query string, args ...any) ([]*secondary.ChecklistItemRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list checklist items: %w", err)
	}
	defer rows.Close()

	var items []*secondary.ChecklistItemRecord
	for rows.Next() {
		record, err := scanChecklistItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan checklist item: %w", err)
		}
		items = append(items, record)
	}

	return items, rows.Err()
}

// UpdateText changes the text of an item.
func (r *ChecklistRepository) UpdateText(ctx context.Context, id, text string) error {
	result, err := r.db.ExecContext(ctx, "UPDATE checklist_items SET text = ? WHERE id = ?", text, id)
	if err != nil {
		return fmt.Errorf("failed to update checklist item: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return notFound("checklist item", id)
	}

	return nil
}

// SetCompleted sets the completed flag of every listed item.
func (r *ChecklistRepository) SetCompleted(ctx context.Context, ids []string, completed bool) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, 0, len(ids)+1)
	args = append(args, completed)
	for _, id := range ids {
		args = append(args, id)
	}

	_, err := r.db.ExecContext(ctx,
		"UPDATE checklist_items SET completed = ? WHERE id IN ("+placeholders+")",
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to update checklist items: %w", err)
	}

	return nil
}

// Delete removes an item; descendants are removed by cascade.
func (r *ChecklistRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM checklist_items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete checklist item: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return notFound("checklist item", id)
	}

	return nil
}

// NextPosition returns the position after the last sibling under parentID.
func (r *ChecklistRepository) NextPosition(ctx context.Context, taskID, parentID string) (int, error) {
	var pos int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(position) + 1, 0) FROM checklist_items WHERE task_id = ? AND COALESCE(parent_id, '') = ?",
		taskID, parentID,
	).Scan(&pos)
	if err != nil {
		return 0, fmt.Errorf("failed to get next checklist position: %w", err)
	}
	return pos, nil
}

// GetNextID returns the next available checklist item ID.
func (r *ChecklistRepository) GetNextID(ctx context.Context) (string, error) {
	id, err := nextID(ctx, r.db, "checklist_items", "CHK-", 3)
	if err != nil {
		return "", fmt.Errorf("failed to get next checklist item ID: %w", err)
	}
	return id, nil
}

// Ensure ChecklistRepository implements the interface
var _ secondary.ChecklistRepository = (*ChecklistRepository)(nil)
