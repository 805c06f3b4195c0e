package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/kanban/internal/ports/secondary"
)

// ChecklistRepository implements secondary.ChecklistRepository with PostgreSQL.
type ChecklistRepository struct {
	pool *pgxpool.Pool
}

const checklistSelectCols = "c.id, c.task_id, c.parent_id, c.text, c.completed, c.type, c.position"

func scanChecklistItem(row pgx.Row) (*secondary.ChecklistItemRecord, error) {
	var parent pgtype.Text
	item := &secondary.ChecklistItemRecord{}
	if err := row.Scan(&item.ID, &item.TaskID, &parent, &item.Text, &item.Completed, &item.Type, &item.Position); err != nil {
		return nil, err
	}
	item.ParentID = parent.String
	return item, nil
}

func (r *ChecklistRepository) Create(ctx context.Context, item *secondary.ChecklistItemRecord) error {
	_, err := r.pool.Exec(ctx,
		"INSERT INTO checklist_items (id, task_id, parent_id, text, completed, type, position) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		item.ID, item.TaskID, text(item.ParentID), item.Text, item.Completed, item.Type, item.Position)
	if err != nil {
		return fmt.Errorf("failed to create checklist item %s: %w", item.ID, err)
	}
	return nil
}

func (r *ChecklistRepository) GetByID(ctx context.Context, id string) (*secondary.ChecklistItemRecord, error) {
	item, err := scanChecklistItem(r.pool.QueryRow(ctx, "SELECT "+checklistSelectCols+" FROM checklist_items c WHERE c.id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("checklist item", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get checklist item %s: %w", id, err)
	}
	return item, nil
}

func (r *ChecklistRepository) ListByTask(ctx context.Context, taskID string) ([]*secondary.ChecklistItemRecord, error) {
	return r.list(ctx,
		"SELECT "+checklistSelectCols+" FROM checklist_items c WHERE c.task_id = $1 ORDER BY c.position ASC, c.id ASC", taskID)
}

func (r *ChecklistRepository) ListByBoard(ctx context.Context, boardID string) ([]*secondary.ChecklistItemRecord, error) {
	return r.list(ctx,
		"SELECT "+checklistSelectCols+" FROM checklist_items c JOIN tasks t ON t.id = c.task_id WHERE t.board_id = $1 ORDER BY c.task_id, c.position ASC, c.id ASC",
		boardID)
}

func (r *ChecklistRepository) list(ctx context.Context, query string, args ...any) ([]*secondary.ChecklistItemRecord, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list checklist items: %w", err)
	}
	defer rows.Close()

	var items []*secondary.ChecklistItemRecord
	for rows.Next() {
		item, err := scanChecklistItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan checklist item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *ChecklistRepository) UpdateText(ctx context.Context, id, text string) error {
	tag, err := r.pool.Exec(ctx, "UPDATE checklist_items SET text = $2 WHERE id = $1", id, text)
	if err != nil {
		return fmt.Errorf("failed to update checklist item %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("checklist item", id)
	}
	return nil
}

func (r *ChecklistRepository) SetCompleted(ctx context.Context, ids []string, completed bool) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := r.pool.Exec(ctx, "UPDATE checklist_items SET completed = $1 WHERE id = ANY($2)", completed, ids); err != nil {
		return fmt.Errorf("failed to update checklist items: %w", err)
	}
	return nil
}

func (r *ChecklistRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM checklist_items WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete checklist item %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("checklist item", id)
	}
	return nil
}

func (r *ChecklistRepository) NextPosition(ctx context.Context, taskID, parentID string) (int, error) {
	var pos int
	err := r.pool.QueryRow(ctx,
		"SELECT COALESCE(MAX(position) + 1, 0) FROM checklist_items WHERE task_id = $1 AND COALESCE(parent_id, '') = $2",
		taskID, parentID,
	).Scan(&pos)
	if err != nil {
		return 0, fmt.Errorf("failed to get next checklist position: %w", err)
	}
	return pos, nil
}

func (r *ChecklistRepository) GetNextID(ctx context.Context) (string, error) {
	id, err := nextID(ctx, r.pool, "checklist_items", "CHK-", 3)
	if err != nil {
		return "", fmt.Errorf("failed to get next checklist ID: %w", err)
	}
	return id, nil
}
