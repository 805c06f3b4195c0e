package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/kanban/internal/ports/secondary"
)

// TaskRepository implements secondary.TaskRepository with PostgreSQL.
type TaskRepository struct {
	pool *pgxpool.Pool
}

const taskSelectCols = "id, board_id, column_id, title, description, date, image_url, position, created_by, created_at, updated_at"

func scanTask(row pgx.Row) (*secondary.TaskRecord, error) {
	var desc, date, image, createdBy pgtype.Text
	t := &secondary.TaskRecord{}
	err := row.Scan(&t.ID, &t.BoardID, &t.ColumnID, &t.Title, &desc, &date, &image, &t.Position, &createdBy, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.Description = desc.String
	t.Date = date.String
	t.ImageURL = image.String
	t.CreatedBy = createdBy.String
	return t, nil
}

func (r *TaskRepository) Create(ctx context.Context, task *secondary.TaskRecord) error {
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}
	task.UpdatedAt = task.CreatedAt
	_, err := r.pool.Exec(ctx,
		`INSERT INTO tasks (id, board_id, column_id, title, description, date, image_url, position, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		task.ID, task.BoardID, task.ColumnID, task.Title, text(task.Description), text(task.Date), text(task.ImageURL),
		task.Position, text(task.CreatedBy), task.CreatedAt, task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create task %s: %w", task.ID, err)
	}
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*secondary.TaskRecord, error) {
	t, err := scanTask(r.pool.QueryRow(ctx, "SELECT "+taskSelectCols+" FROM tasks WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("task", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task %s: %w", id, err)
	}
	return t, nil
}

func (r *TaskRepository) List(ctx context.Context, filters secondary.TaskFilters) ([]*secondary.TaskRecord, error) {
	query := "SELECT " + taskSelectCols + " FROM tasks WHERE true"
	args := []any{}
	if filters.BoardID != "" {
		args = append(args, filters.BoardID)
		query += fmt.Sprintf(" AND board_id = $%d", len(args))
	}
	if filters.ColumnID != "" {
		args = append(args, filters.ColumnID)
		query += fmt.Sprintf(" AND column_id = $%d", len(args))
	}
	query += " ORDER BY position ASC, created_at ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*secondary.TaskRecord
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepository) Update(ctx context.Context, task *secondary.TaskRecord) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE tasks SET column_id = $2, title = $3, description = $4, date = $5, image_url = $6, updated_at = now()
		 WHERE id = $1`,
		task.ID, task.ColumnID, task.Title, text(task.Description), text(task.Date), text(task.ImageURL))
	if err != nil {
		return fmt.Errorf("failed to update task %s: %w", task.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("task", task.ID)
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("task", id)
	}
	return nil
}

func (r *TaskRepository) SetPositions(ctx context.Context, boardID string, ids []string) error {
	if err := setPositions(ctx, r.pool, "tasks", boardID, ids); err != nil {
		return fmt.Errorf("failed to reorder tasks: %w", err)
	}
	return nil
}

func (r *TaskRepository) NextPosition(ctx context.Context, boardID string) (int, error) {
	var pos int
	err := r.pool.QueryRow(ctx, "SELECT COALESCE(MAX(position) + 1, 0) FROM tasks WHERE board_id = $1", boardID).Scan(&pos)
	if err != nil {
		return 0, fmt.Errorf("failed to get next task position: %w", err)
	}
	return pos, nil
}

func (r *TaskRepository) GetNextID(ctx context.Context) (string, error) {
	id, err := nextID(ctx, r.pool, "tasks", "TASK-", 3)
	if err != nil {
		return "", fmt.Errorf("failed to get next task ID: %w", err)
	}
	return id, nil
}

func (r *TaskRepository) AttachLabel(ctx context.Context, taskID, labelID string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		"INSERT INTO task_labels (task_id, label_id) VALUES ($1, $2) ON CONFLICT DO NOTHING", taskID, labelID)
	if err != nil {
		return false, fmt.Errorf("failed to attach label: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *TaskRepository) DetachLabel(ctx context.Context, taskID, labelID string) error {
	if _, err := r.pool.Exec(ctx, "DELETE FROM task_labels WHERE task_id = $1 AND label_id = $2", taskID, labelID); err != nil {
		return fmt.Errorf("failed to detach label: %w", err)
	}
	return nil
}

func (r *TaskRepository) LabelNames(ctx context.Context, boardID string) (map[string][]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT tl.task_id, l.name
		FROM task_labels tl
		JOIN labels l ON l.id = tl.label_id
		JOIN tasks t ON t.id = tl.task_id
		WHERE t.board_id = $1
		ORDER BY l.name ASC`, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list task labels: %w", err)
	}
	defer rows.Close()

	names := make(map[string][]string)
	for rows.Next() {
		var taskID, name string
		if err := rows.Scan(&taskID, &name); err != nil {
			return nil, fmt.Errorf("failed to scan task label: %w", err)
		}
		names[taskID] = append(names[taskID], name)
	}
	return names, rows.Err()
}
