package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/kanban/internal/ports/secondary"
)

// TaskRepository implements secondary.TaskRepository with SQLite.
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new SQLite task repository.
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// scanTask scans a task row into a TaskRecord.
func scanTask(s scanner) (*secondary.TaskRecord, error) {
	var (
		desc      sql.NullString
		date      sql.NullString
		imageURL  sql.NullString
		createdBy sql.NullString
	)

	record := &secondary.TaskRecord{}
	err := s.Scan(
		&record.ID, &record.BoardID, &record.ColumnID, &record.Title, &desc,
		&date, &imageURL, &record.Position, &createdBy, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Description = desc.String
	record.Date = date.String
	record.ImageURL = imageURL.String
	record.CreatedBy = createdBy.String

	return record, nil
}

const taskSelectCols = "id, board_id, column_id, title, description, date, image_url, position, created_by, created_at, updated_at"

// Create persists a new task.
func (r *TaskRepository) Create(ctx context.Context, task *secondary.TaskRecord) error {
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}
	task.UpdatedAt = task.CreatedAt

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO tasks (id, board_id, column_id, title, description, date, image_url, position, created_by, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		task.ID, task.BoardID, task.ColumnID, task.Title, nullString(task.Description),
		nullString(task.Date), nullString(task.ImageURL), task.Position, nullString(task.CreatedBy),
		task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// GetByID retrieves a task by its ID.
func (r *TaskRepository) GetByID(ctx context.Context, id string) (*secondary.TaskRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+taskSelectCols+" FROM tasks WHERE id = ?",
		id,
	)

	record, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, notFound("task", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return record, nil
}

// List retrieves tasks matching the given filters.
func (r *TaskRepository) List(ctx context.Context, filters secondary.TaskFilters) ([]*secondary.TaskRecord, error) {
	query := "SELECT " + taskSelectCols + " FROM tasks WHERE 1=1"
	args := []any{}

	if filters.BoardID != "" {
		query += " AND board_id = ?"
		args = append(args, filters.BoardID)
	}

	if filters.ColumnID != "" {
		query += " AND column_id = ?"
		args = append(args, filters.ColumnID)
	}

	query += " ORDER BY position ASC, created_at ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*secondary.TaskRecord
	for rows.Next() {
		record, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, record)
	}

	return tasks, rows.Err()
}

// Update replaces the mutable fields of a task.
func (r *TaskRepository) Update(ctx context.Context, task *secondary.TaskRecord) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE tasks SET column_id = ?, title = ?, description = ?, date = ?, image_url = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		task.ColumnID, task.Title, nullString(task.Description), nullString(task.Date), nullString(task.ImageURL), task.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return notFound("task", task.ID)
	}

	return nil
}

// Delete removes a task from persistence.
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return notFound("task", id)
	}

	return nil
}

// SetPositions rewrites positions so ids[i] gets position i.
func (r *TaskRepository) SetPositions(ctx context.Context, boardID string, ids []string) error {
	if err := setPositions(ctx, r.db, "tasks", boardID, ids); err != nil {
		return fmt.Errorf("failed to reorder tasks: %w", err)
	}
	return nil
}

// NextPosition returns the position after the last task of a board.
func (r *TaskRepository) NextPosition(ctx context.Context, boardID string) (int, error) {
	var pos int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(position) + 1, 0) FROM tasks WHERE board_id = ?",
		boardID,
	).Scan(&pos)
	if err != nil {
		return 0, fmt.Errorf("failed to get next task position: %w", err)
	}
	return pos, nil
}

// GetNextID returns the next available task ID.
func (r *TaskRepository) GetNextID(ctx context.Context) (string, error) {
	id, err := nextID(ctx, r.db, "tasks", "TASK-", 3)
	if err != nil {
		return "", fmt.Errorf("failed to get next task ID: %w", err)
	}
	return id, nil
}

// AttachLabel links a label to a task. Returns false when already linked.
func (r *TaskRepository) AttachLabel(ctx context.Context, taskID, labelID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO task_labels (task_id, label_id) VALUES (?, ?)",
		taskID, labelID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to attach label: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	return rowsAffected > 0, nil
}

// DetachLabel unlinks a label from a task.
func (r *TaskRepository) DetachLabel(ctx context.Context, taskID, labelID string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM task_labels WHERE task_id = ? AND label_id = ?",
		taskID, labelID,
	)
	if err != nil {
		return fmt.Errorf("failed to detach label: %w", err)
	}
	return nil
}

// LabelNames returns task ID to attached label names for a board.
func (r *TaskRepository) LabelNames(ctx context.Context, boardID string) (map[string][]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT tl.task_id, l.name
		FROM task_labels tl
		JOIN labels l ON l.id = tl.label_id
		JOIN tasks t ON t.id = tl.task_id
		WHERE t.board_id = ?
		ORDER BY l.name ASC`,
		boardID,
	)
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

// Ensure TaskRepository implements the interface
var _ secondary.TaskRepository = (*TaskRepository)(nil)
