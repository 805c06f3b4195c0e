package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/kanban/internal/ports/secondary"
)

// ColumnRepository implements secondary.ColumnRepository with SQLite.
type ColumnRepository struct {
	db *sql.DB
}

// NewColumnRepository creates a new SQLite column repository.
func NewColumnRepository(db *sql.DB) *ColumnRepository {
	return &ColumnRepository{db: db}
}

const columnSelectCols = "id, board_id, title, position, created_at, updated_at"

func scanColumn(s scanner) (*secondary.ColumnRecord, error) {
	record := &secondary.ColumnRecord{}
	err := s.Scan(&record.ID, &record.BoardID, &record.Title, &record.Position, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Create persists a new column.
func (r *ColumnRepository) Create(ctx context.Context, column *secondary.ColumnRecord) error {
	if column.CreatedAt.IsZero() {
		column.CreatedAt = time.Now().UTC()
	}
	column.UpdatedAt = column.CreatedAt

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO board_columns (id, board_id, title, position, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		column.ID, column.BoardID, column.Title, column.Position, column.CreatedAt, column.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create column: %w", err)
	}

	return nil
}

// GetByID retrieves a column by its ID.
func (r *ColumnRepository) GetByID(ctx context.Context, id string) (*secondary.ColumnRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+columnSelectCols+" FROM board_columns WHERE id = ?", id)

	record, err := scanColumn(row)
	if err == sql.ErrNoRows {
		return nil, notFound("column", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get column: %w", err)
	}

	return record, nil
}

// List retrieves the columns of a board ordered by position.
func (r *ColumnRepository) List(ctx context.Context, boardID string) ([]*secondary.ColumnRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+columnSelectCols+" FROM board_columns WHERE board_id = ? ORDER BY position ASC, created_at ASC",
		boardID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns: %w", err)
	}
	defer rows.Close()

	var columns []*secondary.ColumnRecord
	for rows.Next() {
		record, err := scanColumn(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		columns = append(columns, record)
	}

	return columns, rows.Err()
}

// Rename changes a column title.
func (r *ColumnRepository) Rename(ctx context.Context, id, title string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE board_columns SET title = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		title, id,
	)
	if err != nil {
		return fmt.Errorf("failed to rename column: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return notFound("column", id)
	}

	return nil
}

// Delete removes a column; its tasks are removed by cascade.
func (r *ColumnRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM board_columns WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete column: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return notFound("column", id)
	}

	return nil
}

// SetPositions rewrites positions so ids[i] gets position i.
func (r *ColumnRepository) SetPositions(ctx context.Context, boardID string, ids []string) error {
	if err := setPositions(ctx, r.db, "board_columns", boardID, ids); err != nil {
		return fmt.Errorf("failed to reorder columns: %w", err)
	}
	return nil
}

// GetNextID returns the next available column ID.
func (r *ColumnRepository) GetNextID(ctx context.Context) (string, error) {
	id, err := nextID(ctx, r.db, "board_columns", "COL-", 3)
	if err != nil {
		return "", fmt.Errorf("failed to get next column ID: %w", err)
	}
	return id, nil
}

// Ensure ColumnRepository implements the interface
var _ secondary.ColumnRepository = (*ColumnRepository)(nil)
