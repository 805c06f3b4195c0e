package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/kanban/internal/ports/secondary"
)

// ColumnRepository implements secondary.ColumnRepository with PostgreSQL.
type ColumnRepository struct {
	pool *pgxpool.Pool
}

const columnSelectCols = "id, board_id, title, position, created_at, updated_at"

func scanColumn(row pgx.Row) (*secondary.ColumnRecord, error) {
	c := &secondary.ColumnRecord{}
	if err := row.Scan(&c.ID, &c.BoardID, &c.Title, &c.Position, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ColumnRepository) Create(ctx context.Context, column *secondary.ColumnRecord) error {
	if column.CreatedAt.IsZero() {
		column.CreatedAt = time.Now().UTC()
	}
	column.UpdatedAt = column.CreatedAt
	_, err := r.pool.Exec(ctx,
		"INSERT INTO board_columns (id, board_id, title, position, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)",
		column.ID, column.BoardID, column.Title, column.Position, column.CreatedAt, column.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create column %s: %w", column.ID, err)
	}
	return nil
}

func (r *ColumnRepository) GetByID(ctx context.Context, id string) (*secondary.ColumnRecord, error) {
	c, err := scanColumn(r.pool.QueryRow(ctx, "SELECT "+columnSelectCols+" FROM board_columns WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("column", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get column %s: %w", id, err)
	}
	return c, nil
}

func (r *ColumnRepository) List(ctx context.Context, boardID string) ([]*secondary.ColumnRecord, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+columnSelectCols+" FROM board_columns WHERE board_id = $1 ORDER BY position ASC, created_at ASC", boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns: %w", err)
	}
	defer rows.Close()

	var columns []*secondary.ColumnRecord
	for rows.Next() {
		c, err := scanColumn(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		columns = append(columns, c)
	}
	return columns, rows.Err()
}

func (r *ColumnRepository) Rename(ctx context.Context, id, title string) error {
	tag, err := r.pool.Exec(ctx, "UPDATE board_columns SET title = $2, updated_at = now() WHERE id = $1", id, title)
	if err != nil {
		return fmt.Errorf("failed to rename column %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("column", id)
	}
	return nil
}

func (r *ColumnRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM board_columns WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete column %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("column", id)
	}
	return nil
}

func (r *ColumnRepository) SetPositions(ctx context.Context, boardID string, ids []string) error {
	if err := setPositions(ctx, r.pool, "board_columns", boardID, ids); err != nil {
		return fmt.Errorf("failed to reorder columns: %w", err)
	}
	return nil
}

func (r *ColumnRepository) GetNextID(ctx context.Context) (string, error) {
	id, err := nextID(ctx, r.pool, "board_columns", "COL-", 3)
	if err != nil {
		return "", fmt.Errorf("failed to get next column ID: %w", err)
	}
	return id, nil
}
