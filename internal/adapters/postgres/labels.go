package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/kanban/internal/models"
	"github.com/example/kanban/internal/ports/secondary"
)

// LabelRepository implements secondary.LabelRepository with PostgreSQL.
type LabelRepository struct {
	pool *pgxpool.Pool
}

const labelSelectCols = "id, board_id, name, color, pinned, usage_count"

func scanLabel(row pgx.Row) (*secondary.LabelRecord, error) {
	l := &secondary.LabelRecord{}
	if err := row.Scan(&l.ID, &l.BoardID, &l.Name, &l.Color, &l.Pinned, &l.UsageCount); err != nil {
		return nil, err
	}
	return l, nil
}

func (r *LabelRepository) Create(ctx context.Context, label *secondary.LabelRecord) error {
	_, err := r.pool.Exec(ctx,
		"INSERT INTO labels (id, board_id, name, color, pinned, usage_count) VALUES ($1, $2, $3, $4, $5, $6)",
		label.ID, label.BoardID, label.Name, label.Color, label.Pinned, label.UsageCount)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("label %q on board %s: %w", label.Name, label.BoardID, models.ErrConflict)
		}
		return fmt.Errorf("failed to create label %s: %w", label.ID, err)
	}
	return nil
}

func (r *LabelRepository) GetByID(ctx context.Context, id string) (*secondary.LabelRecord, error) {
	l, err := scanLabel(r.pool.QueryRow(ctx, "SELECT "+labelSelectCols+" FROM labels WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("label", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get label %s: %w", id, err)
	}
	return l, nil
}

func (r *LabelRepository) GetByName(ctx context.Context, boardID, name string) (*secondary.LabelRecord, error) {
	l, err := scanLabel(r.pool.QueryRow(ctx,
		"SELECT "+labelSelectCols+" FROM labels WHERE board_id = $1 AND name = $2", boardID, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("label", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get label %q: %w", name, err)
	}
	return l, nil
}

func (r *LabelRepository) List(ctx context.Context, boardID string) ([]*secondary.LabelRecord, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+labelSelectCols+" FROM labels WHERE board_id = $1 ORDER BY pinned DESC, usage_count DESC, name ASC", boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	defer rows.Close()

	var labels []*secondary.LabelRecord
	for rows.Next() {
		l, err := scanLabel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan label: %w", err)
		}
		labels = append(labels, l)
	}
	return labels, rows.Err()
}

func (r *LabelRepository) Update(ctx context.Context, label *secondary.LabelRecord) error {
	tag, err := r.pool.Exec(ctx,
		"UPDATE labels SET name = $2, color = $3, pinned = $4 WHERE id = $1",
		label.ID, label.Name, label.Color, label.Pinned)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("label %q on board %s: %w", label.Name, label.BoardID, models.ErrConflict)
		}
		return fmt.Errorf("failed to update label %s: %w", label.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("label", label.ID)
	}
	return nil
}

func (r *LabelRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM labels WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete label %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("label", id)
	}
	return nil
}

func (r *LabelRepository) IncrementUsage(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, "UPDATE labels SET usage_count = usage_count + 1 WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to increment label usage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("label", id)
	}
	return nil
}

func (r *LabelRepository) GetNextID(ctx context.Context) (string, error) {
	id, err := nextID(ctx, r.pool, "labels", "LABEL-", 3)
	if err != nil {
		return "", fmt.Errorf("failed to get next label ID: %w", err)
	}
	return id, nil
}
