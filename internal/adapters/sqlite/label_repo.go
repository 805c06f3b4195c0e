package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/kanban/internal/models"
	"github.com/example/kanban/internal/ports/secondary"
)

// LabelRepository implements secondary.LabelRepository with SQLite.
type LabelRepository struct {
	db *sql.DB
}

// NewLabelRepository creates a new SQLite label repository.
func NewLabelRepository(db *sql.DB) *LabelRepository {
	return &LabelRepository{db: db}
}

const labelSelectCols = "id, board_id, name, color, pinned, usage_count"

func scanLabel(s scanner) (*secondary.LabelRecord, error) {
	record := &secondary.LabelRecord{}
	err := s.Scan(&record.ID, &record.BoardID, &record.Name, &record.Color, &record.Pinned, &record.UsageCount)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Create persists a new label.
func (r *LabelRepository) Create(ctx context.Context, label *secondary.LabelRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO labels (id, board_id, name, color, pinned, usage_count) VALUES (?, ?, ?, ?, ?, ?)",
		label.ID, label.BoardID, label.Name, label.Color, label.Pinned, label.UsageCount,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("label %q on board %s: %w", label.Name, label.BoardID, models.ErrConflict)
		}
		return fmt.Errorf("failed to create label: %w", err)
	}

	return nil
}

// GetByID retrieves a label by its ID.
func (r *LabelRepository) GetByID(ctx context.Context, id string) (*secondary.LabelRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+labelSelectCols+" FROM labels WHERE id = ?", id)

	record, err := scanLabel(row)
	if err == sql.ErrNoRows {
		return nil, notFound("label", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get label: %w", err)
	}

	return record, nil
}

// GetByName retrieves a label by board and name.
func (r *LabelRepository) GetByName(ctx context.Context, boardID, name string) (*secondary.LabelRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+labelSelectCols+" FROM labels WHERE board_id = ? AND name = ?",
		boardID, name,
	)

	record, err := scanLabel(row)
	if err == sql.ErrNoRows {
		return nil, notFound("label", fmt.Sprintf("%q", name))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get label: %w", err)
	}

	return record, nil
}

// List retrieves the labels of a board.
func (r *LabelRepository) List(ctx context.Context, boardID string) ([]*secondary.LabelRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+labelSelectCols+" FROM labels WHERE board_id = ? ORDER BY pinned DESC, usage_count DESC, name ASC",
		boardID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	defer rows.Close()

	var labels []*secondary.LabelRecord
	for rows.Next() {
		record, err := scanLabel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan label: %w", err)
		}
		labels = append(labels, record)
	}

	return labels, rows.Err()
}

// Update replaces name, color and pinned. Task links follow the label ID.
func (r *LabelRepository) Update(ctx context.Context, label *secondary.LabelRecord) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE labels SET name = ?, color = ?, pinned = ? WHERE id = ?",
		label.Name, label.Color, label.Pinned, label.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("label %q on board %s: %w", label.Name, label.BoardID, models.ErrConflict)
		}
		return fmt.Errorf("failed to update label: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return notFound("label", label.ID)
	}

	return nil
}

// Delete removes a label; task links are removed by cascade.
func (r *LabelRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM labels WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete label: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return notFound("label", id)
	}

	return nil
}

// IncrementUsage bumps the usage counter of a label.
func (r *LabelRepository) IncrementUsage(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "UPDATE labels SET usage_count = usage_count + 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to increment label usage: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return notFound("label", id)
	}

	return nil
}

// GetNextID returns the next available label ID.
func (r *LabelRepository) GetNextID(ctx context.Context) (string, error) {
	id, err := nextID(ctx, r.db, "labels", "LABEL-", 3)
	if err != nil {
		return "", fmt.Errorf("failed to get next label ID: %w", err)
	}
	return id, nil
}

// Ensure LabelRepository implements the interface
var _ secondary.LabelRepository = (*LabelRepository)(nil)
