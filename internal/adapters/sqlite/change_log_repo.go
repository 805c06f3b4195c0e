package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/kanban/internal/ports/secondary"
)

// ChangeLogRepository implements secondary.ChangeLogRepository with SQLite.
type ChangeLogRepository struct {
	db *sql.DB
}

// NewChangeLogRepository creates a new SQLite change log repository.
func NewChangeLogRepository(db *sql.DB) *ChangeLogRepository {
	return &ChangeLogRepository{db: db}
}

const changeLogSelectCols = "id, board_id, actor_id, action, entity_type, entity_id, details, timestamp"

func scanChangeLog(s scanner) (*secondary.ChangeLogRecord, error) {
	var actorID, details sql.NullString
	record := &secondary.ChangeLogRecord{}
	err := s.Scan(&record.ID, &record.BoardID, &actorID, &record.Action,
		&record.EntityType, &record.EntityID, &details, &record.Timestamp)
	if err != nil {
		return nil, err
	}
	record.ActorID = actorID.String
	record.Details = details.String
	return record, nil
}

// Create persists a new change log entry.
func (r *ChangeLogRepository) Create(ctx context.Context, log *secondary.ChangeLogRecord) error {
	if log.Timestamp.IsZero() {
		log.Timestamp = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO change_logs (id, board_id, actor_id, action, entity_type, entity_id, details, timestamp) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		log.ID,
		log.BoardID,
		nullString(log.ActorID),
		log.Action,
		log.EntityType,
		log.EntityID,
		nullString(log.Details),
		log.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to create change log: %w", err)
	}

	return nil
}

// GetByID retrieves a log entry by its ID.
func (r *ChangeLogRepository) GetByID(ctx context.Context, id string) (*secondary.ChangeLogRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+changeLogSelectCols+" FROM change_logs WHERE id = ?", id)

	record, err := scanChangeLog(row)
	if err == sql.ErrNoRows {
		return nil, notFound("log entry", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get change log: %w", err)
	}

	return record, nil
}

// List retrieves log entries matching the given filters.
func (r *ChangeLogRepository) List(ctx context.Context, filters secondary.ChangeLogFilters) ([]*secondary.ChangeLogRecord, error) {
	query := "SELECT " + changeLogSelectCols + " FROM change_logs WHERE 1=1"
	args := []any{}

	if filters.BoardID != "" {
		query += " AND board_id = ?"
		args = append(args, filters.BoardID)
	}

	if filters.EntityType != "" {
		query += " AND entity_type = ?"
		args = append(args, filters.EntityType)
	}

	if filters.EntityID != "" {
		query += " AND entity_id = ?"
		args = append(args, filters.EntityID)
	}

	if filters.ActorID != "" {
		query += " AND actor_id = ?"
		args = append(args, filters.ActorID)
	}

	if filters.Action != "" {
		query += " AND action = ?"
		args = append(args, filters.Action)
	}

	query += " ORDER BY timestamp DESC, id DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list change logs: %w", err)
	}
	defer rows.Close()

	var logs []*secondary.ChangeLogRecord
	for rows.Next() {
		record, err := scanChangeLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan change log: %w", err)
		}
		logs = append(logs, record)
	}

	return logs, rows.Err()
}

// GetNextID returns the next available log ID.
func (r *ChangeLogRepository) GetNextID(ctx context.Context) (string, error) {
	id, err := nextID(ctx, r.db, "change_logs", "LOG-", 4)
	if err != nil {
		return "", fmt.Errorf("failed to get next log ID: %w", err)
	}
	return id, nil
}

// PruneOlderThan deletes log entries older than the given number of days.
func (r *ChangeLogRepository) PruneOlderThan(ctx context.Context, days int) (int, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	result, err := r.db.ExecContext(ctx, "DELETE FROM change_logs WHERE timestamp < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune change logs: %w", err)
	}

	count, _ := result.RowsAffected()
	return int(count), nil
}

// Ensure ChangeLogRepository implements the interface
var _ secondary.ChangeLogRepository = (*ChangeLogRepository)(nil)
