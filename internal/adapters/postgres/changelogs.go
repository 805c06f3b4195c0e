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

// ChangeLogRepository implements secondary.ChangeLogRepository with PostgreSQL.
type ChangeLogRepository struct {
	pool *pgxpool.Pool
}

const changeLogSelectCols = "id, board_id, actor_id, action, entity_type, entity_id, details, timestamp"

func scanChangeLog(row pgx.Row) (*secondary.ChangeLogRecord, error) {
	var actor, details pgtype.Text
	l := &secondary.ChangeLogRecord{}
	if err := row.Scan(&l.ID, &l.BoardID, &actor, &l.Action, &l.EntityType, &l.EntityID, &details, &l.Timestamp); err != nil {
		return nil, err
	}
	l.ActorID = actor.String
	l.Details = details.String
	return l, nil
}

func (r *ChangeLogRepository) Create(ctx context.Context, log *secondary.ChangeLogRecord) error {
	if log.Timestamp.IsZero() {
		log.Timestamp = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO change_logs (id, board_id, actor_id, action, entity_type, entity_id, details, timestamp)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		log.ID, log.BoardID, text(log.ActorID), log.Action, log.EntityType, log.EntityID, text(log.Details), log.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to create change log: %w", err)
	}
	return nil
}

func (r *ChangeLogRepository) GetByID(ctx context.Context, id string) (*secondary.ChangeLogRecord, error) {
	l, err := scanChangeLog(r.pool.QueryRow(ctx, "SELECT "+changeLogSelectCols+" FROM change_logs WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("log entry", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get change log %s: %w", id, err)
	}
	return l, nil
}

func (r *ChangeLogRepository) List(ctx context.Context, filters secondary.ChangeLogFilters) ([]*secondary.ChangeLogRecord, error) {
	query := "SELECT " + changeLogSelectCols + " FROM change_logs WHERE true"
	args := []any{}
	add := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		query += fmt.Sprintf(" AND %s = $%d", column, len(args))
	}
	add("board_id", filters.BoardID)
	add("entity_type", filters.EntityType)
	add("entity_id", filters.EntityID)
	add("actor_id", filters.ActorID)
	add("action", filters.Action)

	query += " ORDER BY timestamp DESC, id DESC"
	if filters.Limit > 0 {
		args = append(args, filters.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list change logs: %w", err)
	}
	defer rows.Close()

	var logs []*secondary.ChangeLogRecord
	for rows.Next() {
		l, err := scanChangeLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan change log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (r *ChangeLogRepository) GetNextID(ctx context.Context) (string, error) {
	id, err := nextID(ctx, r.pool, "change_logs", "LOG-", 4)
	if err != nil {
		return "", fmt.Errorf("failed to get next log ID: %w", err)
	}
	return id, nil
}

func (r *ChangeLogRepository) PruneOlderThan(ctx context.Context, days int) (int, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	tag, err := r.pool.Exec(ctx, "DELETE FROM change_logs WHERE timestamp < $1", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune change logs: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
