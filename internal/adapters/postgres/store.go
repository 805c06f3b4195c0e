// Package postgres contains PostgreSQL implementations of repository
// interfaces, used when the application runs in cloud mode.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/kanban/internal/models"
	"github.com/example/kanban/internal/ports/secondary"
)

// Store bundles the PostgreSQL repositories that share one connection pool.
type Store struct {
	pool *pgxpool.Pool

	Boards     *BoardRepository
	Columns    *ColumnRepository
	Tasks      *TaskRepository
	Labels     *LabelRepository
	Checklists *ChecklistRepository
	Chats      *ChatRepository
	ChangeLogs *ChangeLogRepository
}

// NewStore creates a new Store backed by the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool:       pool,
		Boards:     &BoardRepository{pool: pool},
		Columns:    &ColumnRepository{pool: pool},
		Tasks:      &TaskRepository{pool: pool},
		Labels:     &LabelRepository{pool: pool},
		Checklists: &ChecklistRepository{pool: pool},
		Chats:      &ChatRepository{pool: pool},
		ChangeLogs: &ChangeLogRepository{pool: pool},
	}
}

// Connect opens a pool for dsn, verifies it and applies the schema.
func Connect(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	if err := Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return NewStore(pool), nil
}

// Close releases the pool.
func (s *Store) Close() {
	s.pool.Close()
}

// notFound builds the "<entity> <id> not found" error wrapping models.ErrNotFound.
func notFound(entity, id string) error {
	return fmt.Errorf("%s %s %w", entity, id, models.ErrNotFound)
}

// isUniqueViolation reports whether err is a unique_violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// text maps the empty string to NULL.
func text(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}

// nextID reserves the next sequential ID for table, zero padded to width
// digits after prefix. The counter row in id_counters is bumped with a single
// upsert, so concurrent callers never receive the same ID. The counter never
// falls behind the highest suffix already stored in table.
func nextID(ctx context.Context, pool *pgxpool.Pool, table, prefix string, width int) (string, error) {
	query := fmt.Sprintf(`
INSERT INTO id_counters (name, value)
VALUES ($1, (SELECT COALESCE(MAX(CAST(SUBSTRING(id FROM %d) AS INTEGER)), 0) + 1 FROM %s))
ON CONFLICT (name) DO UPDATE SET value = GREATEST(id_counters.value + 1, EXCLUDED.value)
RETURNING value`, len(prefix)+1, table)

	var next int
	if err := pool.QueryRow(ctx, query, table).Scan(&next); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%0*d", prefix, width, next), nil
}

// setPositions rewrites position = index for each id of table in one transaction.
func setPositions(ctx context.Context, pool *pgxpool.Pool, table, boardID string, ids []string) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	query := fmt.Sprintf("UPDATE %s SET position = $1, updated_at = now() WHERE id = $2 AND board_id = $3", table)
	for i, id := range ids {
		batch.Queue(query, i, id, boardID)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Ensure the repositories implement the interfaces
var (
	_ secondary.BoardRepository     = (*BoardRepository)(nil)
	_ secondary.ColumnRepository    = (*ColumnRepository)(nil)
	_ secondary.TaskRepository      = (*TaskRepository)(nil)
	_ secondary.LabelRepository     = (*LabelRepository)(nil)
	_ secondary.ChecklistRepository = (*ChecklistRepository)(nil)
	_ secondary.ChatRepository      = (*ChatRepository)(nil)
	_ secondary.ChangeLogRepository = (*ChangeLogRepository)(nil)
)

// Truncate empties every table. Used by integration tests.
func (s *Store) Truncate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx,
		"TRUNCATE change_logs, chat_messages, checklist_items, task_labels, labels, tasks, board_columns, board_invites, board_members, boards, id_counters")
	if err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}
	return nil
}
