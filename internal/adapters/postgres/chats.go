package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/kanban/internal/ports/secondary"
)

// ChatRepository implements secondary.ChatRepository with PostgreSQL.
type ChatRepository struct {
	pool *pgxpool.Pool
}

func (r *ChatRepository) Create(ctx context.Context, msg *secondary.ChatMessageRecord) error {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx,
		"INSERT INTO chat_messages (id, board_id, user_id, sender, content, timestamp) VALUES ($1, $2, $3, $4, $5, $6)",
		msg.ID, msg.BoardID, text(msg.UserID), msg.Sender, msg.Content, msg.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to create chat message: %w", err)
	}
	return nil
}

func (r *ChatRepository) List(ctx context.Context, boardID string, limit int) ([]*secondary.ChatMessageRecord, error) {
	query := `SELECT id, board_id, user_id, sender, content, timestamp FROM (
		SELECT * FROM chat_messages WHERE board_id = $1 ORDER BY timestamp DESC`
	args := []any{boardID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}
	query += ") recent ORDER BY timestamp ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	defer rows.Close()

	var msgs []*secondary.ChatMessageRecord
	for rows.Next() {
		var userID pgtype.Text
		m := &secondary.ChatMessageRecord{}
		if err := rows.Scan(&m.ID, &m.BoardID, &userID, &m.Sender, &m.Content, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		m.UserID = userID.String
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (r *ChatRepository) DeleteByBoard(ctx context.Context, boardID string) (int, error) {
	tag, err := r.pool.Exec(ctx, "DELETE FROM chat_messages WHERE board_id = $1", boardID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear chat messages: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
