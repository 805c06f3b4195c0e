package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/kanban/internal/ports/secondary"
)

// ChatRepository implements secondary.ChatRepository with SQLite.
type ChatRepository struct {
	db *sql.DB
}

// NewChatRepository creates a new SQLite chat repository.
func NewChatRepository(db *sql.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// Create persists a chat message.
func (r *ChatRepository) Create(ctx context.Context, msg *secondary.ChatMessageRecord) error {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO chat_messages (id, board_id, user_id, sender, content, timestamp) VALUES (?, ?, ?, ?, ?, ?)",
		msg.ID, msg.BoardID, nullString(msg.UserID), msg.Sender, msg.Content, msg.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to create chat message: %w", err)
	}

	return nil
}

// List retrieves the latest messages of a board in chronological order.
func (r *ChatRepository) List(ctx context.Context, boardID string, limit int) ([]*secondary.ChatMessageRecord, error) {
	// newest first so LIMIT keeps the tail, then reversed below
	query := "SELECT id, board_id, user_id, sender, content, timestamp FROM chat_messages WHERE board_id = ? ORDER BY timestamp DESC, rowid DESC"
	args := []any{boardID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	defer rows.Close()

	var msgs []*secondary.ChatMessageRecord
	for rows.Next() {
		var userID sql.NullString
		record := &secondary.ChatMessageRecord{}
		if err := rows.Scan(&record.ID, &record.BoardID, &userID, &record.Sender, &record.Content, &record.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		record.UserID = userID.String
		msgs = append(msgs, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}

	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}

	return msgs, nil
}

// DeleteByBoard clears the history of a board.
func (r *ChatRepository) DeleteByBoard(ctx context.Context, boardID string) (int, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM chat_messages WHERE board_id = ?", boardID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear chat messages: %w", err)
	}

	count, _ := result.RowsAffected()
	return int(count), nil
}

// Ensure ChatRepository implements the interface
var _ secondary.ChatRepository = (*ChatRepository)(nil)
