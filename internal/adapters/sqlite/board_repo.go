package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/kanban/internal/models"
	"github.com/example/kanban/internal/ports/secondary"
)

// BoardRepository implements secondary.BoardRepository with SQLite.
type BoardRepository struct {
	db *sql.DB
}

// NewBoardRepository creates a new SQLite board repository.
func NewBoardRepository(db *sql.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// scanBoard scans a board row into a BoardRecord.
func scanBoard(s scanner) (*secondary.BoardRecord, error) {
	var (
		ownerID         sql.NullString
		calendarURL     sql.NullString
		weatherLocation sql.NullString
	)

	record := &secondary.BoardRecord{}
	err := s.Scan(
		&record.ID, &record.Name, &ownerID, &record.IsDefault,
		&calendarURL, &weatherLocation, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.OwnerID = ownerID.String
	record.CalendarURL = calendarURL.String
	record.WeatherLocation = weatherLocation.String

	return record, nil
}

const boardSelectCols = "b.id, b.name, b.owner_id, b.is_default, b.google_calendar_url, b.weather_location, b.created_at, b.updated_at"

// Create persists a new board.
func (r *BoardRepository) Create(ctx context.Context, board *secondary.BoardRecord) error {
	now := time.Now().UTC()
	if board.CreatedAt.IsZero() {
		board.CreatedAt = now
	}
	board.UpdatedAt = board.CreatedAt

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO boards (id, name, owner_id, is_default, google_calendar_url, weather_location, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		board.ID, board.Name, nullString(board.OwnerID), board.IsDefault,
		nullString(board.CalendarURL), nullString(board.WeatherLocation), board.CreatedAt, board.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("board %s: %w", board.ID, models.ErrConflict)
		}
		return fmt.Errorf("failed to create board: %w", err)
	}

	return nil
}

// GetByID retrieves a board by its ID.
func (r *BoardRepository) GetByID(ctx context.Context, id string) (*secondary.BoardRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+boardSelectCols+" FROM boards b WHERE b.id = ?",
		id,
	)

	record, err := scanBoard(row)
	if err == sql.ErrNoRows {
		return nil, notFound("board", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get board: %w", err)
	}

	return record, nil
}

// GetDefault retrieves the default board.
func (r *BoardRepository) GetDefault(ctx context.Context) (*secondary.BoardRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+boardSelectCols+" FROM boards b WHERE b.is_default = 1",
	)

	record, err := scanBoard(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("default board %w", models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get default board: %w", err)
	}

	return record, nil
}

// List retrieves boards matching the given filters.
func (r *BoardRepository) List(ctx context.Context, filters secondary.BoardFilters) ([]*secondary.BoardRecord, error) {
	query := "SELECT " + boardSelectCols + " FROM boards b"
	args := []any{}

	if filters.MemberID != "" {
		query += " JOIN board_members m ON m.board_id = b.id AND m.user_id = ?"
		args = append(args, filters.MemberID)
	}

	query += " ORDER BY b.created_at ASC, b.id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	defer rows.Close()

	var boards []*secondary.BoardRecord
	for rows.Next() {
		record, err := scanBoard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan board: %w", err)
		}
		boards = append(boards, record)
	}

	return boards, rows.Err()
}

// Update replaces the mutable fields of a board.
func (r *BoardRepository) Update(ctx context.Context, board *secondary.BoardRecord) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE boards SET name = ?, google_calendar_url = ?, weather_location = ?, updated_at = ? WHERE id = ?",
		board.Name, nullString(board.CalendarURL), nullString(board.WeatherLocation), time.Now().UTC(), board.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update board: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return notFound("board", board.ID)
	}

	return nil
}

// Delete removes a board. Columns, tasks, labels, members, invites and chat
// history go with it through foreign key cascades.
func (r *BoardRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM boards WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return notFound("board", id)
	}

	return nil
}

// GetNextID returns the next available board ID.
func (r *BoardRepository) GetNextID(ctx context.Context) (string, error) {
	id, err := nextID(ctx, r.db, "boards", "BOARD-", 3)
	if err != nil {
		return "", fmt.Errorf("failed to get next board ID: %w", err)
	}
	return id, nil
}

// AddMember links a user to a board. Existing memberships are left untouched.
func (r *BoardRepository) AddMember(ctx context.Context, member *secondary.MemberRecord) error {
	if member.CreatedAt.IsZero() {
		member.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO board_members (board_id, user_id, role, created_at) VALUES (?, ?, ?, ?)",
		member.BoardID, member.UserID, member.Role, member.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}

	return nil
}

// GetMember retrieves a membership.
func (r *BoardRepository) GetMember(ctx context.Context, boardID, userID string) (*secondary.MemberRecord, error) {
	record := &secondary.MemberRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT board_id, user_id, role, created_at FROM board_members WHERE board_id = ? AND user_id = ?",
		boardID, userID,
	).Scan(&record.BoardID, &record.UserID, &record.Role, &record.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("member %s of board %s %w", userID, boardID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return record, nil
}

// ListMembers retrieves the members of a board, owner first.
func (r *BoardRepository) ListMembers(ctx context.Context, boardID string) ([]*secondary.MemberRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT board_id, user_id, role, created_at FROM board_members WHERE board_id = ? ORDER BY role = 'owner' DESC, created_at ASC",
		boardID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*secondary.MemberRecord
	for rows.Next() {
		record := &secondary.MemberRecord{}
		if err := rows.Scan(&record.BoardID, &record.UserID, &record.Role, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, record)
	}

	return members, rows.Err()
}

// RemoveMember unlinks a user from a board.
func (r *BoardRepository) RemoveMember(ctx context.Context, boardID, userID string) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM board_members WHERE board_id = ? AND user_id = ?",
		boardID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("member %s of board %s %w", userID, boardID, models.ErrNotFound)
	}

	return nil
}

// CreateInvite persists an invite code.
func (r *BoardRepository) CreateInvite(ctx context.Context, invite *secondary.InviteRecord) error {
	if invite.CreatedAt.IsZero() {
		invite.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO board_invites (code, board_id, created_by, created_at) VALUES (?, ?, ?, ?)",
		invite.Code, invite.BoardID, nullString(invite.CreatedBy), invite.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create invite: %w", err)
	}

	return nil
}

// GetInvite retrieves an invite by code.
func (r *BoardRepository) GetInvite(ctx context.Context, code string) (*secondary.InviteRecord, error) {
	var createdBy sql.NullString
	record := &secondary.InviteRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT code, board_id, created_by, created_at FROM board_invites WHERE code = ?",
		code,
	).Scan(&record.Code, &record.BoardID, &createdBy, &record.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, notFound("invite", code)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invite: %w", err)
	}
	record.CreatedBy = createdBy.String

	return record, nil
}

// Ensure BoardRepository implements the interface
var _ secondary.BoardRepository = (*BoardRepository)(nil)
