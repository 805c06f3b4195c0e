package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/kanban/internal/models"
	"github.com/example/kanban/internal/ports/secondary"
)

// BoardRepository implements secondary.BoardRepository with PostgreSQL.
type BoardRepository struct {
	pool *pgxpool.Pool
}

const boardSelectCols = "b.id, b.name, b.owner_id, b.is_default, b.google_calendar_url, b.weather_location, b.created_at, b.updated_at"

func scanBoard(row pgx.Row) (*secondary.BoardRecord, error) {
	var owner, calendar, weather pgtype.Text
	record := &secondary.BoardRecord{}
	err := row.Scan(&record.ID, &record.Name, &owner, &record.IsDefault, &calendar, &weather, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return nil, err
	}
	record.OwnerID = owner.String
	record.CalendarURL = calendar.String
	record.WeatherLocation = weather.String
	return record, nil
}

func (r *BoardRepository) Create(ctx context.Context, board *secondary.BoardRecord) error {
	if board.CreatedAt.IsZero() {
		board.CreatedAt = time.Now().UTC()
	}
	board.UpdatedAt = board.CreatedAt

	_, err := r.pool.Exec(ctx,
		`INSERT INTO boards (id, name, owner_id, is_default, google_calendar_url, weather_location, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		board.ID, board.Name, text(board.OwnerID), board.IsDefault, text(board.CalendarURL), text(board.WeatherLocation),
		board.CreatedAt, board.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to create board %s: %w", board.ID, models.ErrConflict)
		}
		return fmt.Errorf("failed to create board %s: %w", board.ID, err)
	}
	return nil
}

func (r *BoardRepository) GetByID(ctx context.Context, id string) (*secondary.BoardRecord, error) {
	record, err := scanBoard(r.pool.QueryRow(ctx, "SELECT "+boardSelectCols+" FROM boards b WHERE b.id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("board", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get board %s: %w", id, err)
	}
	return record, nil
}

func (r *BoardRepository) GetDefault(ctx context.Context) (*secondary.BoardRecord, error) {
	record, err := scanBoard(r.pool.QueryRow(ctx, "SELECT "+boardSelectCols+" FROM boards b WHERE b.is_default"))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("board", "default")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get default board: %w", err)
	}
	return record, nil
}

func (r *BoardRepository) List(ctx context.Context, filters secondary.BoardFilters) ([]*secondary.BoardRecord, error) {
	query := "SELECT " + boardSelectCols + " FROM boards b"
	args := []any{}
	if filters.MemberID != "" {
		query += " JOIN board_members m ON m.board_id = b.id WHERE m.user_id = $1"
		args = append(args, filters.MemberID)
	}
	query += " ORDER BY b.created_at ASC, b.id ASC"

	rows, err := r.pool.Query(ctx, query, args...)
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

func (r *BoardRepository) Update(ctx context.Context, board *secondary.BoardRecord) error {
	tag, err := r.pool.Exec(ctx,
		"UPDATE boards SET name = $2, google_calendar_url = $3, weather_location = $4, updated_at = now() WHERE id = $1",
		board.ID, board.Name, text(board.CalendarURL), text(board.WeatherLocation))
	if err != nil {
		return fmt.Errorf("failed to update board %s: %w", board.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("board", board.ID)
	}
	return nil
}

func (r *BoardRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM boards WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete board %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("board", id)
	}
	return nil
}

func (r *BoardRepository) GetNextID(ctx context.Context) (string, error) {
	id, err := nextID(ctx, r.pool, "boards", "BOARD-", 3)
	if err != nil {
		return "", fmt.Errorf("failed to get next board ID: %w", err)
	}
	return id, nil
}

func (r *BoardRepository) AddMember(ctx context.Context, member *secondary.MemberRecord) error {
	if member.CreatedAt.IsZero() {
		member.CreatedAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO board_members (board_id, user_id, role, created_at) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (board_id, user_id) DO NOTHING`,
		member.BoardID, member.UserID, member.Role, member.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add member %s to %s: %w", member.UserID, member.BoardID, err)
	}
	return nil
}

func (r *BoardRepository) GetMember(ctx context.Context, boardID, userID string) (*secondary.MemberRecord, error) {
	m := &secondary.MemberRecord{}
	err := r.pool.QueryRow(ctx,
		"SELECT board_id, user_id, role, created_at FROM board_members WHERE board_id = $1 AND user_id = $2",
		boardID, userID,
	).Scan(&m.BoardID, &m.UserID, &m.Role, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("member", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member %s: %w", userID, err)
	}
	return m, nil
}

func (r *BoardRepository) ListMembers(ctx context.Context, boardID string) ([]*secondary.MemberRecord, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT board_id, user_id, role, created_at FROM board_members WHERE board_id = $1 ORDER BY role = 'owner' DESC, created_at ASC",
		boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*secondary.MemberRecord
	for rows.Next() {
		m := &secondary.MemberRecord{}
		if err := rows.Scan(&m.BoardID, &m.UserID, &m.Role, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *BoardRepository) RemoveMember(ctx context.Context, boardID, userID string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM board_members WHERE board_id = $1 AND user_id = $2", boardID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove member %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("member", userID)
	}
	return nil
}

func (r *BoardRepository) CreateInvite(ctx context.Context, invite *secondary.InviteRecord) error {
	if invite.CreatedAt.IsZero() {
		invite.CreatedAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx,
		"INSERT INTO board_invites (code, board_id, created_by, created_at) VALUES ($1, $2, $3, $4)",
		invite.Code, invite.BoardID, text(invite.CreatedBy), invite.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create invite: %w", err)
	}
	return nil
}

func (r *BoardRepository) GetInvite(ctx context.Context, code string) (*secondary.InviteRecord, error) {
	var createdBy pgtype.Text
	inv := &secondary.InviteRecord{}
	err := r.pool.QueryRow(ctx,
		"SELECT code, board_id, created_by, created_at FROM board_invites WHERE code = $1", code,
	).Scan(&inv.Code, &inv.BoardID, &createdBy, &inv.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("invite", code)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invite: %w", err)
	}
	inv.CreatedBy = createdBy.String
	return inv, nil
}
