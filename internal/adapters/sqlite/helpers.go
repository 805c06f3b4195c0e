// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/example/kanban/internal/models"
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// nullString maps the empty string to NULL.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// notFound builds the "<entity> <id> not found" error wrapping models.ErrNotFound.
func notFound(entity, id string) error {
	return fmt.Errorf("%s %s %w", entity, id, models.ErrNotFound)
}

// isUniqueViolation reports whether err is a UNIQUE or PRIMARY KEY failure.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

// nextID computes the next sequential ID for table from the numeric suffix
// after prefix, zero padded to width digits.
func nextID(ctx context.Context, db *sql.DB, table, prefix string, width int) (string, error) {
	var maxID int
	err := db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT COALESCE(MAX(CAST(SUBSTR(id, %d) AS INTEGER)), 0) FROM %s", len(prefix)+1, table),
	).Scan(&maxID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%0*d", prefix, width, maxID+1), nil
}

// setPositions rewrites position = index for each id of table in one transaction.
func setPositions(ctx context.Context, db *sql.DB, table, boardID string, ids []string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		fmt.Sprintf("UPDATE %s SET position = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND board_id = ?", table),
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, id := range ids {
		if _, err := stmt.ExecContext(ctx, i, id, boardID); err != nil {
			return err
		}
	}

	return tx.Commit()
}
